package catalog

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/go-sif/catalog/errors"
)

// TypeID identifies a built-in ColumnType in serialized form
type TypeID uint32

const (
	// UnknownTypeID is never assigned to a valid ColumnType
	UnknownTypeID TypeID = iota
	// BoolTypeID identifies BoolColumnType
	BoolTypeID
	// Uint8TypeID identifies Uint8ColumnType
	Uint8TypeID
	// Uint16TypeID identifies Uint16ColumnType
	Uint16TypeID
	// Uint32TypeID identifies Uint32ColumnType
	Uint32TypeID
	// Uint64TypeID identifies Uint64ColumnType
	Uint64TypeID
	// Int8TypeID identifies Int8ColumnType
	Int8TypeID
	// Int16TypeID identifies Int16ColumnType
	Int16TypeID
	// Int32TypeID identifies Int32ColumnType
	Int32TypeID
	// Int64TypeID identifies Int64ColumnType
	Int64TypeID
	// Float32TypeID identifies Float32ColumnType
	Float32TypeID
	// Float64TypeID identifies Float64ColumnType
	Float64TypeID
	// TimeTypeID identifies TimeColumnType
	TimeTypeID
	// StringTypeID identifies StringColumnType
	StringTypeID
	// VarStringTypeID identifies VarStringColumnType
	VarStringTypeID
	// VarBytesTypeID identifies VarBytesColumnType
	VarBytesTypeID
)

// ColumnType describes the type of a partitioning attribute. Values of a ColumnType are
// plain Go values (an Int64ColumnType holds int64 values, a TimeColumnType holds time.Time, etc.).
// Size() for variable-length types is always 0.
type ColumnType interface {
	ID() TypeID                              // ID identifies this type in serialized form
	Size() int                               // returns size in bytes of a column type
	ToString(v interface{}) string           // produces a string representation of a value of this type
	Serialize(v interface{}) ([]byte, error) // Defines how a value of this type is serialized
	Deserialize([]byte) (interface{}, error) // Defines how a value of this type is deserialized
}

// CreateColumnType is a factory for built-in ColumnTypes, used when reconstructing
// types from their serialized form. length is only meaningful for StringColumnType.
func CreateColumnType(id TypeID, length int) (ColumnType, error) {
	switch id {
	case BoolTypeID:
		return &BoolColumnType{}, nil
	case Uint8TypeID:
		return &Uint8ColumnType{}, nil
	case Uint16TypeID:
		return &Uint16ColumnType{}, nil
	case Uint32TypeID:
		return &Uint32ColumnType{}, nil
	case Uint64TypeID:
		return &Uint64ColumnType{}, nil
	case Int8TypeID:
		return &Int8ColumnType{}, nil
	case Int16TypeID:
		return &Int16ColumnType{}, nil
	case Int32TypeID:
		return &Int32ColumnType{}, nil
	case Int64TypeID:
		return &Int64ColumnType{}, nil
	case Float32TypeID:
		return &Float32ColumnType{}, nil
	case Float64TypeID:
		return &Float64ColumnType{}, nil
	case TimeTypeID:
		return &TimeColumnType{}, nil
	case StringTypeID:
		if length <= 0 {
			return nil, fmt.Errorf("StringColumnType requires a positive length, got %d", length)
		}
		return &StringColumnType{Length: length}, nil
	case VarStringTypeID:
		return &VarStringColumnType{}, nil
	case VarBytesTypeID:
		return &VarBytesColumnType{}, nil
	default:
		return nil, errors.UnsupportedColumnTypeError{TypeID: uint32(id)}
	}
}

// ColumnTypeLength returns the length parameter CreateColumnType needs to rebuild colType
func ColumnTypeLength(colType ColumnType) int {
	if s, ok := colType.(*StringColumnType); ok {
		return s.Length
	}
	return 0
}

func checkSize(colType ColumnType, ser []byte) error {
	if len(ser) != colType.Size() {
		return errors.ValueSizeError{TypeID: uint32(colType.ID()), Expected: colType.Size(), Actual: len(ser)}
	}
	return nil
}

// BoolColumnType is a column type which stores a boolean value
type BoolColumnType struct{}

// ID of a BoolColumnType
func (b *BoolColumnType) ID() TypeID {
	return BoolTypeID
}

// Size in bytes of a BoolColumn
func (b *BoolColumnType) Size() int {
	return 1
}

// ToString produces a string representation of a value of a BoolColumnType value
func (b *BoolColumnType) ToString(v interface{}) string {
	return fmt.Sprintf("%t", v.(bool))
}

// Serialize serializes a BoolColumnType value to binary data
func (b *BoolColumnType) Serialize(v interface{}) ([]byte, error) {
	bv, ok := v.(bool)
	if !ok {
		return nil, errors.ValueTypeError{TypeID: uint32(b.ID()), Value: v}
	}
	if bv {
		return []byte{1}, nil
	}
	return []byte{0}, nil
}

// Deserialize deserializes a BoolColumnType value from binary data
func (b *BoolColumnType) Deserialize(ser []byte) (interface{}, error) {
	if err := checkSize(b, ser); err != nil {
		return nil, err
	}
	return ser[0] > 0, nil
}

// Uint8ColumnType is a column type which stores a uint8 value
type Uint8ColumnType struct{}

// ID of a Uint8ColumnType
func (b *Uint8ColumnType) ID() TypeID {
	return Uint8TypeID
}

// Size in bytes of a Uint8Column
func (b *Uint8ColumnType) Size() int {
	return 1
}

// ToString produces a string representation of a value of a Uint8ColumnType value
func (b *Uint8ColumnType) ToString(v interface{}) string {
	return fmt.Sprintf("%d", v.(uint8))
}

// Serialize serializes a Uint8ColumnType value to binary data
func (b *Uint8ColumnType) Serialize(v interface{}) ([]byte, error) {
	uv, ok := v.(uint8)
	if !ok {
		return nil, errors.ValueTypeError{TypeID: uint32(b.ID()), Value: v}
	}
	return []byte{uv}, nil
}

// Deserialize deserializes a Uint8ColumnType value from binary data
func (b *Uint8ColumnType) Deserialize(ser []byte) (interface{}, error) {
	if err := checkSize(b, ser); err != nil {
		return nil, err
	}
	return ser[0], nil
}

// Uint16ColumnType is a column type which stores a uint16 value
type Uint16ColumnType struct{}

// ID of a Uint16ColumnType
func (b *Uint16ColumnType) ID() TypeID {
	return Uint16TypeID
}

// Size in bytes of a Uint16Column
func (b *Uint16ColumnType) Size() int {
	return 2
}

// ToString produces a string representation of a value of a Uint16ColumnType value
func (b *Uint16ColumnType) ToString(v interface{}) string {
	return fmt.Sprintf("%d", v.(uint16))
}

// Serialize serializes a Uint16ColumnType value to binary data
func (b *Uint16ColumnType) Serialize(v interface{}) ([]byte, error) {
	uv, ok := v.(uint16)
	if !ok {
		return nil, errors.ValueTypeError{TypeID: uint32(b.ID()), Value: v}
	}
	ser := make([]byte, 2)
	binary.LittleEndian.PutUint16(ser, uv)
	return ser, nil
}

// Deserialize deserializes a Uint16ColumnType value from binary data
func (b *Uint16ColumnType) Deserialize(ser []byte) (interface{}, error) {
	if err := checkSize(b, ser); err != nil {
		return nil, err
	}
	return binary.LittleEndian.Uint16(ser), nil
}

// Uint32ColumnType is a column type which stores a uint32 value
type Uint32ColumnType struct{}

// ID of a Uint32ColumnType
func (b *Uint32ColumnType) ID() TypeID {
	return Uint32TypeID
}

// Size in bytes of a Uint32Column
func (b *Uint32ColumnType) Size() int {
	return 4
}

// ToString produces a string representation of a value of a Uint32ColumnType value
func (b *Uint32ColumnType) ToString(v interface{}) string {
	return fmt.Sprintf("%d", v.(uint32))
}

// Serialize serializes a Uint32ColumnType value to binary data
func (b *Uint32ColumnType) Serialize(v interface{}) ([]byte, error) {
	uv, ok := v.(uint32)
	if !ok {
		return nil, errors.ValueTypeError{TypeID: uint32(b.ID()), Value: v}
	}
	ser := make([]byte, 4)
	binary.LittleEndian.PutUint32(ser, uv)
	return ser, nil
}

// Deserialize deserializes a Uint32ColumnType value from binary data
func (b *Uint32ColumnType) Deserialize(ser []byte) (interface{}, error) {
	if err := checkSize(b, ser); err != nil {
		return nil, err
	}
	return binary.LittleEndian.Uint32(ser), nil
}

// Uint64ColumnType is a column type which stores a uint64 value
type Uint64ColumnType struct{}

// ID of a Uint64ColumnType
func (b *Uint64ColumnType) ID() TypeID {
	return Uint64TypeID
}

// Size in bytes of a Uint64Column
func (b *Uint64ColumnType) Size() int {
	return 8
}

// ToString produces a string representation of a value of a Uint64ColumnType value
func (b *Uint64ColumnType) ToString(v interface{}) string {
	return fmt.Sprintf("%d", v.(uint64))
}

// Serialize serializes a Uint64ColumnType value to binary data
func (b *Uint64ColumnType) Serialize(v interface{}) ([]byte, error) {
	uv, ok := v.(uint64)
	if !ok {
		return nil, errors.ValueTypeError{TypeID: uint32(b.ID()), Value: v}
	}
	ser := make([]byte, 8)
	binary.LittleEndian.PutUint64(ser, uv)
	return ser, nil
}

// Deserialize deserializes a Uint64ColumnType value from binary data
func (b *Uint64ColumnType) Deserialize(ser []byte) (interface{}, error) {
	if err := checkSize(b, ser); err != nil {
		return nil, err
	}
	return binary.LittleEndian.Uint64(ser), nil
}

// Int8ColumnType is a column type which stores a int8 value
type Int8ColumnType struct{}

// ID of a Int8ColumnType
func (b *Int8ColumnType) ID() TypeID {
	return Int8TypeID
}

// Size in bytes of a Int8Column
func (b *Int8ColumnType) Size() int {
	return 1
}

// ToString produces a string representation of a value of a Int8ColumnType value
func (b *Int8ColumnType) ToString(v interface{}) string {
	return fmt.Sprintf("%d", v.(int8))
}

// Serialize serializes a Int8ColumnType value to binary data
func (b *Int8ColumnType) Serialize(v interface{}) ([]byte, error) {
	iv, ok := v.(int8)
	if !ok {
		return nil, errors.ValueTypeError{TypeID: uint32(b.ID()), Value: v}
	}
	return []byte{byte(iv)}, nil
}

// Deserialize deserializes a Int8ColumnType value from binary data
func (b *Int8ColumnType) Deserialize(ser []byte) (interface{}, error) {
	if err := checkSize(b, ser); err != nil {
		return nil, err
	}
	return int8(ser[0]), nil
}

// Int16ColumnType is a column type which stores a int16 value
type Int16ColumnType struct{}

// ID of a Int16ColumnType
func (b *Int16ColumnType) ID() TypeID {
	return Int16TypeID
}

// Size in bytes of a Int16Column
func (b *Int16ColumnType) Size() int {
	return 2
}

// ToString produces a string representation of a value of a Int16ColumnType value
func (b *Int16ColumnType) ToString(v interface{}) string {
	return fmt.Sprintf("%d", v.(int16))
}

// Serialize serializes a Int16ColumnType value to binary data
func (b *Int16ColumnType) Serialize(v interface{}) ([]byte, error) {
	iv, ok := v.(int16)
	if !ok {
		return nil, errors.ValueTypeError{TypeID: uint32(b.ID()), Value: v}
	}
	ser := make([]byte, 2)
	binary.LittleEndian.PutUint16(ser, uint16(iv))
	return ser, nil
}

// Deserialize deserializes a Int16ColumnType value from binary data
func (b *Int16ColumnType) Deserialize(ser []byte) (interface{}, error) {
	if err := checkSize(b, ser); err != nil {
		return nil, err
	}
	return int16(binary.LittleEndian.Uint16(ser)), nil
}

// Int32ColumnType is a column type which stores a int32 value
type Int32ColumnType struct{}

// ID of a Int32ColumnType
func (b *Int32ColumnType) ID() TypeID {
	return Int32TypeID
}

// Size in bytes of a Int32Column
func (b *Int32ColumnType) Size() int {
	return 4
}

// ToString produces a string representation of a value of a Int32ColumnType value
func (b *Int32ColumnType) ToString(v interface{}) string {
	return fmt.Sprintf("%d", v.(int32))
}

// Serialize serializes a Int32ColumnType value to binary data
func (b *Int32ColumnType) Serialize(v interface{}) ([]byte, error) {
	iv, ok := v.(int32)
	if !ok {
		return nil, errors.ValueTypeError{TypeID: uint32(b.ID()), Value: v}
	}
	ser := make([]byte, 4)
	binary.LittleEndian.PutUint32(ser, uint32(iv))
	return ser, nil
}

// Deserialize deserializes a Int32ColumnType value from binary data
func (b *Int32ColumnType) Deserialize(ser []byte) (interface{}, error) {
	if err := checkSize(b, ser); err != nil {
		return nil, err
	}
	return int32(binary.LittleEndian.Uint32(ser)), nil
}

// Int64ColumnType is a column type which stores a int64 value
type Int64ColumnType struct{}

// ID of a Int64ColumnType
func (b *Int64ColumnType) ID() TypeID {
	return Int64TypeID
}

// Size in bytes of a Int64Column
func (b *Int64ColumnType) Size() int {
	return 8
}

// ToString produces a string representation of a value of a Int64ColumnType value
func (b *Int64ColumnType) ToString(v interface{}) string {
	return fmt.Sprintf("%d", v.(int64))
}

// Serialize serializes a Int64ColumnType value to binary data
func (b *Int64ColumnType) Serialize(v interface{}) ([]byte, error) {
	iv, ok := v.(int64)
	if !ok {
		return nil, errors.ValueTypeError{TypeID: uint32(b.ID()), Value: v}
	}
	ser := make([]byte, 8)
	binary.LittleEndian.PutUint64(ser, uint64(iv))
	return ser, nil
}

// Deserialize deserializes a Int64ColumnType value from binary data
func (b *Int64ColumnType) Deserialize(ser []byte) (interface{}, error) {
	if err := checkSize(b, ser); err != nil {
		return nil, err
	}
	return int64(binary.LittleEndian.Uint64(ser)), nil
}

// Float32ColumnType is a column type which stores a float32 value
type Float32ColumnType struct{}

// ID of a Float32ColumnType
func (b *Float32ColumnType) ID() TypeID {
	return Float32TypeID
}

// Size in bytes of a Float32Column
func (b *Float32ColumnType) Size() int {
	return 4
}

// ToString produces a string representation of a value of a Float32ColumnType value
func (b *Float32ColumnType) ToString(v interface{}) string {
	return fmt.Sprintf("%f", v.(float32))
}

// Serialize serializes a Float32ColumnType value to binary data
func (b *Float32ColumnType) Serialize(v interface{}) ([]byte, error) {
	fv, ok := v.(float32)
	if !ok {
		return nil, errors.ValueTypeError{TypeID: uint32(b.ID()), Value: v}
	}
	ser := make([]byte, 4)
	binary.LittleEndian.PutUint32(ser, math.Float32bits(fv))
	return ser, nil
}

// Deserialize deserializes a Float32ColumnType value from binary data
func (b *Float32ColumnType) Deserialize(ser []byte) (interface{}, error) {
	if err := checkSize(b, ser); err != nil {
		return nil, err
	}
	return math.Float32frombits(binary.LittleEndian.Uint32(ser)), nil
}

// Float64ColumnType is a column type which stores a float64 value
type Float64ColumnType struct{}

// ID of a Float64ColumnType
func (b *Float64ColumnType) ID() TypeID {
	return Float64TypeID
}

// Size in bytes of a Float64Column
func (b *Float64ColumnType) Size() int {
	return 8
}

// ToString produces a string representation of a value of a Float64ColumnType value
func (b *Float64ColumnType) ToString(v interface{}) string {
	return fmt.Sprintf("%f", v.(float64))
}

// Serialize serializes a Float64ColumnType value to binary data
func (b *Float64ColumnType) Serialize(v interface{}) ([]byte, error) {
	fv, ok := v.(float64)
	if !ok {
		return nil, errors.ValueTypeError{TypeID: uint32(b.ID()), Value: v}
	}
	ser := make([]byte, 8)
	binary.LittleEndian.PutUint64(ser, math.Float64bits(fv))
	return ser, nil
}

// Deserialize deserializes a Float64ColumnType value from binary data
func (b *Float64ColumnType) Deserialize(ser []byte) (interface{}, error) {
	if err := checkSize(b, ser); err != nil {
		return nil, err
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(ser)), nil
}

// TimeColumnType is a column type which stores a time.Time value. Because of https://github.com/golang/go/issues/15716,
// Times serialized and deserialized may fail == tests, despite passing Equal() tests. Compare Times with Equal().
type TimeColumnType struct{}

// ID of a TimeColumnType
func (b *TimeColumnType) ID() TypeID {
	return TimeTypeID
}

// Size in bytes of a TimeColumn
func (b *TimeColumnType) Size() int {
	return 15
}

// ToString produces a string representation of a value of a TimeColumnType value
func (b *TimeColumnType) ToString(v interface{}) string {
	return fmt.Sprintf("\"%s\"", v.(time.Time).String())
}

// Serialize serializes a TimeColumnType value to binary data
func (b *TimeColumnType) Serialize(v interface{}) ([]byte, error) {
	tv, ok := v.(time.Time)
	if !ok {
		return nil, errors.ValueTypeError{TypeID: uint32(b.ID()), Value: v}
	}
	return tv.MarshalBinary()
}

// Deserialize deserializes a TimeColumnType value from binary data
func (b *TimeColumnType) Deserialize(ser []byte) (interface{}, error) {
	var tv time.Time
	if err := tv.UnmarshalBinary(ser); err != nil {
		return nil, err
	}
	return tv, nil
}

// StringColumnType is a column type which stores strings of at most Length bytes. Useful for hashes, region codes, etc.
type StringColumnType struct {
	Length int
}

// ID of a StringColumnType
func (b *StringColumnType) ID() TypeID {
	return StringTypeID
}

// Size in bytes of a StringColumn
func (b *StringColumnType) Size() int {
	return b.Length
}

// ToString produces a string representation of a value of a StringColumnType value
func (b *StringColumnType) ToString(v interface{}) string {
	return fmt.Sprintf("\"%s\"", v.(string))
}

// Serialize serializes a StringColumnType value to binary data
func (b *StringColumnType) Serialize(v interface{}) ([]byte, error) {
	sv, ok := v.(string)
	if !ok {
		return nil, errors.ValueTypeError{TypeID: uint32(b.ID()), Value: v}
	}
	if len(sv) > b.Length {
		return nil, errors.ValueSizeError{TypeID: uint32(b.ID()), Expected: b.Length, Actual: len(sv)}
	}
	return []byte(sv), nil
}

// Deserialize deserializes a StringColumnType value from binary data
func (b *StringColumnType) Deserialize(ser []byte) (interface{}, error) {
	if len(ser) > b.Length {
		return nil, errors.ValueSizeError{TypeID: uint32(b.ID()), Expected: b.Length, Actual: len(ser)}
	}
	return string(ser), nil
}
