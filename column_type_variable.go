package catalog

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"strings"

	"github.com/go-sif/catalog/errors"
)

// VarStringColumnType is a column type which stores a variable-length string value
type VarStringColumnType struct{}

// ID of a VarStringColumnType
func (b *VarStringColumnType) ID() TypeID {
	return VarStringTypeID
}

// Size in bytes of the variable-length StringColumn
func (b *VarStringColumnType) Size() int {
	return 0
}

// ToString produces a string representation of a value of a VarStringColumnType value
func (b *VarStringColumnType) ToString(v interface{}) string {
	return fmt.Sprintf("\"%s\"", v.(string))
}

// Serialize serializes a VarStringColumnType value to binary data
func (b *VarStringColumnType) Serialize(v interface{}) ([]byte, error) {
	if _, ok := v.(string); !ok {
		return nil, errors.ValueTypeError{TypeID: uint32(b.ID()), Value: v}
	}
	buff := new(bytes.Buffer)
	e := gob.NewEncoder(buff)
	err := e.Encode(v)
	if err != nil {
		return nil, err
	}
	return buff.Bytes(), nil
}

// Deserialize deserializes a VarStringColumnType value from binary data
func (b *VarStringColumnType) Deserialize(ser []byte) (interface{}, error) {
	var deser string
	buff := bytes.NewBuffer(ser)
	d := gob.NewDecoder(buff)
	err := d.Decode(&deser)
	if err != nil {
		return nil, err
	}
	return deser, nil
}

// VarBytesColumnType is a column type which stores variable-length byte arrays
type VarBytesColumnType struct{}

// ID of a VarBytesColumnType
func (b *VarBytesColumnType) ID() TypeID {
	return VarBytesTypeID
}

// Size in bytes of a VarBytesColumn
func (b *VarBytesColumnType) Size() int {
	return 0
}

// ToString produces a string representation of a value of a VarBytesColumnType value
func (b *VarBytesColumnType) ToString(v interface{}) string {
	bytes := v.([]byte)
	var res strings.Builder
	fmt.Fprint(&res, "[")
	for i, v := range bytes {
		// don't print more than 5 entries
		if i > 5 {
			fmt.Fprintf(&res, "... %d more", len(bytes)-6)
			break
		}
		fmt.Fprintf(&res, "%x", v)
	}
	fmt.Fprint(&res, "]")
	return res.String()
}

// Serialize serializes a VarBytesColumnType value to binary data
func (b *VarBytesColumnType) Serialize(v interface{}) ([]byte, error) {
	if _, ok := v.([]byte); !ok {
		return nil, errors.ValueTypeError{TypeID: uint32(b.ID()), Value: v}
	}
	buff := new(bytes.Buffer)
	e := gob.NewEncoder(buff)
	err := e.Encode(v)
	if err != nil {
		return nil, err
	}
	return buff.Bytes(), nil
}

// Deserialize deserializes a VarBytesColumnType value from binary data
func (b *VarBytesColumnType) Deserialize(ser []byte) (interface{}, error) {
	var deser []byte
	buff := bytes.NewBuffer(ser)
	d := gob.NewDecoder(buff)
	err := d.Decode(&deser)
	if err != nil {
		return nil, err
	}
	return deser, nil
}
