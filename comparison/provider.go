// Package comparison provides comparators for every built-in catalog.ColumnType
package comparison

import (
	"bytes"
	"time"

	"github.com/go-sif/catalog"
	"github.com/go-sif/catalog/errors"
)

type builtinProvider struct{}

var defaultProvider catalog.ComparatorProvider = &builtinProvider{}

// Default returns a ComparatorProvider for the built-in ColumnTypes. The returned comparators
// are unchecked: they panic if handed values of a Go type other than the one stored by the ColumnType.
func Default() catalog.ComparatorProvider {
	return defaultProvider
}

// LessThan returns a comparator which is true iff lhs < rhs
func (p *builtinProvider) LessThan(colType catalog.ColumnType) (catalog.Comparator, error) {
	switch colType.(type) {
	case *catalog.BoolColumnType:
		return func(lhs, rhs interface{}) bool { return !lhs.(bool) && rhs.(bool) }, nil
	case *catalog.Uint8ColumnType:
		return func(lhs, rhs interface{}) bool { return lhs.(uint8) < rhs.(uint8) }, nil
	case *catalog.Uint16ColumnType:
		return func(lhs, rhs interface{}) bool { return lhs.(uint16) < rhs.(uint16) }, nil
	case *catalog.Uint32ColumnType:
		return func(lhs, rhs interface{}) bool { return lhs.(uint32) < rhs.(uint32) }, nil
	case *catalog.Uint64ColumnType:
		return func(lhs, rhs interface{}) bool { return lhs.(uint64) < rhs.(uint64) }, nil
	case *catalog.Int8ColumnType:
		return func(lhs, rhs interface{}) bool { return lhs.(int8) < rhs.(int8) }, nil
	case *catalog.Int16ColumnType:
		return func(lhs, rhs interface{}) bool { return lhs.(int16) < rhs.(int16) }, nil
	case *catalog.Int32ColumnType:
		return func(lhs, rhs interface{}) bool { return lhs.(int32) < rhs.(int32) }, nil
	case *catalog.Int64ColumnType:
		return func(lhs, rhs interface{}) bool { return lhs.(int64) < rhs.(int64) }, nil
	case *catalog.Float32ColumnType:
		return func(lhs, rhs interface{}) bool { return lhs.(float32) < rhs.(float32) }, nil
	case *catalog.Float64ColumnType:
		return func(lhs, rhs interface{}) bool { return lhs.(float64) < rhs.(float64) }, nil
	case *catalog.TimeColumnType:
		return func(lhs, rhs interface{}) bool { return lhs.(time.Time).Before(rhs.(time.Time)) }, nil
	case *catalog.StringColumnType, *catalog.VarStringColumnType:
		return func(lhs, rhs interface{}) bool { return lhs.(string) < rhs.(string) }, nil
	case *catalog.VarBytesColumnType:
		return func(lhs, rhs interface{}) bool { return bytes.Compare(lhs.([]byte), rhs.([]byte)) < 0 }, nil
	default:
		return nil, unsupported(colType)
	}
}

// Equal returns a comparator which is true iff lhs == rhs
func (p *builtinProvider) Equal(colType catalog.ColumnType) (catalog.Comparator, error) {
	switch colType.(type) {
	case *catalog.BoolColumnType:
		return func(lhs, rhs interface{}) bool { return lhs.(bool) == rhs.(bool) }, nil
	case *catalog.Uint8ColumnType:
		return func(lhs, rhs interface{}) bool { return lhs.(uint8) == rhs.(uint8) }, nil
	case *catalog.Uint16ColumnType:
		return func(lhs, rhs interface{}) bool { return lhs.(uint16) == rhs.(uint16) }, nil
	case *catalog.Uint32ColumnType:
		return func(lhs, rhs interface{}) bool { return lhs.(uint32) == rhs.(uint32) }, nil
	case *catalog.Uint64ColumnType:
		return func(lhs, rhs interface{}) bool { return lhs.(uint64) == rhs.(uint64) }, nil
	case *catalog.Int8ColumnType:
		return func(lhs, rhs interface{}) bool { return lhs.(int8) == rhs.(int8) }, nil
	case *catalog.Int16ColumnType:
		return func(lhs, rhs interface{}) bool { return lhs.(int16) == rhs.(int16) }, nil
	case *catalog.Int32ColumnType:
		return func(lhs, rhs interface{}) bool { return lhs.(int32) == rhs.(int32) }, nil
	case *catalog.Int64ColumnType:
		return func(lhs, rhs interface{}) bool { return lhs.(int64) == rhs.(int64) }, nil
	case *catalog.Float32ColumnType:
		return func(lhs, rhs interface{}) bool { return lhs.(float32) == rhs.(float32) }, nil
	case *catalog.Float64ColumnType:
		return func(lhs, rhs interface{}) bool { return lhs.(float64) == rhs.(float64) }, nil
	case *catalog.TimeColumnType:
		return func(lhs, rhs interface{}) bool { return lhs.(time.Time).Equal(rhs.(time.Time)) }, nil
	case *catalog.StringColumnType, *catalog.VarStringColumnType:
		return func(lhs, rhs interface{}) bool { return lhs.(string) == rhs.(string) }, nil
	case *catalog.VarBytesColumnType:
		return func(lhs, rhs interface{}) bool { return bytes.Equal(lhs.([]byte), rhs.([]byte)) }, nil
	default:
		return nil, unsupported(colType)
	}
}

func unsupported(colType catalog.ColumnType) error {
	if colType == nil {
		return errors.UnsupportedColumnTypeError{TypeID: uint32(catalog.UnknownTypeID)}
	}
	return errors.UnsupportedColumnTypeError{TypeID: uint32(colType.ID())}
}
