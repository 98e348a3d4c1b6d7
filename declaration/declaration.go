// Package declaration parses JSON partition declarations into partition scheme headers. A declaration
// looks like:
//
//	{
//	  "type": "range",
//	  "partitions": 3,
//	  "attributes": [{"id": 0, "type": "varstring"}, {"id": 4, "type": "int64"}],
//	  "boundaries": [["east", 100], ["west", 0]]
//	}
//
// Attribute types are only required for range declarations. Time values are RFC 3339 strings,
// and varbytes values are base64 strings.
package declaration

import (
	"encoding/base64"
	"fmt"
	"math"
	"time"

	"github.com/go-sif/catalog"
	"github.com/go-sif/catalog/errors"
	"github.com/go-sif/catalog/scheme"
	"github.com/tidwall/gjson"
)

var typeNames = map[string]catalog.TypeID{
	"bool":      catalog.BoolTypeID,
	"uint8":     catalog.Uint8TypeID,
	"uint16":    catalog.Uint16TypeID,
	"uint32":    catalog.Uint32TypeID,
	"uint64":    catalog.Uint64TypeID,
	"int8":      catalog.Int8TypeID,
	"int16":     catalog.Int16TypeID,
	"int32":     catalog.Int32TypeID,
	"int64":     catalog.Int64TypeID,
	"float32":   catalog.Float32TypeID,
	"float64":   catalog.Float64TypeID,
	"time":      catalog.TimeTypeID,
	"string":    catalog.StringTypeID,
	"varstring": catalog.VarStringTypeID,
	"varbytes":  catalog.VarBytesTypeID,
}

// Parse parses a JSON partition declaration and creates the PartitionSchemeHeader it declares
func Parse(data []byte, opts *scheme.Options) (scheme.PartitionSchemeHeader, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.DeclarationError{Field: "", Reason: "not valid JSON"}
	}
	decl := gjson.ParseBytes(data)

	partitions := decl.Get("partitions")
	if partitions.Type != gjson.Number || partitions.Num < 1 || partitions.Num != math.Trunc(partitions.Num) {
		return nil, errors.DeclarationError{Field: "partitions", Reason: "must be a positive integer"}
	}
	numPartitions := partitions.Uint()

	attributes := decl.Get("attributes")
	if !attributes.IsArray() {
		return nil, errors.DeclarationError{Field: "attributes", Reason: "must be an array"}
	}
	var ids catalog.PartitionAttributeIDs
	for i, attr := range attributes.Array() {
		id := attr.Get("id")
		if id.Type != gjson.Number || id.Int() < math.MinInt32 || id.Int() > math.MaxInt32 {
			return nil, errors.DeclarationError{Field: fmt.Sprintf("attributes.%d.id", i), Reason: "must be a 32-bit integer"}
		}
		ids = append(ids, catalog.AttributeID(id.Int()))
	}

	switch kind := decl.Get("type").String(); kind {
	case catalog.HashPartitionType.String():
		if decl.Get("boundaries").Exists() {
			return nil, errors.DeclarationError{Field: "boundaries", Reason: "hash partitioning has no boundaries"}
		}
		h, err := scheme.CreateHashPartitionSchemeHeader(numPartitions, ids, opts)
		if err != nil {
			return nil, err
		}
		return h, nil
	case catalog.RangePartitionType.String():
		types, err := parseTypes(attributes)
		if err != nil {
			return nil, err
		}
		boundaries, err := parseBoundaries(decl.Get("boundaries"), types)
		if err != nil {
			return nil, err
		}
		h, err := scheme.CreateRangePartitionSchemeHeader(numPartitions, ids, types, boundaries, opts)
		if err != nil {
			return nil, err
		}
		return h, nil
	default:
		return nil, errors.DeclarationError{Field: "type", Reason: fmt.Sprintf("unknown partition type %q", kind)}
	}
}

func parseTypes(attributes gjson.Result) ([]catalog.ColumnType, error) {
	var types []catalog.ColumnType
	for i, attr := range attributes.Array() {
		name := attr.Get("type").String()
		id, ok := typeNames[name]
		if !ok {
			return nil, errors.DeclarationError{Field: fmt.Sprintf("attributes.%d.type", i), Reason: fmt.Sprintf("unknown column type %q", name)}
		}
		colType, err := catalog.CreateColumnType(id, int(attr.Get("length").Int()))
		if err != nil {
			return nil, errors.DeclarationError{Field: fmt.Sprintf("attributes.%d.length", i), Reason: err.Error()}
		}
		types = append(types, colType)
	}
	return types, nil
}

func parseBoundaries(boundaries gjson.Result, types []catalog.ColumnType) ([]catalog.PartitionValues, error) {
	if !boundaries.Exists() {
		return nil, nil
	}
	if !boundaries.IsArray() {
		return nil, errors.DeclarationError{Field: "boundaries", Reason: "must be an array of arrays"}
	}
	var parsed []catalog.PartitionValues
	for i, boundary := range boundaries.Array() {
		if !boundary.IsArray() {
			return nil, errors.DeclarationError{Field: fmt.Sprintf("boundaries.%d", i), Reason: "must be an array"}
		}
		values := boundary.Array()
		if len(values) != len(types) {
			return nil, errors.BoundaryWidthError{Index: i, Expected: len(types), Actual: len(values)}
		}
		tuple := make(catalog.PartitionValues, len(values))
		for j, v := range values {
			value, err := parseValue(v, types[j])
			if err != nil {
				return nil, errors.DeclarationError{Field: fmt.Sprintf("boundaries.%d.%d", i, j), Reason: err.Error()}
			}
			tuple[j] = value
		}
		parsed = append(parsed, tuple)
	}
	return parsed, nil
}

// parseValue converts a JSON value to the Go value stored by colType
func parseValue(v gjson.Result, colType catalog.ColumnType) (interface{}, error) {
	switch colType.(type) {
	case *catalog.BoolColumnType:
		if v.Type != gjson.True && v.Type != gjson.False {
			return nil, fmt.Errorf("expected a boolean, got %s", v.Raw)
		}
		return v.Bool(), nil
	case *catalog.Uint8ColumnType:
		u, err := parseUint(v, math.MaxUint8)
		return uint8(u), err
	case *catalog.Uint16ColumnType:
		u, err := parseUint(v, math.MaxUint16)
		return uint16(u), err
	case *catalog.Uint32ColumnType:
		u, err := parseUint(v, math.MaxUint32)
		return uint32(u), err
	case *catalog.Uint64ColumnType:
		return parseUint(v, math.MaxUint64)
	case *catalog.Int8ColumnType:
		i, err := parseInt(v, math.MinInt8, math.MaxInt8)
		return int8(i), err
	case *catalog.Int16ColumnType:
		i, err := parseInt(v, math.MinInt16, math.MaxInt16)
		return int16(i), err
	case *catalog.Int32ColumnType:
		i, err := parseInt(v, math.MinInt32, math.MaxInt32)
		return int32(i), err
	case *catalog.Int64ColumnType:
		return parseInt(v, math.MinInt64, math.MaxInt64)
	case *catalog.Float32ColumnType:
		if v.Type != gjson.Number {
			return nil, fmt.Errorf("expected a number, got %s", v.Raw)
		}
		return float32(v.Float()), nil
	case *catalog.Float64ColumnType:
		if v.Type != gjson.Number {
			return nil, fmt.Errorf("expected a number, got %s", v.Raw)
		}
		return v.Float(), nil
	case *catalog.TimeColumnType:
		if v.Type != gjson.String {
			return nil, fmt.Errorf("expected an RFC 3339 string, got %s", v.Raw)
		}
		return time.Parse(time.RFC3339Nano, v.String())
	case *catalog.StringColumnType, *catalog.VarStringColumnType:
		if v.Type != gjson.String {
			return nil, fmt.Errorf("expected a string, got %s", v.Raw)
		}
		return v.String(), nil
	case *catalog.VarBytesColumnType:
		if v.Type != gjson.String {
			return nil, fmt.Errorf("expected a base64 string, got %s", v.Raw)
		}
		return base64.StdEncoding.DecodeString(v.String())
	default:
		return nil, errors.UnsupportedColumnTypeError{TypeID: uint32(colType.ID())}
	}
}

func parseUint(v gjson.Result, max uint64) (uint64, error) {
	if v.Type != gjson.Number || v.Num < 0 || v.Num != math.Trunc(v.Num) {
		return 0, fmt.Errorf("expected an unsigned integer, got %s", v.Raw)
	}
	u := v.Uint()
	if u > max {
		return 0, fmt.Errorf("%s overflows a %d-bit unsigned integer", v.Raw, bitsFor(max))
	}
	return u, nil
}

func parseInt(v gjson.Result, min int64, max int64) (int64, error) {
	if v.Type != gjson.Number || v.Num != math.Trunc(v.Num) {
		return 0, fmt.Errorf("expected an integer, got %s", v.Raw)
	}
	i := v.Int()
	if i < min || i > max {
		return 0, fmt.Errorf("%s is out of range [%d, %d]", v.Raw, min, max)
	}
	return i, nil
}

func bitsFor(max uint64) int {
	bits := 0
	for ; max > 0; max >>= 1 {
		bits++
	}
	return bits
}
