package serialization

import (
	"fmt"
	"math"

	"github.com/go-sif/catalog/errors"
	"google.golang.org/protobuf/encoding/protowire"
)

// field numbers of the PartitionSchemeHeader message
const (
	headerPartitionTypeField  protowire.Number = 1
	headerNumPartitionsField  protowire.Number = 2
	headerAttributeIDsField   protowire.Number = 3
	headerAttributeTypesField protowire.Number = 4
	headerBoundariesField     protowire.Number = 5
)

// field numbers of the Type message
const (
	typeIDField     protowire.Number = 1
	typeLengthField protowire.Number = 2
)

// field number of the Boundary message
const boundaryValuesField protowire.Number = 1

// Marshal encodes a PartitionSchemeHeader in protobuf wire format
func Marshal(p *PartitionSchemeHeader) []byte {
	var b []byte
	b = protowire.AppendTag(b, headerPartitionTypeField, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(int64(p.PartitionType)))
	b = protowire.AppendTag(b, headerNumPartitionsField, protowire.VarintType)
	b = protowire.AppendVarint(b, p.NumPartitions)
	if len(p.AttributeIDs) > 0 {
		var packed []byte
		for _, id := range p.AttributeIDs {
			packed = protowire.AppendVarint(packed, uint64(int64(id)))
		}
		b = protowire.AppendTag(b, headerAttributeIDsField, protowire.BytesType)
		b = protowire.AppendBytes(b, packed)
	}
	for _, t := range p.AttributeTypes {
		var msg []byte
		msg = protowire.AppendTag(msg, typeIDField, protowire.VarintType)
		msg = protowire.AppendVarint(msg, uint64(t.TypeID))
		if t.Length != 0 {
			msg = protowire.AppendTag(msg, typeLengthField, protowire.VarintType)
			msg = protowire.AppendVarint(msg, uint64(t.Length))
		}
		b = protowire.AppendTag(b, headerAttributeTypesField, protowire.BytesType)
		b = protowire.AppendBytes(b, msg)
	}
	for _, boundary := range p.Boundaries {
		var msg []byte
		for _, v := range boundary.Values {
			msg = protowire.AppendTag(msg, boundaryValuesField, protowire.BytesType)
			msg = protowire.AppendBytes(msg, v)
		}
		b = protowire.AppendTag(b, headerBoundariesField, protowire.BytesType)
		b = protowire.AppendBytes(b, msg)
	}
	return b
}

// Unmarshal decodes a PartitionSchemeHeader from protobuf wire format. Unknown fields are skipped.
// Unmarshal does not check that the decoded header is valid.
func Unmarshal(data []byte) (*PartitionSchemeHeader, error) {
	p := &PartitionSchemeHeader{}
	err := forEachField(data, func(num protowire.Number, typ protowire.Type, field []byte) (int, error) {
		switch {
		case num == headerPartitionTypeField && typ == protowire.VarintType:
			v, n, err := consumeInt32(num, field)
			p.PartitionType = v
			return n, err
		case num == headerNumPartitionsField && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(field)
			p.NumPartitions = v
			return n, nil
		case num == headerAttributeIDsField && typ == protowire.VarintType:
			v, n, err := consumeInt32(num, field)
			if n > 0 && err == nil {
				p.AttributeIDs = append(p.AttributeIDs, v)
			}
			return n, err
		case num == headerAttributeIDsField && typ == protowire.BytesType:
			packed, n := protowire.ConsumeBytes(field)
			if n < 0 {
				return n, nil
			}
			for len(packed) > 0 {
				v, m, err := consumeInt32(num, packed)
				if m < 0 || err != nil {
					return m, err
				}
				p.AttributeIDs = append(p.AttributeIDs, v)
				packed = packed[m:]
			}
			return n, nil
		case num == headerAttributeTypesField && typ == protowire.BytesType:
			msg, n := protowire.ConsumeBytes(field)
			if n < 0 {
				return n, nil
			}
			t, err := unmarshalType(msg)
			if err != nil {
				return 0, err
			}
			p.AttributeTypes = append(p.AttributeTypes, t)
			return n, nil
		case num == headerBoundariesField && typ == protowire.BytesType:
			msg, n := protowire.ConsumeBytes(field)
			if n < 0 {
				return n, nil
			}
			boundary, err := unmarshalBoundary(msg)
			if err != nil {
				return 0, err
			}
			p.Boundaries = append(p.Boundaries, boundary)
			return n, nil
		default:
			return protowire.ConsumeFieldValue(num, typ, field), nil
		}
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

func unmarshalType(data []byte) (Type, error) {
	var t Type
	err := forEachField(data, func(num protowire.Number, typ protowire.Type, field []byte) (int, error) {
		switch {
		case num == typeIDField && typ == protowire.VarintType:
			v, n, err := consumeUint32(num, field)
			t.TypeID = v
			return n, err
		case num == typeLengthField && typ == protowire.VarintType:
			v, n, err := consumeUint32(num, field)
			t.Length = v
			return n, err
		default:
			return protowire.ConsumeFieldValue(num, typ, field), nil
		}
	})
	return t, err
}

func unmarshalBoundary(data []byte) (Boundary, error) {
	boundary := Boundary{Values: [][]byte{}}
	err := forEachField(data, func(num protowire.Number, typ protowire.Type, field []byte) (int, error) {
		if num == boundaryValuesField && typ == protowire.BytesType {
			v, n := protowire.ConsumeBytes(field)
			if n < 0 {
				return n, nil
			}
			boundary.Values = append(boundary.Values, append([]byte{}, v...))
			return n, nil
		}
		return protowire.ConsumeFieldValue(num, typ, field), nil
	})
	return boundary, err
}

// consumeInt32 reads an int32 varint, which is sign-extended to 64 bits on the wire
func consumeInt32(num protowire.Number, b []byte) (int32, int, error) {
	v, n := protowire.ConsumeVarint(b)
	if n < 0 {
		return 0, n, nil
	}
	if int64(v) < math.MinInt32 || int64(v) > math.MaxInt32 {
		return 0, n, errors.MalformedProtoError{Reason: fmt.Sprintf("field %d: %d overflows int32", num, int64(v))}
	}
	return int32(v), n, nil
}

func consumeUint32(num protowire.Number, b []byte) (uint32, int, error) {
	v, n := protowire.ConsumeVarint(b)
	if n < 0 {
		return 0, n, nil
	}
	if v > math.MaxUint32 {
		return 0, n, errors.MalformedProtoError{Reason: fmt.Sprintf("field %d: %d overflows uint32", num, v)}
	}
	return uint32(v), n, nil
}

// forEachField walks the fields of a message. fn consumes the value of a single field,
// returning the number of bytes read, or a negative protowire error code.
func forEachField(data []byte, fn func(num protowire.Number, typ protowire.Type, field []byte) (int, error)) error {
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return errors.MalformedProtoError{Reason: protowire.ParseError(n).Error()}
		}
		data = data[n:]
		m, err := fn(num, typ, data)
		if err != nil {
			return err
		}
		if m < 0 {
			return errors.MalformedProtoError{Reason: fmt.Sprintf("field %d: %v", num, protowire.ParseError(m))}
		}
		data = data[m:]
	}
	return nil
}
