package scheme

import (
	"fmt"

	"github.com/go-sif/catalog"
	"github.com/go-sif/catalog/errors"
	"github.com/go-sif/catalog/internal/util"
	"github.com/go-sif/catalog/serialization"
	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"
)

// ToProto serializes a PartitionSchemeHeader. FromProto is its inverse.
func ToProto(h PartitionSchemeHeader) *serialization.PartitionSchemeHeader {
	switch th := h.(type) {
	case *HashPartitionSchemeHeader:
		return th.baseProto()
	case *RangePartitionSchemeHeader:
		p := th.baseProto()
		p.AttributeTypes = make([]serialization.Type, len(th.attributeTypes))
		for i, colType := range th.attributeTypes {
			p.AttributeTypes[i] = serialization.Type{
				TypeID: uint32(colType.ID()),
				Length: uint32(catalog.ColumnTypeLength(colType)),
			}
		}
		p.Boundaries = make([]serialization.Boundary, len(th.encodedBoundaries))
		for i, encoded := range th.encodedBoundaries {
			values := make([][]byte, len(encoded))
			for j, v := range encoded {
				values[j] = append([]byte{}, v...)
			}
			p.Boundaries[i] = serialization.Boundary{Values: values}
		}
		return p
	default:
		panic(fmt.Sprintf("unknown PartitionSchemeHeader implementation %T", h))
	}
}

func (h *header) baseProto() *serialization.PartitionSchemeHeader {
	ids := make([]int32, len(h.attributeIDs))
	for i, id := range h.attributeIDs {
		ids[i] = int32(id)
	}
	return &serialization.PartitionSchemeHeader{
		PartitionType: int32(h.partitionType),
		NumPartitions: h.numPartitions,
		AttributeIDs:  ids,
	}
}

// FromProto reconstructs a PartitionSchemeHeader from its serialized form, previously produced by
// ToProto. Returns an error, and no header, if proto is not valid.
func FromProto(proto *serialization.PartitionSchemeHeader, opts *Options) (PartitionSchemeHeader, error) {
	opts = opts.resolve()
	err := checkStructure(proto)
	var h PartitionSchemeHeader
	if err == nil {
		ids := attributeIDsFromProto(proto)
		switch catalog.PartitionType(proto.PartitionType) {
		case catalog.HashPartitionType:
			if err = checkHashPayload(proto); err == nil {
				h, err = CreateHashPartitionSchemeHeader(proto.NumPartitions, ids, opts)
			}
		case catalog.RangePartitionType:
			var types []catalog.ColumnType
			var boundaries []catalog.PartitionValues
			if types, boundaries, err = decodeRangePayload(proto); err == nil {
				h, err = CreateRangePartitionSchemeHeader(proto.NumPartitions, ids, types, boundaries, opts)
			}
		}
	}
	if err != nil {
		logRejection(opts.Logger, err, "Unable to reconstruct partition scheme header")
		return nil, err
	}
	return h, nil
}

// ProtoIsValid returns true iff proto is fully-formed and would be reconstructed by FromProto.
// It never panics.
func ProtoIsValid(proto *serialization.PartitionSchemeHeader, opts *Options) bool {
	return ValidateProto(proto, opts) == nil
}

// ValidateProto checks that proto is fully-formed, returning every problem found. Unless
// opts.SkipBoundaryOrderCheck is set, range boundaries are also checked for strictly ascending order.
func ValidateProto(proto *serialization.PartitionSchemeHeader, opts *Options) (err error) {
	opts = opts.resolve()
	defer func() {
		if err != nil {
			logRejection(opts.Logger, err, "Partition scheme header failed validation")
		}
	}()
	if err := checkStructure(proto); err != nil {
		return err
	}
	if catalog.PartitionType(proto.PartitionType) == catalog.HashPartitionType {
		return checkHashPayload(proto)
	}
	types, boundaries, err := decodeRangePayload(proto)
	if err != nil || opts.SkipBoundaryOrderCheck {
		return err
	}
	_, err = CreateRangePartitionSchemeHeader(proto.NumPartitions, attributeIDsFromProto(proto), types, boundaries, opts)
	return err
}

// checkStructure validates the fields common to every strategy. A nil error guarantees
// that proto names a known PartitionType.
func checkStructure(proto *serialization.PartitionSchemeHeader) error {
	if err := proto.Validate(); err != nil {
		return err
	}
	if !catalog.PartitionType(proto.PartitionType).IsKnown() {
		return errors.UnknownPartitionTypeError{Type: int(proto.PartitionType)}
	}
	return nil
}

func attributeIDsFromProto(proto *serialization.PartitionSchemeHeader) catalog.PartitionAttributeIDs {
	ids := make(catalog.PartitionAttributeIDs, len(proto.AttributeIDs))
	for i, id := range proto.AttributeIDs {
		ids[i] = catalog.AttributeID(id)
	}
	return ids
}

// logRejection logs err at debug level, one aggregated reason per line
func logRejection(logger *zerolog.Logger, err error, msg string) {
	event := logger.Debug()
	if merr, ok := err.(*multierror.Error); ok {
		event = event.Str("reasons", util.FormatMultiError(merr.Errors))
	} else {
		event = event.Err(err)
	}
	event.Msg(msg)
}

// checkHashPayload rejects range-only fields on a hash header
func checkHashPayload(proto *serialization.PartitionSchemeHeader) error {
	if len(proto.AttributeTypes) > 0 || len(proto.Boundaries) > 0 {
		return errors.MalformedProtoError{Reason: "hash partition scheme header carries range attribute types or boundaries"}
	}
	return nil
}

// decodeRangePayload reconstructs the attribute types and boundary values of a range header,
// checking every count and width along the way
func decodeRangePayload(proto *serialization.PartitionSchemeHeader) ([]catalog.ColumnType, []catalog.PartitionValues, error) {
	var multierr *multierror.Error
	numAttributes := len(proto.AttributeIDs)
	if len(proto.AttributeTypes) != numAttributes {
		multierr = multierror.Append(multierr, errors.AttributeCountError{Expected: numAttributes, Actual: len(proto.AttributeTypes)})
	}
	if uint64(len(proto.Boundaries)) != proto.NumPartitions-1 {
		multierr = multierror.Append(multierr, errors.BoundaryCountError{Expected: int(proto.NumPartitions - 1), Actual: len(proto.Boundaries)})
	}
	for i, boundary := range proto.Boundaries {
		if len(boundary.Values) != numAttributes {
			multierr = multierror.Append(multierr, errors.BoundaryWidthError{Index: i, Expected: numAttributes, Actual: len(boundary.Values)})
		}
	}
	types := make([]catalog.ColumnType, len(proto.AttributeTypes))
	for i, t := range proto.AttributeTypes {
		if t.Length != 0 && catalog.TypeID(t.TypeID) != catalog.StringTypeID {
			multierr = multierror.Append(multierr, errors.MalformedProtoError{Reason: fmt.Sprintf("partitioning attribute type %d: only fixed-length strings carry a length", i)})
			continue
		}
		colType, err := catalog.CreateColumnType(catalog.TypeID(t.TypeID), int(t.Length))
		if err != nil {
			multierr = multierror.Append(multierr, fmt.Errorf("partitioning attribute type %d: %w", i, err))
		}
		types[i] = colType
	}
	if err := multierr.ErrorOrNil(); err != nil {
		return nil, nil, err
	}

	boundaries := make([]catalog.PartitionValues, len(proto.Boundaries))
	for i, boundary := range proto.Boundaries {
		boundaries[i] = make(catalog.PartitionValues, numAttributes)
		for j, ser := range boundary.Values {
			v, err := types[j].Deserialize(ser)
			if err != nil {
				multierr = multierror.Append(multierr, fmt.Errorf("range boundary %d, value %d: %w", i, j, err))
				continue
			}
			boundaries[i][j] = v
		}
	}
	if err := multierr.ErrorOrNil(); err != nil {
		return nil, nil, err
	}
	return types, boundaries, nil
}
