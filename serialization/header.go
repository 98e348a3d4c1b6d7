// Package serialization defines the persisted form of a partition scheme header, and its
// protobuf wire encoding
package serialization

import (
	"github.com/go-playground/validator/v10"
	"github.com/go-sif/catalog/errors"
	"github.com/hashicorp/go-multierror"
)

var validate = validator.New()

// Type is the serialized form of a partitioning attribute's ColumnType
type Type struct {
	TypeID uint32 `validate:"gt=0"`
	Length uint32
}

// Boundary is the serialized form of a range boundary tuple, one encoded value per attribute
type Boundary struct {
	Values [][]byte
}

// PartitionSchemeHeader is the serialized form of a partition scheme header. AttributeTypes
// and Boundaries are only present for range partitioning.
type PartitionSchemeHeader struct {
	PartitionType  int32   `validate:"gte=0,lte=1"`
	NumPartitions  uint64  `validate:"gte=1"`
	AttributeIDs   []int32 `validate:"min=1"`
	AttributeTypes []Type  `validate:"dive"`
	Boundaries     []Boundary
}

// Validate checks the structural fields of this PartitionSchemeHeader which do not depend on
// the partitioning strategy, returning every problem found
func (p *PartitionSchemeHeader) Validate() error {
	if p == nil {
		return errors.MalformedProtoError{Reason: "header is nil"}
	}
	err := validate.Struct(p)
	if err == nil {
		return nil
	}
	fieldErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	var multierr *multierror.Error
	for _, fe := range fieldErrors {
		multierr = multierror.Append(multierr, p.translate(fe))
	}
	return multierr.ErrorOrNil()
}

func (p *PartitionSchemeHeader) translate(fe validator.FieldError) error {
	switch fe.StructField() {
	case "PartitionType":
		return errors.UnknownPartitionTypeError{Type: int(p.PartitionType)}
	case "NumPartitions":
		return errors.PartitionCountError{NumPartitions: int64(p.NumPartitions)}
	case "AttributeIDs":
		return errors.NoPartitionAttributesError{}
	case "TypeID":
		return errors.UnsupportedColumnTypeError{TypeID: 0}
	default:
		return errors.MalformedProtoError{Reason: fe.Error()}
	}
}
