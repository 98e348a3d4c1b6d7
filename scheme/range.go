package scheme

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-sif/catalog"
	"github.com/go-sif/catalog/errors"
	"github.com/hashicorp/go-multierror"
)

// RangePartitionSchemeHeader partitions the tuples of a relation by comparing their partitioning
// values against ascending boundary tuples. Partition 0 holds all values less than the first
// boundary, partition i holds values in [boundary[i-1], boundary[i]), and the last partition
// holds all values greater than or equal to the last boundary.
type RangePartitionSchemeHeader struct {
	header
	attributeTypes []catalog.ColumnType
	boundaries     []catalog.PartitionValues
	// serialized boundary values, computed once while checking value types
	encodedBoundaries [][][]byte
	// both have one entry per partitioning attribute
	lessThanComparators []catalog.Comparator
	equalComparators    []catalog.Comparator
}

// CreateRangePartitionSchemeHeader creates a RangePartitionSchemeHeader with numPartitions partitions,
// partitioned on attributeIDs (with the given attributeTypes). boundaries must contain
// numPartitions-1 strictly ascending tuples, each with one value per partitioning attribute.
// A boundary value belongs to the partition above it.
func CreateRangePartitionSchemeHeader(numPartitions uint64, attributeIDs catalog.PartitionAttributeIDs, attributeTypes []catalog.ColumnType, boundaries []catalog.PartitionValues, opts *Options) (*RangePartitionSchemeHeader, error) {
	opts = opts.resolve()
	base, err := createHeader(catalog.RangePartitionType, numPartitions, attributeIDs, opts)
	if err != nil {
		return nil, err
	}
	if len(attributeTypes) != len(attributeIDs) {
		return nil, errors.AttributeCountError{Expected: len(attributeIDs), Actual: len(attributeTypes)}
	}
	if uint64(len(boundaries)) != numPartitions-1 {
		return nil, errors.BoundaryCountError{Expected: int(numPartitions - 1), Actual: len(boundaries)}
	}
	h := &RangePartitionSchemeHeader{
		header:              base,
		attributeTypes:      append([]catalog.ColumnType{}, attributeTypes...),
		boundaries:          make([]catalog.PartitionValues, len(boundaries)),
		encodedBoundaries:   make([][][]byte, len(boundaries)),
		lessThanComparators: make([]catalog.Comparator, len(attributeTypes)),
		equalComparators:    make([]catalog.Comparator, len(attributeTypes)),
	}
	for i, colType := range h.attributeTypes {
		if h.lessThanComparators[i], err = opts.Comparators.LessThan(colType); err != nil {
			return nil, fmt.Errorf("partitioning attribute %d: %w", h.attributeIDs[i], err)
		}
		if h.equalComparators[i], err = opts.Comparators.Equal(colType); err != nil {
			return nil, fmt.Errorf("partitioning attribute %d: %w", h.attributeIDs[i], err)
		}
	}
	for i, boundary := range boundaries {
		h.boundaries[i] = append(catalog.PartitionValues{}, boundary...)
	}
	if err := h.checkPartitionRangeBoundaries(); err != nil {
		return nil, err
	}
	return h, nil
}

// checkPartitionRangeBoundaries verifies that every boundary has one correctly-typed value per
// partitioning attribute, and that boundaries are in strictly ascending order
func (h *RangePartitionSchemeHeader) checkPartitionRangeBoundaries() error {
	var multierr *multierror.Error
	wellFormed := make([]bool, len(h.boundaries))
	for i, boundary := range h.boundaries {
		if len(boundary) != len(h.attributeIDs) {
			multierr = multierror.Append(multierr, errors.BoundaryWidthError{Index: i, Expected: len(h.attributeIDs), Actual: len(boundary)})
			continue
		}
		encoded := make([][]byte, len(boundary))
		wellFormed[i] = true
		for j, v := range boundary {
			ser, err := h.attributeTypes[j].Serialize(v)
			if err != nil {
				multierr = multierror.Append(multierr, fmt.Errorf("range boundary %d: %w", i, err))
				wellFormed[i] = false
				break
			}
			encoded[j] = ser
		}
		h.encodedBoundaries[i] = encoded
	}
	for i := 1; i < len(h.boundaries); i++ {
		if wellFormed[i-1] && wellFormed[i] && !h.lessThan(h.boundaries[i-1], h.boundaries[i]) {
			multierr = multierror.Append(multierr, errors.BoundaryOrderError{
				Index:    i,
				Previous: h.formatTuple(h.boundaries[i-1]),
				Current:  h.formatTuple(h.boundaries[i]),
			})
		}
	}
	return multierr.ErrorOrNil()
}

// checkValueTypes returns an error unless every value is of the Go type stored by its attribute's ColumnType
func (h *RangePartitionSchemeHeader) checkValueTypes(values catalog.PartitionValues) error {
	for j, v := range values {
		if _, err := h.attributeTypes[j].Serialize(v); err != nil {
			return err
		}
	}
	return nil
}

// formatTuple renders well-typed partitioning values, e.g. ("east", 100)
func (h *RangePartitionSchemeHeader) formatTuple(values catalog.PartitionValues) string {
	var res strings.Builder
	res.WriteString("(")
	for j, v := range values {
		if j > 0 {
			res.WriteString(", ")
		}
		res.WriteString(h.attributeTypes[j].ToString(v))
	}
	res.WriteString(")")
	return res.String()
}

// lessThan reports whether lhs precedes rhs in lexicographic order:
// (l_0, ..., l_n) < (r_0, ..., r_n) iff l_0 < r_0, or l_0 == r_0 and (l_1, ..., l_n) < (r_1, ..., r_n)
func (h *RangePartitionSchemeHeader) lessThan(lhs catalog.PartitionValues, rhs catalog.PartitionValues) bool {
	for i := range h.attributeIDs {
		if h.lessThanComparators[i](lhs[i], rhs[i]) {
			return true
		} else if !h.equalComparators[i](lhs[i], rhs[i]) {
			return false
		}
	}
	return false
}

// GetPartitionID returns the partition whose range contains values
func (h *RangePartitionSchemeHeader) GetPartitionID(values catalog.PartitionValues) catalog.PartitionID {
	h.checkValueCount(values)
	if len(h.boundaries) == 0 {
		return 0
	}
	last := len(h.boundaries) - 1
	if !h.lessThan(values, h.boundaries[last]) {
		return catalog.PartitionID(h.numPartitions - 1)
	}
	// values < boundaries[last], so the search always lands in [0, last]
	return catalog.PartitionID(sort.Search(last, func(i int) bool {
		return h.lessThan(values, h.boundaries[i])
	}))
}

// GetPartitionRangeBoundaries returns a copy of the range boundaries
func (h *RangePartitionSchemeHeader) GetPartitionRangeBoundaries() []catalog.PartitionValues {
	boundaries := make([]catalog.PartitionValues, len(h.boundaries))
	for i, boundary := range h.boundaries {
		boundaries[i] = append(catalog.PartitionValues{}, boundary...)
	}
	return boundaries
}

// PartitionAttributeTypes returns a copy of the types of the partitioning attributes
func (h *RangePartitionSchemeHeader) PartitionAttributeTypes() []catalog.ColumnType {
	return append([]catalog.ColumnType{}, h.attributeTypes...)
}

// PartitionBounds returns the inclusive lower bound and exclusive upper bound of a partition.
// lower is nil for the first partition and upper is nil for the last partition.
func (h *RangePartitionSchemeHeader) PartitionBounds(id catalog.PartitionID) (lower catalog.PartitionValues, upper catalog.PartitionValues, err error) {
	if uint64(id) >= h.numPartitions {
		return nil, nil, errors.PartitionIDError{ID: uint64(id), NumPartitions: h.numPartitions}
	}
	if id > 0 {
		lower = append(catalog.PartitionValues{}, h.boundaries[id-1]...)
	}
	if uint64(id) < h.numPartitions-1 {
		upper = append(catalog.PartitionValues{}, h.boundaries[id]...)
	}
	return
}
