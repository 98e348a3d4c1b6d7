package catalog

import "fmt"

// AttributeID identifies an attribute of a relation
type AttributeID int32

// PartitionID identifies a partition of a relation. Valid ids are in [0, NumPartitions).
type PartitionID uint64

// PartitionAttributeIDs is the ordered list of partitioning attributes for a relation.
// Its order defines the order of values in PartitionValues, and the lexicographic
// priority of attributes in range partitioning.
type PartitionAttributeIDs []AttributeID

// PartitionValues holds one value per partitioning attribute, aligned positionally with
// PartitionAttributeIDs
type PartitionValues []interface{}

// PartitionType is the partitioning strategy of a relation
type PartitionType int

const (
	// HashPartitionType routes tuples by a composite hash of their partitioning values
	HashPartitionType PartitionType = iota
	// RangePartitionType routes tuples by comparing their partitioning values against ascending boundaries
	RangePartitionType
)

// String returns a textual representation of this PartitionType
func (t PartitionType) String() string {
	switch t {
	case HashPartitionType:
		return "hash"
	case RangePartitionType:
		return "range"
	default:
		return fmt.Sprintf("PartitionType(%d)", int(t))
	}
}

// IsKnown returns true iff t is one of the supported partitioning strategies
func (t PartitionType) IsKnown() bool {
	return t == HashPartitionType || t == RangePartitionType
}
