package errors

import (
	"fmt"
)

// ValueCountError occurs when the number of partitioning values does not match the number of partitioning attributes
type ValueCountError struct{ Expected, Actual int }

// Error returns a textual representation of this ValueCountError
func (e ValueCountError) Error() string {
	return fmt.Sprintf("Expected %d partitioning values, got %d", e.Expected, e.Actual)
}

// ValueTypeError occurs when a value is not of the Go type stored by a column type
type ValueTypeError struct {
	TypeID uint32
	Value  interface{}
}

// Error returns a textual representation of this ValueTypeError
func (e ValueTypeError) Error() string {
	return fmt.Sprintf("Value %v (%T) is not compatible with column type %d", e.Value, e.Value, e.TypeID)
}

// ValueSizeError occurs when serialized value data does not fit its column type
type ValueSizeError struct {
	TypeID           uint32
	Expected, Actual int
}

// Error returns a textual representation of this ValueSizeError
func (e ValueSizeError) Error() string {
	return fmt.Sprintf("Value of column type %d has size %d, expected %d", e.TypeID, e.Actual, e.Expected)
}

// UnsupportedColumnTypeError occurs when no comparator or constructor exists for a column type
type UnsupportedColumnTypeError struct{ TypeID uint32 }

// Error returns a textual representation of this UnsupportedColumnTypeError
func (e UnsupportedColumnTypeError) Error() string {
	return fmt.Sprintf("Column type %d is not supported", e.TypeID)
}

// UnknownPartitionTypeError occurs when a partition type is neither hash nor range
type UnknownPartitionTypeError struct{ Type int }

// Error returns a textual representation of this UnknownPartitionTypeError
func (e UnknownPartitionTypeError) Error() string {
	return fmt.Sprintf("Unknown partition type %d", e.Type)
}

// PartitionCountError occurs when a partition scheme has fewer than one partition
type PartitionCountError struct{ NumPartitions int64 }

// Error returns a textual representation of this PartitionCountError
func (e PartitionCountError) Error() string {
	return fmt.Sprintf("Number of partitions must be at least 1, got %d", e.NumPartitions)
}

// NoPartitionAttributesError occurs when a partition scheme has no partitioning attributes
type NoPartitionAttributesError struct{}

// Error returns a textual representation of this NoPartitionAttributesError
func (e NoPartitionAttributesError) Error() string {
	return "Partition scheme has no partitioning attributes"
}

// AttributeCountError occurs when the number of partitioning attribute types does not match the number of attributes
type AttributeCountError struct{ Expected, Actual int }

// Error returns a textual representation of this AttributeCountError
func (e AttributeCountError) Error() string {
	return fmt.Sprintf("Expected %d partitioning attribute types, got %d", e.Expected, e.Actual)
}

// BoundaryCountError occurs when a range partition scheme does not have exactly one fewer boundary than partitions
type BoundaryCountError struct{ Expected, Actual int }

// Error returns a textual representation of this BoundaryCountError
func (e BoundaryCountError) Error() string {
	return fmt.Sprintf("Expected %d range boundaries, got %d", e.Expected, e.Actual)
}

// BoundaryWidthError occurs when a range boundary has a different width than the partitioning attributes
type BoundaryWidthError struct{ Index, Expected, Actual int }

// Error returns a textual representation of this BoundaryWidthError
func (e BoundaryWidthError) Error() string {
	return fmt.Sprintf("Range boundary %d has %d values, expected %d", e.Index, e.Actual, e.Expected)
}

// BoundaryOrderError occurs when range boundary Index is not strictly greater than boundary Index-1.
// Previous and Current render both boundary tuples.
type BoundaryOrderError struct {
	Index             int
	Previous, Current string
}

// Error returns a textual representation of this BoundaryOrderError
func (e BoundaryOrderError) Error() string {
	return fmt.Sprintf("Range boundary %d %s is not strictly greater than boundary %d %s", e.Index, e.Current, e.Index-1, e.Previous)
}

// PartitionIDError occurs when a partition id is outside of [0, NumPartitions)
type PartitionIDError struct{ ID, NumPartitions uint64 }

// Error returns a textual representation of this PartitionIDError
func (e PartitionIDError) Error() string {
	return fmt.Sprintf("Partition id %d is out of range for %d partitions", e.ID, e.NumPartitions)
}

// MalformedProtoError occurs when serialized partition scheme data cannot be decoded
type MalformedProtoError struct{ Reason string }

// Error returns a textual representation of this MalformedProtoError
func (e MalformedProtoError) Error() string {
	return fmt.Sprintf("Malformed partition scheme header: %s", e.Reason)
}

// DeclarationError occurs when a partition declaration cannot be parsed
type DeclarationError struct{ Field, Reason string }

// Error returns a textual representation of this DeclarationError
func (e DeclarationError) Error() string {
	return fmt.Sprintf("Invalid partition declaration field %s: %s", e.Field, e.Reason)
}
