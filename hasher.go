package catalog

// A CompositeHasher derives a single deterministic, order-sensitive hash from an ordered
// sequence of values
type CompositeHasher interface {
	Hash(values PartitionValues) uint64
}

// CompositeHasherFunc adapts a plain function to the CompositeHasher interface
type CompositeHasherFunc func(values PartitionValues) uint64

// Hash calls fn(values)
func (fn CompositeHasherFunc) Hash(values PartitionValues) uint64 {
	return fn(values)
}
