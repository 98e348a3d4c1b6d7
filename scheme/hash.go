package scheme

import (
	"github.com/go-sif/catalog"
)

// HashPartitionSchemeHeader partitions the tuples of a relation by a composite hash
// of their partitioning values
type HashPartitionSchemeHeader struct {
	header
	hasher catalog.CompositeHasher
}

// CreateHashPartitionSchemeHeader creates a HashPartitionSchemeHeader with numPartitions partitions,
// partitioned on attributeIDs
func CreateHashPartitionSchemeHeader(numPartitions uint64, attributeIDs catalog.PartitionAttributeIDs, opts *Options) (*HashPartitionSchemeHeader, error) {
	opts = opts.resolve()
	base, err := createHeader(catalog.HashPartitionType, numPartitions, attributeIDs, opts)
	if err != nil {
		return nil, err
	}
	return &HashPartitionSchemeHeader{header: base, hasher: opts.Hasher}, nil
}

// GetPartitionID returns hash(values) mod NumPartitions()
func (h *HashPartitionSchemeHeader) GetPartitionID(values catalog.PartitionValues) catalog.PartitionID {
	h.checkValueCount(values)
	// TODO mask the low-order hash bits instead of dividing when NumPartitions() is a power of 2
	return catalog.PartitionID(h.hasher.Hash(values) % h.numPartitions)
}
