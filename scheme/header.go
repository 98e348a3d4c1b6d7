// Package scheme implements the partition scheme headers owned by partitioned relations. A header
// routes a tuple's partitioning values to a partition id, either by hashing them
// (HashPartitionSchemeHeader) or by locating them between ascending range boundaries
// (RangePartitionSchemeHeader). Headers are immutable once created, and safe for concurrent use.
package scheme

import (
	"github.com/go-sif/catalog"
	"github.com/go-sif/catalog/comparison"
	"github.com/go-sif/catalog/errors"
	"github.com/go-sif/catalog/internal/hash"
	"github.com/go-sif/catalog/internal/util"
	"github.com/go-sif/catalog/logging"
	"github.com/rs/zerolog"
)

// A PartitionSchemeHeader stores the partitioning information for a relation. The only
// implementations are *HashPartitionSchemeHeader and *RangePartitionSchemeHeader.
type PartitionSchemeHeader interface {
	// PartitionType returns the partitioning strategy
	PartitionType() catalog.PartitionType
	// NumPartitions returns the number of partitions the relation is partitioned into
	NumPartitions() uint64
	// PartitionAttributeIDs returns a copy of the partitioning attributes
	PartitionAttributeIDs() catalog.PartitionAttributeIDs
	// GetPartitionID returns the partition into which a tuple with the given partitioning values belongs
	GetPartitionID(values catalog.PartitionValues) catalog.PartitionID
	sealed()
}

// Options configures the creation and reconstruction of PartitionSchemeHeaders. A nil *Options
// is equivalent to the zero value.
type Options struct {
	Comparators            catalog.ComparatorProvider // comparators for range partitioning attributes. Defaults to comparison.Default()
	Hasher                 catalog.CompositeHasher    // composite hash for hash partitioning. Defaults to an xxhash-based hash
	SkipPreconditionChecks bool                       // iff true, GetPartitionID trusts callers to pass one value per partitioning attribute. Also enabled by SIF_CATALOG_SKIP_CHECKS=1
	SkipBoundaryOrderCheck bool                       // iff true, ValidateProto does not verify that range boundaries are ascending
	Logger                 *zerolog.Logger            // Defaults to logging.Logger()
}

func (o *Options) resolve() *Options {
	resolved := &Options{}
	if o != nil {
		*resolved = *o
	}
	if resolved.Comparators == nil {
		resolved.Comparators = comparison.Default()
	}
	if resolved.Hasher == nil {
		resolved.Hasher = hash.Composite()
	}
	if util.GetEnvOrDefault("SIF_CATALOG_SKIP_CHECKS", "0") == "1" {
		resolved.SkipPreconditionChecks = true
	}
	if resolved.Logger == nil {
		resolved.Logger = logging.Logger()
	}
	return resolved
}

// header holds the state common to every partitioning strategy
type header struct {
	partitionType      catalog.PartitionType
	numPartitions      uint64
	attributeIDs       catalog.PartitionAttributeIDs
	checkPreconditions bool
	logger             *zerolog.Logger
}

func createHeader(partitionType catalog.PartitionType, numPartitions uint64, attributeIDs catalog.PartitionAttributeIDs, opts *Options) (header, error) {
	if numPartitions < 1 {
		return header{}, errors.PartitionCountError{NumPartitions: int64(numPartitions)}
	}
	if len(attributeIDs) == 0 {
		return header{}, errors.NoPartitionAttributesError{}
	}
	return header{
		partitionType:      partitionType,
		numPartitions:      numPartitions,
		attributeIDs:       append(catalog.PartitionAttributeIDs{}, attributeIDs...),
		checkPreconditions: !opts.SkipPreconditionChecks,
		logger:             opts.Logger,
	}, nil
}

// PartitionType returns the partitioning strategy
func (h *header) PartitionType() catalog.PartitionType {
	return h.partitionType
}

// NumPartitions returns the number of partitions the relation is partitioned into
func (h *header) NumPartitions() uint64 {
	return h.numPartitions
}

// PartitionAttributeIDs returns a copy of the partitioning attributes
func (h *header) PartitionAttributeIDs() catalog.PartitionAttributeIDs {
	return append(catalog.PartitionAttributeIDs{}, h.attributeIDs...)
}

func (h *header) sealed() {}

// checkValueCount panics if values does not hold exactly one value per partitioning attribute
func (h *header) checkValueCount(values catalog.PartitionValues) {
	if !h.checkPreconditions || len(values) == len(h.attributeIDs) {
		return
	}
	err := errors.ValueCountError{Expected: len(h.attributeIDs), Actual: len(values)}
	h.logger.Error().
		Err(err).
		Stringer("partition_type", h.partitionType).
		Msg("GetPartitionID called with the wrong number of values")
	panic(err)
}
