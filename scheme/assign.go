package scheme

import (
	"context"
	"fmt"

	"github.com/go-sif/catalog"
	"github.com/go-sif/catalog/errors"
	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"
)

// cancellation is checked once per this many rows
const assignCheckInterval = 1024

// AssignPartitions computes the partition of every row, returning one list of row indices per
// partition (indexed by PartitionID). Rows with the wrong number of values, or (for range
// headers) values of the wrong Go type, are skipped and reported in the returned error,
// alongside the assignment of every other row.
func AssignPartitions(h PartitionSchemeHeader, rows []catalog.PartitionValues) ([][]int, error) {
	ids := make([]catalog.PartitionID, len(rows))
	valid := make([]bool, len(rows))
	err := assignRange(context.Background(), h, rows, ids, valid, 0, len(rows))
	return bucket(h, ids, valid), err
}

// AssignPartitionsParallel is AssignPartitions, split across numWorkers goroutines.
// Returns ctx.Err() if ctx is cancelled before every row is assigned.
func AssignPartitionsParallel(ctx context.Context, h PartitionSchemeHeader, rows []catalog.PartitionValues, numWorkers int) ([][]int, error) {
	if numWorkers < 1 {
		numWorkers = 1
	}
	ids := make([]catalog.PartitionID, len(rows))
	valid := make([]bool, len(rows))
	rowErrs := make([]error, numWorkers)
	chunkSize := (len(rows) + numWorkers - 1) / numWorkers
	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < numWorkers; w++ {
		w := w
		start := w * chunkSize
		end := start + chunkSize
		if end > len(rows) {
			end = len(rows)
		}
		if start >= end {
			break
		}
		g.Go(func() error {
			err := assignRange(gctx, h, rows, ids, valid, start, end)
			if ctxErr := gctx.Err(); ctxErr != nil {
				return ctxErr
			}
			rowErrs[w] = err
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	var multierr *multierror.Error
	for _, err := range rowErrs {
		if merr, ok := err.(*multierror.Error); ok {
			multierr = multierror.Append(multierr, merr.Errors...)
		}
	}
	return bucket(h, ids, valid), multierr.ErrorOrNil()
}

// assignRange assigns partitions to rows[start:end], writing into the same indices of ids and valid
func assignRange(ctx context.Context, h PartitionSchemeHeader, rows []catalog.PartitionValues, ids []catalog.PartitionID, valid []bool, start int, end int) error {
	var multierr *multierror.Error
	numAttributes := len(h.PartitionAttributeIDs())
	rh, isRange := h.(*RangePartitionSchemeHeader)
	for i := start; i < end; i++ {
		if (i-start)%assignCheckInterval == 0 && ctx.Err() != nil {
			return ctx.Err()
		}
		if len(rows[i]) != numAttributes {
			multierr = multierror.Append(multierr, fmt.Errorf("row %d: %w", i, errors.ValueCountError{Expected: numAttributes, Actual: len(rows[i])}))
			continue
		}
		// range comparators assume well-typed values
		if isRange {
			if err := rh.checkValueTypes(rows[i]); err != nil {
				multierr = multierror.Append(multierr, fmt.Errorf("row %d: %w", i, err))
				continue
			}
		}
		ids[i] = h.GetPartitionID(rows[i])
		valid[i] = true
	}
	return multierr.ErrorOrNil()
}

func bucket(h PartitionSchemeHeader, ids []catalog.PartitionID, valid []bool) [][]int {
	buckets := make([][]int, h.NumPartitions())
	for i, id := range ids {
		if valid[i] {
			buckets[id] = append(buckets[id], i)
		}
	}
	return buckets
}
