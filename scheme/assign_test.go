package scheme

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/go-sif/catalog"
	"github.com/go-sif/catalog/errors"
	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestAssignPartitions(t *testing.T) {
	h := createIntRangeHeader(t)
	rows := []catalog.PartitionValues{
		{int64(5)},
		{int64(10)},
		{int64(15)},
		{int64(20)},
		{int64(1000)},
		{int64(1), int64(2)},
		{int64(-3)},
	}
	buckets, err := AssignPartitions(h, rows)
	require.NotNil(t, err)
	require.Len(t, err.(*multierror.Error).Errors, 1)
	require.Equal(t, [][]int{{0, 6}, {1, 2}, {3, 4}}, buckets)
}

func TestAssignPartitionsParallelMatchesSequential(t *testing.T) {
	defer goleak.VerifyNone(t)

	h, err := CreateHashPartitionSchemeHeader(13, catalog.PartitionAttributeIDs{0, 1}, nil)
	require.Nil(t, err)
	rows := make([]catalog.PartitionValues, 10000)
	for i := range rows {
		rows[i] = catalog.PartitionValues{int64(i), "tenant"}
	}
	rows[17] = catalog.PartitionValues{int64(17)}
	rows[9001] = catalog.PartitionValues{}

	expected, expectedErr := AssignPartitions(h, rows)
	actual, err := AssignPartitionsParallel(context.Background(), h, rows, 8)
	require.Equal(t, expected, actual)
	require.NotNil(t, err)
	require.Len(t, err.(*multierror.Error).Errors, 2)
	require.Len(t, expectedErr.(*multierror.Error).Errors, 2)

	total := 0
	for _, bucket := range actual {
		total += len(bucket)
	}
	require.Equal(t, len(rows)-2, total)
}

func TestAssignPartitionsReportsMistypedValues(t *testing.T) {
	defer goleak.VerifyNone(t)

	h := createIntRangeHeader(t)
	rows := []catalog.PartitionValues{
		{int64(5)},
		{"not an int"},
		{nil},
		{int32(15)},
		{int64(25)},
	}
	buckets, err := AssignPartitionsParallel(context.Background(), h, rows, 2)
	require.NotNil(t, err)
	merr := err.(*multierror.Error)
	require.Len(t, merr.Errors, 3)
	var typeErr errors.ValueTypeError
	require.True(t, stderrors.As(merr.Errors[0], &typeErr))
	require.Equal(t, "not an int", typeErr.Value)
	require.Equal(t, [][]int{{0}, nil, {4}}, buckets)

	sequential, err := AssignPartitions(h, rows)
	require.Len(t, err.(*multierror.Error).Errors, 3)
	require.Equal(t, buckets, sequential)
}

func TestAssignPartitionsParallelMoreWorkersThanRows(t *testing.T) {
	defer goleak.VerifyNone(t)

	h := createIntRangeHeader(t)
	rows := []catalog.PartitionValues{{int64(25)}, {int64(0)}}
	buckets, err := AssignPartitionsParallel(context.Background(), h, rows, 16)
	require.Nil(t, err)
	require.Equal(t, [][]int{{1}, nil, {0}}, buckets)
}

func TestAssignPartitionsParallelCancelled(t *testing.T) {
	defer goleak.VerifyNone(t)

	h := createIntRangeHeader(t)
	rows := make([]catalog.PartitionValues, 5000)
	for i := range rows {
		rows[i] = catalog.PartitionValues{int64(i)}
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := AssignPartitionsParallel(ctx, h, rows, 4)
	require.Equal(t, context.Canceled, err)
}
