package scheme

import (
	"math"
	"testing"

	"github.com/go-sif/catalog"
	"github.com/go-sif/catalog/errors"
	"github.com/stretchr/testify/require"
)

func TestHashPartitionIDWithFixedHash(t *testing.T) {
	h, err := CreateHashPartitionSchemeHeader(4, catalog.PartitionAttributeIDs{0}, &Options{
		Hasher: catalog.CompositeHasherFunc(func(values catalog.PartitionValues) uint64 {
			return 23
		}),
	})
	require.Nil(t, err)
	require.Equal(t, catalog.PartitionID(3), h.GetPartitionID(catalog.PartitionValues{int64(7)}))
}

func TestHashPartitionIDIsStable(t *testing.T) {
	h, err := CreateHashPartitionSchemeHeader(16, catalog.PartitionAttributeIDs{1, 2}, nil)
	require.Nil(t, err)
	for i := int64(0); i < 1000; i++ {
		values := catalog.PartitionValues{i, "region"}
		id := h.GetPartitionID(values)
		require.Less(t, uint64(id), h.NumPartitions())
		require.Equal(t, id, h.GetPartitionID(catalog.PartitionValues{i, "region"}))
	}
}

func TestHashPartitionIDIgnoresSignOfZero(t *testing.T) {
	h, err := CreateHashPartitionSchemeHeader(1024, catalog.PartitionAttributeIDs{0, 1}, nil)
	require.Nil(t, err)
	negativeZero := math.Copysign(0, -1)
	require.Equal(t,
		h.GetPartitionID(catalog.PartitionValues{0.0, "east"}),
		h.GetPartitionID(catalog.PartitionValues{negativeZero, "east"}),
	)
}

func TestHashSinglePartition(t *testing.T) {
	h, err := CreateHashPartitionSchemeHeader(1, catalog.PartitionAttributeIDs{0}, nil)
	require.Nil(t, err)
	for i := int64(0); i < 100; i++ {
		require.Equal(t, catalog.PartitionID(0), h.GetPartitionID(catalog.PartitionValues{i}))
	}
}

func TestHashAccessors(t *testing.T) {
	attrs := catalog.PartitionAttributeIDs{3, 1}
	h, err := CreateHashPartitionSchemeHeader(8, attrs, nil)
	require.Nil(t, err)
	require.Equal(t, catalog.HashPartitionType, h.PartitionType())
	require.Equal(t, uint64(8), h.NumPartitions())
	require.Equal(t, attrs, h.PartitionAttributeIDs())
	// headers are immutable
	attrs[0] = 9
	h.PartitionAttributeIDs()[1] = 9
	require.Equal(t, catalog.PartitionAttributeIDs{3, 1}, h.PartitionAttributeIDs())
}

func TestCreateHashRejectsInvalidArguments(t *testing.T) {
	_, err := CreateHashPartitionSchemeHeader(0, catalog.PartitionAttributeIDs{0}, nil)
	require.Equal(t, errors.PartitionCountError{NumPartitions: 0}, err)
	_, err = CreateHashPartitionSchemeHeader(2, nil, nil)
	require.Equal(t, errors.NoPartitionAttributesError{}, err)
}

func TestHashValueCountPrecondition(t *testing.T) {
	h, err := CreateHashPartitionSchemeHeader(4, catalog.PartitionAttributeIDs{0, 1}, nil)
	require.Nil(t, err)
	require.PanicsWithError(t, errors.ValueCountError{Expected: 2, Actual: 1}.Error(), func() {
		h.GetPartitionID(catalog.PartitionValues{int64(1)})
	})

	unchecked, err := CreateHashPartitionSchemeHeader(4, catalog.PartitionAttributeIDs{0, 1}, &Options{SkipPreconditionChecks: true})
	require.Nil(t, err)
	require.NotPanics(t, func() {
		unchecked.GetPartitionID(catalog.PartitionValues{int64(1)})
	})
}
