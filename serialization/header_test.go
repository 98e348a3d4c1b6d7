package serialization

import (
	"math"
	"testing"

	"github.com/go-sif/catalog/errors"
	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"
)

func createRangeHeader() *PartitionSchemeHeader {
	return &PartitionSchemeHeader{
		PartitionType:  1,
		NumPartitions:  3,
		AttributeIDs:   []int32{4, -1},
		AttributeTypes: []Type{{TypeID: 13, Length: 8}, {TypeID: 9}},
		Boundaries: []Boundary{
			{Values: [][]byte{[]byte("east"), {1, 0, 0, 0, 0, 0, 0, 0}}},
			{Values: [][]byte{[]byte("west"), {}}},
		},
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	header := createRangeHeader()
	decoded, err := Unmarshal(Marshal(header))
	require.Nil(t, err)
	require.Equal(t, header, decoded)
}

func TestMarshalRoundTripHash(t *testing.T) {
	header := &PartitionSchemeHeader{PartitionType: 0, NumPartitions: 1, AttributeIDs: []int32{0}}
	decoded, err := Unmarshal(Marshal(header))
	require.Nil(t, err)
	require.Equal(t, header, decoded)
}

func TestUnmarshalSkipsUnknownFields(t *testing.T) {
	data := Marshal(&PartitionSchemeHeader{PartitionType: 0, NumPartitions: 4, AttributeIDs: []int32{2}})
	data = protowire.AppendTag(data, 99, protowire.BytesType)
	data = protowire.AppendBytes(data, []byte("future"))
	decoded, err := Unmarshal(data)
	require.Nil(t, err)
	require.Equal(t, uint64(4), decoded.NumPartitions)
	require.Equal(t, []int32{2}, decoded.AttributeIDs)
}

func TestUnmarshalAcceptsUnpackedAttributeIDs(t *testing.T) {
	var data []byte
	data = protowire.AppendTag(data, headerNumPartitionsField, protowire.VarintType)
	data = protowire.AppendVarint(data, 2)
	for _, id := range []uint64{3, 5} {
		data = protowire.AppendTag(data, headerAttributeIDsField, protowire.VarintType)
		data = protowire.AppendVarint(data, id)
	}
	decoded, err := Unmarshal(data)
	require.Nil(t, err)
	require.Equal(t, []int32{3, 5}, decoded.AttributeIDs)
}

func TestUnmarshalTruncated(t *testing.T) {
	data := Marshal(createRangeHeader())
	_, err := Unmarshal(data[:len(data)-3])
	require.NotNil(t, err)
	_, ok := err.(errors.MalformedProtoError)
	require.True(t, ok)
}

func TestUnmarshalRejectsOverflowingVarints(t *testing.T) {
	var strategy []byte
	strategy = protowire.AppendTag(strategy, headerPartitionTypeField, protowire.VarintType)
	strategy = protowire.AppendVarint(strategy, 1<<32)
	strategy = protowire.AppendTag(strategy, headerNumPartitionsField, protowire.VarintType)
	strategy = protowire.AppendVarint(strategy, 4)

	var packedIDs []byte
	packedIDs = protowire.AppendVarint(packedIDs, 1<<32+7)
	var ids []byte
	ids = protowire.AppendTag(ids, headerAttributeIDsField, protowire.BytesType)
	ids = protowire.AppendBytes(ids, packedIDs)

	var unpackedIDs []byte
	unpackedIDs = protowire.AppendTag(unpackedIDs, headerAttributeIDsField, protowire.VarintType)
	unpackedIDs = protowire.AppendVarint(unpackedIDs, uint64(math.MaxInt32)+1)

	var typeMsg []byte
	typeMsg = protowire.AppendTag(typeMsg, typeIDField, protowire.VarintType)
	typeMsg = protowire.AppendVarint(typeMsg, 1<<32+uint64(9))
	var typeID []byte
	typeID = protowire.AppendTag(typeID, headerAttributeTypesField, protowire.BytesType)
	typeID = protowire.AppendBytes(typeID, typeMsg)

	for name, data := range map[string][]byte{
		"partition type":    strategy,
		"packed ids":        ids,
		"unpacked ids":      unpackedIDs,
		"attribute type id": typeID,
	} {
		decoded, err := Unmarshal(data)
		require.Nil(t, decoded, name)
		_, ok := err.(errors.MalformedProtoError)
		require.True(t, ok, name)
	}

	negative := &PartitionSchemeHeader{PartitionType: 1, NumPartitions: 1, AttributeIDs: []int32{math.MinInt32}}
	decoded, err := Unmarshal(Marshal(negative))
	require.Nil(t, err)
	require.Equal(t, []int32{math.MinInt32}, decoded.AttributeIDs)
}

func TestValidate(t *testing.T) {
	require.Nil(t, createRangeHeader().Validate())

	invalid := &PartitionSchemeHeader{PartitionType: 7, NumPartitions: 0}
	err := invalid.Validate()
	require.NotNil(t, err)
	merr, ok := err.(*multierror.Error)
	require.True(t, ok)
	require.Len(t, merr.Errors, 3)
	require.Contains(t, merr.Errors, error(errors.UnknownPartitionTypeError{Type: 7}))
	require.Contains(t, merr.Errors, error(errors.PartitionCountError{NumPartitions: 0}))
	require.Contains(t, merr.Errors, error(errors.NoPartitionAttributesError{}))

	var nilHeader *PartitionSchemeHeader
	require.NotNil(t, nilHeader.Validate())
}

func TestValidateRejectsUnknownTypeID(t *testing.T) {
	header := createRangeHeader()
	header.AttributeTypes[1].TypeID = 0
	err := header.Validate()
	require.NotNil(t, err)
	require.Contains(t, err.(*multierror.Error).Errors, error(errors.UnsupportedColumnTypeError{TypeID: 0}))
}
