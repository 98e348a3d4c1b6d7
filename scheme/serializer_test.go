package scheme

import (
	"bytes"
	"testing"

	"github.com/go-sif/catalog"
	"github.com/stretchr/testify/require"
)

func TestLZ4SchemeSerializerRoundTrip(t *testing.T) {
	serializer := NewLZ4SchemeSerializer(nil)
	rangeHeader := createRegionRangeHeader(t)
	hashHeader, err := CreateHashPartitionSchemeHeader(32, catalog.PartitionAttributeIDs{4}, nil)
	require.Nil(t, err)

	// the serializer is reused across headers
	for _, h := range []PartitionSchemeHeader{rangeHeader, hashHeader, rangeHeader} {
		var buf bytes.Buffer
		require.Nil(t, serializer.Compress(&buf, h))
		reconstructed, err := serializer.Decompress(&buf)
		require.Nil(t, err)
		require.Equal(t, ToProto(h), ToProto(reconstructed))
	}
}

func TestLZ4SchemeSerializerRejectsGarbage(t *testing.T) {
	serializer := NewLZ4SchemeSerializer(nil)
	_, err := serializer.Decompress(bytes.NewReader([]byte("definitely not lz4")))
	require.NotNil(t, err)
}
