package declaration

import (
	"testing"
	"time"

	"github.com/go-sif/catalog"
	"github.com/go-sif/catalog/errors"
	"github.com/go-sif/catalog/scheme"
	"github.com/stretchr/testify/require"
)

func TestParseRangeDeclaration(t *testing.T) {
	h, err := Parse([]byte(`{
		"type": "range",
		"partitions": 2,
		"attributes": [{"id": 0, "type": "varstring"}, {"id": 1, "type": "int64"}],
		"boundaries": [["east", 100]]
	}`), nil)
	require.Nil(t, err)
	rh, ok := h.(*scheme.RangePartitionSchemeHeader)
	require.True(t, ok)
	require.Equal(t, []catalog.PartitionValues{{"east", int64(100)}}, rh.GetPartitionRangeBoundaries())
	require.Equal(t, catalog.PartitionID(0), h.GetPartitionID(catalog.PartitionValues{"east", int64(50)}))
	require.Equal(t, catalog.PartitionID(1), h.GetPartitionID(catalog.PartitionValues{"east", int64(100)}))
	require.Equal(t, catalog.PartitionID(1), h.GetPartitionID(catalog.PartitionValues{"west", int64(0)}))
}

func TestParseHashDeclaration(t *testing.T) {
	h, err := Parse([]byte(`{"type": "hash", "partitions": 4, "attributes": [{"id": 7}, {"id": 2}]}`), nil)
	require.Nil(t, err)
	require.Equal(t, catalog.HashPartitionType, h.PartitionType())
	require.Equal(t, uint64(4), h.NumPartitions())
	require.Equal(t, catalog.PartitionAttributeIDs{7, 2}, h.PartitionAttributeIDs())
}

func TestParseTypedBoundaries(t *testing.T) {
	h, err := Parse([]byte(`{
		"type": "range",
		"partitions": 3,
		"attributes": [
			{"id": 0, "type": "time"},
			{"id": 1, "type": "uint8"},
			{"id": 2, "type": "string", "length": 4},
			{"id": 3, "type": "varbytes"},
			{"id": 4, "type": "bool"},
			{"id": 5, "type": "float32"}
		],
		"boundaries": [
			["2020-01-01T00:00:00Z", 255, "abcd", "AQI=", false, 1.5],
			["2021-01-01T00:00:00Z", 0, "", "", true, -2]
		]
	}`), nil)
	require.Nil(t, err)
	boundaries := h.(*scheme.RangePartitionSchemeHeader).GetPartitionRangeBoundaries()
	require.True(t, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC).Equal(boundaries[0][0].(time.Time)))
	require.Equal(t, uint8(255), boundaries[0][1])
	require.Equal(t, "abcd", boundaries[0][2])
	require.Equal(t, []byte{1, 2}, boundaries[0][3])
	require.Equal(t, false, boundaries[0][4])
	require.Equal(t, float32(1.5), boundaries[0][5])
}

func TestParseSinglePartitionRange(t *testing.T) {
	h, err := Parse([]byte(`{"type": "range", "partitions": 1, "attributes": [{"id": 0, "type": "int32"}]}`), nil)
	require.Nil(t, err)
	require.Equal(t, catalog.PartitionID(0), h.GetPartitionID(catalog.PartitionValues{int32(12)}))
}

func TestParseRejectsInvalidDeclarations(t *testing.T) {
	invalid := map[string]string{
		"not json":           `{"type": `,
		"unknown type":       `{"type": "list", "partitions": 2, "attributes": [{"id": 0}]}`,
		"zero partitions":    `{"type": "hash", "partitions": 0, "attributes": [{"id": 0}]}`,
		"partial partitions": `{"type": "hash", "partitions": 2.7, "attributes": [{"id": 0}]}`,
		"missing attributes": `{"type": "hash", "partitions": 2}`,
		"bad attribute id":   `{"type": "hash", "partitions": 2, "attributes": [{"id": "x"}]}`,
		"hash boundaries":    `{"type": "hash", "partitions": 2, "attributes": [{"id": 0}], "boundaries": [[1]]}`,
		"unknown col type":   `{"type": "range", "partitions": 2, "attributes": [{"id": 0, "type": "decimal"}], "boundaries": [[1]]}`,
		"overflow":           `{"type": "range", "partitions": 2, "attributes": [{"id": 0, "type": "int8"}], "boundaries": [[300]]}`,
		"fractional int":     `{"type": "range", "partitions": 2, "attributes": [{"id": 0, "type": "int64"}], "boundaries": [[1.5]]}`,
		"negative uint":      `{"type": "range", "partitions": 2, "attributes": [{"id": 0, "type": "uint32"}], "boundaries": [[-1]]}`,
		"wrong json type":    `{"type": "range", "partitions": 2, "attributes": [{"id": 0, "type": "varstring"}], "boundaries": [[1]]}`,
		"unordered":          `{"type": "range", "partitions": 3, "attributes": [{"id": 0, "type": "int64"}], "boundaries": [[2], [1]]}`,
		"missing boundaries": `{"type": "range", "partitions": 3, "attributes": [{"id": 0, "type": "int64"}]}`,
		"string no length":   `{"type": "range", "partitions": 2, "attributes": [{"id": 0, "type": "string"}], "boundaries": [["a"]]}`,
	}
	for name, decl := range invalid {
		_, err := Parse([]byte(decl), nil)
		require.NotNil(t, err, name)
	}
}

func TestParseRejectsFractionalPartitionCount(t *testing.T) {
	_, err := Parse([]byte(`{"type": "hash", "partitions": 2.7, "attributes": [{"id": 0}]}`), nil)
	require.Equal(t, errors.DeclarationError{Field: "partitions", Reason: "must be a positive integer"}, err)
}

func TestParseReportsBoundaryWidth(t *testing.T) {
	_, err := Parse([]byte(`{"type": "range", "partitions": 2, "attributes": [{"id": 0, "type": "int64"}, {"id": 1, "type": "int64"}], "boundaries": [[1]]}`), nil)
	require.Equal(t, errors.BoundaryWidthError{Index: 0, Expected: 2, Actual: 1}, err)
}
