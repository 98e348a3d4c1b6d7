// Package hash provides the default composite hash of partitioning values
package hash

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"

	xxhash "github.com/cespare/xxhash/v2"
	"github.com/go-sif/catalog"
)

// tags keep values of different Go types from colliding on identical byte representations
const (
	nilTag byte = iota
	boolTag
	uintTag
	intTag
	floatTag
	stringTag
	bytesTag
	timeTag
	otherTag
)

type composite struct{}

// Composite returns the default CompositeHasher, which feeds a tagged encoding of each value
// into a single xxhash digest. The result depends on the order of values.
func Composite() catalog.CompositeHasher {
	return composite{}
}

// Hash computes the composite hash of values
func (composite) Hash(values catalog.PartitionValues) uint64 {
	hasher := xxhash.New()
	var buf [9]byte
	for _, v := range values {
		writeValue(hasher, buf[:], v)
	}
	return hasher.Sum64()
}

func writeFixed(hasher *xxhash.Digest, buf []byte, tag byte, bits uint64) {
	buf[0] = tag
	binary.LittleEndian.PutUint64(buf[1:], bits)
	hasher.Write(buf[:9])
}

func writeVar(hasher *xxhash.Digest, buf []byte, tag byte, data string) {
	writeFixed(hasher, buf, tag, uint64(len(data)))
	hasher.WriteString(data)
}

// floatBits maps -0 to +0, since they compare equal, and every NaN to one canonical NaN
func floatBits(f float64) uint64 {
	switch {
	case f == 0:
		return 0
	case math.IsNaN(f):
		return math.Float64bits(math.NaN())
	}
	return math.Float64bits(f)
}

func writeValue(hasher *xxhash.Digest, buf []byte, v interface{}) {
	switch tv := v.(type) {
	case nil:
		writeFixed(hasher, buf, nilTag, 0)
	case bool:
		var bits uint64
		if tv {
			bits = 1
		}
		writeFixed(hasher, buf, boolTag, bits)
	case uint8:
		writeFixed(hasher, buf, uintTag, uint64(tv))
	case uint16:
		writeFixed(hasher, buf, uintTag, uint64(tv))
	case uint32:
		writeFixed(hasher, buf, uintTag, uint64(tv))
	case uint64:
		writeFixed(hasher, buf, uintTag, tv)
	case uint:
		writeFixed(hasher, buf, uintTag, uint64(tv))
	case int8:
		writeFixed(hasher, buf, intTag, uint64(int64(tv)))
	case int16:
		writeFixed(hasher, buf, intTag, uint64(int64(tv)))
	case int32:
		writeFixed(hasher, buf, intTag, uint64(int64(tv)))
	case int64:
		writeFixed(hasher, buf, intTag, uint64(tv))
	case int:
		writeFixed(hasher, buf, intTag, uint64(int64(tv)))
	case float32:
		writeFixed(hasher, buf, floatTag, floatBits(float64(tv)))
	case float64:
		writeFixed(hasher, buf, floatTag, floatBits(tv))
	case string:
		writeVar(hasher, buf, stringTag, tv)
	case []byte:
		writeFixed(hasher, buf, bytesTag, uint64(len(tv)))
		hasher.Write(tv)
	case time.Time:
		// equal instants in different locations hash identically
		writeFixed(hasher, buf, timeTag, uint64(tv.UnixNano()))
	default:
		writeVar(hasher, buf, otherTag, fmt.Sprintf("%T:%v", v, v))
	}
}
