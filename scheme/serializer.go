package scheme

import (
	"bytes"
	"io"

	"github.com/go-sif/catalog/serialization"
	"github.com/pierrec/lz4"
)

// A SchemeSerializer serializes and compresses partition scheme headers (and the inverse)
type SchemeSerializer interface {
	Compress(w io.Writer, h PartitionSchemeHeader) error    // Compress serializes and compresses a header to a write stream
	Decompress(r io.Reader) (PartitionSchemeHeader, error) // Decompress decompresses and reconstructs a header from a read stream
}

// LZ4SchemeSerializer is a SchemeSerializer which uses the lz4 compression algorithm.
// NOT THREAD SAFE: it reuses its compressor, decompressor and read buffer between calls.
type LZ4SchemeSerializer struct {
	compressor         *lz4.Writer
	decompressor       *lz4.Reader
	reusableReadBuffer *bytes.Buffer
	opts               *Options
}

// NewLZ4SchemeSerializer instantiates a new LZ4SchemeSerializer. opts is used when reconstructing headers.
func NewLZ4SchemeSerializer(opts *Options) *LZ4SchemeSerializer {
	return &LZ4SchemeSerializer{
		compressor:         lz4.NewWriter(new(bytes.Buffer)),
		decompressor:       lz4.NewReader(new(bytes.Buffer)),
		reusableReadBuffer: new(bytes.Buffer),
		opts:               opts,
	}
}

// Compress serializes and compresses a header to a write stream
func (s *LZ4SchemeSerializer) Compress(w io.Writer, h PartitionSchemeHeader) error {
	s.compressor.Reset(w)
	if _, err := s.compressor.Write(serialization.Marshal(ToProto(h))); err != nil {
		return err
	}
	return s.compressor.Close()
}

// Decompress decompresses and reconstructs a header from a read stream
func (s *LZ4SchemeSerializer) Decompress(r io.Reader) (PartitionSchemeHeader, error) {
	s.decompressor.Reset(r)
	s.reusableReadBuffer.Reset()
	if _, err := s.reusableReadBuffer.ReadFrom(s.decompressor); err != nil {
		return nil, err
	}
	proto, err := serialization.Unmarshal(s.reusableReadBuffer.Bytes())
	if err != nil {
		return nil, err
	}
	return FromProto(proto, s.opts)
}
