// Package wire implements the binary snapshot format for multimap contents.
//
// The format is a flat record stream, all integers big-endian:
//
//	[keyCount:int32]
//	keyCount times: key, [valueCount:int32], valueCount times: value
//
// Keys and values are opaque to the container, so their encoding is
// supplied by a Codec for each element type. No total size is stored on
// the wire; it is recomputed while decoding.
package wire

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"

	"github.com/pkg/errors"

	"github.com/PowerDNS/multimap"
)

// ErrInvalidFormat is the root cause of all decode validation failures:
// negative key counts, non-positive value counts, oversized elements and
// duplicate keys. Match it with errors.Is.
var ErrInvalidFormat = errors.New("invalid multimap wire format")

// Encode writes the multimap to w. Keys are written in the multimap's key
// insertion order and values in their sequence order, so a decoded copy
// iterates identically to the original.
func Encode[K comparable, V comparable](w io.Writer, m *multimap.Multimap[K, V], keys Codec[K], values Codec[V]) error {
	gm := m.AsMap()
	if gm.Len() > math.MaxInt32 {
		return errors.Errorf("too many keys to encode: %d", gm.Len())
	}
	if err := writeInt32(w, int32(gm.Len())); err != nil {
		return errors.Wrap(err, "write key count")
	}
	for k, vs := range gm.All() {
		if err := keys.Encode(w, k); err != nil {
			return errors.Wrapf(err, "write key %v", k)
		}
		if err := writeInt32(w, int32(vs.Len())); err != nil {
			return errors.Wrapf(err, "write value count for key %v", k)
		}
		for v := range vs.All() {
			if err := values.Encode(w, v); err != nil {
				return errors.Wrapf(err, "write value for key %v", k)
			}
		}
	}
	return nil
}

// EncodeBytes is Encode into a fresh byte slice.
func EncodeBytes[K comparable, V comparable](m *multimap.Multimap[K, V], keys Codec[K], values Codec[V]) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, m, keys, values); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode reads one multimap from r and validates the stream: the key count
// must not be negative, every value count must be strictly positive (keys
// without values are never legal on the wire), and keys must be unique.
// Any violation fails with an error wrapping ErrInvalidFormat and no
// instance is returned. An empty stream (key count 0) decodes to the
// canonical empty multimap.
func Decode[K comparable, V comparable](r io.Reader, keys Codec[K], values Codec[V]) (*multimap.Multimap[K, V], error) {
	keyCount, err := readInt32(r)
	if err != nil {
		return nil, errors.Wrap(err, "read key count")
	}
	if keyCount < 0 {
		return nil, errors.Wrapf(ErrInvalidFormat, "negative key count %d", keyCount)
	}

	b := multimap.NewBuilder[K, V]()
	seen := make(map[K]struct{})
	for i := int32(0); i < keyCount; i++ {
		k, err := keys.Decode(r)
		if err != nil {
			return nil, errors.Wrapf(err, "read key %d", i)
		}
		if _, dup := seen[k]; dup {
			return nil, errors.Wrapf(ErrInvalidFormat, "duplicate key %v", k)
		}
		seen[k] = struct{}{}

		valueCount, err := readInt32(r)
		if err != nil {
			return nil, errors.Wrapf(err, "read value count for key %v", k)
		}
		if valueCount <= 0 {
			return nil, errors.Wrapf(ErrInvalidFormat, "invalid value count %d for key %v", valueCount, k)
		}
		for j := int32(0); j < valueCount; j++ {
			v, err := values.Decode(r)
			if err != nil {
				return nil, errors.Wrapf(err, "read value %d for key %v", j, k)
			}
			if err := b.Put(k, v); err != nil {
				return nil, errors.Wrapf(err, "key %v", k)
			}
		}
	}
	return b.Build(), nil
}

// DecodeBytes is Decode from a byte slice.
func DecodeBytes[K comparable, V comparable](data []byte, keys Codec[K], values Codec[V]) (*multimap.Multimap[K, V], error) {
	return Decode(bytes.NewReader(data), keys, values)
}

func writeInt32(w io.Writer, n int32) error {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], uint32(n))
	_, err := w.Write(buf[:])
	return err
}

func readInt32(r io.Reader) (int32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return int32(binary.BigEndian.Uint32(buf[:])), nil
}
