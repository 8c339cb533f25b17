package wire

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// MaxElementSize caps the byte length of a single encoded string element.
// It protects decoders from corrupt length prefixes that would otherwise
// trigger huge allocations.
const MaxElementSize = 64 << 20 // 64 MiB

// Codec encodes and decodes single elements of a multimap. Implementations
// must be stateless: the same Codec is used for every element in a stream
// and may be shared between goroutines.
type Codec[T any] interface {
	Encode(w io.Writer, v T) error
	Decode(r io.Reader) (T, error)
}

// String returns a Codec for string elements: a big-endian uint32 byte
// length followed by the raw bytes.
func String() Codec[string] { return stringCodec{} }

// Int64 returns a Codec for int64 elements, stored as 8 big-endian bytes.
func Int64() Codec[int64] { return int64Codec{} }

// Uint64 returns a Codec for uint64 elements, stored as 8 big-endian bytes.
func Uint64() Codec[uint64] { return uint64Codec{} }

type stringCodec struct{}

func (stringCodec) Encode(w io.Writer, v string) error {
	if len(v) > MaxElementSize {
		return errors.Errorf("string element too large: %d bytes", len(v))
	}
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], uint32(len(v)))
	if _, err := w.Write(buf[:]); err != nil {
		return err
	}
	_, err := io.WriteString(w, v)
	return err
}

func (stringCodec) Decode(r io.Reader) (string, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return "", err
	}
	n := binary.BigEndian.Uint32(buf[:])
	if n > MaxElementSize {
		return "", errors.Wrapf(ErrInvalidFormat, "string element length %d exceeds maximum", n)
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(r, b); err != nil {
		return "", err
	}
	return string(b), nil
}

type int64Codec struct{}

func (int64Codec) Encode(w io.Writer, v int64) error {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(v))
	_, err := w.Write(buf[:])
	return err
}

func (int64Codec) Decode(r io.Reader) (int64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return int64(binary.BigEndian.Uint64(buf[:])), nil
}

type uint64Codec struct{}

func (uint64Codec) Encode(w io.Writer, v uint64) error {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

func (uint64Codec) Decode(r io.Reader) (uint64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(buf[:]), nil
}
