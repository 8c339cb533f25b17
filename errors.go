package multimap

import "github.com/pkg/errors"

var (
	// ErrNilArgument is returned by builder put operations when the key or
	// one of the values is a nil pointer, interface, map, func or channel.
	// A Multimap never stores nil-like keys or values.
	ErrNilArgument = errors.New("nil key or value")

	// ErrReadOnly is returned by every mutating operation on a built
	// Multimap. The instance is left unchanged.
	ErrReadOnly = errors.New("multimap is immutable")
)
