package dualmap

import "errors"

var (
	// ErrInvalidMagic is returned by Load when the input does not start
	// with the snapshot magic number.
	ErrInvalidMagic = errors.New("invalid magic number")
	// ErrInvalidVersion is returned by Load for an unsupported snapshot
	// format version.
	ErrInvalidVersion = errors.New("unsupported snapshot version")
	// ErrUnknownCodec is returned by Load when the codec named in the
	// snapshot header is not registered.
	ErrUnknownCodec = errors.New("unknown codec")
	// ErrUnknownCompression is returned by Load for an unrecognized
	// compression flag.
	ErrUnknownCompression = errors.New("unknown compression type")
)
