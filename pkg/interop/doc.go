// Package interop defines the fixed layout binary records exchanged with the
// native simulation engine.
//
// Every record is serialized little-endian at explicit byte offsets. Padding
// bytes are written as zero and ignored when reading. The package keeps a
// registry from record Kind to constructor and size, so callers can decode a
// record knowing only its kind.
//
// Tables of records are stored as linearized array blobs:
//
//	int32 rank | int32 length | int32 skip x (rank-1) | values...
//
// where skip k is the number of values between consecutive indices of
// dimension k.
package interop
