// Package codes packs short particle or position index sequences into
// 64-bit codes.
//
// A code stores one index per byte in little-endian order, so the first
// index occupies the lowest byte. Sequences hold at most eight indices in
// the range [0,255]; unused high bytes are always zero. Codes are one-way
// fingerprints used as lookup keys and wire values by the native engine:
//
//	enc := codes.NewEncoder()
//	code, err := enc.Pack([]int{1, 2})   // 0x0201
//
// An Encoder reuses one scratch buffer and is not safe for concurrent use.
// Each builder owns its own Encoder.
package codes
