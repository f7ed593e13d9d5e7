// Package marshal converts interop records to and from byte buffers using
// small per-kind pools of reusable blocks.
//
// Every record kind owns a pool of at most PoolSize blocks sized exactly to
// the record. Blocks are allocated on first demand. A caller acquires one
// block, encodes or decodes through it and releases it on every exit path;
// at any instant a block has exactly one owner. When all blocks of a kind
// are held, callers wait on the pool channel until one is released or their
// context ends.
//
// Close releases all blocks. It fails with ErrBlocksInUse while any block is
// held; afterwards every call fails with ErrClosed.
package marshal
