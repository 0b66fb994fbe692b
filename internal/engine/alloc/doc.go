// Package alloc provides the storage capability consumed by the engine's
// containers.
//
// A container never calls make directly for its backing block. It asks an
// Allocator for a zeroed block of n elements and hands the block back when it
// is done with it. Swapping the allocator lets callers recycle blocks, cap
// memory use, inject failures, or observe allocation traffic without touching
// container code.
//
// Allocators shipped with the package:
//
//   - Heap: plain make with an optional element limit
//   - Pool: recycles released blocks by power-of-two size class
//   - Limited: wraps another allocator with a live-element budget
//   - Instrumented: wraps another allocator and records Prometheus metrics
//
// Allocation failure is reported as ErrAllocationFailed. Go cannot recover
// from a runtime out-of-memory condition, so allocators refuse requests they
// know they cannot serve instead of attempting them.
package alloc
