package gpubuf

import "fmt"

// BufferHandle is an opaque reference to a GPU buffer owned by a
// BufferManager. Batches hold handles, never pointers, so the manager is
// free to pool and recycle the underlying allocation.
type BufferHandle uint64

// invalidHandle is returned (alongside an error) when allocation fails.
const invalidHandle BufferHandle = 0

// BufferKind distinguishes what a buffer is used for.
type BufferKind int

const (
	// KindVertex holds interleaved vertex attribute data.
	KindVertex BufferKind = iota
	// KindIndex holds uint16 triangle indices.
	KindIndex
	// KindUniform holds shader uniform block data.
	KindUniform
)

func (k BufferKind) String() string {
	switch k {
	case KindVertex:
		return "vertex"
	case KindIndex:
		return "index"
	case KindUniform:
		return "uniform"
	default:
		return "unknown"
	}
}

// BufferUsage is a hint for how often a buffer's contents change.
type BufferUsage int

const (
	// UsageStatic is written once, read many times.
	UsageStatic BufferUsage = iota
	// UsageDynamic is rewritten occasionally (a handful of times per frame).
	UsageDynamic
	// UsageStream is rewritten every frame (the batcher's scratch buffers).
	UsageStream
)

// Buffer is the record a BufferManager owns. CapacityBytes tracks the
// largest write the buffer has serviced; Data is the CPU-side mirror every
// backend (software directly, native/rust via an upload step they own)
// reads from.
type Buffer struct {
	ID             BufferHandle
	Kind           BufferKind
	Usage          BufferUsage
	Label          string
	CapacityBytes  int
	Data           []byte
	pooled         bool
	alignedSize    int
}

// BindTarget names the attribute slot or index target a buffer is bound to.
type BindTarget struct {
	Kind BufferKind
	Slot int
}

// ErrDisposed is returned by any operation on a disposed BufferManager.
var ErrDisposed = fmt.Errorf("gpubuf: manager disposed")

// ErrUnknownHandle is returned when a handle does not name a live buffer.
var ErrUnknownHandle = fmt.Errorf("gpubuf: unknown buffer handle")
