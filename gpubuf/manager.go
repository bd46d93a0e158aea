package gpubuf

import (
	"fmt"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/render"
)

// PoolAlignment is the byte alignment pooled buffers are rounded up to.
const PoolAlignment = 256

// PoolCapPerBucket is the maximum number of free buffers kept per
// (kind, aligned size) bucket; buffers released beyond the cap are freed
// immediately instead of pooled.
const PoolCapPerBucket = 10

type poolKey struct {
	kind        BufferKind
	alignedSize int
}

// BufferManager owns every GPU buffer the render pipeline allocates. It
// never creates its own device — Device is injected, following the same
// pattern as render.DeviceHandle elsewhere in this module.
type BufferManager struct {
	device  render.DeviceHandle
	buffers map[BufferHandle]*Buffer
	pools   map[poolKey][]*Buffer
	bound   map[BindTarget]BufferHandle
	nextID  uint64
	disposed bool
}

// NewBufferManager constructs a manager bound to device. device may be
// render.NullDeviceHandle{} for a CPU-only software backend.
func NewBufferManager(device render.DeviceHandle) *BufferManager {
	return &BufferManager{
		device:  device,
		buffers: make(map[BufferHandle]*Buffer),
		pools:   make(map[poolKey][]*Buffer),
		bound:   make(map[BindTarget]BufferHandle),
	}
}

// Create allocates a new, zero-sized, unbound buffer.
func (m *BufferManager) Create(kind BufferKind, usage BufferUsage, label string) (BufferHandle, error) {
	if m.disposed {
		return invalidHandle, ErrDisposed
	}
	m.nextID++
	id := BufferHandle(m.nextID)
	m.buffers[id] = &Buffer{ID: id, Kind: kind, Usage: usage, Label: label}
	gg.Logger().Debug("gpubuf: buffer created", "id", id, "kind", kind.String(), "label", label)
	return id, nil
}

// Write uploads data into the buffer starting at offset, growing its
// backing storage (and CapacityBytes) if needed.
func (m *BufferManager) Write(handle BufferHandle, data []byte, offset int) error {
	if m.disposed {
		return ErrDisposed
	}
	buf, ok := m.buffers[handle]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownHandle, handle)
	}
	needed := offset + len(data)
	if needed > len(buf.Data) {
		grown := make([]byte, needed)
		copy(grown, buf.Data)
		buf.Data = grown
	}
	copy(buf.Data[offset:], data)
	if needed > buf.CapacityBytes {
		buf.CapacityBytes = needed
	}
	return nil
}

// Bind assigns handle to target; a no-op if it is already bound there
// (state-change tracked, matching the batcher's flush bookkeeping).
func (m *BufferManager) Bind(handle BufferHandle, target BindTarget) error {
	if m.disposed {
		return ErrDisposed
	}
	if _, ok := m.buffers[handle]; !ok {
		return fmt.Errorf("%w: %d", ErrUnknownHandle, handle)
	}
	if m.bound[target] == handle {
		return nil
	}
	m.bound[target] = handle
	return nil
}

// Bound reports which handle is currently bound to target, if any.
func (m *BufferManager) Bound(target BindTarget) (BufferHandle, bool) {
	h, ok := m.bound[target]
	return h, ok
}

// AcquireFromPool returns a pooled buffer of at least size bytes
// (rounded up to PoolAlignment), reusing a released buffer of the same
// bucket when one is available, or creating a new one.
func (m *BufferManager) AcquireFromPool(size int, kind BufferKind, usage BufferUsage) (BufferHandle, error) {
	if m.disposed {
		return invalidHandle, ErrDisposed
	}
	aligned := alignUp(size, PoolAlignment)
	key := poolKey{kind: kind, alignedSize: aligned}

	if free := m.pools[key]; len(free) > 0 {
		buf := free[len(free)-1]
		m.pools[key] = free[:len(free)-1]
		buf.pooled = false
		m.buffers[buf.ID] = buf
		return buf.ID, nil
	}

	m.nextID++
	id := BufferHandle(m.nextID)
	buf := &Buffer{
		ID:            id,
		Kind:          kind,
		Usage:         usage,
		Label:         "pool",
		Data:          make([]byte, aligned),
		CapacityBytes: aligned,
		alignedSize:   aligned,
	}
	m.buffers[id] = buf
	return id, nil
}

// ReleaseToPool unbinds handle from every target that referenced it and
// returns it to its bucket's free list, capped at PoolCapPerBucket; buffers
// beyond the cap are freed outright.
func (m *BufferManager) ReleaseToPool(handle BufferHandle, size int) error {
	if m.disposed {
		return ErrDisposed
	}
	buf, ok := m.buffers[handle]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownHandle, handle)
	}

	for target, bound := range m.bound {
		if bound == handle {
			delete(m.bound, target)
		}
	}
	delete(m.buffers, handle)

	aligned := alignUp(size, PoolAlignment)
	key := poolKey{kind: buf.Kind, alignedSize: aligned}
	if len(m.pools[key]) >= PoolCapPerBucket {
		return nil // overflow: freed, not pooled
	}
	buf.pooled = true
	m.pools[key] = append(m.pools[key], buf)
	return nil
}

// PoolSize reports how many free buffers are currently pooled for
// diagnostics and pool non-leak tests.
func (m *BufferManager) PoolSize(kind BufferKind, alignedSize int) int {
	return len(m.pools[poolKey{kind: kind, alignedSize: alignUp(alignedSize, PoolAlignment)}])
}

// Dispose frees every buffer, pooled or not. The manager must not be used
// afterward.
func (m *BufferManager) Dispose() {
	if m.disposed {
		return
	}
	m.buffers = nil
	m.pools = nil
	m.bound = nil
	m.disposed = true
}

func alignUp(size, alignment int) int {
	if size <= 0 {
		return alignment
	}
	return ((size + alignment - 1) / alignment) * alignment
}
