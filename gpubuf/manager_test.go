package gpubuf

import (
	"testing"

	"github.com/gogpu/gg/render"
)

func newTestManager() *BufferManager {
	return NewBufferManager(render.NullDeviceHandle{})
}

func TestCreateAndWrite(t *testing.T) {
	m := newTestManager()
	h, err := m.Create(KindVertex, UsageDynamic, "test")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := m.Write(h, []byte{1, 2, 3, 4}, 0); err != nil {
		t.Fatalf("Write: %v", err)
	}
	buf := m.buffers[h]
	if buf.CapacityBytes != 4 {
		t.Errorf("CapacityBytes = %d, want 4", buf.CapacityBytes)
	}
}

func TestWriteUnknownHandle(t *testing.T) {
	m := newTestManager()
	if err := m.Write(BufferHandle(999), []byte{1}, 0); err == nil {
		t.Error("Write on unknown handle should error")
	}
}

func TestBindIsIdempotent(t *testing.T) {
	m := newTestManager()
	h, _ := m.Create(KindVertex, UsageStatic, "v")
	target := BindTarget{Kind: KindVertex, Slot: 0}

	if err := m.Bind(h, target); err != nil {
		t.Fatalf("Bind: %v", err)
	}
	if err := m.Bind(h, target); err != nil {
		t.Fatalf("second Bind (no-op) should not error: %v", err)
	}
	bound, ok := m.Bound(target)
	if !ok || bound != h {
		t.Errorf("Bound() = (%v, %v), want (%v, true)", bound, ok, h)
	}
}

func TestAlignUp(t *testing.T) {
	cases := map[int]int{0: 256, 1: 256, 256: 256, 257: 512, 512: 512}
	for in, want := range cases {
		if got := alignUp(in, PoolAlignment); got != want {
			t.Errorf("alignUp(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestPoolReuse(t *testing.T) {
	m := newTestManager()
	h1, _ := m.AcquireFromPool(1000, KindVertex, UsageStream)
	if err := m.ReleaseToPool(h1, 1000); err != nil {
		t.Fatalf("ReleaseToPool: %v", err)
	}
	if got := m.PoolSize(KindVertex, 1000); got != 1 {
		t.Fatalf("PoolSize after release = %d, want 1", got)
	}

	h2, err := m.AcquireFromPool(1000, KindVertex, UsageStream)
	if err != nil {
		t.Fatalf("AcquireFromPool: %v", err)
	}
	if h2 != h1 {
		t.Error("expected the released buffer to be reused")
	}
	if got := m.PoolSize(KindVertex, 1000); got != 0 {
		t.Errorf("PoolSize after reacquire = %d, want 0", got)
	}
}

// Pool non-leak: releasing N buffers into one bucket never grows the pool
// past PoolCapPerBucket, regardless of N.
func TestPoolCapOverflowIsFreed(t *testing.T) {
	m := newTestManager()
	for i := 0; i < PoolCapPerBucket+20; i++ {
		h, _ := m.AcquireFromPool(256, KindIndex, UsageStream)
		if err := m.ReleaseToPool(h, 256); err != nil {
			t.Fatalf("ReleaseToPool iteration %d: %v", i, err)
		}
	}
	if got := m.PoolSize(KindIndex, 256); got != PoolCapPerBucket {
		t.Errorf("PoolSize = %d, want capped at %d", got, PoolCapPerBucket)
	}
}

func TestReleaseClearsBinding(t *testing.T) {
	m := newTestManager()
	h, _ := m.Create(KindUniform, UsageDynamic, "u")
	target := BindTarget{Kind: KindUniform, Slot: 2}
	_ = m.Bind(h, target)

	if err := m.ReleaseToPool(h, 64); err != nil {
		t.Fatalf("ReleaseToPool: %v", err)
	}
	if _, ok := m.Bound(target); ok {
		t.Error("binding should be cleared when its buffer is released")
	}
}

func TestDisposeRejectsFurtherUse(t *testing.T) {
	m := newTestManager()
	h, _ := m.Create(KindVertex, UsageStatic, "v")
	m.Dispose()

	if err := m.Write(h, []byte{1}, 0); err != ErrDisposed {
		t.Errorf("Write after Dispose = %v, want ErrDisposed", err)
	}
	if _, err := m.Create(KindVertex, UsageStatic, "v2"); err != ErrDisposed {
		t.Errorf("Create after Dispose should return ErrDisposed, got %v", err)
	}

	// Dispose must be idempotent.
	m.Dispose()
}
