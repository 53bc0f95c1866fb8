// Package secure provides locked, zero-on-destroy memory for secret
// material. The generate command holds the master secret it draws in it;
// the core engine packages work on plain byte slices.
package secure

import (
	"runtime"
	"sync"
)

// Bytes wraps a sensitive byte slice, attempting to mlock its backing
// memory and guaranteeing it is zeroed on Destroy (and, as a safety net,
// on garbage collection).
type Bytes struct {
	data   []byte
	locked bool
	mu     sync.Mutex
}

// New allocates a zeroed Bytes of the given size, mlocking it when the
// platform allows.
func New(size int) *Bytes {
	data := make([]byte, size)
	b := &Bytes{data: data, locked: mlock(data)}
	runtime.SetFinalizer(b, func(s *Bytes) { s.Destroy() })
	return b
}

// FromSlice copies data into a freshly allocated, locked Bytes; the
// caller retains ownership of the original slice.
func FromSlice(data []byte) *Bytes {
	b := New(len(data))
	copy(b.data, data)
	return b
}

// Bytes returns the underlying slice, or nil once Destroy has run.
func (b *Bytes) Bytes() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.data
}

// IsLocked reports whether the backing memory is currently mlocked.
func (b *Bytes) IsLocked() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.locked
}

// Len returns the length of the held data, or 0 once destroyed.
func (b *Bytes) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.data)
}

// Destroy zeros and unlocks the memory. Safe to call more than once.
func (b *Bytes) Destroy() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.data == nil {
		return
	}
	for i := range b.data {
		b.data[i] = 0
	}
	if b.locked {
		munlock(b.data)
		b.locked = false
	}
	b.data = nil
	runtime.SetFinalizer(b, nil)
}
