package capture

import "sync"

// Reusable plane buffers. Every captured frame needs a luma plane and two
// chroma planes; at 30 fps the allocations add up, so released frames hand
// their buffers back here and the converter picks them up again.
//
// A buffer taken from the pool carries stale bytes. The converter writes
// every byte of the slice it returns (padding included), so callers never
// observe the previous frame's content.
var planePool sync.Pool // stores *[]byte

// acquirePlane returns a byte slice of exactly n bytes, reusing a pooled
// buffer when one with enough capacity is available.
func acquirePlane(n int) []byte {
	if n <= 0 {
		return nil
	}
	if v := planePool.Get(); v != nil {
		buf := *(v.(*[]byte))
		if cap(buf) >= n {
			return buf[:n]
		}
	}
	return make([]byte, n)
}

// recyclePlane returns buf to the pool. The caller must not touch buf afterwards.
func recyclePlane(buf []byte) {
	if cap(buf) == 0 {
		return
	}
	buf = buf[:cap(buf)]
	planePool.Put(&buf)
}

// recyclePlanes returns a release func that recycles every plane buffer of f.
func recyclePlanes(f *Frame) func() {
	return func() {
		for i := range f.Planes {
			recyclePlane(f.Planes[i].Data)
			f.Planes[i].Data = nil
		}
	}
}
