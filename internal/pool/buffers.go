// Package pool provides sync.Pool-backed byte buffers for the wire-level
// hot paths (UDP receive, TCP framing) to reduce per-query GC pressure.
package pool

import "sync"

const (
	// Buffer sizes for different use cases
	SmallBufferSize  = 512   // UDP DNS queries (most common)
	MediumBufferSize = 4096  // EDNS0-sized responses
	LargeBufferSize  = 65535 // Maximum DNS message size
)

var smallBufferPool = sync.Pool{
	New: func() interface{} {
		buf := make([]byte, SmallBufferSize)
		return &buf
	},
}

var mediumBufferPool = sync.Pool{
	New: func() interface{} {
		buf := make([]byte, MediumBufferSize)
		return &buf
	},
}

var largeBufferPool = sync.Pool{
	New: func() interface{} {
		buf := make([]byte, LargeBufferSize)
		return &buf
	},
}

// GetSmallBuffer gets a 512-byte buffer, the default UDP receive size.
func GetSmallBuffer() []byte {
	bufPtr := smallBufferPool.Get().(*[]byte)
	return (*bufPtr)[:SmallBufferSize]
}

// PutSmallBuffer returns a buffer obtained from GetSmallBuffer.
func PutSmallBuffer(buf []byte) {
	if cap(buf) < SmallBufferSize {
		return
	}
	buf = buf[:cap(buf)]
	smallBufferPool.Put(&buf)
}

// GetMediumBuffer gets a 4096-byte buffer.
func GetMediumBuffer() []byte {
	bufPtr := mediumBufferPool.Get().(*[]byte)
	return (*bufPtr)[:MediumBufferSize]
}

// PutMediumBuffer returns a buffer obtained from GetMediumBuffer.
func PutMediumBuffer(buf []byte) {
	if cap(buf) < MediumBufferSize {
		return
	}
	buf = buf[:cap(buf)]
	mediumBufferPool.Put(&buf)
}

// GetLargeBuffer gets a 65535-byte buffer, sized for the TCP transport's
// largest permitted single message.
func GetLargeBuffer() []byte {
	bufPtr := largeBufferPool.Get().(*[]byte)
	return (*bufPtr)[:LargeBufferSize]
}

// PutLargeBuffer returns a buffer obtained from GetLargeBuffer.
func PutLargeBuffer(buf []byte) {
	if cap(buf) < LargeBufferSize {
		return
	}
	buf = buf[:cap(buf)]
	largeBufferPool.Put(&buf)
}

// GetBuffer picks the smallest pooled buffer that satisfies size.
func GetBuffer(size int) []byte {
	switch {
	case size <= SmallBufferSize:
		return GetSmallBuffer()
	case size <= MediumBufferSize:
		return GetMediumBuffer()
	default:
		return GetLargeBuffer()
	}
}

// PutBuffer returns buf to whichever pool matches its capacity; buffers
// of an unrecognized capacity (e.g. a caller-supplied slice) are dropped.
func PutBuffer(buf []byte) {
	switch cap(buf) {
	case SmallBufferSize:
		PutSmallBuffer(buf)
	case MediumBufferSize:
		PutMediumBuffer(buf)
	case LargeBufferSize:
		PutLargeBuffer(buf)
	}
}
