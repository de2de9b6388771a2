package protocol

import "sync"

const (
	scratchSize = 4 << 10
	// Buffers that grew past this are dropped instead of pooled so one large
	// snapshot doesn't pin memory for the life of the process.
	maxPooledScratch = 64 << 10
)

// Scratch buffer pool for reducing GC pressure on encode and decode
var scratchPool = sync.Pool{
	New: func() any {
		b := make([]byte, 0, scratchSize)
		return &b
	},
}

// getScratch retrieves a buffer with length n from the pool
func getScratch(n int) *[]byte {
	bp := scratchPool.Get().(*[]byte)
	if cap(*bp) < n {
		b := make([]byte, n)
		bp = &b
	}
	*bp = (*bp)[:n]
	return bp
}

// putScratch returns a buffer to the pool.
// The length is reset but capacity is preserved
func putScratch(bp *[]byte) {
	if bp == nil || cap(*bp) > maxPooledScratch {
		return
	}
	*bp = (*bp)[:0]
	scratchPool.Put(bp)
}
