package protocol

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScratchPool_GetPut(t *testing.T) {
	t.Parallel()

	bp := getScratch(10)
	assert.Len(t, *bp, 10)
	assert.GreaterOrEqual(t, cap(*bp), scratchSize)

	copy(*bp, "0123456789")
	putScratch(bp)

	// Length is reset on reuse
	bp2 := getScratch(0)
	assert.Empty(t, *bp2)
	putScratch(bp2)
}

func TestScratchPool_Grow(t *testing.T) {
	t.Parallel()

	bp := getScratch(scratchSize * 4)
	assert.Len(t, *bp, scratchSize*4)
	putScratch(bp)
}

func TestScratchPool_PutNilOrOversized(t *testing.T) {
	t.Parallel()

	// Should not panic
	assert.NotPanics(t, func() {
		putScratch(nil)
		big := make([]byte, 0, maxPooledScratch+1)
		putScratch(&big)
	})
}

func TestScratchPool_Concurrent(t *testing.T) {
	t.Parallel()

	var wg sync.WaitGroup
	for i := range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			bp := getScratch(i)
			for j := range *bp {
				(*bp)[j] = byte(i)
			}
			for _, b := range *bp {
				assert.Equal(t, byte(i), b)
			}
			putScratch(bp)
		}()
	}
	wg.Wait()
}
