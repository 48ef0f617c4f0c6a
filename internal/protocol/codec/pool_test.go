package codec

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBufferPool_GetPut(t *testing.T) {
	t.Parallel()

	buf := GetBuffer()
	assert.NotNil(t, buf)
	assert.Empty(t, *buf)

	*buf = append(*buf, 1, 2, 3)
	PutBuffer(buf)

	buf2 := GetBuffer()
	assert.Empty(t, *buf2, "buffer should be reset")
	PutBuffer(buf2)
}

func TestBufferPool_PutNil(t *testing.T) {
	t.Parallel()

	assert.NotPanics(t, func() {
		PutBuffer(nil)
	})
}

func TestBufferPool_Concurrent(t *testing.T) {
	t.Parallel()

	var wg sync.WaitGroup
	for range 50 {
		wg.Go(func() {
			b := GetBuffer()
			*b = append(*b, 'x')
			PutBuffer(b)
		})
	}
	wg.Wait()
}
