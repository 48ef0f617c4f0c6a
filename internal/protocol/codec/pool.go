package codec

import "sync"

const defaultBufferSize = 256

// 复用编码缓冲区，降低 GC 压力
var bufferPool = sync.Pool{
	New: func() any {
		b := make([]byte, 0, defaultBufferSize)
		return &b
	},
}

// GetBuffer 从池中取出一个空缓冲区
func GetBuffer() *[]byte {
	b := bufferPool.Get().(*[]byte)
	*b = (*b)[:0]
	return b
}

// PutBuffer 归还缓冲区，保留容量
func PutBuffer(b *[]byte) {
	if b == nil {
		return
	}
	*b = (*b)[:0]
	bufferPool.Put(b)
}
