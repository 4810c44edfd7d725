package bpool

import (
	"io"
	"math/bits"
	"sync"
)

/*
	收发消息用的缓冲池
	协议总长度是uint16，所以不超过64k的buff都会被重用
	大于64k的直接申请，Free时丢弃
*/
const (
	minSize  = 32
	maxSize  = 64 * 1024
	poolSize = 12 //32,64,128,256,512,1k,2k,4k,8k,16k,32k,64k
)

var pool [poolSize]sync.Pool

type Buff struct {
	b       []byte
	poolIdx int8
}

func init() {
	for i := 0; i < poolSize; i++ {
		size := minSize << i
		idx := int8(i)
		pool[i].New = func() interface{} {
			return &Buff{poolIdx: idx, b: make([]byte, 0, size)}
		}
	}
}

// New returns an empty Buff whose capacity is at least size.
func New(size int) *Buff {
	if size > maxSize {
		return &Buff{poolIdx: -1, b: make([]byte, 0, size)}
	}
	buf := pool[classOf(size)].Get().(*Buff)
	buf.b = buf.b[:0]
	return buf
}

// NewBuf returns a pooled copy of buf.
func NewBuf(buf []byte) *Buff {
	b := New(len(buf))
	b.b = append(b.b, buf...)
	return b
}

func classOf(size int) int {
	if size <= minSize {
		return 0
	}
	return bits.Len32(uint32(size-1)) - 5
}

// 调用该方法后，不能继续使用buff
func (b *Buff) Free() {
	if b == nil || b.poolIdx < 0 {
		return
	}
	pool[b.poolIdx].Put(b)
}

func (b *Buff) Size() int {
	return len(b.b)
}

func (b *Buff) Cap() int {
	return cap(b.b)
}

func (b *Buff) Reset() {
	b.b = b.b[:0]
}

func (b *Buff) ToBytes() []byte {
	return b.b
}

func (b *Buff) Copy() (buf []byte) {
	return append(buf, b.b...)
}

// SetSize 调整长度，不能超过Cap
func (b *Buff) SetSize(size int) {
	b.b = b.b[:size]
}

// Append may move the data into a larger pooled Buff, always use the
// returned value.
func (b *Buff) Append(buf ...byte) *Buff {
	total := len(buf) + len(b.b)
	if total > cap(b.b) {
		grown := New(total)
		grown.b = append(append(grown.b, b.b...), buf...)
		b.Free()
		return grown
	}
	b.b = append(b.b, buf...)
	return b
}

// Consume drops the first n bytes, keeping the rest at the front.
func (b *Buff) Consume(n int) {
	if n >= len(b.b) {
		b.b = b.b[:0]
		return
	}
	m := copy(b.b, b.b[n:])
	b.b = b.b[:m]
}

// ReadN appends exactly n bytes read from r. Cap must leave room for them.
func (b *Buff) ReadN(r io.Reader, n int) (int, error) {
	start := len(b.b)
	if cap(b.b)-start < n {
		return 0, io.ErrShortBuffer
	}
	b.b = b.b[:start+n]
	read, err := io.ReadFull(r, b.b[start:])
	b.b = b.b[:start+read]
	return read, err
}
