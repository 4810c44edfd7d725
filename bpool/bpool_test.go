package bpool

import (
	"bytes"
	"io"
	"testing"
)

func TestClass(t *testing.T) {
	tests := []struct {
		size, cap int
	}{
		{0, 32}, {1, 32}, {32, 32}, {33, 64}, {100, 128}, {4096, 4096}, {4097, 8192}, {maxSize, maxSize},
	}
	for _, tt := range tests {
		b := New(tt.size)
		if b.Cap() != tt.cap || b.Size() != 0 {
			t.Errorf("New(%d): cap %d size %d want cap %d", tt.size, b.Cap(), b.Size(), tt.cap)
		}
		b.Free()
	}
	big := New(maxSize + 1)
	if big.poolIdx != -1 || big.Cap() != maxSize+1 {
		t.Errorf("oversized buff: idx %d cap %d", big.poolIdx, big.Cap())
	}
	big.Free()
}

func TestAppendGrows(t *testing.T) {
	b := New(4)
	b = b.Append(bytes.Repeat([]byte{1}, 30)...)
	b = b.Append(2, 3, 4)
	if b.Size() != 33 || b.Cap() != 64 {
		t.Fatalf("size %d cap %d", b.Size(), b.Cap())
	}
	if got := b.ToBytes()[30:]; !bytes.Equal(got, []byte{2, 3, 4}) {
		t.Errorf("tail % x", got)
	}
	b.Free()
}

func TestConsume(t *testing.T) {
	b := NewBuf([]byte("abcdef"))
	b.Consume(2)
	if string(b.ToBytes()) != "cdef" {
		t.Errorf("got %q", b.ToBytes())
	}
	b.Consume(10)
	if b.Size() != 0 {
		t.Errorf("size %d", b.Size())
	}
	b.Free()
}

func TestReadN(t *testing.T) {
	b := NewBuf([]byte{9})
	n, err := b.ReadN(bytes.NewReader([]byte("hello world")), 5)
	if err != nil || n != 5 || string(b.ToBytes()[1:]) != "hello" {
		t.Errorf("ReadN = %d, %v, %q", n, err, b.ToBytes())
	}
	n, err = b.ReadN(bytes.NewReader([]byte("ab")), 5)
	if err != io.ErrUnexpectedEOF || n != 2 || b.Size() != 8 {
		t.Errorf("short ReadN = %d, %v, size %d", n, err, b.Size())
	}
	if _, err = b.ReadN(bytes.NewReader(nil), 100); err != io.ErrShortBuffer {
		t.Errorf("over cap: %v", err)
	}
	b.Free()
}

func BenchmarkNewAndFree(b *testing.B) {
	for i := 0; i < b.N; i++ {
		buf := New(128)
		buf.Free()
	}
}
