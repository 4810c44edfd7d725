package gate

import (
	"github.com/liangmanlin/gostruct/bpool"
	"github.com/liangmanlin/gostruct/gate/pb"
)

// Framer splits a byte stream into messages using the length in each
// preamble. It handles partial and coalesced reads and is not safe for
// concurrent use.
type Framer struct {
	buf         *bpool.Buff
	maxPackSize int
}

func NewFramer(maxPackSize int) *Framer {
	if maxPackSize <= 0 || maxPackSize > pb.MaxLength {
		maxPackSize = pb.MaxLength
	}
	return &Framer{maxPackSize: maxPackSize}
}

// Feed 处理粘包和半包，每个完整的消息调用一次emit，pack归emit所有
// 返回错误后Framer不能继续使用
func (f *Framer) Feed(data []byte, emit func(pack *bpool.Buff)) error {
	if f.buf == nil {
		f.buf = bpool.New(4 * 1024)
	}
	f.buf = f.buf.Append(data...)
	b := f.buf.ToBytes()
	pos := 0
	defer func() { f.buf.Consume(pos) }()
	for {
		size, err := pb.PeekLength(b[pos:])
		if err != nil {
			// 长度都还没收全
			return nil
		}
		if err = checkPackSize(size, f.maxPackSize); err != nil {
			return err
		}
		if len(b)-pos < size {
			return nil
		}
		emit(bpool.NewBuf(b[pos : pos+size]))
		pos += size
	}
}

// Buffered returns the number of bytes waiting for the rest of a message.
func (f *Framer) Buffered() int {
	if f.buf == nil {
		return 0
	}
	return f.buf.Size()
}

func (f *Framer) Free() {
	if f.buf != nil {
		f.buf.Free()
		f.buf = nil
	}
}
