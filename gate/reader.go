package gate

import (
	"errors"
	"fmt"
	"io"
	"runtime/debug"

	"github.com/liangmanlin/gostruct/bpool"
	"github.com/liangmanlin/gostruct/gate/pb"
	"github.com/liangmanlin/gostruct/kernel"
)

// ReadPack reads one complete message from r. The length comes from the
// message's own preamble.
func ReadPack(r io.Reader, maxPackSize int) (*bpool.Buff, error) {
	var head [2]byte
	if _, err := io.ReadFull(r, head[:]); err != nil {
		return nil, err
	}
	size, _ := pb.PeekLength(head[:])
	if err := checkPackSize(size, maxPackSize); err != nil {
		return nil, err
	}
	pack := bpool.New(size).Append(head[:]...)
	if _, err := pack.ReadN(r, size-len(head)); err != nil {
		pack.Free()
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, err
	}
	return pack, nil
}

func checkPackSize(size, maxPackSize int) error {
	if size < pb.PreambleSize || size > maxPackSize {
		return &TcpError{ErrType: ErrPackSize, Err: fmt.Errorf("%d not in [%d,%d]", size, pb.PreambleSize, maxPackSize)}
	}
	return nil
}

func startReader(c *ConnNet, h *Handler) {
	var err error
	defer func() {
		if p := recover(); p != nil {
			kernel.ErrorLog("catch error:%s,Stack:%s", p, debug.Stack())
			err = fmt.Errorf("reader panic: %v", p)
		}
		_ = c.Close()
		h.close(c, err)
	}() // catch the error
	for {
		pack, e := ReadPack(c.Conn, c.maxPackSize)
		if e != nil {
			if !errors.Is(e, io.EOF) && !c.isClosed() {
				err = wrapReadErr(e)
			}
			return
		}
		h.message(c, pack)
	}
}

func wrapReadErr(err error) error {
	var te *TcpError
	if errors.As(err, &te) {
		return err
	}
	return &TcpError{ErrType: ErrReadErr, Err: err}
}
