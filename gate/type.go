package gate

import (
	"errors"
	"fmt"
	"net"

	"github.com/liangmanlin/gostruct/bpool"
)

type ErrType int

const (
	ErrReadErr ErrType = iota + 1
	ErrPackSize
	ErrClosed
)

type TcpError struct {
	ErrType ErrType
	Err     error
}

func (e *TcpError) Error() string {
	switch e.ErrType {
	case ErrPackSize:
		return fmt.Sprintf("tcp bad pack size: %v", e.Err)
	case ErrClosed:
		return "tcp closed"
	}
	return fmt.Sprintf("tcp read error: %v", e.Err)
}

func (e *TcpError) Unwrap() error {
	return e.Err
}

var (
	ErrSocketClosed  = errors.New("socket closed")
	ErrSocketReading = errors.New("socket is reading")
	ErrPartialFrame  = errors.New("read stopped inside a frame, connection closed")
	ErrNbioPort      = errors.New("epoll engine needs a fixed port")
)

// Conn is a connection accepted by a Gate or returned by Dial. Send takes a
// complete message, preamble included.
type Conn interface {
	Send(buf []byte) (int, error)
	Close() error
	RemoteAddr() net.Addr
	SetSession(s interface{})
	Session() interface{}
}

// Handler 连接事件回调，都可以为nil
// OnMessage 每次收到一个完整的消息，pack归回调所有，用完需要Free
// OnClose 正常关闭时err为nil
type Handler struct {
	OnOpen    func(c Conn)
	OnMessage func(c Conn, pack *bpool.Buff)
	OnClose   func(c Conn, err error)
}

func (h *Handler) open(c Conn) {
	if h.OnOpen != nil {
		h.OnOpen(c)
	}
}

func (h *Handler) message(c Conn, pack *bpool.Buff) {
	if h.OnMessage != nil {
		h.OnMessage(c, pack)
		return
	}
	pack.Free()
}

func (h *Handler) close(c Conn, err error) {
	if h.OnClose != nil {
		h.OnClose(c, err)
	}
}
