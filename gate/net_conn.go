package gate

import (
	"fmt"
	"io"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/liangmanlin/gostruct/bpool"
)

// ConnNet 标准库net实现的连接，每个连接一个读协程
type ConnNet struct {
	net.Conn
	maxPackSize int
	closed      int32
	mux         sync.Mutex
	reading     bool
	session     interface{}
}

func newConnNet(conn net.Conn, maxPackSize int) *ConnNet {
	return &ConnNet{Conn: conn, maxPackSize: maxPackSize}
}

func (c *ConnNet) Send(buf []byte) (int, error) {
	if c.isClosed() {
		return 0, ErrSocketClosed
	}
	return c.Conn.Write(buf)
}

// Recv 同步读取一个消息，timeout<=0表示不超时
// 已经StartReader的连接不能调用
// 一个字节都没读到就超时，连接还可以继续用；读到一半出错会关闭连接，返回ErrPartialFrame
func (c *ConnNet) Recv(timeout time.Duration) (*bpool.Buff, error) {
	c.mux.Lock()
	reading := c.reading
	c.mux.Unlock()
	if reading {
		return nil, ErrSocketReading
	}
	if c.isClosed() {
		return nil, ErrSocketClosed
	}
	if timeout > 0 {
		_ = c.Conn.SetReadDeadline(time.Now().Add(timeout))
		defer c.Conn.SetReadDeadline(time.Time{})
	}
	r := &countReader{r: c.Conn}
	pack, err := ReadPack(r, c.maxPackSize)
	if err != nil && r.n > 0 {
		// 读了半个包，后面的数据已经错位了
		_ = c.Close()
		return nil, fmt.Errorf("%w: %v", ErrPartialFrame, err)
	}
	return pack, err
}

type countReader struct {
	r io.Reader
	n int
}

func (c *countReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += n
	return n, err
}

// StartReader hands every following message to h from a new goroutine.
func (c *ConnNet) StartReader(h *Handler) error {
	c.mux.Lock()
	if c.reading {
		c.mux.Unlock()
		return ErrSocketReading
	}
	c.reading = true
	c.mux.Unlock()
	go startReader(c, h)
	return nil
}

func (c *ConnNet) Close() error {
	if !atomic.CompareAndSwapInt32(&c.closed, 0, 1) {
		return nil
	}
	return c.Conn.Close()
}

func (c *ConnNet) isClosed() bool {
	return atomic.LoadInt32(&c.closed) == 1
}

func (c *ConnNet) SetSession(s interface{}) {
	c.mux.Lock()
	c.session = s
	c.mux.Unlock()
}

func (c *ConnNet) Session() interface{} {
	c.mux.Lock()
	defer c.mux.Unlock()
	return c.session
}
