package gate

import (
	"sync"

	"github.com/lesismal/nbio"
	"github.com/liangmanlin/gostruct/bpool"
	"github.com/liangmanlin/gostruct/kernel"
)

// ConnNbio nbio的连接，由poller回调OnData，需要自己处理粘包
type ConnNbio struct {
	*nbio.Conn
	framer  *Framer
	mux     sync.Mutex
	session interface{}
}

func newConnNbio(c *nbio.Conn, maxPackSize int) *ConnNbio {
	return &ConnNbio{Conn: c, framer: NewFramer(maxPackSize)}
}

func (c *ConnNbio) Send(buf []byte) (int, error) {
	return c.Conn.Write(buf)
}

func (c *ConnNbio) Close() error {
	return c.Conn.Close()
}

func (c *ConnNbio) SetSession(s interface{}) {
	c.mux.Lock()
	c.session = s
	c.mux.Unlock()
}

func (c *ConnNbio) Session() interface{} {
	c.mux.Lock()
	defer c.mux.Unlock()
	return c.session
}

func (c *ConnNbio) onData(data []byte, h *Handler) {
	c.mux.Lock()
	var packs []*bpool.Buff
	err := c.framer.Feed(data, func(pack *bpool.Buff) {
		packs = append(packs, pack)
	})
	c.mux.Unlock()
	for _, pack := range packs {
		h.message(c, pack)
	}
	if err != nil {
		kernel.ErrorLog("%s close: %s", c.RemoteAddr(), err)
		c.CloseWithError(err)
	}
}

func (c *ConnNbio) release() {
	c.mux.Lock()
	c.framer.Free()
	c.mux.Unlock()
}
