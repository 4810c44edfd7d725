package gate

import (
	"errors"
	"net"
	"time"

	"github.com/liangmanlin/gostruct/kernel"
)

func (g *Gate) accept() {
	defer g.wg.Done()
	for {
		conn, err := g.ls.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) || g.isStopped() {
				return
			}
			kernel.ErrorLog("[%s] accept error: %s", g.name, err)
			time.Sleep(10 * time.Millisecond)
			continue
		}
		c := newConnNet(conn, g.opt.maxPackSize)
		g.conns.Store(Conn(c), struct{}{})
		g.handler.open(c)
		_ = c.StartReader(g.inner)
	}
}
