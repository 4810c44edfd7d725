package gate

import (
	"fmt"
	"net"
	"strconv"

	"github.com/lesismal/nbio"
	"github.com/liangmanlin/gostruct/kernel"
)

func (g *Gate) startNet(port int) error {
	ls, err := net.Listen("tcp", fmt.Sprintf("0.0.0.0:%d", port))
	if err != nil {
		return err
	}
	// 假如port=0，那么端口是随机的，记录一下
	setAddr(g.name, ls.Addr().String())
	g.ls = ls
	for i := 0; i < g.opt.acceptNum; i++ {
		g.wg.Add(1)
		go g.accept()
	}
	return nil
}

func (g *Gate) startNbio(port int) error {
	if port <= 0 {
		// nbio不返回实际绑定的端口，GetAddr无法记录
		return ErrNbioPort
	}
	addr := "0.0.0.0:" + strconv.Itoa(port)
	gopher := nbio.NewGopher(nbio.Config{
		Name:           g.name,
		Network:        "tcp",
		Addrs:          []string{addr},
		ReadBufferSize: 4 * 1024,
	})
	gopher.OnOpen(func(c *nbio.Conn) {
		conn := newConnNbio(c, g.opt.maxPackSize)
		c.SetSession(conn)
		g.conns.Store(Conn(conn), struct{}{})
		g.handler.open(conn)
	})
	gopher.OnData(func(c *nbio.Conn, data []byte) {
		if conn, ok := c.Session().(*ConnNbio); ok {
			conn.onData(data, g.handler)
		}
	})
	gopher.OnClose(func(c *nbio.Conn, err error) {
		conn, ok := c.Session().(*ConnNbio)
		if !ok {
			return
		}
		g.conns.Delete(Conn(conn))
		conn.release()
		g.handler.close(conn, err)
	})
	if err := gopher.Start(); err != nil {
		return err
	}
	g.g = gopher
	setAddr(g.name, addr)
	kernel.ErrorLog("gate start on nbio")
	return nil
}
