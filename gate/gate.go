package gate

import (
	"net"
	"sync"
	"sync/atomic"

	"github.com/lesismal/nbio"
	"github.com/liangmanlin/gostruct/kernel"
)

var (
	addrMux sync.RWMutex
	addrMap = make(map[string]string)
)

// Gate accepts framed connections and hands every complete message to a
// Handler.
type Gate struct {
	name    string
	opt     *optStruct
	handler *Handler
	inner   *Handler // handler加上连接管理

	ls      net.Listener
	g       *nbio.Gopher
	wg      sync.WaitGroup
	conns   sync.Map
	stopped int32
}

// Start listens on port (0 picks a random one, see GetAddr) and serves
// connections until Stop.
func Start(name string, port int, handler *Handler, opt ...optFun) (*Gate, error) {
	if handler == nil {
		handler = &Handler{}
	}
	g := &Gate{name: name, opt: parseOpt(opt), handler: handler}
	g.inner = &Handler{
		OnMessage: handler.OnMessage,
		OnClose: func(c Conn, err error) {
			g.conns.Delete(c)
			handler.close(c, err)
		},
	}
	var err error
	if g.opt.isUseNbio {
		err = g.startNbio(port)
	} else {
		err = g.startNet(port)
	}
	if err != nil {
		kernel.ErrorLog("[%s] start error: %s", name, err)
		return nil, err
	}
	kernel.ErrorLog("[%s] listening on: [%s]", name, g.Addr())
	return g, nil
}

func (g *Gate) Name() string {
	return g.name
}

func (g *Gate) Addr() string {
	return GetAddr(g.name)
}

// Range 遍历当前的连接，f返回false停止
func (g *Gate) Range(f func(c Conn) bool) {
	g.conns.Range(func(key, _ interface{}) bool {
		return f(key.(Conn))
	})
}

// Stop closes the listener and every open connection. OnClose still fires
// for each of them.
func (g *Gate) Stop() {
	if !atomic.CompareAndSwapInt32(&g.stopped, 0, 1) {
		return
	}
	if g.ls != nil {
		_ = g.ls.Close()
		g.wg.Wait()
	}
	g.Range(func(c Conn) bool {
		_ = c.Close()
		return true
	})
	if g.g != nil {
		g.g.Stop()
	}
	addrMux.Lock()
	delete(addrMap, g.name)
	addrMux.Unlock()
	kernel.ErrorLog("gate %s stop", g.name)
}

func (g *Gate) isStopped() bool {
	return atomic.LoadInt32(&g.stopped) == 1
}

// GetAddr returns the listening address of a running gate.
func GetAddr(name string) string {
	addrMux.RLock()
	defer addrMux.RUnlock()
	return addrMap[name]
}

func setAddr(name, addr string) {
	addrMux.Lock()
	addrMap[name] = addr
	addrMux.Unlock()
}
