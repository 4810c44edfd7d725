package main

import (
	"github.com/liangmanlin/gostruct/bpool"
	"github.com/liangmanlin/gostruct/gate"
	"github.com/liangmanlin/gostruct/gate/pb"
	"github.com/liangmanlin/gostruct/kernel"
	"github.com/liangmanlin/gostruct/proto"
)

type sink interface {
	SyncInsert(c *pb.Codec, obj pb.Object) error
}

type server struct {
	reg  *pb.Registry
	sink sink
}

func newServer(reg *pb.Registry) *server {
	return &server{reg: reg}
}

func (s *server) handler() *gate.Handler {
	return &gate.Handler{
		OnOpen: func(c gate.Conn) {
			kernel.ErrorLog("[%s] connected", c.RemoteAddr())
		},
		OnMessage: s.onMessage,
		OnClose: func(c gate.Conn, err error) {
			if err != nil {
				kernel.ErrorLog("[%s] closed: %s", c.RemoteAddr(), err)
				return
			}
			kernel.ErrorLog("[%s] closed", c.RemoteAddr())
		},
	}
}

func (s *server) onMessage(c gate.Conn, pack *bpool.Buff) {
	defer pack.Free()
	buf := pack.ToBytes()
	id, obj, err := s.reg.Dispatch(buf)
	if err != nil {
		// 未注册的消息只记录，不断开
		kernel.ErrorLog("[%s] dispatch id %d: %s", c.RemoteAddr(), id, err)
		return
	}
	codec := s.reg.Lookup(id)
	kernel.ErrorLog("[%s] %v", codec.Name(), obj)
	if s.sink != nil {
		if err = s.sink.SyncInsert(codec, obj); err != nil {
			kernel.ErrorLog("store %s: %s", codec, err)
		}
	}
	if id == proto.CharacterID {
		if _, err = c.Send(buf); err != nil {
			kernel.ErrorLog("[%s] echo: %s", c.RemoteAddr(), err)
		}
	}
}
