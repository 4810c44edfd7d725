package main

import (
	"github.com/liangmanlin/gostruct/args"
	"github.com/liangmanlin/gostruct/db"
	"github.com/liangmanlin/gostruct/gate"
	"github.com/liangmanlin/gostruct/kernel"
	"github.com/liangmanlin/gostruct/proto"
)

type config struct {
	Port      int    `command:"port"`
	Epoll     bool   `command:"epoll"`
	MysqlHost string `command:"mysql_host"`
	MysqlPort int    `command:"mysql_port"`
	MysqlUser string `command:"mysql_user"`
	MysqlPWD  string `command:"mysql_pwd"`
	MysqlDB   string `command:"mysql_db"`
	SyncNum   int    `command:"mysql_sync_num"`
}

func main() {
	cfg := &config{Port: 8888, MysqlPort: 3306, SyncNum: 2}
	args.FillEvn(cfg)
	args.FillEvn(kernel.Env)
	var g *gate.Gate
	var group *db.Group
	kernel.KernelStart(func() {
		s := newServer(proto.NewRegistry())
		if cfg.MysqlHost != "" {
			if group = startDB(cfg); group != nil {
				s.sink = group
			}
		}
		var err error
		if cfg.Epoll {
			g, err = gate.Start("example", cfg.Port, s.handler(), gate.WithUseEpoll())
		} else {
			g, err = gate.Start("example", cfg.Port, s.handler())
		}
		if err != nil {
			kernel.InitStop()
		}
	}, func() {
		if g != nil {
			g.Stop()
		}
		if group != nil {
			group.Close()
		}
	})
}

func startDB(cfg *config) *db.Group {
	config := db.Config{Host: cfg.MysqlHost, Port: cfg.MysqlPort, User: cfg.MysqlUser, PWD: cfg.MysqlPWD}
	group, err := db.Start(config, cfg.MysqlDB, cfg.SyncNum)
	if err != nil {
		kernel.ErrorLog("db disabled: %s", err)
		return nil
	}
	for _, c := range proto.All() {
		if err = group.Ensure(c); err != nil {
			kernel.ErrorLog("db ensure %s: %s", c, err)
		}
	}
	return group
}
