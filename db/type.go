package db

import (
	"database/sql"
	"sync"
	"time"
)

type env struct {
	ConnNum  int
	SyncTime time.Duration
}

var Env = &env{
	ConnNum:  10,
	SyncTime: 30 * time.Second,
}

type Config struct {
	Host    string
	Port    int
	User    string
	PWD     string
	ConnNum int
}

// Group 一个数据库连接池以及它的写入协程
type Group struct {
	db      *sql.DB
	dbName  string
	mux     sync.RWMutex
	defs    map[uint8]*TabDef
	workers []*syncWorker
	wg      sync.WaitGroup
	closed  bool
}
