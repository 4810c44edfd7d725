package db

import (
	"database/sql/driver"
	"errors"
	"runtime/debug"
	"time"

	"github.com/liangmanlin/gostruct/kernel"
)

// 最多300条插入
const divSize = 300

type syncWorker struct {
	ch       chan *insertRow
	syncTime time.Duration
	cache    map[*TabDef][]row
	exec     func(def *TabDef, rows []row) error
}

func newSyncWorker(g *Group, syncTime time.Duration) *syncWorker {
	return &syncWorker{
		ch:       make(chan *insertRow, 1000),
		syncTime: syncTime,
		cache:    make(map[*TabDef][]row, 10),
		exec: func(def *TabDef, rows []row) error {
			_, err := ModMultiInsert(g.db, def, rows)
			return err
		},
	}
}

func (s *syncWorker) loop() {
	tick := time.NewTicker(s.syncTime)
	defer tick.Stop()
	for {
		select {
		case r, ok := <-s.ch:
			if !ok {
				s.flush()
				for def, rows := range s.cache {
					kernel.ErrorLog("tab:[%s] lost %d rows on close", def.Name, len(rows))
				}
				kernel.ErrorLog("sync worker terminate")
				return
			}
			s.cache[r.def] = append(s.cache[r.def], r.row)
			if len(s.cache[r.def]) >= divSize {
				s.flushTab(r.def)
			}
		case <-tick.C:
			s.flush()
		}
	}
}

func (s *syncWorker) flush() {
	defs := make([]*TabDef, 0, len(s.cache))
	for def := range s.cache {
		defs = append(defs, def)
	}
	for _, def := range defs {
		s.flushTab(def)
	}
}

func (s *syncWorker) flushTab(def *TabDef) {
	rows := s.cache[def]
	delete(s.cache, def)
	if fail := s.multiInsert(def, rows); len(fail) > 0 {
		// 说明断开了，等下次再写
		s.cache[def] = fail
	}
}

func (s *syncWorker) multiInsert(def *TabDef, rows []row) (fail []row) {
	defer func() {
		if p := recover(); p != nil {
			kernel.ErrorLog("catch error:%s,Stack:%s", p, debug.Stack())
		}
	}()
	for _, span := range chunks(len(rows), divSize) {
		tmp := rows[span[0]:span[1]]
		if err := s.exec(def, tmp); err != nil && errors.Is(err, driver.ErrBadConn) {
			fail = append(fail, tmp...)
		}
	}
	return
}

// chunks splits n items into [start,end) spans of at most size.
func chunks(n, size int) [][2]int {
	spans := make([][2]int, 0, (n+size-1)/size)
	for start := 0; start < n; start += size {
		end := start + size
		if end > n {
			end = n
		}
		spans = append(spans, [2]int{start, end})
	}
	return spans
}
