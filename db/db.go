package db

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/liangmanlin/gostruct/args"
	"github.com/liangmanlin/gostruct/kernel"
)

// Start opens dbName, makes sure the version table exists and starts
// syncNum insert workers.
func Start(config Config, dbName string, syncNum int) (*Group, error) {
	db, err := sql.Open("mysql", dsn(config, dbName))
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("db %s: %w", dbName, err)
	}
	connNum := config.ConnNum
	if connNum == 0 {
		connNum = Env.ConnNum
	}
	db.SetMaxOpenConns(connNum)
	db.SetMaxIdleConns(connNum)
	g := &Group{db: db, dbName: dbName, defs: make(map[uint8]*TabDef)}
	// 检查数据库表版本号
	if _, err = db.Exec(genCreateSql(versionDef)); err != nil {
		db.Close()
		return nil, err
	}
	startSync(g, syncNum, getSyncTime())
	kernel.ErrorLog("db start on database: %s", dbName)
	return g, nil
}

func dsn(config Config, dbName string) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4", config.User, config.PWD, config.Host, config.Port, dbName)
}

func getSyncTime() time.Duration {
	if v, ok := args.GetInt("db_sync_time"); ok {
		return time.Duration(v) * time.Second
	}
	return Env.SyncTime
}

// Close flushes every queued row and closes the pool.
func (g *Group) Close() error {
	g.mux.Lock()
	if g.closed {
		g.mux.Unlock()
		return nil
	}
	g.closed = true
	for _, w := range g.workers {
		close(w.ch)
	}
	g.mux.Unlock()
	g.wg.Wait()
	kernel.ErrorLog("db %s closed", g.dbName)
	return g.db.Close()
}

func (g *Group) DB() *sql.DB {
	return g.db
}
