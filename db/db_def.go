package db

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/liangmanlin/gostruct/gate/pb"
)

const (
	idColumn       = "id"
	recvTimeColumn = "recv_time"
)

type column struct {
	Name string
	Def  string
}

// TabDef 一个消息类型对应的表
type TabDef struct {
	Name    string
	Columns []column
	Pkey    []string
	Version string
	codec   *pb.Codec
}

var versionDef = &TabDef{
	Name: "db_version",
	Columns: []column{
		{"tab_name", "VARCHAR(64) NOT NULL"},
		{"version", "VARCHAR(32) NOT NULL"},
	},
	Pkey: []string{"tab_name"},
}

func newTabDef(c *pb.Codec) (*TabDef, error) {
	fields := c.Fields()
	for _, f := range fields {
		if f.Name == idColumn || f.Name == recvTimeColumn {
			return nil, fmt.Errorf("db: %s field %q collides with a reserved column", c, f.Name)
		}
	}
	def := &TabDef{Name: tableName(c), Pkey: []string{idColumn}, codec: c, Version: tabMd5(c)}
	def.Columns = make([]column, 0, len(fields)+2)
	def.Columns = append(def.Columns, column{idColumn, "BIGINT NOT NULL AUTO_INCREMENT"})
	for i := range fields {
		def.Columns = append(def.Columns, column{fields[i].Name, columnDef(&fields[i])})
	}
	def.Columns = append(def.Columns, column{recvTimeColumn, "DATETIME NOT NULL"})
	return def, nil
}

func tableName(c *pb.Codec) string {
	if c.Name() == "" {
		return fmt.Sprintf("msg_%d", c.ID())
	}
	return fmt.Sprintf("msg_%d_%s", c.ID(), strings.ToLower(c.Name()))
}

func columnDef(f *pb.FieldSpec) string {
	switch f.Type {
	case pb.String:
		return fmt.Sprintf("VARCHAR(%d) NOT NULL", f.Width)
	case pb.Float32:
		return "FLOAT NOT NULL"
	case pb.Float64:
		return "DOUBLE NOT NULL"
	case pb.Int8:
		return "TINYINT NOT NULL"
	case pb.Int16:
		return "SMALLINT NOT NULL"
	case pb.Int32:
		return "INT NOT NULL"
	case pb.UInt8:
		return "TINYINT UNSIGNED NOT NULL"
	case pb.UInt16:
		return "SMALLINT UNSIGNED NOT NULL"
	case pb.UInt32:
		return "INT UNSIGNED NOT NULL"
	case pb.Boolean:
		return "TINYINT(1) NOT NULL"
	}
	panic(fmt.Sprintf("%s not support type %s", f.Name, f.Type))
}

// 字段布局变化时版本号跟着变
func tabMd5(c *pb.Codec) string {
	fields := c.Fields()
	sl := make([]string, 0, len(fields))
	for _, f := range fields {
		sl = append(sl, fmt.Sprintf("%s:%s:%d", f.Name, f.Type, f.Width))
	}
	sum := md5.Sum([]byte(strings.Join(sl, "_")))
	return hex.EncodeToString(sum[:])
}

func (g *Group) GetDef(id uint8) *TabDef {
	g.mux.RLock()
	defer g.mux.RUnlock()
	return g.defs[id]
}

func (g *Group) GetAllDef() []*TabDef {
	g.mux.RLock()
	defer g.mux.RUnlock()
	l := make([]*TabDef, 0, len(g.defs))
	for _, v := range g.defs {
		l = append(l, v)
	}
	return l
}
