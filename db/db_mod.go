package db

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/liangmanlin/gostruct/gate/pb"
	"github.com/liangmanlin/gostruct/kernel"
)

// row 一条待写入的记录，values按表字段顺序，不含id
type row []interface{}

func ModSelectVersion(db *sql.DB, tab string) (string, error) {
	var ver string
	err := db.QueryRow(fmt.Sprintf("select `version` from `%s` where `tab_name` = %s", versionDef.Name, Encode(tab))).Scan(&ver)
	return ver, err
}

func ModReplaceVersion(db *sql.DB, tab, version string) (sql.Result, error) {
	sqlStr := fmt.Sprintf("replace into `%s` values (%s,%s);", versionDef.Name, Encode(tab), Encode(version))
	ret, err := db.Exec(sqlStr)
	if err != nil {
		kernel.ErrorLog("%s", err.Error())
	}
	return ret, err
}

func ModMultiInsert(db *sql.DB, def *TabDef, rows []row) (sql.Result, error) {
	ret, err := db.Exec(genInsertSql(def, rows))
	if err != nil {
		kernel.ErrorLog("%s", err.Error())
	}
	return ret, err
}

func genInsertSql(def *TabDef, rows []row) string {
	cols := make([]string, 0, len(def.Columns)-1)
	for _, col := range def.Columns[1:] {
		cols = append(cols, "`"+col.Name+"`")
	}
	values := make([]string, len(rows))
	vl := make([]string, len(cols))
	for i, r := range rows {
		for j, v := range r {
			vl[j] = Encode(v)
		}
		values[i] = "(" + strings.Join(vl, ",") + ")"
	}
	return fmt.Sprintf("insert into `%s` (%s) values %s;", def.Name, strings.Join(cols, ","), strings.Join(values, ","))
}

// toRow 按表字段顺序取出obj里的值，缺字段返回错误
func toRow(def *TabDef, obj pb.Object, recvTime time.Time) (row, error) {
	fields := def.codec.Fields()
	r := make(row, 0, len(fields)+1)
	for _, f := range fields {
		v, ok := obj[f.Name]
		if !ok {
			return nil, fmt.Errorf("%s: missing field %s", def.Name, f.Name)
		}
		r = append(r, v)
	}
	return append(r, recvTime), nil
}

// Select reads back stored messages of codec, newest first. where may be
// empty.
func (g *Group) Select(c *pb.Codec, where string, limit int) ([]pb.Object, error) {
	def := g.GetDef(c.ID())
	if def == nil {
		return nil, fmt.Errorf("db: table for %s not ensured", c)
	}
	if where == "" {
		where = "1"
	}
	rows, err := g.db.Query(fmt.Sprintf("select * from `%s` where %s order by `%s` desc limit %d", def.Name, where, idColumn, limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	fields := c.Fields()
	var sl []pb.Object
	for rows.Next() {
		var id int64
		var recv []byte
		scan := make([]interface{}, 0, len(fields)+2)
		scan = append(scan, &id)
		for _, f := range fields {
			scan = append(scan, scanTarget(f.Type))
		}
		scan = append(scan, &recv)
		if err = rows.Scan(scan...); err != nil {
			return sl, err
		}
		obj := make(pb.Object, len(fields)+1)
		for i, f := range fields {
			obj[f.Name] = scanValue(scan[i+1])
		}
		obj[recvTimeColumn] = string(recv)
		sl = append(sl, obj)
	}
	return sl, rows.Err()
}

func scanTarget(t pb.FieldType) interface{} {
	switch t {
	case pb.String:
		return new(string)
	case pb.Float32:
		return new(float32)
	case pb.Float64:
		return new(float64)
	case pb.Int8:
		return new(int8)
	case pb.Int16:
		return new(int16)
	case pb.Int32:
		return new(int32)
	case pb.UInt8:
		return new(uint8)
	case pb.UInt16:
		return new(uint16)
	case pb.UInt32:
		return new(uint32)
	case pb.Boolean:
		return new(bool)
	}
	return new(interface{})
}

func scanValue(p interface{}) interface{} {
	switch v := p.(type) {
	case *string:
		return *v
	case *float32:
		return *v
	case *float64:
		return *v
	case *int8:
		return *v
	case *int16:
		return *v
	case *int32:
		return *v
	case *uint8:
		return *v
	case *uint16:
		return *v
	case *uint32:
		return *v
	case *bool:
		return *v
	}
	return nil
}
