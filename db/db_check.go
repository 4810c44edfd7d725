package db

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/liangmanlin/gostruct/gate/pb"
	"github.com/liangmanlin/gostruct/kernel"
)

// Ensure creates (or migrates) the table for codec. Rows for a codec can
// only be queued after Ensure succeeded.
func (g *Group) Ensure(c *pb.Codec) error {
	def, err := newTabDef(c)
	if err != nil {
		return err
	}
	old, err := ModSelectVersion(g.db, def.Name)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		if _, err = g.db.Exec(genCreateSql(def)); err != nil {
			return fmt.Errorf("create %s: %w", def.Name, err)
		}
	case err != nil:
		return err
	case old != def.Version:
		kernel.ErrorLog("tab:[%s] check fields,ver: %s,old ver: %s", def.Name, def.Version, old)
		if err = g.checkField(def); err != nil {
			return fmt.Errorf("alter %s: %w", def.Name, err)
		}
	}
	if _, err = ModReplaceVersion(g.db, def.Name, def.Version); err != nil {
		return err
	}
	g.mux.Lock()
	g.defs[c.ID()] = def
	g.mux.Unlock()
	return nil
}

func genCreateSql(def *TabDef) string {
	fsl := make([]string, 0, len(def.Columns)+1)
	for _, col := range def.Columns {
		fsl = append(fsl, fmt.Sprintf("`%s` %s", col.Name, col.Def))
	}
	if len(def.Pkey) > 0 {
		psl := make([]string, 0, len(def.Pkey))
		for _, pk := range def.Pkey {
			psl = append(psl, "`"+pk+"`")
		}
		fsl = append(fsl, fmt.Sprintf("PRIMARY KEY(%s)", strings.Join(psl, ",")))
	}
	return fmt.Sprintf("create table if not exists `%s` (%s) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;", def.Name, strings.Join(fsl, ",\n"))
}

func (g *Group) checkField(def *TabDef) error {
	rows, err := g.db.Query(fmt.Sprintf("desc `%s`;", def.Name))
	if err != nil {
		return err
	}
	existing := make([]string, 0, len(def.Columns))
	for rows.Next() {
		var field string
		var a, b, c, d, e sql.NullString
		if err = rows.Scan(&field, &a, &b, &c, &d, &e); err != nil {
			rows.Close()
			return err
		}
		existing = append(existing, field)
	}
	rows.Close()
	if sqlStr := genAlterSql(def, existing); sqlStr != "" {
		_, err = g.db.Exec(sqlStr)
	}
	return err
}

// genAlterSql 新增的字段加上，删掉的字段drop，保留的字段按新类型modify
func genAlterSql(def *TabDef, existing []string) string {
	fmap := make(map[string]bool, len(existing))
	for _, f := range existing {
		fmap[f] = true
	}
	var alter []string
	for i, col := range def.Columns {
		if col.Name == idColumn {
			delete(fmap, col.Name)
			continue
		}
		if fmap[col.Name] {
			alter = append(alter, fmt.Sprintf("MODIFY `%s` %s", col.Name, col.Def))
			delete(fmap, col.Name)
		} else {
			alter = append(alter, fmt.Sprintf("ADD `%s` %s AFTER `%s`", col.Name, col.Def, def.Columns[i-1].Name))
		}
	}
	for _, f := range existing {
		if fmap[f] {
			alter = append(alter, fmt.Sprintf("DROP `%s`", f))
		}
	}
	if len(alter) == 0 {
		return ""
	}
	return fmt.Sprintf("ALTER TABLE `%s` %s;", def.Name, strings.Join(alter, ","))
}
