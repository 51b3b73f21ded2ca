// Package xl converts between the document store and Excel workbooks.
// Columns are schema paths in walk order; each row below the header is
// one record.
package xl

import (
	"fmt"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"github.com/dataonlygreater/taxonopy/internal/db"
	"github.com/dataonlygreater/taxonopy/internal/schema"
	"github.com/dataonlygreater/taxonopy/internal/validate"
)

// ListSep delimits multiple values inside a single cell.
const ListSep = "::"

// Dump projects the store onto a workbook at outPath. Fields absent from
// a record leave their cell empty; list values are joined with ListSep.
func Dump(outPath string, tree *schema.Tree, store *db.Store) error {
	paths := tree.Paths()
	if len(paths) == 0 {
		return fmt.Errorf("dump: schema is empty")
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	for col, p := range paths {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("dump: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, p); err != nil {
			return fmt.Errorf("dump: %w", err)
		}
	}

	records := store.ToRecords()
	for rowIdx, id := range store.IDs() {
		r := records[id]
		for col, p := range paths {
			v, ok := r[p]
			if !ok {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(col+1, rowIdx+2)
			if err != nil {
				return fmt.Errorf("dump: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, cellString(v)); err != nil {
				return fmt.Errorf("dump: %w", err)
			}
		}
	}

	if err := f.SaveAs(outPath); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}
	return nil
}

func cellString(v any) string {
	switch list := v.(type) {
	case []any:
		parts := make([]string, 0, len(list))
		for _, item := range list {
			parts = append(parts, db.Stringify(item))
		}
		return strings.Join(parts, ListSep)
	case []string:
		return strings.Join(list, ListSep)
	}
	return db.Stringify(v)
}

// Load fills the database at dbPath from a workbook. Every header cell
// must resolve to a schema path. In strict mode a value failing the
// field's type or choices check aborts the load; otherwise the value is
// dropped with a warning. The store is flushed once at the end, so a
// failed load leaves any existing database file untouched.
func Load(dbPath, xlPath string, tree *schema.Tree, strict, progress bool) error {
	f, err := excelize.OpenFile(xlPath)
	if err != nil {
		return fmt.Errorf("%w: open %s: %v", db.ErrNotFound, xlPath, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return fmt.Errorf("read %s: %w", xlPath, err)
	}
	if len(rows) == 0 {
		return fmt.Errorf("workbook %s has no header row", xlPath)
	}

	nodes := make([]*schema.Node, len(rows[0]))
	for i, p := range rows[0] {
		if p == "" {
			continue
		}
		node, err := tree.FindByPath(p)
		if err != nil {
			return fmt.Errorf("header column %d: %w", i+1, err)
		}
		nodes[i] = node
	}

	store, err := db.Open(dbPath, false)
	if err != nil {
		return err
	}
	defer store.Close()

	var bar *progressbar.ProgressBar
	if progress {
		bar = progressbar.Default(int64(len(rows)-1), "loading records")
	}

	for rowIdx, row := range rows[1:] {
		rec := db.Record{}
		for i, raw := range row {
			if i >= len(nodes) || nodes[i] == nil || raw == "" {
				continue
			}
			v, err := cellValue(nodes[i], raw, strict)
			if err != nil {
				return fmt.Errorf("row %d: %w", rowIdx+2, err)
			}
			if v != nil {
				rec[nodes[i].Path()] = v
			}
		}
		if len(rec) > 0 {
			store.NewRecord(rec)
		}
		if bar != nil {
			bar.Add(1)
		}
	}

	return store.Flush()
}

// cellValue splits and checks one cell. In strict mode the first bad
// value errors out; otherwise bad values are dropped with a warning and
// nil is returned when nothing survives.
func cellValue(node *schema.Node, raw string, strict bool) (any, error) {
	var kept []string
	for _, one := range strings.Split(raw, ListSep) {
		if err := validate.Value(node, one); err != nil {
			if strict {
				return nil, err
			}
			logrus.WithField("path", node.Path()).Warnf("dropping value: %v", err)
			continue
		}
		kept = append(kept, one)
	}
	switch len(kept) {
	case 0:
		return nil, nil
	case 1:
		return kept[0], nil
	}
	list := make([]any, 0, len(kept))
	for _, v := range kept {
		list = append(list, v)
	}
	return list, nil
}
