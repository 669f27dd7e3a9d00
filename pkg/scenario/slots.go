package scenario

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/tendril/pkg/domain"
	"github.com/xuri/excelize/v2"
)

// Column headers of the slot table.
const (
	ColumnSlot   = "slot"
	ColumnQuery  = "query"
	ColumnValues = "values"
)

// LoadSlotTable reads slot definitions from a .csv or .xlsx table with the
// columns slot, query and values, in any order.
func LoadSlotTable(path string) (*Registry, error) {
	var rows [][]string
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		rows, err = readXLSX(path)
	case ".csv":
		rows, err = readCSV(path)
	default:
		return nil, fmt.Errorf("unsupported slot table format: %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read slot table: %w", err)
	}

	defs, err := ParseSlotRows(rows)
	if err != nil {
		return nil, fmt.Errorf("slot table %s: %w", path, err)
	}
	return NewRegistry(defs...)
}

// ParseSlotRows maps a header row plus data rows into slot definitions.
// Rows with an empty slot cell are skipped.
func ParseSlotRows(rows [][]string) ([]domain.SlotDefinition, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("table is empty")
	}

	index := map[string]int{ColumnSlot: -1, ColumnQuery: -1, ColumnValues: -1}
	for i, header := range rows[0] {
		key := strings.ToLower(strings.TrimSpace(header))
		if _, known := index[key]; known {
			index[key] = i
		}
	}
	for _, col := range []string{ColumnSlot, ColumnQuery, ColumnValues} {
		if index[col] < 0 {
			return nil, fmt.Errorf("missing column '%s'", col)
		}
	}

	cell := func(row []string, col string) string {
		i := index[col]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	defs := make([]domain.SlotDefinition, 0, len(rows)-1)
	for _, row := range rows[1:] {
		name := cell(row, ColumnSlot)
		if name == "" {
			continue
		}
		defs = append(defs, domain.SlotDefinition{
			Name:    name,
			Prompt:  cell(row, ColumnQuery),
			Pattern: cell(row, ColumnValues),
		})
	}
	return defs, nil
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	return r.ReadAll()
}

func readXLSX(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	return f.GetRows(sheets[0])
}
