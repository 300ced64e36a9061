// Package excelize reads and writes reference tables as Excel workbooks,
// one sheet per table, for analysts who review results in a spreadsheet.
package excelize

import (
	"github.com/seaward/citetrack"
	"github.com/xuri/excelize/v2"
)

// SheetName returns the workbook sheet used for a table kind.
func SheetName(kind citetrack.EntityKind) string {
	switch kind {
	case citetrack.KindTopic:
		return "Topics"
	case citetrack.KindVessel:
		return "Vessels"
	case citetrack.KindPlant:
		return "Plants"
	case citetrack.KindOwner:
		return "Owners"
	default:
		return string(kind)
	}
}

// WriteWorkbook writes the given tables to a single workbook at path,
// one sheet per table. Sheets are written in the order given.
func WriteWorkbook(path string, tables []*citetrack.Table) error {
	if len(tables) == 0 {
		return citetrack.Errorf(citetrack.EINVALID, "no tables to write")
	}

	f := excelize.NewFile()
	defer f.Close()

	for i, table := range tables {
		sheet := SheetName(table.Kind)
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				return err
			}
		} else {
			if _, err := f.NewSheet(sheet); err != nil {
				return err
			}
		}
		if err := writeSheet(f, sheet, table); err != nil {
			return err
		}
	}

	return f.SaveAs(path)
}

func writeSheet(f *excelize.File, sheet string, table *citetrack.Table) error {
	if err := setRow(f, sheet, 1, table.Columns); err != nil {
		return err
	}
	for i, row := range table.Rows {
		if err := setRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, rowNum int, values []string) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, rowNum)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
	}
	return nil
}

// ReadTable loads one table from the workbook sheet for the schema's
// kind. The header row must contain the schema's name column; the links
// column is appended when absent, matching CSV loading behavior.
func ReadTable(path string, schema citetrack.Schema) (*citetrack.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, citetrack.Errorf(citetrack.ENOTFOUND, "workbook not found: %s", path)
	}
	defer f.Close()

	sheet := SheetName(schema.Kind)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, citetrack.Errorf(citetrack.EINVALID, "sheet %q not found in %s", sheet, path)
	}
	if len(rows) == 0 {
		return nil, citetrack.Errorf(citetrack.EINVALID, "sheet %q is empty", sheet)
	}

	columns := rows[0]
	nameIndex := indexOf(columns, schema.NameColumn)
	if nameIndex < 0 {
		return nil, citetrack.Errorf(citetrack.EINVALID, "sheet %q missing column %q", sheet, schema.NameColumn)
	}
	linksIndex := indexOf(columns, schema.LinksColumn)
	if linksIndex < 0 {
		columns = append(columns, schema.LinksColumn)
		linksIndex = len(columns) - 1
	}

	return &citetrack.Table{
		Kind:       schema.Kind,
		Columns:    columns,
		Rows:       rows[1:],
		NameIndex:  nameIndex,
		LinksIndex: linksIndex,
	}, nil
}

func indexOf(columns []string, name string) int {
	for i, c := range columns {
		if c == name {
			return i
		}
	}
	return -1
}
