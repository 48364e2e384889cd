package export

import (
	"fmt"
	"strings"

	"github.com/piwi3910/PartView/internal/model"
	"github.com/xuri/excelize/v2"
)

// PartTableSheet is the worksheet name used by ExportPartTable.
const PartTableSheet = "Parts"

// partTableHeaders match the column names the part list importer
// recognises, so an exported table can be imported again.
var partTableHeaders = []string{"Part", "Visible", "Colour", "File", "Group", "Triangles"}

// PartTableRow is one spreadsheet row.
type PartTableRow struct {
	Name      string
	Visible   bool
	Colour    model.Colour
	File      string
	Group     string
	Triangles int
}

// CollectPartTableRows lists the parts that carry geometry or have no
// children. Parts below the top level name their immediate parent as Group.
func CollectPartTableRows(tree *model.PartTree) []PartTableRow {
	var rows []PartTableRow
	tree.Walk(func(p *model.Part) bool {
		if p.ChildCount() > 0 && p.Source() == "" {
			return true
		}
		row := PartTableRow{
			Name:    p.Name(),
			Visible: p.Visible(),
			Colour:  p.Colour(),
			File:    p.Source(),
		}
		if parent := p.Parent(); parent != nil && parent.Parent() != nil {
			row.Group = parent.Name()
		}
		if g := p.Geometry(); g != nil {
			row.Triangles = g.TriangleCount()
		}
		rows = append(rows, row)
		return true
	})
	return rows
}

// ExportPartTable writes the part tree as an Excel workbook with one row
// per part. Each colour cell is filled with the part's colour.
func ExportPartTable(path string, tree *model.PartTree) error {
	rows := CollectPartTableRows(tree)
	if len(rows) == 0 {
		return fmt.Errorf("no parts to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", PartTableSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#DCDCDC"}},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	for col, h := range partTableHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(PartTableSheet, cell, h); err != nil {
			return err
		}
	}
	last, _ := excelize.CoordinatesToCellName(len(partTableHeaders), 1)
	if err := f.SetCellStyle(PartTableSheet, "A1", last, headerStyle); err != nil {
		return err
	}

	swatches := make(map[model.Colour]int)
	for i, row := range rows {
		r := i + 2
		visible := "yes"
		if !row.Visible {
			visible = "no"
		}
		values := []interface{}{row.Name, visible, row.Colour.String(), row.File, row.Group, row.Triangles}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, r)
			if err := f.SetCellValue(PartTableSheet, cell, v); err != nil {
				return err
			}
		}

		style, ok := swatches[row.Colour]
		if !ok {
			style, err = f.NewStyle(swatchStyle(row.Colour))
			if err != nil {
				return fmt.Errorf("failed to create colour style: %w", err)
			}
			swatches[row.Colour] = style
		}
		cell, _ := excelize.CoordinatesToCellName(3, r)
		if err := f.SetCellStyle(PartTableSheet, cell, cell, style); err != nil {
			return err
		}
	}

	_ = f.SetColWidth(PartTableSheet, "A", "A", 30)
	_ = f.SetColWidth(PartTableSheet, "C", "C", 14)
	_ = f.SetColWidth(PartTableSheet, "D", "D", 50)
	_ = f.SetColWidth(PartTableSheet, "E", "E", 20)

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

// swatchStyle fills a cell with c and picks a readable font colour.
func swatchStyle(c model.Colour) *excelize.Style {
	font := "#000000"
	if int(c.R)*299+int(c.G)*587+int(c.B)*114 < 128000 {
		font = "#FFFFFF"
	}
	return &excelize.Style{
		Font: &excelize.Font{Color: font},
		Fill: excelize.Fill{
			Type:    "pattern",
			Pattern: 1,
			Color:   []string{strings.ToUpper(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))},
		},
	}
}
