// Package export provides functionality for exporting the part tree
// to various file formats.
package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/PartView/internal/model"
	"github.com/piwi3910/PartView/internal/scene"
)

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	rowHeight    = 6.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// reportColumns are the part table headings and widths in mm.
var reportColumns = []struct {
	title string
	width float64
}{
	{"Part", 90},
	{"Visible", 22},
	{"Colour", 38},
	{"Triangles", 25},
	{"Source", 92},
}

// ReportRow is one line of the part table, flattened from the tree in
// pre-order.
type ReportRow struct {
	Depth     int
	Name      string
	Visible   bool
	Colour    model.Colour
	Triangles int
	Source    string
	Failed    bool
}

// CollectReportRows flattens the tree below the root into report rows.
func CollectReportRows(tree *model.PartTree) []ReportRow {
	var rows []ReportRow
	var walk func(p *model.Part, depth int)
	walk = func(p *model.Part, depth int) {
		for _, c := range p.Children() {
			row := ReportRow{
				Depth:   depth,
				Name:    c.Name(),
				Visible: c.Visible(),
				Colour:  c.Colour(),
				Source:  c.Source(),
				Failed:  c.LoadErr() != nil,
			}
			if g := c.Geometry(); g != nil {
				row.Triangles = g.TriangleCount()
			}
			rows = append(rows, row)
			walk(c, depth+1)
		}
	}
	walk(tree.RootItem(), 0)
	return rows
}

// ExportReport generates a PDF describing the part tree. The first pages
// hold the part table; when view is non-nil and holds drawables, a final
// page shows its wireframe as seen from the current camera.
func ExportReport(path string, tree *model.PartTree, view *scene.Scene) error {
	rows := CollectReportRows(tree)
	if len(rows) == 0 {
		return fmt.Errorf("no parts to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	renderPartTable(pdf, rows)
	if view != nil && view.Len() > 0 {
		pdf.AddPage()
		renderViewPage(pdf, view)
	}

	return pdf.OutputFileAndClose(path)
}

// renderPartTable draws the table header and rows, adding pages as needed.
func renderPartTable(pdf *fpdf.Fpdf, rows []ReportRow) {
	newPage := func() float64 {
		pdf.AddPage()
		pdf.SetFont("Helvetica", "B", 16)
		pdf.SetTextColor(0, 0, 0)
		pdf.SetXY(marginLeft, marginTop)
		pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Part Tree", "", 0, "L", false, 0, "")

		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(220, 220, 220)
		pdf.SetXY(marginLeft, drawAreaTop)
		for _, col := range reportColumns {
			pdf.CellFormat(col.width, rowHeight, col.title, "1", 0, "C", true, 0, "")
		}
		return drawAreaTop + rowHeight
	}

	y := newPage()
	pdf.SetFont("Helvetica", "", 8)
	for i, row := range rows {
		if y+rowHeight > pageHeight-marginBottom-6 {
			renderFooter(pdf)
			y = newPage()
			pdf.SetFont("Helvetica", "", 8)
		}

		if i%2 == 0 {
			pdf.SetFillColor(248, 248, 248)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		if row.Failed {
			pdf.SetTextColor(200, 0, 0)
		} else {
			pdf.SetTextColor(0, 0, 0)
		}

		x := marginLeft
		pdf.SetXY(x, y)
		name := truncate(pdf, strings.Repeat("  ", row.Depth)+row.Name, reportColumns[0].width-2)
		pdf.CellFormat(reportColumns[0].width, rowHeight, name, "1", 0, "L", true, 0, "")
		x += reportColumns[0].width

		visible := "Not Visible"
		if row.Visible {
			visible = "Visible"
		}
		pdf.CellFormat(reportColumns[1].width, rowHeight, visible, "1", 0, "C", true, 0, "")
		x += reportColumns[1].width

		// Colour cell: swatch plus R,G,B text.
		pdf.CellFormat(reportColumns[2].width, rowHeight, "", "1", 0, "L", true, 0, "")
		pdf.SetFillColor(int(row.Colour.R), int(row.Colour.G), int(row.Colour.B))
		pdf.SetDrawColor(120, 120, 120)
		pdf.Rect(x+1.5, y+1.5, 3, 3, "FD")
		pdf.SetDrawColor(0, 0, 0)
		pdf.SetXY(x+6, y)
		pdf.CellFormat(reportColumns[2].width-6, rowHeight, row.Colour.String(), "", 0, "L", false, 0, "")
		x += reportColumns[2].width

		pdf.SetXY(x, y)
		tris := "-"
		if row.Triangles > 0 {
			tris = fmt.Sprintf("%d", row.Triangles)
		}
		pdf.CellFormat(reportColumns[3].width, rowHeight, tris, "1", 0, "R", false, 0, "")
		source := truncate(pdf, row.Source, reportColumns[4].width-2)
		pdf.CellFormat(reportColumns[4].width, rowHeight, source, "1", 0, "L", false, 0, "")

		y += rowHeight
	}
	pdf.SetTextColor(0, 0, 0)
	renderFooter(pdf)
}

// renderViewPage draws the scene's wireframe scaled into the page body.
func renderViewPage(pdf *fpdf.Fpdf, view *scene.Scene) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "View", "", 0, "L", false, 0, "")

	w := pageWidth - marginLeft - marginRight
	h := pageHeight - drawAreaTop - marginBottom - 6

	pdf.SetDrawColor(180, 180, 180)
	pdf.SetLineWidth(0.2)
	pdf.Rect(marginLeft, drawAreaTop, w, h, "D")

	// Project at a fixed pixel size, then scale to mm.
	const px = 1000.0
	scale := h / px
	if w/px < scale {
		scale = w / px
	}
	offX := marginLeft + (w-px*scale)/2
	offY := drawAreaTop + (h-px*scale)/2

	pdf.SetLineWidth(0.1)
	for _, seg := range view.Wireframe(px, px) {
		pdf.SetDrawColor(int(seg.Colour.R), int(seg.Colour.G), int(seg.Colour.B))
		pdf.Line(
			offX+float64(seg.X1)*scale, offY+float64(seg.Y1)*scale,
			offX+float64(seg.X2)*scale, offY+float64(seg.Y2)*scale,
		)
	}
	pdf.SetDrawColor(0, 0, 0)
	renderFooter(pdf)
}

func renderFooter(pdf *fpdf.Fpdf) {
	pdf.SetFont("Helvetica", "I", 7)
	pdf.SetTextColor(150, 150, 150)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	text := fmt.Sprintf("Generated by PartView on %s", time.Now().Format("2006-01-02 15:04"))
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, text, "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

// truncate shortens s with an ellipsis until it fits width mm at the
// current font.
func truncate(pdf *fpdf.Fpdf, s string, width float64) string {
	if pdf.GetStringWidth(s) <= width {
		return s
	}
	for len(s) > 0 && pdf.GetStringWidth(s+"...") > width {
		s = s[:len(s)-1]
	}
	return s + "..."
}
