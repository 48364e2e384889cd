package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/PartView/internal/model"
	qrcode "github.com/skip2/go-qrcode"
)

// LabelInfo holds the data encoded into each part label's QR code.
type LabelInfo struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Path      string `json:"path"`
	Colour    string `json:"colour"`
	Visible   bool   `json:"visible"`
	Source    string `json:"source,omitempty"`
	Triangles int    `json:"triangles,omitempty"`
}

// Label layout constants for Avery 5160-compatible labels (3 columns, 10 rows per page).
// Each label cell is approximately 66.7mm x 25.4mm on US Letter paper.
const (
	labelPageWidth  = 215.9 // US Letter width in mm
	labelPageHeight = 279.4 // US Letter height in mm
	labelMarginTop  = 12.7  // mm
	labelMarginLeft = 4.8   // mm
	labelWidth      = 66.7  // mm per label
	labelHeight     = 25.4  // mm per label
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0 // QR code size in mm
	labelPadding    = 2.0  // mm internal padding
)

// ExportLabels generates a PDF of QR-coded labels, one per part in the
// tree. Each label carries the part name, its path from the root, and a QR
// code encoding the part metadata as JSON. Labels are laid out on a
// standard label sheet format (Avery 5160 / 3 columns x 10 rows on US Letter).
func ExportLabels(path string, tree *model.PartTree) error {
	labels := CollectLabelInfos(tree)
	if len(labels) == 0 {
		return fmt.Errorf("no parts to generate labels for")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, label := range labels {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		if err := renderLabel(pdf, x, y, i, label); err != nil {
			return fmt.Errorf("failed to render label for %q: %w", label.Name, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// renderLabel draws a single label at the given position.
func renderLabel(pdf *fpdf.Fpdf, x, y float64, n int, info LabelInfo) error {
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal label info: %w", err)
	}

	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_%d_%s", n, info.ID)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)
	pdf.CellFormat(textW, 4.5, truncate(pdf, info.Name, textW), "", 1, "L", false, 0, "")

	// Path within the tree
	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+5)
	pdf.CellFormat(textW, 3, truncate(pdf, info.Path, textW), "", 1, "L", false, 0, "")

	// Colour swatch and value
	c, err := model.ParseColour(info.Colour)
	if err != nil {
		return err
	}
	pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
	pdf.SetDrawColor(120, 120, 120)
	pdf.Rect(textX, y+labelPadding+9, 3, 3, "FD")
	pdf.SetFont("Helvetica", "", 7)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX+4, y+labelPadding+8.75)
	pdf.CellFormat(textW-4, 3.5, info.Colour, "", 1, "L", false, 0, "")

	if !info.Visible {
		pdf.SetXY(textX, y+labelPadding+13)
		pdf.SetFont("Helvetica", "I", 6)
		pdf.SetTextColor(150, 100, 0)
		pdf.CellFormat(textW, 3, "Hidden", "", 0, "L", false, 0, "")
	}

	pdf.SetTextColor(0, 0, 0)
	return nil
}

// CollectLabelInfos extracts label information for every part in the tree,
// in pre-order.
func CollectLabelInfos(tree *model.PartTree) []LabelInfo {
	var labels []LabelInfo
	tree.Walk(func(p *model.Part) bool {
		info := LabelInfo{
			ID:      p.ID(),
			Name:    p.Name(),
			Path:    partPath(p),
			Colour:  p.Colour().String(),
			Visible: p.Visible(),
			Source:  p.Source(),
		}
		if g := p.Geometry(); g != nil {
			info.Triangles = g.TriangleCount()
		}
		labels = append(labels, info)
		return true
	})
	return labels
}

// partPath joins the names from the top-level part down to p.
func partPath(p *model.Part) string {
	var names []string
	for cur := p; cur != nil && cur.Parent() != nil; cur = cur.Parent() {
		names = append([]string{cur.Name()}, names...)
	}
	return strings.Join(names, " / ")
}
