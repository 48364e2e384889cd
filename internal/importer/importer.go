// Package importer reads part lists from CSV and Excel files. Columns are
// mapped from case-insensitive header aliases; without a header the
// columns are positional: name, visible, colour, file, group.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/PartView/internal/model"
)

// Entry is one imported part before it is placed in the tree.
type Entry struct {
	Name    string
	Visible bool
	Colour  model.Colour
	File    string // geometry path, resolved against the list's directory
	Group   string // optional group part to collect the entry under
}

// ImportResult holds the results of an import operation. Row problems are
// collected instead of aborting the import.
type ImportResult struct {
	Entries  []Entry
	Errors   []string
	Warnings []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	Name    int
	Visible int
	Colour  int
	File    int
	Group   int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"name":    {"name", "part", "part name", "label", "item", "description"},
	"visible": {"visible", "visibility", "shown", "show"},
	"colour":  {"colour", "color", "rgb", "colour (r,g,b)", "color (r,g,b)"},
	"file":    {"file", "path", "stl", "geometry", "model", "source"},
	"group":   {"group", "assembly", "parent", "folder"},
}

// DetectCSVDelimiter determines the most likely CSV delimiter. It tries
// comma, semicolon, tab and pipe; the one giving the most consistent
// multi-column rows wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	best := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}
		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}
		if weighted := score*10 + firstCols; weighted > bestScore {
			bestScore = weighted
			best = delim
		}
	}
	return best
}

// DetectColumns examines a header row. It returns the mapping and true if
// any alias matched, or the positional mapping and false otherwise.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{Name: -1, Visible: -1, Colour: -1, File: -1, Group: -1}
	slots := map[string]*int{
		"name":    &mapping.Name,
		"visible": &mapping.Visible,
		"colour":  &mapping.Colour,
		"file":    &mapping.File,
		"group":   &mapping.Group,
	}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized != alias {
					continue
				}
				isHeader = true
				if slot := slots[role]; *slot == -1 {
					*slot = i
				}
			}
		}
	}

	if !isHeader {
		return ColumnMapping{Name: 0, Visible: 1, Colour: 2, File: 3, Group: 4}, false
	}
	return mapping, true
}

// parseVisible accepts the display literals plus common spreadsheet
// spellings. An empty cell means visible.
func parseVisible(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "true", "yes", "y", "1", "x", "visible", "shown":
		return true, true
	case "false", "no", "n", "0", "hidden", "not visible":
		return false, true
	default:
		return true, false
	}
}

// parseColour resolves palette names, "R,G,B" and "#RRGGBB".
func parseColour(s string, palette *model.Palette) (model.Colour, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return model.White(), true
	}
	if strings.HasPrefix(s, "#") && len(s) == 7 {
		var r, g, b uint8
		if _, err := fmt.Sscanf(s, "#%2x%2x%2x", &r, &g, &b); err == nil {
			return model.Colour{R: r, G: g, B: b}, true
		}
		return model.White(), false
	}
	if palette != nil {
		return palette.Resolve(s)
	}
	c, err := model.ParseColour(s)
	return c, err == nil
}

func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// parseRow extracts an Entry from a row. Returns the entry, any error
// message and any warnings.
func parseRow(row []string, mapping ColumnMapping, rowLabel string, opts Options) (Entry, string, []string) {
	var warnings []string

	entry := Entry{
		Name:  getCell(row, mapping.Name),
		File:  getCell(row, mapping.File),
		Group: getCell(row, mapping.Group),
	}
	if entry.Name == "" {
		if entry.File == "" {
			return Entry{}, fmt.Sprintf("%s: Missing name and file", rowLabel), nil
		}
		entry.Name = filepath.Base(entry.File)
	}
	if entry.File != "" && !filepath.IsAbs(entry.File) && opts.BaseDir != "" {
		entry.File = filepath.Join(opts.BaseDir, entry.File)
	}

	visStr := getCell(row, mapping.Visible)
	visible, ok := parseVisible(visStr)
	if !ok {
		warnings = append(warnings, fmt.Sprintf("%s: Unknown visibility '%s', defaulting to visible", rowLabel, visStr))
	}
	entry.Visible = visible

	colStr := getCell(row, mapping.Colour)
	colour, ok := parseColour(colStr, opts.Palette)
	if !ok {
		warnings = append(warnings, fmt.Sprintf("%s: Unknown colour '%s', defaulting to white", rowLabel, colStr))
		colour = model.White()
	}
	entry.Colour = colour

	return entry, "", warnings
}

// Options tune how rows are interpreted.
type Options struct {
	Palette *model.Palette // colour names; nil accepts only numeric colours
	BaseDir string         // directory relative file paths are resolved against
}

// ImportCSV imports entries from a CSV file, detecting the delimiter and
// mapping columns by header names. Relative file paths are resolved
// against the CSV's directory unless opts.BaseDir is set.
func ImportCSV(path string, opts Options) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}
	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	var warnings []string
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		warnings = append(warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	records, err := readCSV(bytes.NewReader(data), delimiter)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}
	if opts.BaseDir == "" {
		opts.BaseDir = filepath.Dir(path)
	}
	return importFromRows(records, "Line", warnings, opts)
}

// ImportCSVFromReader imports entries from CSV data with a known delimiter.
func ImportCSVFromReader(reader io.Reader, delimiter rune, opts Options) ImportResult {
	records, err := readCSV(reader, delimiter)
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot read CSV: %v", err)}}
	}
	return importFromRows(records, "Line", nil, opts)
}

func readCSV(r io.Reader, delimiter rune) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1
	return reader.ReadAll()
}

// ImportExcel imports entries from the first sheet of an Excel workbook.
func ImportExcel(path string, opts Options) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}
	if opts.BaseDir == "" {
		opts.BaseDir = filepath.Dir(path)
	}
	return importFromRows(rows, "Row", nil, opts)
}

// Import dispatches on the file extension.
func Import(path string, opts Options) ImportResult {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm", ".xls":
		return ImportExcel(path, opts)
	default:
		return ImportCSV(path, opts)
	}
}

// importFromRows is the shared import logic for both CSV and Excel data.
func importFromRows(rows [][]string, rowPrefix string, warnings []string, opts Options) ImportResult {
	result := ImportResult{Warnings: warnings}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")
		if mapping.Name == -1 && mapping.File == -1 {
			result.Errors = append(result.Errors, "Required columns not found in header: Name or File")
			return result
		}
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		entry, errMsg, rowWarnings := parseRow(row, mapping, rowLabel, opts)
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		result.Warnings = append(result.Warnings, rowWarnings...)
		result.Entries = append(result.Entries, entry)
	}

	if len(result.Entries) == 0 && len(result.Errors) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
	}
	return result
}
