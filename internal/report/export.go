package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// ExportFormat defines the export file format.
type ExportFormat string

const (
	FormatCSV  ExportFormat = "csv"
	FormatXLSX ExportFormat = "xlsx"
	FormatJSON ExportFormat = "json"
)

// ParseFormat validates a format name, defaulting to CSV.
func ParseFormat(name string) (ExportFormat, error) {
	switch ExportFormat(strings.ToLower(name)) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported export format: %s", name)
	}
}

// ContentType returns the MIME type of the format.
func (f ExportFormat) ContentType() string {
	switch f {
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatJSON:
		return "application/json"
	default:
		return "text/csv; charset=utf-8"
	}
}

// ExportOptions defines export configuration.
type ExportOptions struct {
	Format    ExportFormat
	MaxRows   int  // 0 = unlimited
	Delimiter rune // For CSV, default is comma
}

// DefaultExportOptions returns default export options.
func DefaultExportOptions() *ExportOptions {
	return &ExportOptions{
		Format:    FormatCSV,
		MaxRows:   0,
		Delimiter: ',',
	}
}

// Exporter handles exporting reports to various formats.
type Exporter struct {
	options *ExportOptions
}

// NewExporter creates a new exporter.
func NewExporter(options *ExportOptions) *Exporter {
	if options == nil {
		options = DefaultExportOptions()
	}
	return &Exporter{options: options}
}

// Export writes a report to w in the configured format.
func (e *Exporter) Export(w io.Writer, report *Report) error {
	switch e.options.Format {
	case FormatCSV:
		return e.exportCSV(w, report)
	case FormatXLSX:
		return e.exportXLSX(w, report)
	case FormatJSON:
		return e.exportJSON(w, report)
	default:
		return fmt.Errorf("unsupported export format: %s", e.options.Format)
	}
}

func (e *Exporter) rows(report *Report) []*ReportRow {
	if e.options.MaxRows > 0 && len(report.Rows) > e.options.MaxRows {
		return report.Rows[:e.options.MaxRows]
	}
	return report.Rows
}

// exportCSV exports report to CSV format.
func (e *Exporter) exportCSV(w io.Writer, report *Report) error {
	// Write UTF-8 BOM for Excel compatibility
	if _, err := w.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return fmt.Errorf("failed to write BOM: %w", err)
	}

	writer := csv.NewWriter(w)
	if e.options.Delimiter != 0 {
		writer.Comma = e.options.Delimiter
	}

	if err := writer.Write(report.Definition.Columns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, row := range e.rows(report) {
		values := make([]string, len(report.Definition.Columns))
		for i, col := range report.Definition.Columns {
			values[i] = formatValue(row.Values[col])
		}
		if err := writer.Write(values); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// exportXLSX exports report to Excel format.
func (e *Exporter) exportXLSX(w io.Writer, report *Report) error {
	f := excelize.NewFile()
	defer f.Close()

	// Summary comes first, so it replaces the default sheet
	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	writeSummary(f, report.Summary, report.Generated)

	if err := e.writeSheet(f, report); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// ExportWorkbook writes every report of the generator into one Excel file,
// one sheet per non-empty report behind a Summary sheet.
func (e *Exporter) ExportWorkbook(w io.Writer, g *Generator) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	writeSummary(f, g.Summary(), g.now().Format(time.RFC3339))

	for _, def := range AllReports() {
		report, err := g.Generate(def.Type)
		if err != nil {
			return err
		}
		if report.TotalCount == 0 {
			continue
		}
		if err := e.writeSheet(f, report); err != nil {
			return err
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func (e *Exporter) writeSheet(f *excelize.File, report *Report) error {
	sheetName := sanitizeSheetName(report.Definition.Name)
	if _, err := f.NewSheet(sheetName); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	// Style for header
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"00C853"}},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})

	// Style for alternating rows
	evenRowStyle, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"F5F5F5"}},
	})

	for i, col := range report.Definition.Columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, col)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)

		colName, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, colName, colName, columnWidth(col))
	}

	rows := e.rows(report)
	for rowIdx, row := range rows {
		for i, col := range report.Definition.Columns {
			cell, _ := excelize.CoordinatesToCellName(i+1, rowIdx+2)
			if val, ok := row.Values[col]; ok {
				f.SetCellValue(sheetName, cell, val)
			}
			if rowIdx%2 == 1 {
				f.SetCellStyle(sheetName, cell, cell, evenRowStyle)
			}
		}
	}

	lastCol, _ := excelize.ColumnNumberToName(len(report.Definition.Columns))
	filterRange := fmt.Sprintf("A1:%s%d", lastCol, len(rows)+1)
	f.AutoFilter(sheetName, filterRange, nil)

	// Freeze header row
	f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})

	return nil
}

const summarySheet = "Summary"

// writeSummary fills the summary sheet with the analysis headline.
func writeSummary(f *excelize.File, s Summary, generated string) {
	rows := [][]interface{}{
		{"URL", s.URL},
		{"Display URL", s.DisplayURL},
		{"Title", s.Title},
		{"Description", s.Description},
		{"Score", s.Score},
		{"Band", s.Band},
		{"Good", s.GoodCount},
		{"Warning", s.WarningCount},
		{"Missing", s.MissingCount},
		{"Generated", generated},
		{"Tool", "SEO Tag Analyzer"},
	}

	for i, row := range rows {
		f.SetCellValue(summarySheet, fmt.Sprintf("A%d", i+1), row[0])
		f.SetCellValue(summarySheet, fmt.Sprintf("B%d", i+1), row[1])
	}

	f.SetColWidth(summarySheet, "A", "A", 20)
	f.SetColWidth(summarySheet, "B", "B", 80)
}

// exportJSON exports report to JSON format.
func (e *Exporter) exportJSON(w io.Writer, report *Report) error {
	rows := e.rows(report)
	data := &JSONReport{
		Metadata: JSONMetadata{
			ReportType:  string(report.Definition.Type),
			Name:        report.Definition.Name,
			Description: report.Definition.Description,
			TotalCount:  report.TotalCount,
			Generated:   report.Generated,
			Columns:     report.Definition.Columns,
		},
		Summary: report.Summary,
		Rows:    make([]map[string]interface{}, 0, len(rows)),
	}

	for _, row := range rows {
		data.Rows = append(data.Rows, row.Values)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)

	return encoder.Encode(data)
}

// JSONReport represents the JSON export structure.
type JSONReport struct {
	Metadata JSONMetadata             `json:"metadata"`
	Summary  Summary                  `json:"summary"`
	Rows     []map[string]interface{} `json:"rows"`
}

// JSONMetadata represents report metadata.
type JSONMetadata struct {
	ReportType  string   `json:"report_type"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	TotalCount  int      `json:"total_count"`
	Generated   string   `json:"generated"`
	Columns     []string `json:"columns"`
}

// formatValue converts a value to string for export.
func formatValue(v interface{}) string {
	if v == nil {
		return ""
	}

	switch val := v.(type) {
	case string:
		return val
	case int:
		return strconv.Itoa(val)
	case float64:
		return strconv.FormatFloat(val, 'f', 2, 64)
	case bool:
		if val {
			return "Yes"
		}
		return "No"
	default:
		return fmt.Sprintf("%v", val)
	}
}

func columnWidth(col string) float64 {
	switch col {
	case ColHTML, ColRecommendation, ColValue, "Description", "Issue":
		return 50
	}
	width := float64(len(col) + 5)
	if width < 15 {
		width = 15
	}
	return width
}

// sanitizeSheetName ensures sheet name is valid for Excel.
func sanitizeSheetName(name string) string {
	invalid := []string{"\\", "/", "?", "*", "[", "]", ":"}
	result := name
	for _, char := range invalid {
		result = strings.ReplaceAll(result, char, "_")
	}

	// Max 31 characters
	if len(result) > 31 {
		result = result[:31]
	}

	return result
}

// Filename suggests a download name for an export of the given page.
func Filename(pageURL string, reportType ReportType, format ExportFormat) string {
	host := "page"
	if s := strings.SplitN(strings.TrimPrefix(strings.TrimPrefix(pageURL, "https://"), "http://"), "/", 2); s[0] != "" {
		host = sanitizeFilename(s[0])
	}
	return fmt.Sprintf("seotags_%s_%s.%s", host, reportType, format)
}

func sanitizeFilename(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '.':
			return r
		default:
			return '_'
		}
	}, name)
}
