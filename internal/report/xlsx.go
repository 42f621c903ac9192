package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const (
	// ContentType is the MIME type of the generated workbooks.
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	defaultSheet = "Sheet1"
	headerColor  = "B22222"
	white        = "FFFFFF"
)

// sheetWriter records the first excelize error so callers can write cells
// without checking each call.
type sheetWriter struct {
	f      *excelize.File
	sheet  string
	err    error
	styles map[string]int
}

func newSheetWriter(f *excelize.File, sheet string) *sheetWriter {
	return &sheetWriter{f: f, sheet: sheet, styles: make(map[string]int)}
}

func (w *sheetWriter) row(row int, values ...interface{}) {
	if w.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		w.err = err
		return
	}
	w.err = w.f.SetSheetRow(w.sheet, cell, &values)
}

func (w *sheetWriter) style(key string, style *excelize.Style) int {
	if id, ok := w.styles[key]; ok {
		return id
	}
	id, err := w.f.NewStyle(style)
	if err != nil && w.err == nil {
		w.err = err
	}
	w.styles[key] = id
	return id
}

func (w *sheetWriter) apply(fromCol, toCol, row, styleID int) {
	if w.err != nil {
		return
	}
	from, err := excelize.CoordinatesToCellName(fromCol, row)
	if err != nil {
		w.err = err
		return
	}
	to, err := excelize.CoordinatesToCellName(toCol, row)
	if err != nil {
		w.err = err
		return
	}
	w.err = w.f.SetCellStyle(w.sheet, from, to, styleID)
}

func (w *sheetWriter) merge(fromCol, toCol, row int) {
	if w.err != nil {
		return
	}
	from, _ := excelize.CoordinatesToCellName(fromCol, row)
	to, _ := excelize.CoordinatesToCellName(toCol, row)
	w.err = w.f.MergeCell(w.sheet, from, to)
}

func (w *sheetWriter) widths(widths ...float64) {
	for i, width := range widths {
		if w.err != nil {
			return
		}
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			w.err = err
			return
		}
		w.err = w.f.SetColWidth(w.sheet, col, col, width)
	}
}

func (w *sheetWriter) headerStyle(color string) int {
	return w.style("header-"+color, &excelize.Style{
		Font: &excelize.Font{Bold: true, Color: white},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{color}},
	})
}

func (w *sheetWriter) wrapStyle() int {
	return w.style("wrap", &excelize.Style{
		Alignment: &excelize.Alignment{Vertical: "center", WrapText: true},
	})
}

// WriteUserReport serializes a user report as a single-sheet workbook.
func WriteUserReport(out io.Writer, r *UserReport) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(defaultSheet, UserDetailSheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	w := newSheetWriter(f, UserDetailSheetName)
	w.widths(12, 15, 30, 40, 25, 10, 12)

	header := make([]interface{}, len(UserReportHeader))
	for i, h := range UserReportHeader {
		header[i] = h
	}
	w.row(1, header...)
	w.apply(1, len(header), 1, w.headerStyle(headerColor))

	idle := w.style("idle", &excelize.Style{
		Font: &excelize.Font{Italic: true, Color: "888888"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"F0F0F0"}},
	})
	jobsPerDay := w.style("jobs-per-day", &excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "0000FF"},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "top"},
	})
	wrap := w.wrapStyle()

	rowNum := 2
	for _, row := range r.Rows {
		var perDay interface{} = ""
		if row.FirstOfDay {
			perDay = row.JobsPerDay
		}
		w.row(rowNum,
			row.Date.Format("2006-01-02"),
			row.JobCode,
			row.StaticDescription,
			row.UserDescription,
			row.TimeRange,
			FormatHours(row.Hours()),
			perDay,
		)
		switch {
		case row.Idle:
			w.apply(1, len(header), rowNum, idle)
		default:
			w.apply(3, 5, rowNum, wrap)
			if row.FirstOfDay {
				w.apply(7, 7, rowNum, jobsPerDay)
			}
		}
		rowNum++
	}

	rowNum++
	bold := w.style("bold", &excelize.Style{Font: &excelize.Font{Bold: true}})
	summary := []struct {
		label string
		value string
		color string
	}{
		{"MONTHLY SUMMARY:", "", "000000"},
		{"1. Total hours worked:", FormatHours(r.TotalHours()) + " h", "008000"},
		{"2. Idle days:", fmt.Sprintf("%d days", r.IdleDays), "FF0000"},
		{"3. Job entries:", fmt.Sprintf("%d jobs", r.JobEntries), "0000FF"},
	}
	for _, s := range summary {
		w.row(rowNum, s.label, "", "", "", "", s.value)
		w.merge(1, 5, rowNum)
		w.apply(1, 5, rowNum, bold)
		w.apply(6, 6, rowNum, w.style("summary-"+s.color, &excelize.Style{
			Font: &excelize.Font{Bold: true, Color: s.color},
		}))
		rowNum++
	}

	if w.err != nil {
		return fmt.Errorf("failed to write user report: %w", w.err)
	}
	if _, err := f.WriteTo(out); err != nil {
		return fmt.Errorf("failed to serialize user report: %w", err)
	}
	return nil
}

// WriteJobReport serializes a job report: the summary sheet followed by one
// detail sheet per department.
func WriteJobReport(out io.Writer, r *JobReport) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(defaultSheet, SummarySheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	w := newSheetWriter(f, SummarySheetName)
	w.widths(15, 40, 20, 15, 20)
	wrap := w.wrapStyle()

	rowNum := 1
	for _, table := range r.Tables {
		w.row(rowNum, table.Title)
		w.apply(1, 1, rowNum, w.style("title-"+table.Color, &excelize.Style{
			Font: &excelize.Font{Bold: true, Size: 14, Color: table.Color},
		}))
		rowNum++

		header := DepartmentTableHeader
		if table.ShowDepartment {
			header = CompanyTableHeader
		}
		values := make([]interface{}, len(header))
		for i, h := range header {
			values[i] = h
		}
		w.row(rowNum, values...)
		w.apply(1, len(header), rowNum, w.headerStyle(table.Color))
		rowNum++

		if len(table.Rows) == 0 {
			w.row(rowNum, NoDataLabel)
			rowNum++
		}
		for _, row := range table.Rows {
			if table.ShowDepartment {
				w.row(rowNum, row.Code, row.Description, row.Department, row.Users, FormatHours(Hours(row.Millis)))
			} else {
				w.row(rowNum, row.Code, row.Description, row.Users, FormatHours(Hours(row.Millis)))
			}
			w.apply(2, 2, rowNum, wrap)
			rowNum++
		}

		rowNum += 2
	}
	if w.err != nil {
		return fmt.Errorf("failed to write summary sheet: %w", w.err)
	}

	for _, sheet := range r.Sheets {
		if _, err := f.NewSheet(sheet.Name); err != nil {
			return fmt.Errorf("failed to create sheet %q: %w", sheet.Name, err)
		}

		w := newSheetWriter(f, sheet.Name)
		w.widths(20, 35, 30, 20)

		header := make([]interface{}, len(DetailSheetHeader))
		for i, h := range DetailSheetHeader {
			header[i] = h
		}
		w.row(1, header...)
		w.apply(1, len(header), 1, w.headerStyle(sheet.Color))

		for i, row := range sheet.Rows {
			w.row(i+2, row.Code, row.Description, row.Username, FormatHours(Hours(row.Millis)))
		}

		if w.err != nil {
			return fmt.Errorf("failed to write sheet %q: %w", sheet.Name, w.err)
		}
	}

	if _, err := f.WriteTo(out); err != nil {
		return fmt.Errorf("failed to serialize job report: %w", err)
	}
	return nil
}
