package board

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/markx3/todoboard/internal/db"
)

var ErrUnsupportedFormat = errors.New("unsupported file format")

type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatPDF  Format = "pdf"
)

// FormatFor picks a format from the file extension. A path without an
// extension is treated as CSV.
func FormatFor(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case "", ".csv":
		return FormatCSV, nil
	case ".json":
		return FormatJSON, nil
	case ".pdf":
		return FormatPDF, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
}

// CSVHeader is the header row written by export.
var CSVHeader = []string{
	"ID", "Task", "Due Date", "Due Time", "Priority", "Category", "Completed", "Recurrence", "Notes",
}

func WriteTasks(w io.Writer, format Format, tasks []db.Task) error {
	switch format {
	case FormatCSV:
		return writeCSV(w, tasks)
	case FormatJSON:
		return writeJSON(w, tasks)
	case FormatPDF:
		return writePDF(w, tasks)
	}
	return fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
}

func ReadTasks(r io.Reader, format Format) ([]db.NewTask, error) {
	switch format {
	case FormatCSV:
		return readCSV(r)
	case FormatJSON:
		return readJSON(r)
	}
	return nil, fmt.Errorf("%w: cannot import %s", ErrUnsupportedFormat, format)
}

func writeCSV(w io.Writer, tasks []db.Task) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for _, t := range tasks {
		completed := "0"
		if t.Completed {
			completed = "1"
		}
		rec := []string{
			strconv.FormatInt(t.ID, 10), t.Task, t.DueDate, t.DueTime,
			string(t.Priority), string(t.Category), completed, string(t.Recurrence), t.Notes,
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("writing csv row %d: %w", t.ID, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing csv: %w", err)
	}
	return nil
}

// readCSV maps columns by header name. ID is ignored; the store assigns
// fresh ids. Unknown headers are skipped.
func readCSV(r io.Reader) ([]db.NewTask, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading csv header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		index[normalizeHeader(h)] = i
	}
	if _, ok := index["task"]; !ok {
		return nil, fmt.Errorf("csv header has no Task column")
	}

	var out []db.NewTask
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading csv line %d: %w", line, err)
		}
		field := func(name string) string {
			i, ok := index[name]
			if !ok || i >= len(rec) {
				return ""
			}
			return rec[i]
		}

		completed, err := parseCompleted(field("completed"))
		if err != nil {
			return nil, fmt.Errorf("csv line %d: %w", line, err)
		}
		out = append(out, db.NewTask{
			Task:       field("task"),
			DueDate:    field("due date"),
			DueTime:    field("due time"),
			Priority:   db.Priority(field("priority")),
			Category:   db.Category(field("category")),
			Recurrence: db.Recurrence(field("recurrence")),
			Notes:      field("notes"),
			Completed:  completed,
		})
	}
	return out, nil
}

func normalizeHeader(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	h = strings.ReplaceAll(h, "_", " ")
	return strings.ToLower(strings.TrimSpace(h))
}

// parseCompleted accepts 1/0 and true/false. Blank means pending.
func parseCompleted(v string) (bool, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("completed value %q: %w", v, db.ErrInvalidTask)
	}
	return b, nil
}

func writeJSON(w io.Writer, tasks []db.Task) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(tasks); err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}
	return nil
}

func readJSON(r io.Reader) ([]db.NewTask, error) {
	var rows []db.NewTask
	if err := json.NewDecoder(r).Decode(&rows); err != nil {
		return nil, fmt.Errorf("decoding json: %w", err)
	}
	return rows, nil
}

var pdfColumns = []struct {
	title string
	width float64
}{
	{"ID", 12}, {"Task", 78}, {"Due Date", 26}, {"Time", 16},
	{"Priority", 22}, {"Category", 24}, {"Status", 22}, {"Recurrence", 24}, {"Notes", 53},
}

func writePDF(w io.Writer, tasks []db.Task) error {
	pdf := gofpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Tasks", true)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(40, 10, "Task Report")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 9)
	pdf.Cell(40, 6, fmt.Sprintf("%d tasks, generated %s", len(tasks), time.Now().Format("2006-01-02 15:04")))
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for _, c := range pdfColumns {
		pdf.CellFormat(c.width, 7, c.title, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, t := range tasks {
		cells := []string{
			strconv.FormatInt(t.ID, 10), t.Task, t.DueDate, t.DueTime,
			string(t.Priority), string(t.Category), t.StatusLabel(), string(t.Recurrence), t.Notes,
		}
		for i, c := range pdfColumns {
			text := fitCell(pdf, tr(cells[i]), c.width-2)
			pdf.CellFormat(c.width, 6, text, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("rendering pdf: %w", err)
	}
	return nil
}

// fitCell truncates s with an ellipsis so it fits in width. s is already
// translated to the single-byte font encoding, so it is cut by bytes.
func fitCell(pdf *gofpdf.Fpdf, s string, width float64) string {
	if pdf.GetStringWidth(s) <= width {
		return s
	}
	for len(s) > 0 && pdf.GetStringWidth(s+"...") > width {
		s = s[:len(s)-1]
	}
	return s + "..."
}
