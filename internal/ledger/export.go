package ledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/promphitak-p/praweena/internal/models"
)

// Header is the first CSV row
var Header = []string{"#", "item", "task", "vendor", "qty", "unit", "unit price", "total", "due", "status", "note"}

// utf8BOM lets spreadsheet apps detect the encoding of Thai text
const utf8BOM = "\ufeff"

const dateLayout = "2006-01-02"

// Record converts one item to its CSV fields. taskTitles maps todo ids to
// titles; unknown todos leave the task column blank.
func Record(n int, it *models.PurchaseItem, taskTitles map[uuid.UUID]string) []string {
	due := ""
	if it.DueDate != nil {
		due = it.DueDate.Format(dateLayout)
	}
	return []string{
		fmt.Sprint(n),
		it.Title,
		taskTitles[it.TodoID],
		it.Vendor,
		it.Quantity.String(),
		it.Unit,
		it.UnitPrice.StringFixed(2),
		it.LineTotal().StringFixed(2),
		due,
		StatusLabel(it.Status),
		it.Note,
	}
}

// WriteCSV writes a BOM-prefixed UTF-8 CSV of the items. Fields containing a
// comma, quote or newline are quoted with inner quotes doubled.
func WriteCSV(w io.Writer, items []*models.PurchaseItem, taskTitles map[uuid.UUID]string) error {
	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for i, it := range items {
		if err := cw.Write(Record(i+1, it, taskTitles)); err != nil {
			return fmt.Errorf("failed to write csv row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV parses a file produced by WriteCSV, header included
func ReadCSV(r io.Reader) ([][]string, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	if len(records) > 0 && len(records[0]) > 0 {
		records[0][0] = strings.TrimPrefix(records[0][0], utf8BOM)
	}
	return records, nil
}

// Report renders the printable purchase report as markdown
func Report(title string, items []*models.PurchaseItem, taskTitles map[uuid.UUID]string, now time.Time) string {
	var b strings.Builder
	s := Summarize(items, now)

	fmt.Fprintf(&b, "# %s\n\n", escapeMarkdown(title))
	fmt.Fprintf(&b, "_%s_\n\n", now.Format("2006-01-02 15:04"))

	b.WriteString("| ยอดรวม | จ่ายแล้ว | ค้างจ่าย | เลยกำหนด |\n|---:|---:|---:|---:|\n")
	fmt.Fprintf(&b, "| %s | %s | %s | %s |\n\n",
		s.Total.StringFixed(2), s.Paid.StringFixed(2), s.Pending.StringFixed(2), s.Overdue.StringFixed(2))

	if len(items) == 0 {
		b.WriteString("ยังไม่มีรายการซื้อ\n")
		return b.String()
	}

	b.WriteString("| " + strings.Join(Header, " | ") + " |\n")
	b.WriteString("|---|---|---|---|---:|---|---:|---:|---|---|---|\n")
	for i, it := range items {
		fields := Record(i+1, it, taskTitles)
		for j := range fields {
			fields[j] = escapeMarkdown(fields[j])
		}
		b.WriteString("| " + strings.Join(fields, " | ") + " |\n")
	}
	return b.String()
}

var markdownEscaper = strings.NewReplacer("|", `\|`, "\n", " ", "\r", "")

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}
