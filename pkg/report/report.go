// Package report renders the filtered task view and statistics as a PDF.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/harrisonrobin/taskflow/pkg/model"
)

// Input is everything a report shows.
type Input struct {
	Filter model.Filter
	Tasks  []model.Task
	Stats  model.Stats
	Today  model.Date
}

// Write renders the report to w.
func Write(w io.Writer, in Input) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("TaskFlow report", true)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "TaskFlow")
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("%s - filter: %s", in.Today.Format("Jan 2, 2006"), in.Filter))
	pdf.Ln(8)

	pdf.SetFont("Arial", "B", 11)
	for _, stat := range []struct {
		label string
		value string
	}{
		{"Total", fmt.Sprint(in.Stats.Total)},
		{"Completed", fmt.Sprint(in.Stats.Completed)},
		{"Pending", fmt.Sprint(in.Stats.Pending)},
		{"Completion", fmt.Sprintf("%d%%", in.Stats.CompletionRate)},
	} {
		pdf.CellFormat(45, 8, stat.label+": "+stat.value, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(12)

	if len(in.Tasks) == 0 {
		pdf.SetFont("Arial", "I", 10)
		pdf.Cell(0, 6, model.EmptyStateText)
		pdf.Ln(6)
	}

	for _, t := range in.Tasks {
		mark := "[ ]"
		if t.Completed {
			mark = "[x]"
		}
		pdf.SetFont("Arial", "B", 11)
		pdf.MultiCell(0, 6, tr(fmt.Sprintf("%s %s", mark, t.Title)), "0", "L", false)

		pdf.SetFont("Arial", "", 9)
		if t.IsOverdue(in.Today) {
			pdf.SetTextColor(200, 30, 30)
		}
		meta := fmt.Sprintf("%s priority  |  %s", strings.ToUpper(string(t.Priority)), t.DueLabel(in.Today))
		pdf.MultiCell(0, 5, tr(meta), "0", "L", false)
		pdf.SetTextColor(0, 0, 0)

		if t.Description != "" {
			pdf.MultiCell(0, 5, tr(t.Description), "0", "L", false)
		}
		pdf.Ln(3)
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	return pdf.Output(w)
}
