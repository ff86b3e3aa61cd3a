// AngelaMos | 2026
// encode.go

package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"

	"github.com/carterperez-dev/asset-portal/internal/core"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatPDF  Format = "pdf"
	FormatJSON Format = "json"
)

type Encoder interface {
	Encode(w io.Writer, r *Report) error
	ContentType() string
	Extension() string
}

func EncoderFor(f Format) (Encoder, error) {
	switch f {
	case FormatCSV, "":
		return csvEncoder{}, nil
	case FormatPDF:
		return pdfEncoder{}, nil
	case FormatJSON:
		return jsonEncoder{}, nil
	}
	return nil, core.NewValidationError("format", fmt.Sprintf("unsupported format %q", f))
}

type csvEncoder struct{}

func (csvEncoder) ContentType() string { return "text/csv; charset=utf-8" }
func (csvEncoder) Extension() string   { return "csv" }

func (csvEncoder) Encode(w io.Writer, r *Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(r.Header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	if err := cw.WriteAll(r.Rows); err != nil {
		return fmt.Errorf("write csv rows: %w", err)
	}
	return nil
}

type jsonEncoder struct{}

func (jsonEncoder) ContentType() string { return "application/json" }
func (jsonEncoder) Extension() string   { return "json" }

type jsonReport struct {
	Kind        string     `json:"kind"`
	GeneratedAt string     `json:"generated_at"`
	WindowStart core.Date  `json:"window_start"`
	WindowEnd   core.Date  `json:"window_end"`
	Header      []string   `json:"header"`
	Rows        [][]string `json:"rows"`
}

func (jsonEncoder) Encode(w io.Writer, r *Report) error {
	doc := jsonReport{
		Kind:        r.Kind.String(),
		GeneratedAt: r.GeneratedAt.UTC().Format("2006-01-02T15:04:05Z"),
		Header:      r.Header,
		Rows:        r.Rows,
	}
	if r.Kind.monthly() {
		doc.WindowStart = r.Window.Start
		doc.WindowEnd = r.Window.End
	}
	if err := json.NewEncoder(w).Encode(doc); err != nil {
		return fmt.Errorf("write json report: %w", err)
	}
	return nil
}

type pdfEncoder struct{}

func (pdfEncoder) ContentType() string { return "application/pdf" }
func (pdfEncoder) Extension() string   { return "pdf" }

// pdfColumnWeights size each export column relative to the others. Free text
// columns get more room than dates and ids.
var pdfColumnWeights = []float64{
	0.6, 1.4, 1.0, 1.6, 1.0, 1.1, 1.2, 0.7, 0.8, 0.9,
	0.9, 0.9, 1.0, 1.2, 1.4, 1.0, 1.4, 1.4, 1.0, 1.0,
}

const pdfMaxCellRunes = 24

// Encode lays the report out as a landscape A3 table, repeating the header
// row on every page.
func (pdfEncoder) Encode(w io.Writer, r *Report) error {
	pdf := fpdf.New("L", "mm", "A3", "")
	pdf.SetMargins(8, 10, 8)
	pdf.SetAutoPageBreak(true, 10)

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 16

	var totalWeight float64
	for _, wt := range pdfColumnWeights {
		totalWeight += wt
	}
	widths := make([]float64, len(pdfColumnWeights))
	for i, wt := range pdfColumnWeights {
		widths[i] = contentW * wt / totalWeight
	}

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	header := func() {
		pdf.SetFont("Helvetica", "B", 6)
		pdf.SetFillColor(230, 230, 230)
		for i, h := range r.Header {
			pdf.CellFormat(widths[i], 6, tr(h), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 6)
	}

	pdf.SetHeaderFunc(func() {
		if pdf.PageNo() > 1 {
			header()
		}
	})

	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(contentW, 8, r.Kind.Title(), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	subtitle := fmt.Sprintf(
		"Generated %s  |  %d assets",
		r.GeneratedAt.Format("2006-01-02 15:04"),
		len(r.Rows),
	)
	if r.Kind.monthly() {
		subtitle += fmt.Sprintf("  |  %s to %s", r.Window.Start, r.Window.End.AddDays(-1))
	}
	pdf.CellFormat(contentW, 5, subtitle, "", 1, "L", false, 0, "")
	pdf.Ln(2)

	header()
	for _, row := range r.Rows {
		for i, cell := range row {
			pdf.CellFormat(widths[i], 5, tr(truncate(cell, pdfMaxCellRunes)), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf report: %w", err)
	}
	return nil
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
