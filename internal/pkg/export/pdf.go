package export

import (
	"fmt"
	"io"
	"time"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// gridSize is maroto's default number of grid columns per row.
const gridSize = 12

var (
	pdfHeaderColor = props.Color{Red: 50, Green: 50, Blue: 50}
	pdfMutedColor  = props.Color{Red: 120, Green: 120, Blue: 120}
	pdfLineColor   = props.Color{Red: 200, Green: 200, Blue: 200}
	pdfAlertColor  = props.Color{Red: 192, Green: 57, Blue: 43}
)

// Options carries document-level labels.
type Options struct {
	Organization string
	GeneratedAt  time.Time
}

// PDF renders t as an A4 landscape document and writes it to w.
func PDF(w io.Writer, t Table, opts Options) error {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithLeftMargin(12).
		WithTopMargin(12).
		WithRightMargin(12).
		Build()

	m := maroto.New(cfg)

	if opts.Organization != "" {
		m.AddRow(8,
			text.NewCol(gridSize, opts.Organization, props.Text{
				Size:  10,
				Color: &pdfMutedColor,
			}),
		)
	}
	m.AddRow(12,
		text.NewCol(gridSize, t.Title, props.Text{
			Style: fontstyle.Bold,
			Size:  15,
			Color: &pdfHeaderColor,
		}),
	)
	m.AddRow(8,
		text.NewCol(gridSize, t.Subtitle, props.Text{
			Size:  10,
			Color: &pdfMutedColor,
		}),
	)
	m.AddRow(4, line.NewCol(gridSize, props.Line{Color: &pdfLineColor}))

	widths := columnWidths(len(t.Headers))
	m.AddRow(8, cells(t.Headers, widths, func(int, string) props.Text {
		return props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Center, Color: &pdfHeaderColor}
	})...)
	m.AddRow(2, line.NewCol(gridSize, props.Line{Color: &pdfLineColor}))

	for _, row := range t.Rows {
		m.AddRow(6, cells(row, widths, func(_ int, v string) props.Text {
			p := props.Text{Size: 8, Align: align.Center}
			if v == statusAbsent {
				p.Color = &pdfAlertColor
			}
			return p
		})...)
	}

	m.AddRow(4, line.NewCol(gridSize, props.Line{Color: &pdfLineColor}))
	if t.Summary != "" {
		m.AddRow(10,
			text.NewCol(gridSize, t.Summary, props.Text{
				Style: fontstyle.Bold,
				Size:  10,
				Color: &pdfHeaderColor,
			}),
		)
	}
	if !opts.GeneratedAt.IsZero() {
		m.AddRow(6,
			text.NewCol(gridSize, "Generated "+opts.GeneratedAt.Format("2006-01-02 15:04"), props.Text{
				Size:  7,
				Align: align.Right,
				Color: &pdfMutedColor,
			}),
		)
	}

	doc, err := m.Generate()
	if err != nil {
		return fmt.Errorf("generating PDF: %w", err)
	}
	if _, err := w.Write(doc.GetBytes()); err != nil {
		return fmt.Errorf("writing PDF: %w", err)
	}
	return nil
}

func cells(values []string, widths []int, style func(i int, v string) props.Text) []core.Col {
	cols := make([]core.Col, 0, len(values))
	for i, v := range values {
		if i >= len(widths) {
			break
		}
		cols = append(cols, text.NewCol(widths[i], v, style(i, v)))
	}
	return cols
}

// columnWidths spreads the grid over n columns; leftover units go to the
// leading columns, which hold dates and names.
func columnWidths(n int) []int {
	if n <= 0 {
		return nil
	}
	if n > gridSize {
		n = gridSize
	}
	widths := make([]int, n)
	for i := range widths {
		widths[i] = gridSize / n
	}
	for i := 0; i < gridSize%n; i++ {
		widths[i]++
	}
	return widths
}
