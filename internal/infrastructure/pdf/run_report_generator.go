// Package pdf implementa el reporte imprimible de una corrida del pipeline.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del pipeline  │  Run ID + Inicio / Fin       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FUENTES: Fuente | Estado | Filas | Causa                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CALIDAD: Chequeo | Estado | Detalle                         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  INVENTARIO: KPIs por categoría                              │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/retail-pipeline/internal/application/dto"
	"github.com/jhoicas/retail-pipeline/internal/application/ports"
)

var _ ports.RunReportGenerator = (*MarotoReportGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorOK      = &props.Color{Red: 24, Green: 128, Blue: 56}
	colorWarn    = &props.Color{Red: 191, Green: 120, Blue: 0}
	colorFail    = &props.Color{Red: 178, Green: 34, Blue: 34}
)

const timeLayout = "02/01/2006 15:04:05"

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator implementa ports.RunReportGenerator usando Maroto v2.
type MarotoReportGenerator struct {
	title   string
	printer *message.Printer
}

// NewMarotoReportGenerator construye el generador. title encabeza el documento.
func NewMarotoReportGenerator(title string) *MarotoReportGenerator {
	if title == "" {
		title = "Retail Pipeline"
	}
	return &MarotoReportGenerator{title: title, printer: message.NewPrinter(language.Spanish)}
}

// GenerateRunReport genera el PDF de la corrida y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateRunReport(ctx context.Context, report dto.RunReport) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(g.title+" - corrida "+report.RunID, true).
		WithAuthor(g.title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(sectionRow("FUENTES"))
	m.AddRows(tableHeader([]string{"Fuente", "Estado", "Filas", "Causa"}, []int{3, 2, 2, 5}))
	for _, s := range report.Sources {
		m.AddRows(g.sourceRow(s))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(sectionRow("CALIDAD DE DATOS"))
	if len(report.Checks) == 0 {
		m.AddRows(emptyRow("Sin chequeos registrados"))
	} else {
		m.AddRows(tableHeader([]string{"Chequeo", "Estado", "Detalle"}, []int{5, 2, 5}))
		for _, c := range report.Checks {
			m.AddRows(checkRow(c))
		}
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(sectionRow("INVENTARIO SIMULADO POR CATEGORÍA"))
	if len(report.Inventory) == 0 {
		m.AddRows(emptyRow("Sin datos de inventario"))
	} else {
		m.AddRows(tableHeader(
			[]string{"Categoría", "Prod.", "Registros", "% Riesgo", "Fill rate", "Rotación", "Var. precio %"},
			[]int{3, 1, 2, 2, 1, 2, 1},
		))
		for _, s := range report.Inventory {
			m.AddRows(g.inventoryRow(s))
		}
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) y run ID + fechas (der).
func (g *MarotoReportGenerator) headerRow(r dto.RunReport) core.Row {
	return row.New(20).Add(
		col.New(6).Add(
			text.New(g.title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Reporte de corrida", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(6).Add(
			text.New(r.RunID, props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 1,
			}),
			text.New("Inicio: "+r.StartedAt.Format(timeLayout), props.Text{
				Size: 8, Align: align.Right, Top: 7, Color: colorGray,
			}),
			text.New("Fin: "+r.FinishedAt.Format(timeLayout), props.Text{
				Size: 8, Align: align.Right, Top: 12, Color: colorGray,
			}),
		),
	)
}

func sectionRow(title string) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 2}),
	))
}

func emptyRow(msg string) core.Row {
	return row.New(6).Add(col.New(12).Add(
		text.New(msg, props.Text{Size: 8, Color: colorGray, Top: 1, Left: 1}),
	))
}

func tableHeader(labels []string, sizes []int) core.Row {
	cols := make([]core.Col, len(labels))
	for i, l := range labels {
		cols[i] = col.New(sizes[i]).Add(text.New(l, props.Text{
			Style: fontstyle.Bold, Size: 8, Top: 1, Left: 1, Right: 1,
		}))
	}
	return row.New(6).Add(cols...)
}

func (g *MarotoReportGenerator) sourceRow(s dto.SourceStatusDTO) core.Row {
	status, color := "OK", colorOK
	if !s.Available {
		status, color = "AUSENTE", colorFail
	}
	cause := s.Reason
	if s.Error != "" {
		cause = s.Reason + ": " + s.Error
	}
	return row.New(6).Add(
		col.New(3).Add(text.New(s.Source, props.Text{Size: 8, Top: 1, Left: 1})),
		col.New(2).Add(text.New(status, props.Text{Size: 8, Top: 1, Style: fontstyle.Bold, Color: color})),
		col.New(2).Add(text.New(g.printer.Sprintf("%d", s.Rows), props.Text{Size: 8, Top: 1, Align: align.Right, Right: 2})),
		col.New(5).Add(text.New(nonEmpty(cause, "-"), props.Text{Size: 7, Top: 1, Color: colorGray})),
	)
}

func checkRow(c dto.QualityCheckDTO) core.Row {
	color := colorOK
	switch c.Status {
	case "WARNING":
		color = colorWarn
	case "FAIL":
		color = colorFail
	}
	return row.New(6).Add(
		col.New(5).Add(text.New(c.Name, props.Text{Size: 8, Top: 1, Left: 1})),
		col.New(2).Add(text.New(c.Status, props.Text{Size: 8, Top: 1, Style: fontstyle.Bold, Color: color})),
		col.New(5).Add(text.New(nonEmpty(c.Detail, "-"), props.Text{Size: 7, Top: 1, Color: colorGray})),
	)
}

func (g *MarotoReportGenerator) inventoryRow(s dto.CategoryInventorySummaryDTO) core.Row {
	cell := func(v string, size int) core.Col {
		return col.New(size).Add(text.New(v, props.Text{Size: 8, Top: 1, Align: align.Right, Right: 1}))
	}
	return row.New(6).Add(
		col.New(3).Add(text.New(s.Category, props.Text{Size: 8, Top: 1, Left: 1})),
		cell(g.printer.Sprintf("%d", s.Products), 1),
		cell(g.printer.Sprintf("%d", s.Records), 2),
		cell(s.StockoutRiskPct.StringFixed(2), 2),
		cell(s.AvgFillRate.StringFixed(2), 1),
		cell(s.AvgTurnover.StringFixed(2), 2),
		cell(s.AvgPriceChangePct.StringFixed(2), 1),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
