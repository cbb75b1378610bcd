// Package pdf genera el comprobante de préstamo (bukti peminjaman) en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre de la app      │  N° Préstamo + Estado       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PRESTATARIO / PROGRAMA / OPERADOR / FECHAS                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Categoría | Equipo | Prestado | Pendiente            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  HISTORIAL DE DEVOLUCIONES                                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR con la referencia del préstamo + leyenda         │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strings"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
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

	"github.com/jhoicas/Peminjaman-api/internal/application/loan"
	"github.com/jhoicas/Peminjaman-api/internal/domain/entity"
	"github.com/jhoicas/Peminjaman-api/internal/domain/inventory"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorDanger  = &props.Color{Red: 170, Green: 30, Blue: 30}
)

var statusLabels = map[entity.LoanStatus]string{
	entity.LoanStatusActive:        "ACTIVO",
	entity.LoanStatusPartialReturn: "DEVOLUCIÓN PARCIAL",
	entity.LoanStatusReturned:      "DEVUELTO",
}

// ── Generator ─────────────────────────────────────────────────────────────────

var _ loan.ReceiptRenderer = (*ReceiptGenerator)(nil)

// ReceiptGenerator implementa loan.ReceiptRenderer usando Maroto v2.
type ReceiptGenerator struct {
	appName string
}

// NewReceiptGenerator construye el generador; appName aparece en la cabecera.
func NewReceiptGenerator(appName string) *ReceiptGenerator {
	return &ReceiptGenerator{appName: appName}
}

// Render genera el PDF del préstamo y devuelve sus bytes.
func (g *ReceiptGenerator) Render(l *entity.Peminjaman, now time.Time) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(fmt.Sprintf("Peminjaman #%d", l.ID), true).
		WithAuthor(g.appName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.appName, l))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(partiesRow(l))
	m.AddRows(datesRow(l, now))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitle("EQUIPOS PRESTADOS"))
	m.AddRows(tableHeaderRow())
	m.AddRows(linesRows(l)...)

	if len(l.ReturnDetails) > 0 {
		m.AddRows(line.NewRow(3))
		m.AddRows(sectionTitle("HISTORIAL DE DEVOLUCIONES"))
		m.AddRows(historyRows(l.ReturnDetails)...)
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(l, now))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(appName string, l *entity.Peminjaman) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(appName, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New("Comprobante de préstamo de equipos", props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("PEMINJAMAN", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("N° %06d", l.ID), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Estado: "+nonEmpty(statusLabels[l.Status], string(l.Status)), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func partiesRow(l *entity.Peminjaman) core.Row {
	return row.New(14).Add(
		col.New(6).Add(
			text.New("PRESTATARIO", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(l.BorrowerName, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
		),
		col.New(6).Add(
			text.New("PROGRAMA / OPERADOR", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(fmt.Sprintf("%s   |   %s", l.ProgramName, nonEmpty(l.OperatorName, "-")), props.Text{
				Size: 9, Top: 6,
			}),
		),
	)
}

func datesRow(l *entity.Peminjaman, now time.Time) core.Row {
	planned := props.Text{Size: 9, Top: 6}
	if l.Overdue(now) {
		planned.Color = colorDanger
		planned.Style = fontstyle.Bold
	}
	returned := "-"
	if l.ReturnedAt != nil {
		returned = l.ReturnedAt.Format("02/01/2006 15:04")
	}
	return row.New(13).Add(
		col.New(4).Add(
			text.New("FECHA DE PRÉSTAMO", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(l.LoanDate.Format("02/01/2006"), props.Text{Size: 9, Top: 6}),
		),
		col.New(4).Add(
			text.New("DEVOLUCIÓN PLANIFICADA", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(l.PlannedReturnDate.Format("02/01/2006"), planned),
		),
		col.New(4).Add(
			text.New("PRIMERA DEVOLUCIÓN", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(returned, props.Text{Size: 9, Top: 6}),
		),
	)
}

func sectionTitle(title string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2}),
	))
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Categoría", 4, align.Left),
		h("Equipo", 4, align.Left),
		h("Prestado", 2, align.Center),
		h("Pendiente", 2, align.Center),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// linesRows una fila por línea original con su cantidad pendiente.
func linesRows(l *entity.Peminjaman) []core.Row {
	pending := make(map[string]int, len(l.RemainingItems))
	for _, r := range l.RemainingItems {
		pending[inventory.LineKey(r.Category, r.Name)] += r.Quantity
	}
	rows := make([]core.Row, 0, len(l.Items))
	for _, it := range l.Items {
		left := pending[inventory.LineKey(it.Category, it.Name)]
		rows = append(rows, row.New(7).Add(
			col.New(4).Add(text.New(it.Category, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(4).Add(text.New(it.Name, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(fmt.Sprint(it.Quantity), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(fmt.Sprint(left), props.Text{Size: 8, Align: align.Center, Top: 1})),
		))
	}
	return rows
}

func historyRows(details []entity.ReturnDetail) []core.Row {
	rows := make([]core.Row, 0, len(details))
	for _, d := range details {
		devices := make([]string, 0, len(d.Devices))
		for _, dev := range d.Devices {
			devices = append(devices, fmt.Sprintf("%s %s x%d", dev.Category, dev.Name, dev.ReturnedCount))
		}
		rows = append(rows, row.New(6).Add(
			col.New(3).Add(text.New(d.ReturnedAt.Format("02/01/2006 15:04"), props.Text{Size: 8, Top: 1})),
			col.New(6).Add(text.New(strings.Join(devices, ", "), props.Text{Size: 8, Top: 1})),
			col.New(3).Add(text.New(nonEmpty(statusLabels[d.Status], string(d.Status)), props.Text{
				Size: 8, Top: 1, Align: align.Right, Color: colorGray,
			})),
		))
	}
	return rows
}

func footerRow(l *entity.Peminjaman, now time.Time) core.Row {
	ref := fmt.Sprintf("PEMINJAMAN|%d|%s|%s", l.ID, l.LoanDate.Format("2006-01-02"), l.PlannedReturnDate.Format("2006-01-02"))
	return row.New(36).Add(
		col.New(3).Add(code.NewQr(ref, props.Rect{Percent: 95, Center: true})),
		col.New(9).Add(
			text.New("Presente este comprobante al devolver los equipos.", props.Text{
				Size: 8, Top: 4, Left: 3, Color: colorGray,
			}),
			text.New("Generado el "+now.Format("02/01/2006 15:04"), props.Text{
				Size: 7, Top: 12, Left: 3, Color: colorGray,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
