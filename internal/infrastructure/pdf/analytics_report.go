// Package pdf renderiza el reporte de analítica del gerente con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + Gerente     │  Fecha de generación         │
//	│  Tiendas administradas                                       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: # | Producto | Pedidos                               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: # | ID | Cliente | Pedidos                           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: leyenda                                             │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"strings"

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

	"github.com/jhoicas/Tiendas-ops/internal/application/dto"
	"github.com/jhoicas/Tiendas-ops/internal/application/ports"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ ports.ReportGenerator = (*MarotoReportGenerator)(nil)

// MarotoReportGenerator implementa ports.ReportGenerator usando Maroto v2.
type MarotoReportGenerator struct {
	appName string
}

// NewMarotoReportGenerator construye el generador; appName aparece como autor del documento.
func NewMarotoReportGenerator(appName string) *MarotoReportGenerator {
	return &MarotoReportGenerator{appName: appName}
}

// GenerateAnalyticsReport genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateAnalyticsReport(_ context.Context, report *dto.AnalyticsReportDTO) ([]byte, error) {
	if report == nil {
		return nil, fmt.Errorf("pdf: reporte vacío")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de pedidos", true).
		WithAuthor(g.appName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(sectionTitle("PRODUCTOS MÁS PEDIDOS"))
	m.AddRows(tableHeader([]string{"#", "Producto", "Pedidos"}, []int{1, 8, 3}))
	m.AddRows(productRows(report.TopProducts)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitle("CLIENTES CON MÁS PEDIDOS"))
	m.AddRows(tableHeader([]string{"#", "ID", "Cliente", "Pedidos"}, []int{1, 2, 6, 3}))
	m.AddRows(customerRows(report.TopCustomers)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(row.New(8).Add(col.New(12).Add(
		text.New("Conteo de pedidos registrados en las tiendas administradas. Empates ordenados alfabéticamente.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2}),
	)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título y gerente (izq), fecha de generación (der), tiendas debajo.
func headerRow(report *dto.AnalyticsReportDTO) core.Row {
	return row.New(22).Add(
		col.New(8).Add(
			text.New("REPORTE DE PEDIDOS", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Gerente: %s (ID %d)", report.ManagerName, report.ManagerID), props.Text{
				Size: 9, Top: 9,
			}),
			text.New("Tiendas: "+joinIDs(report.StoreIDs), props.Text{
				Size: 8, Top: 15, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Generado", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(report.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 9, Align: align.Right, Top: 7,
			}),
		),
	)
}

func sectionTitle(title string) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 2}),
	))
}

func tableHeader(labels []string, sizes []int) core.Row {
	cols := make([]core.Col, 0, len(labels))
	for i, l := range labels {
		cols = append(cols, col.New(sizes[i]).Add(text.New(l, props.Text{
			Style: fontstyle.Bold, Size: 8, Top: 1, Left: 1,
		})))
	}
	return row.New(6).Add(cols...)
}

func productRows(items []dto.TopProductDTO) []core.Row {
	if len(items) == 0 {
		return []core.Row{emptyRow()}
	}
	rows := make([]core.Row, 0, len(items))
	for _, p := range items {
		rows = append(rows, row.New(6).Add(
			cell(strconv.Itoa(p.Rank), 1),
			cell(p.ProductName, 8),
			cell(strconv.Itoa(p.OrderCount), 3),
		))
	}
	return rows
}

func customerRows(items []dto.TopCustomerDTO) []core.Row {
	if len(items) == 0 {
		return []core.Row{emptyRow()}
	}
	rows := make([]core.Row, 0, len(items))
	for _, c := range items {
		rows = append(rows, row.New(6).Add(
			cell(strconv.Itoa(c.Rank), 1),
			cell(strconv.FormatInt(c.CustomerID, 10), 2),
			cell(c.CustomerName, 6),
			cell(strconv.Itoa(c.OrderCount), 3),
		))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func cell(s string, size int) core.Col {
	return col.New(size).Add(text.New(s, props.Text{Size: 8, Top: 1, Left: 1}))
}

func emptyRow() core.Row {
	return row.New(6).Add(col.New(12).Add(
		text.New("Sin pedidos registrados.", props.Text{Size: 8, Color: colorGray, Top: 1, Left: 1}),
	))
}

func joinIDs(ids []int64) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.FormatInt(id, 10))
	}
	return strings.Join(parts, ", ")
}
