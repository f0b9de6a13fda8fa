// Package pdf gera o relatório de reposição de estoque em PDF.
//
// Layout da página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título do relatório │ Data de geração              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMO: total de produtos abaixo do mínimo                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABELA: SKU | Produto | Estoque atual | Mínimo | Repor     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RODAPÉ: leyenda                                            │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

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

	"github.com/stocksync/stocksync-api/internal/application/analytics"
	"github.com/stocksync/stocksync-api/internal/application/dto"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorAlert   = &props.Color{Red: 180, Green: 40, Blue: 40}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ analytics.ReportGenerator = (*MarotoReportGenerator)(nil)

// MarotoReportGenerator implementa analytics.ReportGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator constrói o gerador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateLowStockReport gera o PDF e devolve seus bytes.
func (g *MarotoReportGenerator) GenerateLowStockReport(
	_ context.Context,
	generatedAt time.Time,
	alerts []dto.LowStockAlertDTO,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Relatório de Reposição de Estoque", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(len(alerts)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	if len(alerts) == 0 {
		m.AddRows(row.New(12).Add(col.New(12).Add(
			text.New("Nenhum produto abaixo do estoque mínimo.", props.Text{
				Size: 10, Align: align.Center, Top: 3, Color: colorGray,
			}),
		)))
	} else {
		m.AddRows(tableHeaderRow())
		for _, r := range tableAlertRows(alerts) {
			m.AddRows(r)
		}
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: gerar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: título (esq) e data de geração (dir).
func headerRow(generatedAt time.Time) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New("RELATÓRIO DE REPOSIÇÃO DE ESTOQUE", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Produtos com estoque abaixo do mínimo", props.Text{
				Size: 9, Top: 10, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Gerado em", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(generatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 10, Align: align.Right, Top: 7,
			}),
		),
	)
}

// summaryRow: contagem de produtos em alerta.
func summaryRow(count int) core.Row {
	msg := fmt.Sprintf("%d produto(s) precisam de reposição", count)
	c := colorAlert
	if count == 0 {
		c = colorGray
	}
	return row.New(10).Add(col.New(12).Add(
		text.New(msg, props.Text{Style: fontstyle.Bold, Size: 10, Top: 2, Color: c}),
	))
}

// tableHeaderRow: cabeçalho da tabela de alertas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("SKU", 2, align.Left),
		h("Produto", 5, align.Left),
		h("Estoque", 2, align.Right),
		h("Mínimo", 1, align.Right),
		h("Repor", 2, align.Right),
	)
}

// tableAlertRows: uma linha por produto em alerta. A coluna "Repor" é a
// quantidade necessária para voltar ao mínimo.
func tableAlertRows(alerts []dto.LowStockAlertDTO) []core.Row {
	result := make([]core.Row, 0, len(alerts))
	for _, a := range alerts {
		needed := a.MinStock - a.CurrentStock
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(
				a.SKU,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(5).Add(text.New(
				a.Name,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				fmt.Sprintf("%d", a.CurrentStock),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1, Color: colorAlert},
			)),
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", a.MinStock),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				fmt.Sprintf("%d", needed),
				props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// footerRow: leyenda do rodapé.
func footerRow() core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(
			"Relatório gerado automaticamente a partir do estoque atual. "+
				"Produtos aparecem aqui quando o estoque fica estritamente abaixo do mínimo configurado.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	))
}
