// Package pdf gera o relatório de profissionais em PDF.
//
// Layout (A4):
//
//	┌───────────────────────────────────────────────────────┐
//	│  Relatório de Profissionais     │  Gerado em / total  │
//	│  Escopo + filtros                                     │
//	│  ───────────────────────────────────────────────────  │
//	│  Nome | CPF | E-mail | Cargo | Região | Status        │
//	│  ...                                                  │
//	└───────────────────────────────────────────────────────┘
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

	"github.com/jhoicas/gestao-profissionais/internal/application/usecase"
	"github.com/jhoicas/gestao-profissionais/internal/domain/entity"
	"github.com/jhoicas/gestao-profissionais/pkg/mask"
)

var _ usecase.ReportGenerator = (*ProfessionalReportGenerator)(nil)

// ── Paleta ────────────────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 94, Blue: 84}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorStripe  = &props.Color{Red: 240, Green: 244, Blue: 243}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// ProfessionalReportGenerator implementa usecase.ReportGenerator com Maroto v2.
type ProfessionalReportGenerator struct{}

// NewProfessionalReportGenerator constrói o gerador.
func NewProfessionalReportGenerator() *ProfessionalReportGenerator {
	return &ProfessionalReportGenerator{}
}

// Format pdf.
func (g *ProfessionalReportGenerator) Format() usecase.ExportFormat { return usecase.ExportPDF }

// ContentType application/pdf.
func (g *ProfessionalReportGenerator) ContentType() string { return "application/pdf" }

// Generate monta o documento e devolve os bytes.
func (g *ProfessionalReportGenerator) Generate(_ context.Context, report *usecase.ProfessionalReport) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle("Relatório de Profissionais", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	m.AddRows(tableRows(report.Professionals)...)
	if len(report.Professionals) == 0 {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("Nenhum profissional encontrado.", props.Text{
				Size: 9, Align: align.Center, Color: colorGray, Top: 3,
			}),
		)))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: gerar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Seções ────────────────────────────────────────────────────────────────────

func headerRow(report *usecase.ProfessionalReport) core.Row {
	return row.New(20).Add(
		col.New(8).Add(
			text.New("Relatório de Profissionais", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Escopo: "+report.Scope, props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
			text.New("Filtros: "+report.Filters, props.Text{
				Size: 8, Top: 14, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Gerado em "+report.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
			text.New(fmt.Sprintf("%d registro(s)", len(report.Professionals)), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 8,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorWhite, Top: 2, Left: 1,
		}))
	}
	return row.New(8).Add(
		h("Nome", 3),
		h("CPF", 2),
		h("E-mail", 3),
		h("Cargo", 2),
		h("Região", 1),
		h("Status", 1),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func tableRows(users []*entity.User) []core.Row {
	rows := make([]core.Row, 0, len(users))
	cell := func(s string, size int) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 7.5, Top: 1.5, Left: 1}))
	}
	for i, u := range users {
		r := row.New(7).Add(
			cell(u.Name, 3),
			cell(mask.FormatCPF(u.CPF), 2),
			cell(u.Email, 3),
			cell(u.Role, 2),
			cell(nonEmpty(u.Region, "—"), 1),
			cell(u.Status, 1),
		)
		if i%2 == 1 {
			r = r.WithStyle(&props.Cell{BackgroundColor: colorStripe})
		}
		rows = append(rows, r)
	}
	return rows
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
