// Package csv gera a exportação de profissionais em CSV compatível com Excel
// em português: separador ';', BOM UTF-8 e CRLF.
package csv

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"

	"github.com/jhoicas/gestao-profissionais/internal/application/usecase"
	"github.com/jhoicas/gestao-profissionais/pkg/mask"
)

var _ usecase.ReportGenerator = (*ProfessionalReportGenerator)(nil)

var header = []string{
	"ID", "Nome", "CPF", "E-mail", "Telefone", "Cargo", "Especialidade",
	"Região", "Município", "CEP", "Status", "Primeiro acesso", "Cadastrado em",
}

// ProfessionalReportGenerator implementa usecase.ReportGenerator.
type ProfessionalReportGenerator struct{}

// NewProfessionalReportGenerator constrói o gerador.
func NewProfessionalReportGenerator() *ProfessionalReportGenerator {
	return &ProfessionalReportGenerator{}
}

// Format csv.
func (g *ProfessionalReportGenerator) Format() usecase.ExportFormat { return usecase.ExportCSV }

// ContentType text/csv com charset.
func (g *ProfessionalReportGenerator) ContentType() string { return "text/csv; charset=utf-8" }

// Generate escreve o cabeçalho e uma linha por profissional.
func (g *ProfessionalReportGenerator) Generate(_ context.Context, report *usecase.ProfessionalReport) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("\ufeff")
	w := csv.NewWriter(&buf)
	w.Comma = ';'
	w.UseCRLF = true

	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("csv: cabeçalho: %w", err)
	}
	for _, u := range report.Professionals {
		rec := []string{
			fmt.Sprintf("%d", u.ID),
			u.Name,
			mask.FormatCPF(u.CPF),
			u.Email,
			mask.FormatPhone(u.Phone),
			u.Role,
			u.Specialty,
			u.Region,
			u.City,
			mask.FormatCEP(u.CEP),
			u.Status,
			yesNo(u.FirstAccess),
			u.CreatedAt.Format("02/01/2006"),
		}
		if err := w.Write(rec); err != nil {
			return nil, fmt.Errorf("csv: linha %d: %w", u.ID, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("csv: %w", err)
	}
	return buf.Bytes(), nil
}

func yesNo(b bool) string {
	if b {
		return "Sim"
	}
	return "Não"
}
