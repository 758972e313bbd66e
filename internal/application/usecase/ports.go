package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/gestao-profissionais/internal/domain/entity"
	"github.com/jhoicas/gestao-profissionais/internal/domain/repository"
)

// TxRunner executa fn numa transação, com o repositório de usuários atado a ela.
type TxRunner interface {
	RunUsers(ctx context.Context, fn func(users repository.UserRepository) error) error
}

// ExportFormat formato do arquivo exportado.
type ExportFormat string

// Formatos aceitos em ?formato=.
const (
	ExportCSV ExportFormat = "csv"
	ExportPDF ExportFormat = "pdf"
)

// ProfessionalReport dados passados aos geradores de exportação.
type ProfessionalReport struct {
	GeneratedAt   time.Time
	Scope         string // região do ator ou "Todas as regiões"
	Filters       string // resumo legível dos filtros aplicados
	Professionals []*entity.User
}

// ReportGenerator gera o arquivo de um formato.
type ReportGenerator interface {
	Format() ExportFormat
	ContentType() string
	Generate(ctx context.Context, report *ProfessionalReport) ([]byte, error)
}
