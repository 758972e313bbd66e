package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/gestao-profissionais/internal/application/usecase"
	"github.com/jhoicas/gestao-profissionais/internal/domain/repository"
)

var _ usecase.TxRunner = (*TxRunner)(nil)

// TxRunner serializa os blocos transacionais sobre o repositório em memória.
// Não há rollback: o que fn gravou antes de falhar permanece.
type TxRunner struct {
	mu    sync.Mutex
	users *UserRepository
}

// NewTxRunner constrói o runner sobre o repositório.
func NewTxRunner(users *UserRepository) *TxRunner {
	return &TxRunner{users: users}
}

// RunUsers executa fn com exclusão mútua entre chamadas.
func (r *TxRunner) RunUsers(_ context.Context, fn func(users repository.UserRepository) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return fn(r.users)
}
