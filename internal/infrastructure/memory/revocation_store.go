package memory

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/gestao-profissionais/internal/domain/repository"
)

var _ repository.TokenRevocationStore = (*RevocationStore)(nil)

// RevocationStore mantém os jti revogados em memória. Serve a uma única instância da API.
type RevocationStore struct {
	mu      sync.RWMutex
	entries map[string]time.Time
	now     func() time.Time
}

// NewRevocationStore cria o store vazio.
func NewRevocationStore() *RevocationStore {
	return &RevocationStore{entries: make(map[string]time.Time), now: time.Now}
}

// Revoke registra o jti até until.
func (s *RevocationStore) Revoke(_ context.Context, jti string, until time.Time) error {
	if !until.After(s.now()) {
		return nil
	}
	s.mu.Lock()
	s.entries[jti] = until
	s.mu.Unlock()
	return nil
}

// IsRevoked informa se o jti está revogado e ainda não venceu.
func (s *RevocationStore) IsRevoked(_ context.Context, jti string) (bool, error) {
	s.mu.RLock()
	until, ok := s.entries[jti]
	s.mu.RUnlock()
	return ok && until.After(s.now()), nil
}

// Purge descarta entradas vencidas.
func (s *RevocationStore) Purge(_ context.Context, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for jti, until := range s.entries {
		if !until.After(now) {
			delete(s.entries, jti)
			n++
		}
	}
	return n, nil
}

// Len devolve o número de entradas guardadas.
func (s *RevocationStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
