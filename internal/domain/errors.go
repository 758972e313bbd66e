package domain

import (
	"errors"
	"sort"
	"strings"
)

// Erros de domínio.
var (
	ErrNotFound               = errors.New("recurso não encontrado")
	ErrUserNotFound           = errors.New("usuário não encontrado")
	ErrEmailAlreadyExists     = errors.New("e-mail já cadastrado")
	ErrCPFAlreadyExists       = errors.New("CPF já cadastrado")
	ErrInvalidInput           = errors.New("entrada inválida")
	ErrInvalidCredentials     = errors.New("CPF/e-mail ou senha incorretos")
	ErrInactiveUser           = errors.New("usuário inativo")
	ErrUnauthorized           = errors.New("não autorizado")
	ErrForbidden              = errors.New("acesso negado")
	ErrConflict               = errors.New("conflito com o estado atual")
	ErrPasswordChangeRequired = errors.New("troca de senha obrigatória")
	ErrSamePassword           = errors.New("a nova senha deve ser diferente da atual")
	ErrSelfAction             = errors.New("operação não permitida sobre o próprio usuário")
)

// ValidationError agrupa erros por campo para exibição inline.
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError cria o erro; nil se não houver campos.
func NewValidationError(fields map[string]string) error {
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "dados inválidos: " + strings.Join(parts, "; ")
}

// Is permite errors.Is(err, ErrInvalidInput).
func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }
