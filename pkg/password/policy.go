// Package password reúne as regras de senha: o validador detalhado usado
// nos formulários de cadastro e troca de senha, e o validador simples que
// alimenta o medidor de força.
package password

import (
	"strings"

	"github.com/jhoicas/gestao-profissionais/pkg/mask"
)

// MinLength é o tamanho mínimo aceito.
const MinLength = 8

// SpecialChars é o conjunto aceito pelo validador detalhado.
const SpecialChars = `!@#$%^&*(),.?":{}|<>`

// Mensagens do validador detalhado, na ordem em que são avaliadas.
const (
	MsgMinLength = "A senha deve ter no mínimo 8 caracteres"
	MsgUpper     = "A senha deve conter pelo menos uma letra maiúscula"
	MsgLower     = "A senha deve conter pelo menos uma letra minúscula"
	MsgNumber    = "A senha deve conter pelo menos um número"
	MsgSpecial   = `A senha deve conter pelo menos um caractere especial (!@#$%^&*(),.?":{}|<>)`
	MsgCPF       = "A senha não pode conter o CPF"
)

type options struct {
	cpf string
}

// Option ajusta o validador detalhado.
type Option func(*options)

// WithCPF ativa a regra que proíbe usar o CPF na senha.
func WithCPF(cpf string) Option {
	return func(o *options) { o.cpf = cpf }
}

// Validate aplica as regras de composição e devolve as violações em ordem.
// Lista vazia significa senha aceita.
func Validate(pw string, opts ...Option) []string {
	var o options
	for _, fn := range opts {
		fn(&o)
	}

	var violations []string
	if len([]rune(pw)) < MinLength {
		violations = append(violations, MsgMinLength)
	}
	if !strings.ContainsFunc(pw, isUpper) {
		violations = append(violations, MsgUpper)
	}
	if !strings.ContainsFunc(pw, isLower) {
		violations = append(violations, MsgLower)
	}
	if !strings.ContainsFunc(pw, isDigit) {
		violations = append(violations, MsgNumber)
	}
	if !strings.ContainsAny(pw, SpecialChars) {
		violations = append(violations, MsgSpecial)
	}
	if containsCPF(pw, o.cpf) {
		violations = append(violations, MsgCPF)
	}
	return violations
}

// IsValid atalho para len(Validate(...)) == 0.
func IsValid(pw string, opts ...Option) bool {
	return len(Validate(pw, opts...)) == 0
}

func containsCPF(pw, cpf string) bool {
	digits := mask.OnlyDigits(cpf)
	if digits == "" {
		return false
	}
	return strings.Contains(mask.OnlyDigits(pw), digits)
}

// Só ASCII: letras acentuadas não contam como maiúscula nem minúscula.
func isUpper(r rune) bool { return r >= 'A' && r <= 'Z' }
func isLower(r rune) bool { return r >= 'a' && r <= 'z' }
func isDigit(r rune) bool { return r >= '0' && r <= '9' }
