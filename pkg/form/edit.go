package form

import (
	"strings"

	"github.com/jhoicas/gestao-profissionais/pkg/access"
	"github.com/jhoicas/gestao-profissionais/pkg/mask"
)

// Edit é o formulário de edição. CPF e senha não são editáveis aqui.
type Edit struct {
	Name      string `json:"nome_completo"`
	Email     string `json:"email"`
	Phone     string `json:"telefone"`
	CEP       string `json:"cep"`
	City      string `json:"municipio"`
	Region    string `json:"regiao"`
	Role      string `json:"cargo"`
	Specialty string `json:"especialidade"`
}

// Validate aplica as mesmas regras do cadastro aos campos editáveis.
func (e Edit) Validate() FieldErrors {
	fe := FieldErrors{}
	validateName(fe, e.Name)
	validateEmail(fe, e.Email)
	validatePhone(fe, e.Phone)
	validateLocation(fe, e.CEP, e.City, e.Region)
	validateRole(fe, e.Role, e.Specialty)
	return fe
}

// Normalized devolve uma cópia com espaços aparados e só dígitos nos campos mascarados.
func (e Edit) Normalized() Edit {
	e.Name = strings.Join(strings.Fields(e.Name), " ")
	e.Email = strings.ToLower(strings.TrimSpace(e.Email))
	e.Phone = mask.OnlyDigits(e.Phone)
	e.CEP = mask.OnlyDigits(e.CEP)
	e.City = strings.TrimSpace(e.City)
	e.Region = strings.TrimSpace(e.Region)
	if role, ok := access.ParseRole(e.Role); ok {
		e.Role = string(role)
	}
	e.Specialty = strings.TrimSpace(e.Specialty)
	return e
}
