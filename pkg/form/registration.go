// Package form valida os formulários de cadastro (em etapas) e de edição de
// profissionais. Os erros são devolvidos por campo para exibição inline.
package form

import (
	"regexp"
	"strings"

	"github.com/jhoicas/gestao-profissionais/pkg/access"
	"github.com/jhoicas/gestao-profissionais/pkg/mask"
	"github.com/jhoicas/gestao-profissionais/pkg/password"
)

// FieldErrors mapeia campo → mensagem. Só a primeira violação de cada campo
// é mantida.
type FieldErrors map[string]string

func (fe FieldErrors) add(field, msg string) {
	if _, ok := fe[field]; !ok {
		fe[field] = msg
	}
}

// Empty informa se não há erros.
func (fe FieldErrors) Empty() bool { return len(fe) == 0 }

// Etapas do cadastro.
const (
	StepPersonal = 1 // dados pessoais
	StepLocation = 2 // endereço e lotação
	StepRole     = 3 // cargo
	StepPassword = 4 // senha de acesso
	Steps        = 4
)

// Nomes dos campos (iguais às chaves JSON).
const (
	FieldName            = "nome_completo"
	FieldCPF             = "cpf"
	FieldEmail           = "email"
	FieldPhone           = "telefone"
	FieldCEP             = "cep"
	FieldCity            = "municipio"
	FieldRegion          = "regiao"
	FieldRole            = "cargo"
	FieldSpecialty       = "especialidade"
	FieldPassword        = "senha"
	FieldPasswordConfirm = "confirmacao_senha"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Registration é o formulário de cadastro de profissional.
type Registration struct {
	Name            string `json:"nome_completo"`
	CPF             string `json:"cpf"`
	Email           string `json:"email"`
	Phone           string `json:"telefone"`
	CEP             string `json:"cep"`
	City            string `json:"municipio"`
	Region          string `json:"regiao"`
	Role            string `json:"cargo"`
	Specialty       string `json:"especialidade"`
	Password        string `json:"senha"`
	PasswordConfirm string `json:"confirmacao_senha"`
}

// ValidateStep valida apenas os campos da etapa informada.
func (r Registration) ValidateStep(step int) FieldErrors {
	fe := FieldErrors{}
	switch step {
	case StepPersonal:
		validateName(fe, r.Name)
		if strings.TrimSpace(r.CPF) == "" {
			fe.add(FieldCPF, "CPF é obrigatório")
		} else if !mask.ValidCPF(r.CPF) {
			fe.add(FieldCPF, "CPF inválido")
		}
		validateEmail(fe, r.Email)
		validatePhone(fe, r.Phone)
	case StepLocation:
		validateLocation(fe, r.CEP, r.City, r.Region)
	case StepRole:
		validateRole(fe, r.Role, r.Specialty)
	case StepPassword:
		if r.Password == "" {
			fe.add(FieldPassword, "Senha é obrigatória")
		} else if v := password.Validate(r.Password, password.WithCPF(r.CPF)); len(v) > 0 {
			fe.add(FieldPassword, v[0])
		}
		if r.PasswordConfirm != r.Password {
			fe.add(FieldPasswordConfirm, "As senhas não conferem")
		}
	}
	return fe
}

// Validate percorre todas as etapas.
func (r Registration) Validate() FieldErrors {
	all := FieldErrors{}
	for step := 1; step <= Steps; step++ {
		for k, v := range r.ValidateStep(step) {
			all.add(k, v)
		}
	}
	return all
}

// FirstInvalidStep devolve a primeira etapa com erro, ou 0.
func (r Registration) FirstInvalidStep() int {
	for step := 1; step <= Steps; step++ {
		if !r.ValidateStep(step).Empty() {
			return step
		}
	}
	return 0
}

// Normalized devolve uma cópia com espaços aparados e máscaras aplicadas.
func (r Registration) Normalized() Registration {
	r.Name = strings.Join(strings.Fields(r.Name), " ")
	r.CPF = mask.OnlyDigits(r.CPF)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Phone = mask.OnlyDigits(r.Phone)
	r.CEP = mask.OnlyDigits(r.CEP)
	r.City = strings.TrimSpace(r.City)
	r.Region = strings.TrimSpace(r.Region)
	if role, ok := access.ParseRole(r.Role); ok {
		r.Role = string(role)
	}
	r.Specialty = strings.TrimSpace(r.Specialty)
	return r
}

func validateName(fe FieldErrors, name string) {
	name = strings.TrimSpace(name)
	switch {
	case name == "":
		fe.add(FieldName, "Nome completo é obrigatório")
	case len(strings.Fields(name)) < 2:
		fe.add(FieldName, "Informe nome e sobrenome")
	case len([]rune(name)) > 200:
		fe.add(FieldName, "Nome deve ter no máximo 200 caracteres")
	}
}

func validateEmail(fe FieldErrors, email string) {
	email = strings.TrimSpace(email)
	if email == "" {
		fe.add(FieldEmail, "E-mail é obrigatório")
	} else if !emailRe.MatchString(email) {
		fe.add(FieldEmail, "E-mail inválido")
	}
}

func validatePhone(fe FieldErrors, phone string) {
	if strings.TrimSpace(phone) == "" {
		fe.add(FieldPhone, "Telefone é obrigatório")
	} else if !mask.ValidPhone(phone) {
		fe.add(FieldPhone, "Telefone inválido")
	}
}

func validateLocation(fe FieldErrors, cep, city, region string) {
	if strings.TrimSpace(cep) == "" {
		fe.add(FieldCEP, "CEP é obrigatório")
	} else if !mask.ValidCEP(cep) {
		fe.add(FieldCEP, "CEP inválido")
	}
	if strings.TrimSpace(city) == "" {
		fe.add(FieldCity, "Município é obrigatório")
	}
	if strings.TrimSpace(region) == "" {
		fe.add(FieldRegion, "Região é obrigatória")
	}
}

func validateRole(fe FieldErrors, role, specialty string) {
	if strings.TrimSpace(role) == "" {
		fe.add(FieldRole, "Cargo é obrigatório")
	} else if _, ok := access.ParseRole(role); !ok {
		fe.add(FieldRole, "Cargo inválido")
	}
	if len([]rune(specialty)) > 120 {
		fe.add(FieldSpecialty, "Especialidade deve ter no máximo 120 caracteres")
	}
}
