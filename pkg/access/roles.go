// Package access concentra o modelo de autorização: cargos, o conjunto de
// permissões derivado de cada cargo e a decisão do guard de rotas.
//
// Servidor e cliente usam a mesma tabela, de modo que uma tela escondida no
// front end também é bloqueada na API.
package access

import "strings"

// Role é o cargo (label) do usuário.
type Role string

// Cargos conhecidos, em ordem hierárquica.
const (
	RoleAdministrador       Role = "Administrador"
	RoleCoordenadorEstadual Role = "Coordenador Estadual"
	RoleCoordenadorRegional Role = "Coordenador Regional"
	RoleApoiador            Role = "Apoiador"
	RolePreceptor           Role = "Preceptor"
	RoleProfissional        Role = "Profissional"
	RoleResidente           Role = "Residente"
)

var knownRoles = []Role{
	RoleAdministrador,
	RoleCoordenadorEstadual,
	RoleCoordenadorRegional,
	RoleApoiador,
	RolePreceptor,
	RoleProfissional,
	RoleResidente,
}

// Roles devolve os cargos conhecidos em ordem hierárquica.
func Roles() []Role {
	out := make([]Role, len(knownRoles))
	copy(out, knownRoles)
	return out
}

// ParseRole normaliza espaços e compara sem diferenciar maiúsculas.
func ParseRole(s string) (Role, bool) {
	s = strings.TrimSpace(s)
	for _, r := range knownRoles {
		if strings.EqualFold(string(r), s) {
			return r, true
		}
	}
	return "", false
}

// Known informa se o cargo faz parte da tabela.
func (r Role) Known() bool {
	_, ok := ParseRole(string(r))
	return ok
}

func (r Role) String() string { return string(r) }
