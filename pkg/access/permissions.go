package access

// Permissions é o registro fixo de capacidades derivado do cargo.
// Todos os campos são preenchidos explicitamente em Resolve.
type Permissions struct {
	FullAccess          bool `json:"acesso_total"`
	ManageHierarchy     bool `json:"gerenciar_hierarquia"`
	CreateProfessionals bool `json:"criar_profissionais"`
	CreateStudents      bool `json:"criar_residentes"`
	EditProfessionals   bool `json:"editar_profissionais"`
	DeleteProfessionals bool `json:"excluir_profissionais"`
	ChangeStatus        bool `json:"alterar_status"`
	ResetPasswords      bool `json:"redefinir_senhas"`
	ViewProfessionals   bool `json:"visualizar_profissionais"`
	ExportData          bool `json:"exportar_dados"`
	ModuleRegistry      bool `json:"modulo_cadastro"`
	ModuleTraining      bool `json:"modulo_formacao"`
	ModuleMonitoring    bool `json:"modulo_monitoramento"`
	ModuleReports       bool `json:"modulo_relatorios"`
	ViewOnly            bool `json:"apenas_visualizacao"`
	ViewAllRegions      bool `json:"todas_regioes"`
}

// Baseline é o registro de visitante: nenhuma permissão.
var Baseline = Permissions{}

// Resolve calcula as permissões do cargo. Só o label exato é reconhecido;
// qualquer outra grafia, inclusive vazia, recebe Baseline. Entrada de
// formulário passa antes por ParseRole.
func Resolve(role Role) Permissions {
	switch role {
	case RoleAdministrador:
		return Permissions{
			FullAccess:          true,
			ManageHierarchy:     true,
			CreateProfessionals: true,
			CreateStudents:      true,
			EditProfessionals:   true,
			DeleteProfessionals: true,
			ChangeStatus:        true,
			ResetPasswords:      true,
			ViewProfessionals:   true,
			ExportData:          true,
			ModuleRegistry:      true,
			ModuleTraining:      true,
			ModuleMonitoring:    true,
			ModuleReports:       true,
			ViewOnly:            false,
			ViewAllRegions:      true,
		}
	case RoleCoordenadorEstadual:
		return Permissions{
			FullAccess:          false,
			ManageHierarchy:     true,
			CreateProfessionals: true,
			CreateStudents:      true,
			EditProfessionals:   true,
			DeleteProfessionals: false,
			ChangeStatus:        true,
			ResetPasswords:      true,
			ViewProfessionals:   true,
			ExportData:          true,
			ModuleRegistry:      true,
			ModuleTraining:      true,
			ModuleMonitoring:    true,
			ModuleReports:       true,
			ViewOnly:            false,
			ViewAllRegions:      true,
		}
	case RoleCoordenadorRegional:
		return Permissions{
			FullAccess:          false,
			ManageHierarchy:     false,
			CreateProfessionals: true,
			CreateStudents:      true,
			EditProfessionals:   true,
			DeleteProfessionals: false,
			ChangeStatus:        true,
			ResetPasswords:      true,
			ViewProfessionals:   true,
			ExportData:          true,
			ModuleRegistry:      true,
			ModuleTraining:      true,
			ModuleMonitoring:    true,
			ModuleReports:       true,
			ViewOnly:            false,
			ViewAllRegions:      false,
		}
	case RoleApoiador:
		return Permissions{
			FullAccess:          false,
			ManageHierarchy:     false,
			CreateProfessionals: false,
			CreateStudents:      false,
			EditProfessionals:   false,
			DeleteProfessionals: false,
			ChangeStatus:        false,
			ResetPasswords:      false,
			ViewProfessionals:   true,
			ExportData:          true,
			ModuleRegistry:      true,
			ModuleTraining:      false,
			ModuleMonitoring:    true,
			ModuleReports:       true,
			ViewOnly:            true,
			ViewAllRegions:      false,
		}
	case RolePreceptor:
		return Permissions{
			FullAccess:          false,
			ManageHierarchy:     false,
			CreateProfessionals: false,
			CreateStudents:      true,
			EditProfessionals:   false,
			DeleteProfessionals: false,
			ChangeStatus:        false,
			ResetPasswords:      false,
			ViewProfessionals:   true,
			ExportData:          false,
			ModuleRegistry:      true,
			ModuleTraining:      true,
			ModuleMonitoring:    false,
			ModuleReports:       false,
			ViewOnly:            false,
			ViewAllRegions:      false,
		}
	case RoleProfissional:
		return Permissions{
			FullAccess:          false,
			ManageHierarchy:     false,
			CreateProfessionals: false,
			CreateStudents:      false,
			EditProfessionals:   false,
			DeleteProfessionals: false,
			ChangeStatus:        false,
			ResetPasswords:      false,
			ViewProfessionals:   false,
			ExportData:          false,
			ModuleRegistry:      false,
			ModuleTraining:      true,
			ModuleMonitoring:    false,
			ModuleReports:       false,
			ViewOnly:            true,
			ViewAllRegions:      false,
		}
	case RoleResidente:
		return Permissions{
			FullAccess:          false,
			ManageHierarchy:     false,
			CreateProfessionals: false,
			CreateStudents:      false,
			EditProfessionals:   false,
			DeleteProfessionals: false,
			ChangeStatus:        false,
			ResetPasswords:      false,
			ViewProfessionals:   false,
			ExportData:          false,
			ModuleRegistry:      false,
			ModuleTraining:      true,
			ModuleMonitoring:    false,
			ModuleReports:       false,
			ViewOnly:            true,
			ViewAllRegions:      false,
		}
	}
	return Baseline
}

// Capability é o nome de um predicado sobre Permissions, usado pelo guard
// de rotas e pelos middlewares da API.
type Capability string

const (
	CapFullAccess          Capability = "acesso_total"
	CapManageHierarchy     Capability = "gerenciar_hierarquia"
	CapCreateProfessionals Capability = "criar_profissionais"
	CapEditProfessionals   Capability = "editar_profissionais"
	CapDeleteProfessionals Capability = "excluir_profissionais"
	CapChangeStatus        Capability = "alterar_status"
	CapResetPassword       Capability = "redefinir_senha"
	CapViewProfessionals   Capability = "visualizar_profissionais"
	CapExport              Capability = "exportar"
	CapModuleRegistry      Capability = "modulo_cadastro"
	CapModuleTraining      Capability = "modulo_formacao"
	CapModuleMonitoring    Capability = "modulo_monitoramento"
	CapModuleReports       Capability = "modulo_relatorios"
)

var predicates = map[Capability]func(Permissions) bool{
	CapFullAccess:      func(p Permissions) bool { return p.FullAccess },
	CapManageHierarchy: func(p Permissions) bool { return p.ManageHierarchy },
	// Preceptores só cadastram residentes, mas entram na mesma tela.
	CapCreateProfessionals: func(p Permissions) bool { return p.CreateProfessionals || p.CreateStudents },
	CapEditProfessionals:   func(p Permissions) bool { return p.EditProfessionals },
	CapDeleteProfessionals: func(p Permissions) bool { return p.DeleteProfessionals },
	CapChangeStatus:        func(p Permissions) bool { return p.ChangeStatus },
	CapResetPassword:       func(p Permissions) bool { return p.ResetPasswords },
	CapViewProfessionals:   func(p Permissions) bool { return p.ViewProfessionals },
	CapExport:              func(p Permissions) bool { return p.ExportData },
	CapModuleRegistry:      func(p Permissions) bool { return p.ModuleRegistry },
	CapModuleTraining:      func(p Permissions) bool { return p.ModuleTraining },
	CapModuleMonitoring:    func(p Permissions) bool { return p.ModuleMonitoring },
	CapModuleReports:       func(p Permissions) bool { return p.ModuleReports },
}

// Can avalia a capability nomeada. Capability vazia não exige nada;
// nome desconhecido nunca é satisfeito.
func (p Permissions) Can(c Capability) bool {
	if c == "" {
		return true
	}
	pred, ok := predicates[c]
	if !ok {
		return false
	}
	return pred(p)
}

// CanAssignRole informa se quem tem p pode cadastrar ou promover alguém ao
// cargo target.
func CanAssignRole(p Permissions, target Role) bool {
	r, ok := ParseRole(string(target))
	if !ok {
		return false
	}
	switch {
	case p.FullAccess:
		return true
	case p.ManageHierarchy:
		return r != RoleAdministrador
	case p.CreateProfessionals:
		return r == RoleApoiador || r == RolePreceptor || r == RoleProfissional || r == RoleResidente
	case p.CreateStudents:
		return r == RoleResidente
	}
	return false
}
