package access_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestao-profissionais/pkg/access"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tabela completa: um caso por cargo + cargo desconhecido
// ──────────────────────────────────────────────────────────────────────────────

func TestResolve_TabelaCompleta(t *testing.T) {
	cases := []struct {
		role access.Role
		want access.Permissions
	}{
		{access.RoleAdministrador, access.Permissions{
			FullAccess: true, ManageHierarchy: true, CreateProfessionals: true, CreateStudents: true,
			EditProfessionals: true, DeleteProfessionals: true, ChangeStatus: true, ResetPasswords: true,
			ViewProfessionals: true, ExportData: true, ModuleRegistry: true, ModuleTraining: true,
			ModuleMonitoring: true, ModuleReports: true, ViewOnly: false, ViewAllRegions: true,
		}},
		{access.RoleCoordenadorEstadual, access.Permissions{
			ManageHierarchy: true, CreateProfessionals: true, CreateStudents: true,
			EditProfessionals: true, ChangeStatus: true, ResetPasswords: true,
			ViewProfessionals: true, ExportData: true, ModuleRegistry: true, ModuleTraining: true,
			ModuleMonitoring: true, ModuleReports: true, ViewAllRegions: true,
		}},
		{access.RoleCoordenadorRegional, access.Permissions{
			CreateProfessionals: true, CreateStudents: true, EditProfessionals: true,
			ChangeStatus: true, ResetPasswords: true, ViewProfessionals: true, ExportData: true,
			ModuleRegistry: true, ModuleTraining: true, ModuleMonitoring: true, ModuleReports: true,
		}},
		{access.RoleApoiador, access.Permissions{
			ViewProfessionals: true, ExportData: true, ModuleRegistry: true,
			ModuleMonitoring: true, ModuleReports: true, ViewOnly: true,
		}},
		{access.RolePreceptor, access.Permissions{
			CreateStudents: true, ViewProfessionals: true, ModuleRegistry: true, ModuleTraining: true,
		}},
		{access.RoleProfissional, access.Permissions{ModuleTraining: true, ViewOnly: true}},
		{access.RoleResidente, access.Permissions{ModuleTraining: true, ViewOnly: true}},
		{access.Role("Visitante"), access.Baseline},
		{access.Role(""), access.Baseline},
	}

	for _, tc := range cases {
		t.Run(string(tc.role), func(t *testing.T) {
			assert.Equal(t, tc.want, access.Resolve(tc.role))
		})
	}
}

func TestResolve_CargoDesconhecidoTodasFalsas(t *testing.T) {
	p := access.Resolve("Diretor")
	v := reflect.ValueOf(p)
	for i := 0; i < v.NumField(); i++ {
		assert.False(t, v.Field(i).Bool(), "campo %s deve ser false", v.Type().Field(i).Name)
	}
}

func TestResolve_CobreTodosOsCargos(t *testing.T) {
	require.Len(t, access.Roles(), 7)
	for _, r := range access.Roles() {
		assert.NotEqual(t, access.Baseline, access.Resolve(r), "cargo %s não pode cair no baseline", r)
	}
}

func TestResolve_SoLabelExato(t *testing.T) {
	for _, r := range []access.Role{"administrador", "Administrador ", " Administrador", "ADMINISTRADOR", "  preceptor "} {
		assert.Equal(t, access.Baseline, access.Resolve(r), "%q", r)
	}
}

func TestParseRole_NormalizaEntradaDeFormulario(t *testing.T) {
	r, ok := access.ParseRole("  preceptor ")
	require.True(t, ok)
	assert.Equal(t, access.RolePreceptor, r)
	assert.Equal(t, access.Resolve(access.RolePreceptor), access.Resolve(r))

	_, ok = access.ParseRole("Gerente")
	assert.False(t, ok)
}

// ──────────────────────────────────────────────────────────────────────────────
// Capabilities
// ──────────────────────────────────────────────────────────────────────────────

func TestCan_CriarProfissionaisAceitaQualquerDasDuasFlags(t *testing.T) {
	assert.True(t, access.Permissions{CreateProfessionals: true}.Can(access.CapCreateProfessionals))
	assert.True(t, access.Permissions{CreateStudents: true}.Can(access.CapCreateProfessionals))
	assert.False(t, access.Permissions{EditProfessionals: true}.Can(access.CapCreateProfessionals))
}

func TestCan_VaziaEDesconhecida(t *testing.T) {
	assert.True(t, access.Baseline.Can(""), "sem capability exigida sempre passa")
	admin := access.Resolve(access.RoleAdministrador)
	assert.False(t, admin.Can("voar"), "capability desconhecida nunca é satisfeita")
}

func TestCanAssignRole(t *testing.T) {
	admin := access.Resolve(access.RoleAdministrador)
	estadual := access.Resolve(access.RoleCoordenadorEstadual)
	regional := access.Resolve(access.RoleCoordenadorRegional)
	preceptor := access.Resolve(access.RolePreceptor)
	apoiador := access.Resolve(access.RoleApoiador)

	assert.True(t, access.CanAssignRole(admin, access.RoleAdministrador))
	assert.False(t, access.CanAssignRole(estadual, access.RoleAdministrador))
	assert.True(t, access.CanAssignRole(estadual, access.RoleCoordenadorRegional))
	assert.False(t, access.CanAssignRole(regional, access.RoleCoordenadorRegional))
	assert.True(t, access.CanAssignRole(regional, access.RolePreceptor))
	assert.True(t, access.CanAssignRole(preceptor, access.RoleResidente))
	assert.False(t, access.CanAssignRole(preceptor, access.RoleProfissional))
	assert.False(t, access.CanAssignRole(apoiador, access.RoleResidente))
	assert.False(t, access.CanAssignRole(admin, "Diretor"))
}

// ──────────────────────────────────────────────────────────────────────────────
// Guard
// ──────────────────────────────────────────────────────────────────────────────

func TestGuard(t *testing.T) {
	admin := access.Resolve(access.RoleAdministrador)
	residente := access.Resolve(access.RoleResidente)

	cases := []struct {
		name             string
		authenticated    bool
		perms            access.Permissions
		cap              access.Capability
		showUnauthorized bool
		want             access.Decision
	}{
		{"sem sessão", false, admin, access.CapExport, true, access.RedirectLogin},
		{"sem sessão e sem capability", false, access.Baseline, "", false, access.RedirectLogin},
		{"sem capability exigida", true, residente, "", true, access.Allow},
		{"capability satisfeita", true, admin, access.CapExport, true, access.Allow},
		{"negado com tela", true, residente, access.CapExport, true, access.Unauthorized},
		{"negado silencioso", true, residente, access.CapExport, false, access.RedirectLanding},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := access.Guard(tc.authenticated, tc.perms, tc.cap, tc.showUnauthorized)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDecision_Path(t *testing.T) {
	assert.Equal(t, access.LoginPath, access.RedirectLogin.Path())
	assert.Equal(t, access.LandingPath, access.RedirectLanding.Path())
	assert.Equal(t, access.UnauthorizedPath, access.Unauthorized.Path())
	assert.Empty(t, access.Allow.Path())
}
