package access

// Caminhos das telas usadas pelo guard.
const (
	LoginPath          = "/login"
	LandingPath        = "/dashboard"
	UnauthorizedPath   = "/nao-autorizado"
	ChangePasswordPath = "/alterar-senha"
)

// Decision é o resultado do guard de rotas.
type Decision int

const (
	// Allow renderiza o conteúdo protegido.
	Allow Decision = iota
	// RedirectLogin: não há sessão.
	RedirectLogin
	// Unauthorized renderiza a tela fixa de acesso negado.
	Unauthorized
	// RedirectLanding volta silenciosamente para a tela inicial.
	RedirectLanding
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case RedirectLogin:
		return "redirect_login"
	case Unauthorized:
		return "unauthorized"
	case RedirectLanding:
		return "redirect_landing"
	}
	return "unknown"
}

// Path devolve o destino do redirecionamento, ou "" quando não há.
func (d Decision) Path() string {
	switch d {
	case RedirectLogin:
		return LoginPath
	case Unauthorized:
		return UnauthorizedPath
	case RedirectLanding:
		return LandingPath
	}
	return ""
}

// Guard decide se uma tela protegida pode ser exibida.
//
//   - sem sessão → RedirectLogin
//   - capability não satisfeita → Unauthorized (showUnauthorized) ou RedirectLanding
//   - capability vazia ou satisfeita → Allow
func Guard(authenticated bool, perms Permissions, required Capability, showUnauthorized bool) Decision {
	if !authenticated {
		return RedirectLogin
	}
	if perms.Can(required) {
		return Allow
	}
	if showUnauthorized {
		return Unauthorized
	}
	return RedirectLanding
}
