package dto

// DashboardSummary resumo do painel inicial, já restrito ao escopo do ator.
type DashboardSummary struct {
	Scope     string         `json:"escopo"`
	Total     int            `json:"total"`
	Active    int            `json:"ativos"`
	Inactive  int            `json:"inativos"`
	ByRole    map[string]int `json:"por_cargo"`
	DateLabel string         `json:"referencia"`
}
