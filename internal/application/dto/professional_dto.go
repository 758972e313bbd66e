package dto

// ProfessionalListRequest filtros de GET /profissionais.
type ProfessionalListRequest struct {
	Search string `query:"busca"`
	Role   string `query:"cargo"`
	Status string `query:"status"`
	Region string `query:"regiao"`
	PageRequest
}

// ProfessionalPage página da listagem.
type ProfessionalPage struct {
	Items      []UserResponse `json:"itens"`
	Page       int            `json:"pagina"`
	PerPage    int            `json:"por_pagina"`
	Total      int            `json:"total"`
	TotalPages int            `json:"total_paginas"`
}

// StatusRequest corpo de PUT /profissionais/:id/status.
type StatusRequest struct {
	Status string `json:"status"`
}

// ExportFile arquivo gerado pela exportação.
type ExportFile struct {
	Name        string
	ContentType string
	Body        []byte
}
