package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/gestao-profissionais/internal/application/usecase"
)

// DashboardHandler endpoints do painel inicial.
type DashboardHandler struct {
	uc  *usecase.ProfessionalUseCase
	log zerolog.Logger
}

// NewDashboardHandler constrói o handler.
func NewDashboardHandler(uc *usecase.ProfessionalUseCase, log zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{uc: uc, log: log}
}

// GetSummary godoc
// @Summary      Resumo do painel (totais por status e cargo)
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardSummary
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/dashboard/resumo [get]
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.Summary(c.UserContext(), GetActor(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(summary)
}
