package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/farmacia-api/internal/application/analytics"
)

// AnalyticsHandler expone las métricas agregadas del tablero.
type AnalyticsHandler struct {
	uc *analytics.DashboardUseCase
}

func NewAnalyticsHandler(uc *analytics.DashboardUseCase) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc}
}

// Dashboard godoc
// @Summary      Métricas del tablero
// @Tags         analytics
// @Produce      json
// @Success      200  {object}  dto.DashboardResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/analytics [get]
func (h *AnalyticsHandler) Dashboard(c *fiber.Ctx) error {
	metrics, err := h.uc.GetDashboard(c.Context())
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(metrics)
}
