package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/farmacia-api/internal/application/alerting"
)

// AlertHandler expone las alertas de vencimiento derivadas del inventario.
type AlertHandler struct {
	uc *alerting.UseCase
}

func NewAlertHandler(uc *alerting.UseCase) *AlertHandler {
	return &AlertHandler{uc: uc}
}

// List godoc
// @Summary      Alertas de vencimiento
// @Description  Recalcula las alertas contra la fecha actual en cada llamada; no se persisten.
// @Tags         alerts
// @Produce      json
// @Success      200  {array}   alerting.ExpiryAlert
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/alerts [get]
func (h *AlertHandler) List(c *fiber.Ctx) error {
	alerts, err := h.uc.ListAlerts(c.Context())
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(alerts)
}
