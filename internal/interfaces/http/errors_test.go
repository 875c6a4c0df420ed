package http

import (
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/farmacia-api/internal/application/dto"
	"github.com/tu-usuario/farmacia-api/internal/domain"
)

// Tabla de traducción: cada error de dominio tiene un único status HTTP.
func TestMapDomainError(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"validación", domain.NewValidationError("contact"), fiber.StatusBadRequest, "VALIDATION"},
		{"entrada inválida", domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
		{"no encontrado", domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
		{"duplicado", domain.ErrDuplicate, fiber.StatusConflict, "CONFLICT"},
		{"conflicto", domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},
		{"ya dispensada", domain.ErrAlreadyDispensed, fiber.StatusConflict, "ALREADY_DISPENSED"},
		{"stock insuficiente", domain.ErrInsufficientStock, fiber.StatusConflict, "INSUFFICIENT_STOCK"},
		{
			"falta de stock con detalle",
			&domain.StockShortageError{ProductName: "Paracetamol 500mg", Batch: "L-100", Available: 1, Requested: 3},
			fiber.StatusConflict, "INSUFFICIENT_STOCK",
		},
		{"envuelto", fmt.Errorf("dispensar: %w", domain.ErrAlreadyDispensed), fiber.StatusConflict, "ALREADY_DISPENSED"},
		{"interno", fmt.Errorf("conexión perdida"), fiber.StatusInternalServerError, "INTERNAL"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/t", func(c *fiber.Ctx) error {
				return mapDomainError(c, tc.err)
			})

			resp, err := app.Test(httptest.NewRequest("GET", "/t", nil))
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tc.wantStatus, resp.StatusCode)

			var body dto.ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tc.wantCode, body.Code)
			assert.NotEmpty(t, body.Message)
		})
	}
}

// El mensaje de validación enumera los campos ofensores para el cliente.
func TestMapDomainError_DetalleDeValidacion(t *testing.T) {
	app := fiber.New()
	app.Get("/t", func(c *fiber.Ctx) error {
		return mapDomainError(c, domain.NewValidationError("name", "contact"))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/t", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Contains(t, body.Message, "name")
	assert.Contains(t, body.Message, "contact")
}

// El detalle de falta de stock identifica la línea ofensora.
func TestMapDomainError_DetalleDeFaltaDeStock(t *testing.T) {
	app := fiber.New()
	app.Get("/t", func(c *fiber.Ctx) error {
		return mapDomainError(c, &domain.StockShortageError{
			ProductName: "Amoxicilina 250mg", Batch: "L-200", Available: 1, Requested: 3,
		})
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/t", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Contains(t, body.Message, "Amoxicilina 250mg")
	assert.Contains(t, body.Message, "L-200")
	assert.Contains(t, body.Message, "disponible 1")
	assert.Contains(t, body.Message, "requerido 3")
}
