package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/farmacia-api/internal/application/dto"
	"github.com/tu-usuario/farmacia-api/internal/application/patient"
	"github.com/tu-usuario/farmacia-api/internal/application/prescription"
)

// PatientHandler maneja el registro y consulta de pacientes.
type PatientHandler struct {
	uc             *patient.UseCase
	prescriptionUC *prescription.UseCase
	historyUC      *prescription.HistoryUseCase
}

func NewPatientHandler(uc *patient.UseCase, prescriptionUC *prescription.UseCase, historyUC *prescription.HistoryUseCase) *PatientHandler {
	return &PatientHandler{uc: uc, prescriptionUC: prescriptionUC, historyUC: historyUC}
}

// Register godoc
// @Summary      Registrar paciente
// @Tags         patients
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterPatientRequest  true  "name, age, gender, contact (email y notes opcionales)"
// @Success      201   {object}  dto.PatientResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/register_patient [post]
func (h *PatientHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterPatientRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	p, err := h.uc.Register(c.Context(), in)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(p)
}

// List godoc
// @Summary      Listar pacientes
// @Tags         patients
// @Produce      json
// @Success      200  {array}   dto.PatientResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/patients [get]
func (h *PatientHandler) List(c *fiber.Ctx) error {
	patients, err := h.uc.List(c.Context())
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(patients)
}

// GetByID godoc
// @Summary      Consultar paciente
// @Tags         patients
// @Produce      json
// @Param        id  path  string  true  "ID del paciente"
// @Success      200  {object}  dto.PatientResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/patient/{id} [get]
func (h *PatientHandler) GetByID(c *fiber.Ctx) error {
	p, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(p)
}

// Prescriptions godoc
// @Summary      Prescripciones de un paciente
// @Tags         patients
// @Produce      json
// @Param        id  path  string  true  "ID del paciente"
// @Success      200  {array}   dto.PrescriptionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/patient/{id}/prescriptions [get]
func (h *PatientHandler) Prescriptions(c *fiber.Ctx) error {
	list, err := h.prescriptionUC.ListByPatient(c.Context(), c.Params("id"))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(list)
}

// MedicineHistory godoc
// @Summary      Historial de medicamentos dispensados a un paciente
// @Description  Reconstruido desde los movimientos OUT de las prescripciones dispensadas.
// @Tags         patients
// @Produce      json
// @Param        id  path  string  true  "ID del paciente"
// @Success      200  {array}   dto.MedicineHistoryEntry
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/patient/{id}/medicine-history [get]
func (h *PatientHandler) MedicineHistory(c *fiber.Ctx) error {
	entries, err := h.historyUC.MedicineHistory(c.Context(), c.Params("id"))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(entries)
}

// Alerts godoc
// @Summary      Alertas de vencimiento de los lotes prescritos a un paciente
// @Tags         patients
// @Produce      json
// @Param        id  path  string  true  "ID del paciente"
// @Success      200  {array}   alerting.ExpiryAlert
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/patient/{id}/alerts [get]
func (h *PatientHandler) Alerts(c *fiber.Ctx) error {
	alerts, err := h.historyUC.Alerts(c.Context(), c.Params("id"))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(alerts)
}
