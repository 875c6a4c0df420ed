package http

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/farmacia-api/internal/application/dto"
	"github.com/tu-usuario/farmacia-api/internal/application/prescription"
)

// QRLocator resuelve la ruta en disco del PNG de una prescripción y
// permite regenerarlo cuando el archivo ya no existe.
type QRLocator interface {
	Path(prescriptionID string) string
	Generate(prescriptionID string) (string, error)
}

// PrescriptionHandler maneja el ciclo de vida de prescripciones:
// creación, consulta, dispensación por escaneo de QR y artefactos.
type PrescriptionHandler struct {
	uc    *prescription.UseCase
	pdfUC *prescription.PDFUseCase
	qr    QRLocator
}

func NewPrescriptionHandler(uc *prescription.UseCase, pdfUC *prescription.PDFUseCase, qr QRLocator) *PrescriptionHandler {
	return &PrescriptionHandler{uc: uc, pdfUC: pdfUC, qr: qr}
}

// Create godoc
// @Summary      Crear prescripción
// @Description  El ID puede venir del cliente; el servidor impone unicidad (409 si ya existe).
// @Tags         prescriptions
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePrescriptionRequest  true  "patient_id, doctor_name, medications"
// @Success      201   {object}  dto.PrescriptionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/create_prescription [post]
func (h *PrescriptionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePrescriptionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	p, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(p)
}

// GetByID godoc
// @Summary      Consultar prescripción
// @Description  Solo lectura: consultar nunca dispensa ni cambia el estado.
// @Tags         prescriptions
// @Produce      json
// @Param        id  path  string  true  "ID de la prescripción"
// @Success      200  {object}  dto.PrescriptionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/prescription/{id} [get]
func (h *PrescriptionHandler) GetByID(c *fiber.Ctx) error {
	p, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(p)
}

// List godoc
// @Summary      Listar prescripciones
// @Tags         prescriptions
// @Produce      json
// @Success      200  {array}   dto.PrescriptionResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/prescriptions [get]
func (h *PrescriptionHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.Context())
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(list)
}

// ScanQR godoc
// @Summary      Dispensar prescripción (escaneo de QR)
// @Description  Operación de dispensación todo-o-nada: descuenta stock de cada línea o
//
//	no descuenta nada. Idempotencia: un segundo escaneo devuelve 409.
//
// @Tags         prescriptions
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ScanQRRequest  true  "prescription_id (y pharmacy_id opcional)"
// @Success      200   {object}  dto.PrescriptionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/scan_qr [post]
func (h *PrescriptionHandler) ScanQR(c *fiber.Ctx) error {
	var in dto.ScanQRRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	p, err := h.uc.Dispense(c.Context(), in.PrescriptionID, in.PharmacyID)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(p)
}

// GetPDF godoc
// @Summary      Hoja imprimible de la prescripción
// @Tags         prescriptions
// @Produce      application/pdf
// @Param        id  path  string  true  "ID de la prescripción"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/prescription/{id}/pdf [get]
func (h *PrescriptionHandler) GetPDF(c *fiber.Ctx) error {
	pdfBytes, err := h.pdfUC.GetPDF(c.Context(), c.Params("id"))
	if err != nil {
		return mapDomainError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="prescripcion-`+c.Params("id")+`.pdf"`)
	return c.Send(pdfBytes)
}

// GetQR godoc
// @Summary      PNG del código QR de la prescripción
// @Tags         prescriptions
// @Produce      image/png
// @Param        id  path  string  true  "ID de la prescripción"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/qr/{id}.png [get]
func (h *PrescriptionHandler) GetQR(c *fiber.Ctx) error {
	id := c.Params("id")
	path := h.qr.Path(id)
	if _, err := os.Stat(path); err != nil {
		// El PNG es derivable del ID: si falta en disco se regenera,
		// pero solo para prescripciones que realmente existen.
		if _, err := h.uc.Get(c.Context(), id); err != nil {
			return mapDomainError(c, err)
		}
		path, err = h.qr.Generate(id)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "no se pudo regenerar el QR"})
		}
	}
	return c.SendFile(path)
}
