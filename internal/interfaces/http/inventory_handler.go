package http

import (
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/farmacia-api/internal/application/billing"
	"github.com/tu-usuario/farmacia-api/internal/application/dto"
	"github.com/tu-usuario/farmacia-api/internal/application/inventory"
)

// InventoryHandler maneja inventario e ingesta de facturas.
type InventoryHandler struct {
	inventoryUC *inventory.UseCase
	ingestUC    *billing.IngestBillUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(inventoryUC *inventory.UseCase, ingestUC *billing.IngestBillUseCase) *InventoryHandler {
	return &InventoryHandler{inventoryUC: inventoryUC, ingestUC: ingestUC}
}

// Extensiones de imagen: la extracción por OCR no está soportada.
var imageExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true,
	".bmp": true, ".tiff": true, ".webp": true,
}

// List godoc
// @Summary      Listar inventario
// @Description  Devuelve todos los lotes con días al vencimiento calculados a la fecha actual.
// @Tags         inventory
// @Produce      json
// @Success      200  {array}   dto.StockLotResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/inventory [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	lots, err := h.inventoryUC.ListLots(c.Context())
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(lots)
}

// Search godoc
// @Summary      Buscar medicamentos por nombre
// @Description  Búsqueda por subcadena del nombre de producto, sin distinguir mayúsculas.
// @Tags         inventory
// @Produce      json
// @Param        q  query  string  true  "término de búsqueda"
// @Success      200  {array}   dto.StockLotResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/medicine/search [get]
func (h *InventoryHandler) Search(c *fiber.Ctx) error {
	lots, err := h.inventoryUC.SearchLots(c.Context(), c.Query("q"))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(lots)
}

// BatchInfo godoc
// @Summary      Consultar lotes por número de lote
// @Description  Un número de lote puede repetirse entre productos; la respuesta es una lista.
// @Tags         inventory
// @Produce      json
// @Param        batch  path  string  true  "número de lote"
// @Success      200  {array}   dto.StockLotResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/medicine/{batch}/info [get]
func (h *InventoryHandler) BatchInfo(c *fiber.Ctx) error {
	lots, err := h.inventoryUC.BatchInfo(c.Context(), c.Params("batch"))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(lots)
}

// DeleteStock godoc
// @Summary      Eliminar un lote de inventario
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DeleteStockRequest  true  "product_name y batch del lote"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/delete_stock [post]
func (h *InventoryHandler) DeleteStock(c *fiber.Ctx) error {
	var in dto.DeleteStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.inventoryUC.DeleteLot(c.Context(), in.ProductName, in.Batch); err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "lote eliminado"})
}

// UploadBill godoc
// @Summary      Cargar factura de compra (CSV)
// @Description  Ingesta de éxito parcial: las filas válidas incrementan stock y las
//
//	inválidas se reportan sin abortar el lote. Imágenes (OCR) no soportadas.
//
// @Tags         inventory
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "archivo CSV de la factura"
// @Success      200   {object}  dto.BillImportSummary
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/upload_bill [post]
func (h *InventoryHandler) UploadBill(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "falta el archivo 'file'"})
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if imageExtensions[ext] {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "VALIDATION",
			Message: "extracción desde imágenes no soportada; cargue la factura en CSV",
		})
	}
	if ext != ".csv" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "VALIDATION",
			Message: "formato no soportado: se espera un archivo .csv",
		})
	}

	f, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "no se pudo leer el archivo"})
	}
	defer f.Close()

	summary, err := h.ingestUC.IngestCSV(c.Context(), fileHeader.Filename, f)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(summary)
}
