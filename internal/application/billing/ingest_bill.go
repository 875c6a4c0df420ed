package billing

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/farmacia-api/internal/application/dto"
	"github.com/tu-usuario/farmacia-api/internal/application/inventory"
)

// IngestBillUseCase convierte una factura de compra (CSV) en altas de
// inventario. Éxito parcial por diseño: una fila mala nunca bloquea el
// resto de la factura.
type IngestBillUseCase struct {
	inventoryUC *inventory.UseCase
}

// NewIngestBillUseCase construye el caso de uso.
func NewIngestBillUseCase(inventoryUC *inventory.UseCase) *IngestBillUseCase {
	return &IngestBillUseCase{inventoryUC: inventoryUC}
}

// Sinónimos de encabezado aceptados, en minúsculas. Las facturas de
// proveedores reales traen encabezados muy variados.
var (
	productHeaders = []string{"product_name", "product name", "product", "medicine name", "name", "item", "description"}
	batchHeaders   = []string{"batch", "batch no", "batch number", "batch_no"}
	expiryHeaders  = []string{"exp", "exp.", "expiry", "expiry date", "expiry_date", "exp date", "exp_dt"}
	qtyHeaders     = []string{"qty", "quantity", "qnty", "q"}
)

// IngestCSV parsea las filas y hace upsert de cada lote válido.
// reference (nombre del archivo subido) queda en los movimientos IN.
// Filas sin producto o lote, con fecha de vencimiento ilegible o con
// cantidad no positiva se cuentan como rechazadas.
func (uc *IngestBillUseCase) IngestCSV(ctx context.Context, reference string, r io.Reader) (*dto.BillImportSummary, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("leer encabezado CSV: %w", err)
	}
	cols := indexColumns(header)

	// Las filas se numeran desde 1 contando solo filas de datos: el
	// encabezado no cuenta, así "fila 1" siempre es la primera fila útil.
	summary := &dto.BillImportSummary{}
	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			reject(summary, line, "fila ilegible")
			continue
		}
		in, reason := cols.toLotInput(record)
		if reason != "" {
			reject(summary, line, reason)
			continue
		}
		if err := uc.inventoryUC.UpsertLot(ctx, in, reference); err != nil {
			log.Warn().Err(err).Int("line", line).Str("bill", reference).Msg("fila de factura rechazada")
			reject(summary, line, err.Error())
			continue
		}
		summary.Imported++
	}
	return summary, nil
}

func reject(s *dto.BillImportSummary, line int, reason string) {
	s.Rejected++
	s.RejectedRows = append(s.RejectedRows, fmt.Sprintf("fila %d: %s", line, reason))
}

// columnIndex posición de cada campo según el encabezado; -1 si no está.
type columnIndex struct {
	product, batch, expiry, qty        int
	hsn, mrp, rate, manufacturer, gtin int
}

func indexColumns(header []string) columnIndex {
	normalized := make([]string, len(header))
	for i, h := range header {
		normalized[i] = strings.ToLower(strings.TrimSpace(h))
	}
	find := func(names ...string) int {
		for _, name := range names {
			for i, h := range normalized {
				if h == name {
					return i
				}
			}
		}
		return -1
	}
	return columnIndex{
		product:      find(productHeaders...),
		batch:        find(batchHeaders...),
		expiry:       find(expiryHeaders...),
		qty:          find(qtyHeaders...),
		hsn:          find("hsn"),
		mrp:          find("mrp"),
		rate:         find("rate"),
		manufacturer: find("manufacturer"),
		gtin:         find("gtin"),
	}
}

func (c columnIndex) field(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

// toLotInput valida y convierte una fila. reason != "" indica rechazo.
func (c columnIndex) toLotInput(record []string) (dto.UpsertLotInput, string) {
	in := dto.UpsertLotInput{
		ProductName:  c.field(record, c.product),
		Batch:        c.field(record, c.batch),
		HSN:          c.field(record, c.hsn),
		Manufacturer: c.field(record, c.manufacturer),
		GTIN:         c.field(record, c.gtin),
	}
	if in.ProductName == "" || in.Batch == "" {
		return in, "falta product_name o batch"
	}

	expiry, err := ParseExpiry(c.field(record, c.expiry))
	if err != nil {
		return in, "fecha de vencimiento ilegible"
	}
	in.Expiry = expiry

	qtyRaw := c.field(record, c.qty)
	qty, err := strconv.ParseFloat(qtyRaw, 64)
	if err != nil || qty < 1 {
		return in, "cantidad inválida: " + qtyRaw
	}
	in.Quantity = int64(qty)

	// Precios opcionales: un valor ilegible no rechaza la fila.
	if v, err := decimal.NewFromString(c.field(record, c.mrp)); err == nil {
		in.MRP = v
	}
	if v, err := decimal.NewFromString(c.field(record, c.rate)); err == nil {
		in.Rate = v
	}
	return in, ""
}

// Formatos de vencimiento aceptados, en orden de preferencia. Las facturas
// suelen traer solo mes y año ("Aug-26"); se toma el primer día del mes.
var expiryLayouts = []string{
	"2006-01-02",
	"02-01-2006",
	"Jan-06",
	"Jan-2006",
	"02-Jan-2006",
	"01/02/2006",
	"2006/01/02",
}

// ParseExpiry interpreta una fecha de vencimiento en los formatos comunes
// de facturas de compra.
func ParseExpiry(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("fecha vacía")
	}
	for _, layout := range expiryLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	// Último intento para variantes tipo "Aug 26" o "Aug/26".
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == '-' || r == '/' || r == ' ' })
	if len(parts) >= 2 {
		if t, err := time.Parse("Jan-06", parts[0]+"-"+parts[1]); err == nil {
			return t, nil
		}
		if t, err := time.Parse("Jan-2006", parts[0]+"-"+parts[1]); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("formato de fecha no reconocido: %s", s)
}
