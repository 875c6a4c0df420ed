package entity

import "time"

// Tipos de movimiento de inventario.
const (
	MovementTypeIN  = "IN"  // ingreso por factura de compra o siembra
	MovementTypeOUT = "OUT" // salida por dispensación
)

// StockMovement es el registro inmutable de cada mutación de inventario.
// Se escribe en la misma transacción que la mutación del lote.
// Reference es el nombre del archivo de factura (IN) o el ID de la
// prescripción (OUT).
type StockMovement struct {
	ID          string
	ProductName string
	Batch       string
	Type        string
	Quantity    int64 // con signo: negativo para OUT
	Reference   string
	CreatedAt   time.Time
}
