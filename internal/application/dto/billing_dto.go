package dto

// BillImportSummary resultado de la ingesta de una factura de compra.
// La ingesta es de éxito parcial: las filas rechazadas se cuentan y se
// describen, nunca abortan el lote completo.
type BillImportSummary struct {
	Imported     int      `json:"imported"`
	Rejected     int      `json:"rejected"`
	RejectedRows []string `json:"rejected_rows,omitempty"`
}
