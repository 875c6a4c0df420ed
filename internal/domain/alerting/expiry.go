package alerting

import (
	"fmt"
	"hash/fnv"
	"sort"
	"strings"
	"time"

	"github.com/tu-usuario/farmacia-api/internal/domain/entity"
)

// Tipos de alerta de vencimiento.
const (
	AlertTypeExpired      = "EXPIRED"
	AlertTypeExpiringSoon = "EXPIRING_SOON"
)

// DefaultThresholdDays es el umbral por defecto para EXPIRING_SOON.
const DefaultThresholdDays = 15

// ExpiryAlert es una alerta derivada del inventario; no se persiste.
type ExpiryAlert struct {
	AlertID      string    `json:"alert_id"`
	ProductName  string    `json:"product_name"`
	Batch        string    `json:"batch"`
	Expiry       time.Time `json:"expiry_date"`
	DaysToExpiry int       `json:"days_to_expiry"`
	AlertType    string    `json:"alert_type"`
}

// DaysToExpiry calcula los días calendario entre now y la fecha de vencimiento.
// Negativo si el lote ya venció. Solo cuenta fechas, ignora la hora.
func DaysToExpiry(expiry, now time.Time) int {
	e := time.Date(expiry.Year(), expiry.Month(), expiry.Day(), 0, 0, 0, 0, time.UTC)
	n := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return int(e.Sub(n).Hours() / 24)
}

// ComputeAlerts deriva las alertas de vencimiento del listado de lotes
// a la fecha now (servicio de dominio, puro y determinista).
// Emite una alerta por lote con días al vencimiento < thresholdDays:
// EXPIRED si los días son negativos, EXPIRING_SOON en caso contrario.
// El resultado queda ordenado por urgencia (días ascendente) y luego
// por producto y lote para que el orden sea estable.
func ComputeAlerts(lots []entity.StockLot, now time.Time, thresholdDays int) []ExpiryAlert {
	if thresholdDays <= 0 {
		thresholdDays = DefaultThresholdDays
	}
	alerts := make([]ExpiryAlert, 0)
	for _, lot := range lots {
		days := DaysToExpiry(lot.Expiry, now)
		if days >= thresholdDays {
			continue
		}
		alertType := AlertTypeExpiringSoon
		if days < 0 {
			alertType = AlertTypeExpired
		}
		alerts = append(alerts, ExpiryAlert{
			AlertID:      alertID(lot.ProductName, lot.Batch, alertType),
			ProductName:  lot.ProductName,
			Batch:        lot.Batch,
			Expiry:       lot.Expiry,
			DaysToExpiry: days,
			AlertType:    alertType,
		})
	}
	sort.Slice(alerts, func(i, j int) bool {
		if alerts[i].DaysToExpiry != alerts[j].DaysToExpiry {
			return alerts[i].DaysToExpiry < alerts[j].DaysToExpiry
		}
		if alerts[i].ProductName != alerts[j].ProductName {
			return alerts[i].ProductName < alerts[j].ProductName
		}
		return alerts[i].Batch < alerts[j].Batch
	})
	return alerts
}

// alertID deriva un identificador determinista de (producto, lote, tipo):
// el mismo lote produce siempre el mismo ID entre recomputaciones.
func alertID(productName, batch, alertType string) string {
	h := fnv.New64a()
	_, _ = h.Write([]byte(strings.ToLower(productName)))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(strings.ToLower(batch)))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(alertType))
	return fmt.Sprintf("%016x", h.Sum64())
}
