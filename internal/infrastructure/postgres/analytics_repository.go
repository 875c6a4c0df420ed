package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/farmacia-api/internal/domain/entity"
	"github.com/tu-usuario/farmacia-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo calcula las métricas del tablero directamente en SQL:
// los agregados sobre lotes y prescripciones se resuelven en la base y
// la aplicación solo recibe los totales.
type AnalyticsRepo struct {
	q Querier
}

func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// GetDashboardMetrics devuelve los agregados de inventario, pacientes y
// prescripciones. Los umbrales de vencimiento y de stock bajo llegan por
// parámetro para que el cálculo coincida con el de las alertas.
func (r *AnalyticsRepo) GetDashboardMetrics(ctx context.Context, expiryThresholdDays int, lowStockThreshold int64) (*repository.DashboardMetrics, error) {
	var m repository.DashboardMetrics

	stockQuery := `
		SELECT
			COUNT(*),
			COALESCE(SUM(quantity), 0),
			COUNT(*) FILTER (WHERE expiry_date >= CURRENT_DATE AND expiry_date < CURRENT_DATE + $1 * INTERVAL '1 day'),
			COUNT(*) FILTER (WHERE expiry_date < CURRENT_DATE),
			COUNT(*) FILTER (WHERE quantity > 0 AND quantity <= $2),
			COALESCE(SUM(quantity * rate), 0)
		FROM stock_lots`
	err := r.q.QueryRow(ctx, stockQuery, expiryThresholdDays, lowStockThreshold).Scan(
		&m.TotalLots, &m.UnitsInStock, &m.ExpiringSoon, &m.Expired, &m.LowStockItems, &m.StockValue,
	)
	if err != nil {
		return nil, fmt.Errorf("dashboard stock metrics: %w", err)
	}

	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM patients`).Scan(&m.TotalPatients); err != nil {
		return nil, fmt.Errorf("dashboard patient metrics: %w", err)
	}

	prescriptionQuery := `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE status = $1)
		FROM prescriptions`
	err = r.q.QueryRow(ctx, prescriptionQuery, entity.PrescriptionStatusDispensed).Scan(
		&m.PrescriptionsTotal, &m.PrescriptionsDispensed,
	)
	if err != nil {
		return nil, fmt.Errorf("dashboard prescription metrics: %w", err)
	}

	dispensedQuery := `
		SELECT COALESCE(SUM(-quantity), 0)
		FROM stock_movements
		WHERE movement_type = $1`
	err = r.q.QueryRow(ctx, dispensedQuery, entity.MovementTypeOUT).Scan(&m.UnitsDispensed)
	if err != nil {
		return nil, fmt.Errorf("dashboard dispensed metrics: %w", err)
	}

	return &m, nil
}
