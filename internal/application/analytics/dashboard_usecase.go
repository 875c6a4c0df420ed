package analytics

import (
	"context"

	"github.com/tu-usuario/farmacia-api/internal/application/dto"
	"github.com/tu-usuario/farmacia-api/internal/domain/repository"
)

// DashboardUseCase métricas agregadas de inventario, pacientes y
// dispensaciones para el tablero.
type DashboardUseCase struct {
	repo              repository.AnalyticsRepository
	expiryThreshold   int
	lowStockThreshold int64
}

// NewDashboardUseCase construye el caso de uso con los umbrales configurados.
func NewDashboardUseCase(repo repository.AnalyticsRepository, expiryThreshold int, lowStockThreshold int64) *DashboardUseCase {
	return &DashboardUseCase{
		repo:              repo,
		expiryThreshold:   expiryThreshold,
		lowStockThreshold: lowStockThreshold,
	}
}

// GetDashboard consulta las métricas actuales.
func (uc *DashboardUseCase) GetDashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	m, err := uc.repo.GetDashboardMetrics(ctx, uc.expiryThreshold, uc.lowStockThreshold)
	if err != nil {
		return nil, err
	}
	return &dto.DashboardResponse{
		TotalLots:              m.TotalLots,
		UnitsInStock:           m.UnitsInStock,
		ExpiringSoon:           m.ExpiringSoon,
		Expired:                m.Expired,
		LowStockItems:          m.LowStockItems,
		StockValue:             m.StockValue,
		TotalPatients:          m.TotalPatients,
		PrescriptionsTotal:     m.PrescriptionsTotal,
		PrescriptionsDispensed: m.PrescriptionsDispensed,
		UnitsDispensed:         m.UnitsDispensed,
	}, nil
}
