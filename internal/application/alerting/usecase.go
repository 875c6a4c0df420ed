package alerting

import (
	"context"
	"time"

	domalerting "github.com/tu-usuario/farmacia-api/internal/domain/alerting"
	"github.com/tu-usuario/farmacia-api/internal/domain/repository"
)

// UseCase deriva alertas de vencimiento del inventario. Se recalcula en
// cada petición: la frescura importa más que el costo al volumen esperado.
type UseCase struct {
	lotRepo       repository.StockLotRepository
	thresholdDays int
}

// NewUseCase construye el caso de uso. thresholdDays <= 0 usa el umbral por defecto.
func NewUseCase(lotRepo repository.StockLotRepository, thresholdDays int) *UseCase {
	if thresholdDays <= 0 {
		thresholdDays = domalerting.DefaultThresholdDays
	}
	return &UseCase{lotRepo: lotRepo, thresholdDays: thresholdDays}
}

// ListAlerts computa las alertas vigentes a la fecha actual.
func (uc *UseCase) ListAlerts(_ context.Context) ([]domalerting.ExpiryAlert, error) {
	lots, err := uc.lotRepo.List()
	if err != nil {
		return nil, err
	}
	return domalerting.ComputeAlerts(lots, time.Now(), uc.thresholdDays), nil
}
