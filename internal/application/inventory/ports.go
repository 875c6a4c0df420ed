package inventory

import (
	"context"

	"github.com/tu-usuario/farmacia-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para las mutaciones
// de inventario y para la dispensación (todo-o-nada).
type TxRunner interface {
	Run(ctx context.Context, fn func(
		lotRepo repository.StockLotRepository,
		movRepo repository.StockMovementRepository,
		prescriptionRepo repository.PrescriptionRepository,
	) error) error
}
