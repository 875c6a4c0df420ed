// Comando seed: carga un CSV de inventario inicial usando la misma ingesta
// que POST /api/upload_bill, de modo que las reglas de validación y los
// movimientos IN sean idénticos a los de producción.
package main

import (
	"context"
	"flag"
	"os"
	"path/filepath"

	"github.com/tu-usuario/farmacia-api/internal/application/billing"
	"github.com/tu-usuario/farmacia-api/internal/application/inventory"
	"github.com/tu-usuario/farmacia-api/internal/infrastructure/postgres"
	"github.com/tu-usuario/farmacia-api/pkg/config"
	"github.com/tu-usuario/farmacia-api/pkg/logger"
)

func main() {
	var file string
	flag.StringVar(&file, "file", "", "ruta del CSV de inventario a cargar")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	if file == "" {
		log.Fatal().Msg("uso: seed -file inventario.csv")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	f, err := os.Open(file)
	if err != nil {
		log.Fatal().Err(err).Str("file", file).Msg("abrir CSV")
	}
	defer f.Close()

	txRunner := postgres.NewTxRunner(pool)
	lotRepo := postgres.NewStockLotRepository(pool)
	inventoryUC := inventory.NewUseCase(txRunner, lotRepo)
	ingestUC := billing.NewIngestBillUseCase(inventoryUC)

	summary, err := ingestUC.IngestCSV(ctx, filepath.Base(file), f)
	if err != nil {
		log.Fatal().Err(err).Msg("ingesta del CSV")
	}

	log.Info().
		Int("importadas", summary.Imported).
		Int("rechazadas", summary.Rejected).
		Msg("siembra de inventario completada")
	for _, row := range summary.RejectedRows {
		log.Warn().Str("fila", row).Msg("fila rechazada")
	}
}
