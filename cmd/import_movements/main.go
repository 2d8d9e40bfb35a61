// import_movements carga un ledger heredado (CSV) en la tabla movements.
//
// Uso: go run ./cmd/import_movements [-encoding latin1] [-tz America/Bogota] [-dry-run] movimientos.csv
//
// Columnas reconocidas (encabezado, sin importar mayúsculas): date|fecha, product_id|id_producto,
// movement_type|tipo, quantity|cantidad, order_id|pedido, notes|observaciones. Separador ',' o ';'.
// Los IDs se reasignan desde movement_id_seq; filas de productos inexistentes se reportan y omiten.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jhoicas/stock-ledger-api/internal/application/inventory"
	"github.com/jhoicas/stock-ledger-api/internal/infrastructure/csvimport"
	"github.com/jhoicas/stock-ledger-api/internal/infrastructure/postgres"
	"github.com/jhoicas/stock-ledger-api/pkg/config"
	"github.com/jhoicas/stock-ledger-api/pkg/logger"
)

func main() {
	encoding := flag.String("encoding", csvimport.EncodingUTF8, "utf-8 | latin1 | windows-1252")
	tz := flag.String("tz", "UTC", "zona horaria para fechas sin zona")
	dryRun := flag.Bool("dry-run", false, "validar sin insertar")
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "uso: import_movements [flags] archivo.csv")
		flag.PrintDefaults()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Component("import")

	loc, err := time.LoadLocation(*tz)
	if err != nil {
		log.Fatal().Err(err).Str("tz", *tz).Msg("zona horaria inválida")
	}

	path := flag.Arg(0)
	f, err := os.Open(path)
	if err != nil {
		log.Fatal().Err(err).Str("file", path).Msg("abrir CSV")
	}
	defer f.Close()

	rows, skipped, err := csvimport.NewReader(loc).Read(f, *encoding)
	if err != nil {
		log.Fatal().Err(err).Str("file", path).Msg("leer CSV")
	}
	for _, s := range skipped {
		log.Warn().Int("line", s.Line).Str("reason", s.Reason).Msg("fila omitida")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB, nil)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, pool, log.Zerolog()); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
	}

	res, err := inventory.NewImportMovementsUseCase(postgres.NewTxRunner(pool)).Import(ctx, rows, *dryRun)
	if err != nil {
		log.Fatal().Err(err).Msg("importación revertida")
	}
	for _, s := range res.Skipped {
		log.Warn().Int("line", s.Line).Str("reason", s.Reason).Msg("fila omitida")
	}
	log.Info().
		Int("imported", res.Imported).
		Int("skipped", len(skipped)+len(res.Skipped)).
		Bool("dry_run", *dryRun).
		Msg("importación terminada")
}
