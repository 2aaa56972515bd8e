// Command catalog-import loads a styles.csv fashion dataset into the catalog table.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/and161185/tonefit/internal/migrate"
	"github.com/and161185/tonefit/internal/repository/postgres"
	"github.com/and161185/tonefit/internal/service"
)

func main() {
	dsn := flag.String("dsn", os.Getenv("DATABASE_URL"), "PostgreSQL DSN")
	file := flag.String("file", "styles.csv", "styles.csv path")
	batch := flag.Int("batch", 500, "rows per transaction")
	verbose := flag.Bool("v", false, "log every batch")
	flag.Parse()

	cfg := zap.NewProductionConfig()
	if *verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if *dsn == "" {
		logger.Fatal("missing DSN (--dsn or DATABASE_URL)")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if _, err := migrate.Up(ctx, *dsn, logger); err != nil {
		logger.Fatal("migrate up", zap.Error(err))
	}
	db, err := postgres.New(ctx, *dsn)
	if err != nil {
		logger.Fatal("postgres", zap.Error(err))
	}
	defer db.Close()

	f, err := os.Open(*file)
	if err != nil {
		logger.Fatal("open csv", zap.Error(err))
	}
	defer f.Close()

	st, err := service.ImportCatalog(ctx, f, postgres.NewCatalogRepo(db), *batch, logger)
	if err != nil {
		logger.Fatal("import", zap.Error(err), zap.Int64("written", st.Written))
	}
	fmt.Printf("imported %d items (%d rows skipped) in %d batches\n", st.Written, st.Skipped, st.Batches)
}
