package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/and161185/tonefit/internal/catalog"
	"github.com/and161185/tonefit/internal/repository"
	"go.uber.org/zap"
)

// ImportStats summarizes a catalog import.
type ImportStats struct {
	Written int64
	Skipped int
	Batches int
}

// ImportCatalog streams styles.csv rows from src into repo in batches of batchSize.
func ImportCatalog(ctx context.Context, src io.Reader, repo repository.CatalogRepository, batchSize int, log *zap.Logger) (ImportStats, error) {
	if batchSize <= 0 {
		batchSize = 500
	}
	rd, err := catalog.NewReader(src)
	if err != nil {
		return ImportStats{}, err
	}

	var st ImportStats
	for {
		if err := ctx.Err(); err != nil {
			return st, err
		}
		batch, err := rd.ReadBatch(batchSize)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return st, err
		}
		n, err := repo.UpsertBatch(ctx, batch)
		if err != nil {
			return st, fmt.Errorf("batch %d: %w", st.Batches+1, err)
		}
		st.Written += n
		st.Batches++
		log.Debug("catalog batch written", zap.Int("batch", st.Batches), zap.Int64("rows", n))
	}
	st.Skipped = rd.Skipped
	log.Info("catalog imported",
		zap.Int64("written", st.Written),
		zap.Int("skipped", st.Skipped),
		zap.Int("batches", st.Batches),
	)
	return st, nil
}
