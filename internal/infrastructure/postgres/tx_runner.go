package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/motherindia/millstock-api/internal/application/usecase"
	"github.com/motherindia/millstock-api/internal/domain/repository"
)

var _ usecase.ClearingTxRunner = (*TxRunner)(nil)

// TxRunner executes callbacks inside a PostgreSQL transaction.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner builds the runner on the pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run begins a transaction, executes fn with repos bound to the tx and
// commits, or rolls back on error.
func (r *TxRunner) Run(ctx context.Context, fn func(
	outturns repository.OutturnRepository,
	productions repository.RiceProductionRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	outturnRepo := NewOutturnRepository(tx)
	productionRepo := NewRiceProductionRepository(tx)

	if err := fn(outturnRepo, productionRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
