package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// txBeginner lo que TxRunner necesita del pool (o de una tx, que abre un savepoint).
type txBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	db txBeginner
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(db txBeginner) *TxRunner {
	return &TxRunner{db: db}
}

// Run inicia una transacción, ejecuta fn con la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
