package repositories

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
)

// Shared repository errors. Services translate these into their own
// user-facing error values.
var (
	ErrNotFound  = errors.New("registo não encontrado")
	ErrDuplicate = errors.New("registo duplicado")
)

type ctxKey string

// TxKey carries an open transaction through a context so repositories
// created outside the transaction still participate in it.
const TxKey ctxKey = "tx"

// ContextWithTx returns a context that routes repository calls through tx.
func ContextWithTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, TxKey, tx)
}

func dbFromContext(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(TxKey).(*gorm.DB); ok && tx != nil {
		return tx
	}
	return fallback.WithContext(ctx)
}

func lowered(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
