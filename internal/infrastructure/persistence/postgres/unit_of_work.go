package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/biabrauna/econsciente-api/internal/domain/ports"
)

type txContextKey struct{}

var txKey = txContextKey{}

// UnitOfWork implementa ports.UnitOfWork sobre transações do GORM.
// A transação viaja no context e os repositórios a recuperam com dbFromContext.
type UnitOfWork struct {
	db *gorm.DB
}

func NewUnitOfWork(db *gorm.DB) ports.UnitOfWork {
	return &UnitOfWork{db: db}
}

// WithTransaction abre a transação, ou reaproveita a de ctx. Commit e
// rollback ficam com quem abriu; um panic em fn também desfaz a transação.
func (uow *UnitOfWork) WithTransaction(ctx context.Context, fn func(context.Context) error) error {
	if inTransaction(ctx) {
		return fn(ctx)
	}

	return uow.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey, tx))
	})
}

func inTransaction(ctx context.Context) bool {
	_, ok := ctx.Value(txKey).(*gorm.DB)
	return ok
}
