package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound é devolvido quando o registro pedido não existe.
var ErrNotFound = errors.New("record not found")

type txKey struct{}

// conn usa a transação carregada no contexto, se houver.
func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok && tx != nil {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// GormTransactor roda fn dentro de uma transação; os repositórios chamados
// com o ctx recebido participam dela.
type GormTransactor struct {
	db *gorm.DB
}

func NewGormTransactor(db *gorm.DB) *GormTransactor {
	return &GormTransactor{db: db}
}

func (t *GormTransactor) WithinTransaction(
	ctx context.Context,
	fn func(ctx context.Context) error,
) error {
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}
