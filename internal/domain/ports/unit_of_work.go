package ports

import "context"

// UnitOfWork agrupa escritas de vários repositórios numa transação
type UnitOfWork interface {
	// WithTransaction executa fn numa transação e faz commit se fn não
	// retornar erro. Se ctx já carrega uma transação, fn participa dela.
	WithTransaction(ctx context.Context, fn func(context.Context) error) error
}
