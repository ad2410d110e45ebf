package ports

import "context"

// Task é uma continuação assíncrona executada depois do commit da escrita principal
type Task func(ctx context.Context) error

// TaskQueue recebe efeitos colaterais (conquistas, onboarding, notificações)
// que não podem bloquear a resposta ao cliente.
type TaskQueue interface {
	Enqueue(name string, task Task) error
}
