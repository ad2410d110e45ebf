// Package testutil reúne fixtures compartilhadas pelos testes de serviços,
// repositórios e handlers.
package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/biabrauna/econsciente-api/internal/domain/entities"
	"github.com/biabrauna/econsciente-api/internal/domain/ports"
	"github.com/biabrauna/econsciente-api/internal/infrastructure/persistence/postgres"
)

// TB é o subconjunto de testing.TB usado aqui; GinkgoT() também o satisfaz
type TB interface {
	Helper()
	Cleanup(func())
	Fatalf(format string, args ...any)
}

// NewTestDB abre um SQLite em memória isolado por teste, já migrado.
// Uma única conexão serializa as transações, como um lock de linha faria.
func NewTestDB(t TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_busy_timeout=5000", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), postgres.GormConfig(logger.Default.LogMode(logger.Silent)))
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)

	if err := postgres.Migrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

// InlineQueue executa as tarefas no momento do Enqueue, tornando os
// efeitos assíncronos determinísticos nos testes.
type InlineQueue struct {
	mu     sync.Mutex
	names  []string
	errors []error
}

// NewInlineQueue cria uma InlineQueue vazia
func NewInlineQueue() *InlineQueue {
	return &InlineQueue{}
}

// Enqueue implementa ports.TaskQueue
func (q *InlineQueue) Enqueue(name string, task ports.Task) error {
	err := task(context.Background())

	q.mu.Lock()
	defer q.mu.Unlock()
	q.names = append(q.names, name)
	if err != nil {
		q.errors = append(q.errors, fmt.Errorf("%s: %w", name, err))
	}
	return nil
}

// Names retorna os nomes das tarefas executadas, em ordem
func (q *InlineQueue) Names() []string {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]string(nil), q.names...)
}

// Errors retorna os erros devolvidos pelas tarefas
func (q *InlineQueue) Errors() []error {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]error(nil), q.errors...)
}

// RecordingPublisher guarda as notificações publicadas
type RecordingPublisher struct {
	mu            sync.Mutex
	notifications []*entities.Notification
}

// Publish implementa ports.NotificationPublisher
func (p *RecordingPublisher) Publish(n *entities.Notification) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.notifications = append(p.notifications, n)
}

// Published retorna uma cópia das notificações recebidas
func (p *RecordingPublisher) Published() []*entities.Notification {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]*entities.Notification(nil), p.notifications...)
}
