package services

import (
	"context"

	"github.com/biabrauna/econsciente-api/internal/domain/entities"
	"github.com/biabrauna/econsciente-api/internal/domain/ports"
)

// Progress descreve as verificações que seguem uma ação do usuário
type Progress struct {
	Actions []entities.Action
	Step    entities.OnboardingStep // vazio quando a ação não afeta o onboarding
}

// ProgressTracker agenda, após o commit da escrita principal, a avaliação
// de conquistas e do onboarding. Falhas só são registradas em log.
type ProgressTracker struct {
	tasks        ports.TaskQueue
	achievements *AchievementService
	onboarding   *OnboardingService
	logger       ports.Logger
}

// NewProgressTracker cria um ProgressTracker
func NewProgressTracker(
	tasks ports.TaskQueue,
	achievements *AchievementService,
	onboarding *OnboardingService,
	logger ports.Logger,
) *ProgressTracker {
	return &ProgressTracker{
		tasks:        tasks,
		achievements: achievements,
		onboarding:   onboarding,
		logger:       logger.With("component", "progress_tracker"),
	}
}

// Track enfileira uma tarefa por ação e uma para a etapa de onboarding
func (t *ProgressTracker) Track(userID string, p Progress) {
	for _, action := range p.Actions {
		action := action
		t.enqueue("achievements."+string(action), func(ctx context.Context) error {
			_, err := t.achievements.CheckAndUnlock(ctx, userID, action, nil)
			return err
		})
	}

	if p.Step != "" {
		step := p.Step
		t.enqueue("onboarding."+string(step), func(ctx context.Context) error {
			_, err := t.onboarding.CheckAndComplete(ctx, userID, step)
			return err
		})
	}
}

// Run enfileira uma tarefa arbitrária com o mesmo tratamento de erro
func (t *ProgressTracker) Run(name string, task ports.Task) {
	t.enqueue(name, task)
}

func (t *ProgressTracker) enqueue(name string, task ports.Task) {
	if err := t.tasks.Enqueue(name, task); err != nil {
		t.logger.Error("failed to enqueue background task", "task", name, "error", err)
	}
}
