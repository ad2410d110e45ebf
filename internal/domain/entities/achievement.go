package entities

import (
	"errors"
	"time"
)

// Achievement é uma entrada do catálogo de conquistas. Imutável após criada.
type Achievement struct {
	ID           string
	Name         string
	Description  string
	Icon         string
	Category     string
	Criterion    string // JSON, ver ParseCriterion
	RewardPoints int
	CreatedAt    time.Time
}

// ParsedCriterion decodifica o critério da conquista
func (a *Achievement) ParsedCriterion() (Criterion, error) {
	return ParseCriterion(a.Criterion)
}

// Validate valida regras de negócio da conquista
func (a *Achievement) Validate() error {
	if a.Name == "" {
		return errors.New("name is required")
	}
	if a.RewardPoints < 0 {
		return errors.New("reward points must not be negative")
	}
	_, err := a.ParsedCriterion()
	return err
}

// AchievementUnlock registra que um usuário desbloqueou uma conquista.
// Único por (UserID, AchievementID).
type AchievementUnlock struct {
	UserID        string
	AchievementID string
	UnlockedAt    time.Time
}

// UserAchievement é a projeção de uma conquista com o status do usuário
type UserAchievement struct {
	Achievement
	Unlocked   bool
	UnlockedAt *time.Time
}
