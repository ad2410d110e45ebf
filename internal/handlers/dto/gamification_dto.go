package dto

import (
	"encoding/json"
	"time"

	"github.com/biabrauna/econsciente-api/internal/domain/entities"
	"github.com/biabrauna/econsciente-api/internal/services"
)

// CreateAchievementRequest representa uma nova conquista do catálogo
type CreateAchievementRequest struct {
	Nome             string          `json:"nome" binding:"required,min=2,max=100"`
	Descricao        string          `json:"descricao" binding:"required,max=500"`
	Icone            string          `json:"icone" binding:"max=16"`
	Categoria        string          `json:"categoria" binding:"required,max=50"`
	Criterio         json.RawMessage `json:"criterio" binding:"required"`
	PontosRecompensa int             `json:"pontosRecompensa" binding:"gte=0"`
}

// ToInput converte a requisição para o input do serviço
func (r CreateAchievementRequest) ToInput() services.CreateAchievementInput {
	return services.CreateAchievementInput{
		Name:         r.Nome,
		Description:  r.Descricao,
		Icon:         r.Icone,
		Category:     r.Categoria,
		Criterion:    string(r.Criterio),
		RewardPoints: r.PontosRecompensa,
	}
}

// AchievementResponse representa uma conquista, com o status do usuário quando houver
type AchievementResponse struct {
	ID               string          `json:"id"`
	Nome             string          `json:"nome"`
	Descricao        string          `json:"descricao"`
	Icone            string          `json:"icone"`
	Categoria        string          `json:"categoria"`
	Criterio         json.RawMessage `json:"criterio"`
	PontosRecompensa int             `json:"pontosRecompensa"`
	Desbloqueada     *bool           `json:"desbloqueada,omitempty"`
	DesbloqueadaEm   *time.Time      `json:"desbloqueadaEm,omitempty"`
}

// ToAchievementResponse converte uma conquista do catálogo
func ToAchievementResponse(a *entities.Achievement) AchievementResponse {
	return AchievementResponse{
		ID:               a.ID,
		Nome:             a.Name,
		Descricao:        a.Description,
		Icone:            a.Icon,
		Categoria:        a.Category,
		Criterio:         json.RawMessage(a.Criterion),
		PontosRecompensa: a.RewardPoints,
	}
}

// ToAchievementResponses converte o catálogo
func ToAchievementResponses(list []*entities.Achievement) []AchievementResponse {
	responses := make([]AchievementResponse, len(list))
	for i, a := range list {
		responses[i] = ToAchievementResponse(a)
	}
	return responses
}

// ToUserAchievementResponses converte conquistas com o status do usuário
func ToUserAchievementResponses(list []*entities.UserAchievement) []AchievementResponse {
	responses := make([]AchievementResponse, len(list))
	for i, ua := range list {
		r := ToAchievementResponse(&ua.Achievement)
		unlocked := ua.Unlocked
		r.Desbloqueada = &unlocked
		r.DesbloqueadaEm = ua.UnlockedAt
		responses[i] = r
	}
	return responses
}

// OnboardingStatusResponse é o estado do checklist
type OnboardingStatusResponse struct {
	Completed   bool                     `json:"completed"`
	Steps       entities.OnboardingSteps `json:"steps"`
	TotalPoints int                      `json:"totalPoints"`
}

// ToOnboardingStatusResponse converte o status do onboarding
func ToOnboardingStatusResponse(s *services.OnboardingStatus) OnboardingStatusResponse {
	return OnboardingStatusResponse{Completed: s.Completed, Steps: s.Steps, TotalPoints: s.TotalPoints}
}

// CompleteStepRequest identifica a etapa a concluir
type CompleteStepRequest struct {
	Step string `json:"step" binding:"required,oneof=profilePic bio firstChallenge"`
}

// StepResultResponse descreve o efeito da conclusão de uma etapa
type StepResultResponse struct {
	Applied   bool `json:"applied"`
	Points    int  `json:"points"`
	Bonus     int  `json:"bonus"`
	Completed bool `json:"completed"`
}

// ToStepResultResponse converte o resultado de CompleteStep
func ToStepResultResponse(r *services.StepResult) StepResultResponse {
	return StepResultResponse{Applied: r.Applied, Points: r.Points, Bonus: r.Bonus, Completed: r.Completed}
}

// SeedResponse informa quantas conquistas foram criadas
type SeedResponse struct {
	Message string `json:"message"`
	Created int    `json:"created"`
}
