package entities

import (
	"encoding/json"
	"errors"
)

// OnboardingStep identifica uma etapa do checklist inicial
type OnboardingStep string

const (
	StepProfilePic     OnboardingStep = "profilePic"
	StepBio            OnboardingStep = "bio"
	StepFirstChallenge OnboardingStep = "firstChallenge"
)

var ErrUnknownOnboardingStep = errors.New("unknown onboarding step")

// ParseOnboardingStep valida o nome de uma etapa
func ParseOnboardingStep(s string) (OnboardingStep, error) {
	switch step := OnboardingStep(s); step {
	case StepProfilePic, StepBio, StepFirstChallenge:
		return step, nil
	default:
		return "", ErrUnknownOnboardingStep
	}
}

// DisplayName retorna o nome amigável usado nas notificações
func (s OnboardingStep) DisplayName() string {
	switch s {
	case StepProfilePic:
		return "Foto de Perfil"
	case StepBio:
		return "Biografia"
	case StepFirstChallenge:
		return "Primeiro Desafio"
	default:
		return string(s)
	}
}

// OnboardingSteps guarda as três flags independentes do onboarding
type OnboardingSteps struct {
	ProfilePic     bool `json:"profilePic"`
	Bio            bool `json:"bio"`
	FirstChallenge bool `json:"firstChallenge"`
}

// IsDone informa se a etapa já foi concluída
func (s OnboardingSteps) IsDone(step OnboardingStep) bool {
	switch step {
	case StepProfilePic:
		return s.ProfilePic
	case StepBio:
		return s.Bio
	case StepFirstChallenge:
		return s.FirstChallenge
	}
	return false
}

// With retorna uma cópia com a etapa marcada
func (s OnboardingSteps) With(step OnboardingStep) OnboardingSteps {
	switch step {
	case StepProfilePic:
		s.ProfilePic = true
	case StepBio:
		s.Bio = true
	case StepFirstChallenge:
		s.FirstChallenge = true
	}
	return s
}

// AllDone é o AND lógico das três etapas
func (s OnboardingSteps) AllDone() bool {
	return s.ProfilePic && s.Bio && s.FirstChallenge
}

// ParseOnboardingSteps decodifica o blob JSON persistido.
// Blob vazio resulta em todas as etapas pendentes.
func ParseOnboardingSteps(raw string) (OnboardingSteps, error) {
	var steps OnboardingSteps
	if raw == "" {
		return steps, nil
	}
	if err := json.Unmarshal([]byte(raw), &steps); err != nil {
		return OnboardingSteps{}, err
	}
	return steps, nil
}

// Encode serializa as etapas para persistência
func (s OnboardingSteps) Encode() string {
	data, _ := json.Marshal(s)
	return string(data)
}
