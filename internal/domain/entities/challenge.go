package entities

import "time"

// Challenge é um desafio ambiental que rende Value pontos
type Challenge struct {
	ID          string
	Description string
	Value       int
	CreatedAt   time.Time
}

// CompletedChallenge registra a conclusão de um desafio por um usuário
type CompletedChallenge struct {
	ID          string
	UserID      string
	ChallengeID string
	CreatedAt   time.Time
}
