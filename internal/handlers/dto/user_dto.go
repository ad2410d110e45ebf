package dto

import (
	"time"

	"github.com/biabrauna/econsciente-api/internal/domain/entities"
)

// DateLayout é o formato aceito para datas de nascimento
const DateLayout = "2006-01-02"

// RegisterRequest representa a requisição de cadastro
type RegisterRequest struct {
	Email           string `json:"email" binding:"required,email"`
	Name            string `json:"name" binding:"required,min=2,max=100"`
	Password        string `json:"password" binding:"required,min=6,max=72"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
	BirthDate       string `json:"birthDate" binding:"required,datetime=2006-01-02"`
	Biografia       string `json:"biografia" binding:"max=500"`
}

// LoginRequest representa as credenciais de login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateUserRequest representa a requisição para atualizar o perfil
type UpdateUserRequest struct {
	Name      *string `json:"name" binding:"omitempty,min=2,max=100"`
	Biografia *string `json:"biografia" binding:"omitempty,max=500"`
	BirthDate *string `json:"birthDate" binding:"omitempty,datetime=2006-01-02"`
}

// ListUsersQuery são os filtros da listagem de usuários
type ListUsersQuery struct {
	PageQuery
	Search string `form:"search" binding:"max=100"`
}

// UserResponse representa a resposta de um usuário
type UserResponse struct {
	ID                  string     `json:"id"`
	Email               string     `json:"email"`
	Name                string     `json:"name"`
	Role                string     `json:"role"`
	Biografia           string     `json:"biografia"`
	BirthDate           *string    `json:"birthDate,omitempty"`
	Pontos              int        `json:"pontos"`
	Seguidores          int        `json:"seguidores"`
	Seguindo            int        `json:"seguindo"`
	Level               LevelInfo  `json:"nivel"`
	OnboardingCompleted bool       `json:"onboardingCompleted"`
	CreatedAt           time.Time  `json:"createdAt"`
	UpdatedAt           *time.Time `json:"updatedAt,omitempty"`
}

// LevelInfo é o progresso de nível derivado dos pontos
type LevelInfo struct {
	Level        int    `json:"nivel"`
	Title        string `json:"titulo"`
	XPInLevel    int    `json:"xpNoNivel"`
	XPToNextStep int    `json:"xpProximoNivel"`
}

// ToUserResponse converte uma entidade User para UserResponse
func ToUserResponse(user *entities.User) UserResponse {
	level := user.Level()

	response := UserResponse{
		ID:         user.ID,
		Email:      user.Email.String(),
		Name:       user.Name,
		Role:       string(user.Role),
		Biografia:  user.Biography,
		Pontos:     user.Points,
		Seguidores: user.Followers,
		Seguindo:   user.Following,
		Level: LevelInfo{
			Level:        level,
			Title:        entities.LevelTitle(level),
			XPInLevel:    entities.XPInLevel(user.Points, level),
			XPToNextStep: entities.XPToNextLevel(level),
		},
		OnboardingCompleted: user.OnboardingCompleted,
		CreatedAt:           user.CreatedAt,
	}
	if user.BirthDate != nil {
		birth := user.BirthDate.Format(DateLayout)
		response.BirthDate = &birth
	}
	if !user.UpdatedAt.IsZero() {
		updated := user.UpdatedAt
		response.UpdatedAt = &updated
	}
	return response
}

// ToUserResponses converte uma lista de entidades User para UserResponse
func ToUserResponses(users []*entities.User) []UserResponse {
	responses := make([]UserResponse, len(users))
	for i, user := range users {
		responses[i] = ToUserResponse(user)
	}
	return responses
}

// MeResponse é o perfil do usuário autenticado com suas permissões
type MeResponse struct {
	UserResponse
	Permissions []string `json:"permissions"`
}

// LoginResponse contém os tokens emitidos no login
type LoginResponse struct {
	AccessToken  string       `json:"access_token"`
	TokenType    string       `json:"token_type"`
	ExpiresAt    time.Time    `json:"expires_at"`
	SessionToken string       `json:"session_token"`
	User         UserResponse `json:"user"`
}

// SessionResponse representa uma sessão ativa, sem o token
type SessionResponse struct {
	ID           string    `json:"id"`
	IPAddress    string    `json:"ipAddress,omitempty"`
	UserAgent    string    `json:"userAgent,omitempty"`
	LastActivity time.Time `json:"lastActivity"`
	ExpiresAt    time.Time `json:"expiresAt"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ToSessionResponses converte sessões para resposta
func ToSessionResponses(sessions []*entities.Session) []SessionResponse {
	responses := make([]SessionResponse, len(sessions))
	for i, s := range sessions {
		responses[i] = SessionResponse{
			ID:           s.ID,
			IPAddress:    s.IPAddress,
			UserAgent:    s.UserAgent,
			LastActivity: s.LastActivity,
			ExpiresAt:    s.ExpiresAt,
			CreatedAt:    s.CreatedAt,
		}
	}
	return responses
}
