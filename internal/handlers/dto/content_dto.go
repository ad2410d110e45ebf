package dto

import (
	"time"

	"github.com/biabrauna/econsciente-api/internal/domain/entities"
)

// CreatePostRequest representa uma nova publicação
type CreatePostRequest struct {
	URL string `json:"url" binding:"required,url,max=2048"`
}

// ListPostsQuery filtra o feed por autor
type ListPostsQuery struct {
	PageQuery
	UserID string `form:"userId" binding:"omitempty,uuid"`
}

// PostResponse representa uma publicação
type PostResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	URL       string    `json:"url"`
	Likes     int       `json:"likes"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToPostResponses converte publicações para resposta
func ToPostResponses(posts []*entities.Post) []PostResponse {
	responses := make([]PostResponse, len(posts))
	for i, p := range posts {
		responses[i] = ToPostResponse(p)
	}
	return responses
}

// ToPostResponse converte uma publicação
func ToPostResponse(p *entities.Post) PostResponse {
	return PostResponse{ID: p.ID, UserID: p.UserID, URL: p.URL, Likes: p.Likes, CreatedAt: p.CreatedAt}
}

// CreateCommentRequest representa um novo comentário
type CreateCommentRequest struct {
	Texto string `json:"texto" binding:"required,max=1000"`
}

// CommentResponse representa um comentário
type CommentResponse struct {
	ID        string    `json:"id"`
	PostID    string    `json:"postId"`
	UserID    string    `json:"userId"`
	UserName  string    `json:"userName"`
	Texto     string    `json:"texto"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToCommentResponse converte um comentário
func ToCommentResponse(c *entities.Comment) CommentResponse {
	return CommentResponse{
		ID:        c.ID,
		PostID:    c.PostID,
		UserID:    c.UserID,
		UserName:  c.UserName,
		Texto:     c.Text,
		CreatedAt: c.CreatedAt,
	}
}

// ToCommentResponses converte comentários
func ToCommentResponses(list []*entities.Comment) []CommentResponse {
	responses := make([]CommentResponse, len(list))
	for i, c := range list {
		responses[i] = ToCommentResponse(c)
	}
	return responses
}

// ProfilePicRequest representa o upload da foto de perfil
type ProfilePicRequest struct {
	URL string `json:"url" binding:"required,url,max=2048"`
}

// ProfilePicResponse representa a foto de perfil
type ProfilePicResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	URL       string    `json:"url"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ToProfilePicResponse converte a foto de perfil
func ToProfilePicResponse(p *entities.ProfilePic) ProfilePicResponse {
	updated := p.UpdatedAt
	if updated.IsZero() {
		updated = p.CreatedAt
	}
	return ProfilePicResponse{ID: p.ID, UserID: p.UserID, URL: p.URL, UpdatedAt: updated}
}

// CreateChallengeRequest representa um novo desafio
type CreateChallengeRequest struct {
	Desafios string `json:"desafios" binding:"required,max=500"`
	Valor    int    `json:"valor" binding:"gte=0"`
}

// SearchChallengesQuery é o termo de busca de desafios
type SearchChallengesQuery struct {
	Q string `form:"q" binding:"max=100"`
}

// ChallengeResponse representa um desafio
type ChallengeResponse struct {
	ID        string    `json:"id"`
	Desafios  string    `json:"desafios"`
	Valor     int       `json:"valor"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToChallengeResponse converte um desafio
func ToChallengeResponse(c *entities.Challenge) ChallengeResponse {
	return ChallengeResponse{ID: c.ID, Desafios: c.Description, Valor: c.Value, CreatedAt: c.CreatedAt}
}

// ToChallengeResponses converte desafios
func ToChallengeResponses(list []*entities.Challenge) []ChallengeResponse {
	responses := make([]ChallengeResponse, len(list))
	for i, c := range list {
		responses[i] = ToChallengeResponse(c)
	}
	return responses
}
