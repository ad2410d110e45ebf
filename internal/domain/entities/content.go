package entities

import "time"

// Post é uma publicação com imagem
type Post struct {
	ID        string
	UserID    string
	URL       string
	Likes     int
	CreatedAt time.Time
}

// PostLike é único por (PostID, UserID)
type PostLike struct {
	PostID    string
	UserID    string
	CreatedAt time.Time
}

// Comment é um comentário em um post
type Comment struct {
	ID        string
	PostID    string
	UserID    string
	UserName  string
	Text      string
	CreatedAt time.Time
}

// ProfilePic é a foto de perfil, uma por usuário
type ProfilePic struct {
	ID        string
	UserID    string
	URL       string
	CreatedAt time.Time
	UpdatedAt time.Time
}
