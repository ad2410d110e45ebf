package postgres

// Timestamps são persistidos como unix millis (int64).

// UserModel é o model GORM para usuários
type UserModel struct {
	ID                  string `gorm:"type:varchar(36);primaryKey"`
	Email               string `gorm:"type:varchar(255);uniqueIndex;not null"`
	Name                string `gorm:"type:varchar(500);not null"`
	PasswordHash        string `gorm:"type:varchar(255);not null"`
	Role                string `gorm:"type:varchar(50);not null;index"`
	BirthDate           *int64
	Biography           string `gorm:"type:text;not null;default:''"`
	Points              int    `gorm:"not null;default:0;index"`
	Followers           int    `gorm:"not null;default:0"`
	Following           int    `gorm:"not null;default:0"`
	OnboardingCompleted bool   `gorm:"not null;default:false"`
	OnboardingSteps     string `gorm:"type:text;not null;default:''"`
	BioRewarded         bool   `gorm:"not null;default:false"`
	CreatedAt           int64  `gorm:"autoCreateTime:milli;index"`
	UpdatedAt           int64  `gorm:"autoUpdateTime:milli"`
}

func (UserModel) TableName() string {
	return "users"
}

// AchievementModel é o catálogo de conquistas
type AchievementModel struct {
	ID           string `gorm:"type:varchar(36);primaryKey"`
	Name         string `gorm:"type:varchar(255);uniqueIndex;not null"`
	Description  string `gorm:"type:text;not null"`
	Icon         string `gorm:"type:varchar(32)"`
	Category     string `gorm:"type:varchar(50);not null;index"`
	Criterion    string `gorm:"type:text;not null"`
	RewardPoints int    `gorm:"not null;default:0"`
	CreatedAt    int64  `gorm:"autoCreateTime:milli"`
}

func (AchievementModel) TableName() string {
	return "achievements"
}

// AchievementUnlockModel garante no máximo um desbloqueio por (usuário, conquista)
type AchievementUnlockModel struct {
	ID            string `gorm:"type:varchar(36);primaryKey"`
	UserID        string `gorm:"type:varchar(36);not null;uniqueIndex:idx_unlock_user_achievement"`
	AchievementID string `gorm:"type:varchar(36);not null;uniqueIndex:idx_unlock_user_achievement"`
	UnlockedAt    int64  `gorm:"not null"`
}

func (AchievementUnlockModel) TableName() string {
	return "achievement_unlocks"
}

// FollowModel é uma aresta do grafo social
type FollowModel struct {
	ID          string `gorm:"type:varchar(36);primaryKey"`
	FollowerID  string `gorm:"type:varchar(36);not null;uniqueIndex:idx_follow_pair"`
	FollowingID string `gorm:"type:varchar(36);not null;uniqueIndex:idx_follow_pair;index"`
	CreatedAt   int64  `gorm:"autoCreateTime:milli"`
}

func (FollowModel) TableName() string {
	return "follows"
}

// NotificationModel é o model GORM para notificações
type NotificationModel struct {
	ID        string  `gorm:"type:varchar(36);primaryKey"`
	UserID    string  `gorm:"type:varchar(36);not null;index:idx_notification_user_read"`
	Type      string  `gorm:"type:varchar(32);not null"`
	Title     string  `gorm:"type:varchar(255);not null"`
	Message   string  `gorm:"type:text;not null"`
	Read      bool    `gorm:"not null;default:false;index:idx_notification_user_read"`
	Metadata  *string `gorm:"type:text"`
	CreatedAt int64   `gorm:"autoCreateTime:milli;index"`
}

func (NotificationModel) TableName() string {
	return "notifications"
}

// SessionModel é o model GORM para sessões
type SessionModel struct {
	ID           string `gorm:"type:varchar(36);primaryKey"`
	UserID       string `gorm:"type:varchar(36);not null;index"`
	Token        string `gorm:"type:varchar(128);uniqueIndex;not null"`
	IPAddress    string `gorm:"type:varchar(64)"`
	UserAgent    string `gorm:"type:varchar(512)"`
	LastActivity int64  `gorm:"not null"`
	ExpiresAt    int64  `gorm:"not null;index"`
	IsActive     bool   `gorm:"not null;default:true"`
	CreatedAt    int64  `gorm:"autoCreateTime:milli"`
}

func (SessionModel) TableName() string {
	return "sessions"
}

// PostModel é o model GORM para posts
type PostModel struct {
	ID        string `gorm:"type:varchar(36);primaryKey"`
	UserID    string `gorm:"type:varchar(36);not null;index"`
	URL       string `gorm:"type:varchar(1024);not null"`
	Likes     int    `gorm:"not null;default:0"`
	CreatedAt int64  `gorm:"autoCreateTime:milli;index"`
}

func (PostModel) TableName() string {
	return "posts"
}

// PostLikeModel garante uma curtida por (post, usuário)
type PostLikeModel struct {
	ID        string `gorm:"type:varchar(36);primaryKey"`
	PostID    string `gorm:"type:varchar(36);not null;uniqueIndex:idx_like_pair"`
	UserID    string `gorm:"type:varchar(36);not null;uniqueIndex:idx_like_pair"`
	CreatedAt int64  `gorm:"autoCreateTime:milli"`
}

func (PostLikeModel) TableName() string {
	return "post_likes"
}

// CommentModel é o model GORM para comentários
type CommentModel struct {
	ID        string `gorm:"type:varchar(36);primaryKey"`
	PostID    string `gorm:"type:varchar(36);not null;index"`
	UserID    string `gorm:"type:varchar(36);not null"`
	UserName  string `gorm:"type:varchar(500);not null"`
	Text      string `gorm:"type:text;not null"`
	CreatedAt int64  `gorm:"autoCreateTime:milli"`
}

func (CommentModel) TableName() string {
	return "comments"
}

// ProfilePicModel guarda uma foto por usuário
type ProfilePicModel struct {
	ID        string `gorm:"type:varchar(36);primaryKey"`
	UserID    string `gorm:"type:varchar(36);uniqueIndex;not null"`
	URL       string `gorm:"type:varchar(1024);not null"`
	CreatedAt int64  `gorm:"autoCreateTime:milli"`
	UpdatedAt int64  `gorm:"autoUpdateTime:milli"`
}

func (ProfilePicModel) TableName() string {
	return "profile_pics"
}

// ChallengeModel é o model GORM para desafios
type ChallengeModel struct {
	ID          string `gorm:"type:varchar(36);primaryKey"`
	Description string `gorm:"type:text;not null"`
	Value       int    `gorm:"not null"`
	CreatedAt   int64  `gorm:"autoCreateTime:milli"`
}

func (ChallengeModel) TableName() string {
	return "challenges"
}

// CompletedChallengeModel garante uma conclusão por (usuário, desafio)
type CompletedChallengeModel struct {
	ID          string `gorm:"type:varchar(36);primaryKey"`
	UserID      string `gorm:"type:varchar(36);not null;uniqueIndex:idx_completion_pair"`
	ChallengeID string `gorm:"type:varchar(36);not null;uniqueIndex:idx_completion_pair"`
	CreatedAt   int64  `gorm:"autoCreateTime:milli"`
}

func (CompletedChallengeModel) TableName() string {
	return "completed_challenges"
}

// AllModels lista os models migrados no boot
func AllModels() []any {
	return []any{
		&UserModel{},
		&AchievementModel{},
		&AchievementUnlockModel{},
		&FollowModel{},
		&NotificationModel{},
		&SessionModel{},
		&PostModel{},
		&PostLikeModel{},
		&CommentModel{},
		&ProfilePicModel{},
		&ChallengeModel{},
		&CompletedChallengeModel{},
	}
}
