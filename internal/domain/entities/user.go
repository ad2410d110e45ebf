package entities

import (
	"errors"
	"strings"
	"time"

	"github.com/biabrauna/econsciente-api/internal/domain/valueobjects"
)

var (
	ErrInvalidUserData = errors.New("invalid user data")
)

// User representa um usuário do sistema
type User struct {
	ID           string
	Email        valueobjects.Email
	Name         string
	PasswordHash string
	Role         Role
	BirthDate    *time.Time
	Biography    string

	// Contadores denormalizados. Followers/Following devem sempre
	// refletir a contagem real de arestas Follow.
	Points    int
	Followers int
	Following int

	OnboardingCompleted bool
	OnboardingSteps     OnboardingSteps

	// BioRewarded indica que a primeira biografia já rendeu pontos
	BioRewarded bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasPermission verifica se o usuário tem uma permissão
func (u *User) HasPermission(permission Permission) bool {
	return u.Role.HasPermission(permission)
}

// CanActOn indica se o usuário pode operar sobre o recurso do dono
// ownerID: o próprio dono sempre pode, terceiros precisam da permissão.
func (u *User) CanActOn(ownerID string, permission Permission) bool {
	return u.ID == ownerID || u.HasPermission(permission)
}

// PermissionNames retorna as permissões do usuário como strings
func (u *User) PermissionNames() []string {
	perms := u.Role.Permissions()
	names := make([]string, len(perms))
	for i, p := range perms {
		names[i] = string(p)
	}
	return names
}

// HasBiography indica se a biografia tem conteúdo
func (u *User) HasBiography() bool {
	return strings.TrimSpace(u.Biography) != ""
}

// Age calcula a idade em anos completos na data informada
func (u *User) Age(now time.Time) int {
	if u.BirthDate == nil {
		return 0
	}
	return AgeAt(*u.BirthDate, now)
}

// Level retorna o nível derivado dos pontos
func (u *User) Level() int {
	return LevelFor(u.Points)
}

// AgeAt calcula anos completos entre birth e now
func AgeAt(birth, now time.Time) int {
	age := now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}
	return age
}

// Validate valida regras de negócio da entidade User
func (u *User) Validate() error {
	if u.Email.String() == "" {
		return errors.New("email is required")
	}

	if u.Name == "" {
		return errors.New("name is required")
	}

	if len(u.Name) < 2 {
		return errors.New("name must be at least 2 characters")
	}

	if !u.Role.IsValid() {
		return errors.New("invalid role")
	}

	if u.Points < 0 || u.Followers < 0 || u.Following < 0 {
		return ErrInvalidUserData
	}

	return nil
}
