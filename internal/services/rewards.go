package services

import (
	"github.com/biabrauna/econsciente-api/internal/domain/ports"
)

// PointValues são os pontos concedidos pelas ações de conteúdo
type PointValues struct {
	Post       int
	ProfilePic int
	FirstBio   int
}

// DefaultPointValues retorna os valores padrão
func DefaultPointValues() PointValues {
	return PointValues{Post: 10, ProfilePic: 20, FirstBio: 10}
}

// OnboardingRewards são os pontos por etapa do onboarding e o bônus final
type OnboardingRewards struct {
	ProfilePic     int
	Bio            int
	FirstChallenge int
	Bonus          int
}

// DefaultOnboardingRewards retorna os valores padrão
func DefaultOnboardingRewards() OnboardingRewards {
	return OnboardingRewards{ProfilePic: 100, Bio: 50, FirstChallenge: 200, Bonus: 50}
}

// Fontes de pontos usadas nas métricas
const (
	SourcePost        = "post"
	SourceProfilePic  = "profile_pic"
	SourceBio         = "bio"
	SourceChallenge   = "challenge"
	SourceAchievement = "achievement"
	SourceOnboarding  = "onboarding"
)

type nopMetrics struct{}

func (nopMetrics) AchievementUnlocked(string) {}
func (nopMetrics) PointsAwarded(string, int)  {}
func (nopMetrics) NotificationCreated(string) {}

func metricsOrNop(m ports.GamificationMetrics) ports.GamificationMetrics {
	if m == nil {
		return nopMetrics{}
	}
	return m
}
