package ports

// GamificationMetrics registra eventos de negócio para observabilidade
type GamificationMetrics interface {
	AchievementUnlocked(achievement string)
	PointsAwarded(source string, points int)
	NotificationCreated(kind string)
}
