package services

import "github.com/biabrauna/econsciente-api/internal/domain/entities"

// DefaultCatalog é o conjunto inicial de conquistas
func DefaultCatalog() []CreateAchievementInput {
	challenges := func(n int) string {
		return entities.EncodeCriterion(entities.ChallengesCompletedCriterion{Count: n})
	}
	points := func(n int) string {
		return entities.EncodeCriterion(entities.TotalPointsCriterion{Amount: n})
	}
	profile := func(a entities.ProfileAction) string {
		return entities.EncodeCriterion(entities.ProfileActionCriterion{Action: a})
	}
	social := func(a entities.SocialAction) string {
		return entities.EncodeCriterion(entities.SocialCriterion{Action: a})
	}

	return []CreateAchievementInput{
		{Name: "Primeira Foto", Description: "Adicione uma foto de perfil", Icon: "📷", Category: "perfil", Criterion: profile(entities.ProfileUploadPic), RewardPoints: 10},
		{Name: "Quem Sou Eu?", Description: "Escreva sua biografia", Icon: "✍️", Category: "perfil", Criterion: profile(entities.ProfileUpdateBio), RewardPoints: 5},
		{Name: "Primeiro Passo", Description: "Complete seu primeiro desafio", Icon: "🌱", Category: "desafios", Criterion: challenges(1), RewardPoints: 15},
		{Name: "Eco Guerreiro", Description: "Complete 5 desafios", Icon: "⚔️", Category: "desafios", Criterion: challenges(5), RewardPoints: 30},
		{Name: "Guardião Verde", Description: "Complete 10 desafios", Icon: "🛡️", Category: "desafios", Criterion: challenges(10), RewardPoints: 50},
		{Name: "Centelha Verde", Description: "Alcance 50 pontos", Icon: "✨", Category: "pontos", Criterion: points(50), RewardPoints: 10},
		{Name: "Estrela Eco", Description: "Alcance 100 pontos", Icon: "⭐", Category: "pontos", Criterion: points(100), RewardPoints: 25},
		{Name: "Lenda Ambiental", Description: "Alcance 500 pontos", Icon: "🏆", Category: "pontos", Criterion: points(500), RewardPoints: 100},
		{Name: "Primeira Publicação", Description: "Faça sua primeira publicação", Icon: "📸", Category: "social", Criterion: social(entities.SocialFirstPost), RewardPoints: 10},
		{Name: "Curtidor Consciente", Description: "Curta uma publicação", Icon: "❤️", Category: "social", Criterion: social(entities.SocialFirstLike), RewardPoints: 5},
	}
}
