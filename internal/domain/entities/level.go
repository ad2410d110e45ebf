package entities

import "math"

// XPToNextLevel retorna o XP necessário para sair do nível informado.
// Progressão exponencial: 100, 150, 225, ...
func XPToNextLevel(level int) int {
	if level < 1 {
		level = 1
	}
	return int(math.Floor(100 * math.Pow(1.5, float64(level-1))))
}

// LevelFor calcula o nível a partir do XP total
func LevelFor(totalXP int) int {
	level := 1
	accumulated := 0
	for accumulated+XPToNextLevel(level) <= totalXP {
		accumulated += XPToNextLevel(level)
		level++
	}
	return level
}

// XPInLevel retorna o progresso dentro do nível atual
func XPInLevel(totalXP, level int) int {
	accumulated := 0
	for i := 1; i < level; i++ {
		accumulated += XPToNextLevel(i)
	}
	return totalXP - accumulated
}

// AddXP soma XP e informa se houve subida de nível
func AddXP(currentXP, currentLevel, gained int) (newXP, newLevel int, leveledUp bool) {
	newXP = currentXP + gained
	newLevel = LevelFor(newXP)
	return newXP, newLevel, newLevel > currentLevel
}

// LevelTitle retorna o título exibido para o nível
func LevelTitle(level int) string {
	switch {
	case level >= 50:
		return "🏆 Lenda Eco"
	case level >= 40:
		return "⭐ Mestre Verde"
	case level >= 30:
		return "🌟 Guardião da Natureza"
	case level >= 20:
		return "🌿 Eco Especialista"
	case level >= 10:
		return "🌱 Defensor Ambiental"
	case level >= 5:
		return "🍃 Eco Entusiasta"
	default:
		return "🌾 Iniciante Verde"
	}
}
