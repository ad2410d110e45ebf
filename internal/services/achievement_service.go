package services

import (
	"context"
	errs "errors"
	"fmt"
	"time"

	"github.com/biabrauna/econsciente-api/internal/domain/entities"
	"github.com/biabrauna/econsciente-api/internal/domain/errors"
	"github.com/biabrauna/econsciente-api/internal/domain/ports"
	"github.com/biabrauna/econsciente-api/internal/domain/repositories"
)

// AchievementService contém o motor de desbloqueio de conquistas
type AchievementService struct {
	achievementRepo repositories.AchievementRepository
	unlockRepo      repositories.AchievementUnlockRepository
	userRepo        repositories.UserRepository
	challengeRepo   repositories.ChallengeRepository
	postRepo        repositories.PostRepository
	profilePicRepo  repositories.ProfilePicRepository
	notifications   *NotificationService
	uow             ports.UnitOfWork
	metrics         ports.GamificationMetrics
	logger          ports.Logger
}

// NewAchievementService cria um novo AchievementService
func NewAchievementService(
	achievementRepo repositories.AchievementRepository,
	unlockRepo repositories.AchievementUnlockRepository,
	userRepo repositories.UserRepository,
	challengeRepo repositories.ChallengeRepository,
	postRepo repositories.PostRepository,
	profilePicRepo repositories.ProfilePicRepository,
	notifications *NotificationService,
	uow ports.UnitOfWork,
	metrics ports.GamificationMetrics,
	logger ports.Logger,
) *AchievementService {
	return &AchievementService{
		achievementRepo: achievementRepo,
		unlockRepo:      unlockRepo,
		userRepo:        userRepo,
		challengeRepo:   challengeRepo,
		postRepo:        postRepo,
		profilePicRepo:  profilePicRepo,
		notifications:   notifications,
		uow:             uow,
		metrics:         metricsOrNop(metrics),
		logger:          logger.With("service", "achievement"),
	}
}

// CreateAchievementInput representa os dados de uma nova conquista
type CreateAchievementInput struct {
	Name         string
	Description  string
	Icon         string
	Category     string
	Criterion    string
	RewardPoints int
}

// Create adiciona uma conquista ao catálogo
func (s *AchievementService) Create(ctx context.Context, input CreateAchievementInput) (*entities.Achievement, error) {
	criterion, err := entities.ParseCriterion(input.Criterion)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidCriterion, err.Error())
	}

	achievement := &entities.Achievement{
		Name:         input.Name,
		Description:  input.Description,
		Icon:         input.Icon,
		Category:     input.Category,
		Criterion:    entities.EncodeCriterion(criterion),
		RewardPoints: input.RewardPoints,
	}
	if err := achievement.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrInvalidInput, err.Error())
	}

	if err := s.achievementRepo.Create(ctx, achievement); err != nil {
		if errs.Is(err, repositories.ErrDuplicate) {
			return nil, errors.ErrAchievementNameTaken
		}
		return nil, err
	}

	s.logger.Info("achievement created", "achievement_id", achievement.ID, "name", achievement.Name)
	return achievement, nil
}

// List retorna o catálogo ordenado por categoria
func (s *AchievementService) List(ctx context.Context) ([]*entities.Achievement, error) {
	return s.achievementRepo.List(ctx)
}

// ListForUser retorna todo o catálogo com o status de desbloqueio do usuário
func (s *AchievementService) ListForUser(ctx context.Context, userID string) ([]*entities.UserAchievement, error) {
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}

	catalog, err := s.achievementRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	unlocked, err := s.unlockedAt(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := make([]*entities.UserAchievement, 0, len(catalog))
	for _, a := range catalog {
		ua := &entities.UserAchievement{Achievement: *a}
		if at, ok := unlocked[a.ID]; ok {
			at := at
			ua.Unlocked = true
			ua.UnlockedAt = &at
		}
		result = append(result, ua)
	}
	return result, nil
}

// ListUnlocked retorna apenas as conquistas desbloqueadas pelo usuário
func (s *AchievementService) ListUnlocked(ctx context.Context, userID string) ([]*entities.UserAchievement, error) {
	all, err := s.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := make([]*entities.UserAchievement, 0, len(all))
	for _, ua := range all {
		if ua.Unlocked {
			result = append(result, ua)
		}
	}
	return result, nil
}

// Unlock desbloqueia a conquista para o usuário. Retorna false, sem efeitos,
// quando o desbloqueio já existe, inclusive se outra chamada concorrente venceu.
func (s *AchievementService) Unlock(ctx context.Context, userID, achievementID string) (bool, error) {
	achievement, err := s.achievementRepo.FindByID(ctx, achievementID)
	if err != nil {
		return false, err
	}
	if achievement == nil {
		return false, errors.ErrAchievementNotFound
	}

	return s.unlock(ctx, userID, achievement)
}

func (s *AchievementService) unlock(ctx context.Context, userID string, achievement *entities.Achievement) (bool, error) {
	exists, err := s.unlockRepo.Exists(ctx, userID, achievement.ID)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	err = s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.ensureUser(txCtx, userID); err != nil {
			return err
		}

		unlock := &entities.AchievementUnlock{
			UserID:        userID,
			AchievementID: achievement.ID,
			UnlockedAt:    time.Now().UTC(),
		}
		if err := s.unlockRepo.Create(txCtx, unlock); err != nil {
			return err
		}

		if achievement.RewardPoints > 0 {
			return s.userRepo.IncrementPoints(txCtx, userID, achievement.RewardPoints)
		}
		return nil
	})
	if err != nil {
		if errs.Is(err, repositories.ErrDuplicate) {
			return false, nil
		}
		if errs.Is(err, errors.ErrUserNotFound) {
			return false, err
		}
		return false, fmt.Errorf("failed to unlock achievement: %w", err)
	}

	s.metrics.AchievementUnlocked(achievement.Name)
	s.metrics.PointsAwarded(SourceAchievement, achievement.RewardPoints)
	s.logger.Info("achievement unlocked",
		"user_id", userID,
		"achievement_id", achievement.ID,
		"reward_points", achievement.RewardPoints,
	)
	return true, nil
}

// CheckAndUnlock avalia as conquistas ainda bloqueadas cujo critério é
// disparado por action e desbloqueia as satisfeitas. Falhas de uma conquista
// não interrompem a avaliação das demais.
func (s *AchievementService) CheckAndUnlock(ctx context.Context, userID string, action entities.Action, metadata map[string]any) ([]string, error) {
	log := s.logger.With("user_id", userID, "action", string(action))

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.ErrUserNotFound
	}

	catalog, err := s.achievementRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	unlocked, err := s.unlockedAt(ctx, userID)
	if err != nil {
		return nil, err
	}

	facts := &userFacts{service: s, user: user}
	var names []string

	// Recompensas podem satisfazer critérios de pontos já avaliados no
	// mesmo passe; repete até nenhum desbloqueio novo acontecer.
	for progressed := true; progressed; {
		progressed = false

		for _, achievement := range catalog {
			if _, done := unlocked[achievement.ID]; done {
				continue
			}

			criterion, err := achievement.ParsedCriterion()
			if err != nil {
				log.Debug("skipping achievement with invalid criterion", "achievement_id", achievement.ID, "error", err)
				unlocked[achievement.ID] = time.Time{}
				continue
			}
			if criterion.Trigger() != action {
				continue
			}

			ok, err := facts.satisfies(ctx, criterion)
			if err != nil {
				log.Error("failed to evaluate criterion", "achievement_id", achievement.ID, "error", err)
				continue
			}
			if !ok {
				continue
			}

			fresh, err := s.unlock(ctx, userID, achievement)
			if err != nil {
				log.Error("failed to unlock achievement", "achievement_id", achievement.ID, "error", err)
				continue
			}
			unlocked[achievement.ID] = time.Now().UTC()
			if !fresh {
				continue
			}

			facts.user.Points += achievement.RewardPoints
			progressed = achievement.RewardPoints > 0 || progressed
			names = append(names, achievement.Name)
			if err := s.notifications.NotifyAchievement(ctx, userID, achievement); err != nil {
				log.Warn("failed to notify achievement", "achievement_id", achievement.ID, "error", err)
			}
		}
	}

	if len(names) > 0 {
		log.Info("achievements unlocked", "names", names, "metadata", metadata)
	}
	return names, nil
}

// SeedCatalog cria as conquistas padrão que ainda não existem
func (s *AchievementService) SeedCatalog(ctx context.Context) (int, error) {
	created := 0
	for _, seed := range DefaultCatalog() {
		existing, err := s.achievementRepo.FindByName(ctx, seed.Name)
		if err != nil {
			return created, err
		}
		if existing != nil {
			continue
		}

		if _, err := s.Create(ctx, seed); err != nil {
			if errs.Is(err, errors.ErrAchievementNameTaken) {
				continue
			}
			return created, err
		}
		created++
	}

	s.logger.Info("achievement catalog seeded", "created", created)
	return created, nil
}

func (s *AchievementService) ensureUser(ctx context.Context, userID string) error {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return err
	}
	if !exists {
		return errors.ErrUserNotFound
	}
	return nil
}

func (s *AchievementService) unlockedAt(ctx context.Context, userID string) (map[string]time.Time, error) {
	unlocks, err := s.unlockRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	result := make(map[string]time.Time, len(unlocks))
	for _, u := range unlocks {
		result[u.AchievementID] = u.UnlockedAt
	}
	return result, nil
}

// userFacts carrega sob demanda os dados usados pelos critérios
type userFacts struct {
	service *AchievementService
	user    *entities.User

	challenges *int64
	posts      *int64
	hasPic     *bool
}

func (f *userFacts) satisfies(ctx context.Context, criterion entities.Criterion) (bool, error) {
	switch c := criterion.(type) {
	case entities.ChallengesCompletedCriterion:
		n, err := f.challengeCount(ctx)
		return n >= int64(c.Count), err

	case entities.TotalPointsCriterion:
		return f.user.Points >= c.Amount, nil

	case entities.ProfileActionCriterion:
		if c.Action != entities.ProfileComplete {
			return true, nil
		}
		pic, err := f.hasProfilePic(ctx)
		return pic && f.user.HasBiography(), err

	case entities.SocialCriterion:
		switch c.Action {
		case entities.SocialFirstPost:
			n, err := f.postCount(ctx)
			return n >= 1, err
		case entities.SocialFirstLike:
			return true, nil
		case entities.SocialFollowers:
			return f.user.Followers >= c.Count, nil
		}
	}
	return false, nil
}

func (f *userFacts) challengeCount(ctx context.Context) (int64, error) {
	if f.challenges == nil {
		n, err := f.service.challengeRepo.CountCompletedByUser(ctx, f.user.ID)
		if err != nil {
			return 0, err
		}
		f.challenges = &n
	}
	return *f.challenges, nil
}

func (f *userFacts) postCount(ctx context.Context) (int64, error) {
	if f.posts == nil {
		n, err := f.service.postRepo.CountByUser(ctx, f.user.ID)
		if err != nil {
			return 0, err
		}
		f.posts = &n
	}
	return *f.posts, nil
}

func (f *userFacts) hasProfilePic(ctx context.Context) (bool, error) {
	if f.hasPic == nil {
		pic, err := f.service.profilePicRepo.FindByUser(ctx, f.user.ID)
		if err != nil {
			return false, err
		}
		has := pic != nil
		f.hasPic = &has
	}
	return *f.hasPic, nil
}
