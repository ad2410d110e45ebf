package services_test

import (
	"context"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/biabrauna/econsciente-api/internal/domain/entities"
	"github.com/biabrauna/econsciente-api/internal/domain/ports"
	"github.com/biabrauna/econsciente-api/internal/domain/repositories"
	"github.com/biabrauna/econsciente-api/internal/domain/valueobjects"
	"github.com/biabrauna/econsciente-api/internal/infrastructure/logging"
	"github.com/biabrauna/econsciente-api/internal/infrastructure/persistence/postgres"
	"github.com/biabrauna/econsciente-api/internal/infrastructure/security"
	"github.com/biabrauna/econsciente-api/internal/services"
	"github.com/biabrauna/econsciente-api/internal/testutil"
)

func TestServices(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Services Suite")
}

// harness monta todos os serviços sobre um SQLite em memória
type harness struct {
	ctx       context.Context
	queue     *testutil.InlineQueue
	publisher *testutil.RecordingPublisher
	uow       ports.UnitOfWork
	progress  *services.ProgressTracker
	log       ports.Logger

	users         repositories.UserRepository
	follows       repositories.FollowRepository
	unlocks       repositories.AchievementUnlockRepository
	notifications repositories.NotificationRepository
	sessions      repositories.SessionRepository
	challenges    repositories.ChallengeRepository

	achievementSvc  *services.AchievementService
	onboardingSvc   *services.OnboardingService
	notificationSvc *services.NotificationService
	followSvc       *services.FollowService
	postSvc         *services.PostService
	commentSvc      *services.CommentService
	profilePicSvc   *services.ProfilePicService
	challengeSvc    *services.ChallengeService
	userSvc         *services.UserService
	sessionSvc      *services.SessionService
	authSvc         *services.AuthService
}

func newHarness() *harness {
	db := testutil.NewTestDB(GinkgoT())
	log := logging.NewNopLogger()
	uow := postgres.NewUnitOfWork(db)

	h := &harness{
		ctx:           context.Background(),
		queue:         testutil.NewInlineQueue(),
		publisher:     &testutil.RecordingPublisher{},
		users:         postgres.NewUserRepository(db),
		follows:       postgres.NewFollowRepository(db),
		unlocks:       postgres.NewAchievementUnlockRepository(db),
		notifications: postgres.NewNotificationRepository(db),
		sessions:      postgres.NewSessionRepository(db),
		challenges:    postgres.NewChallengeRepository(db),
		uow:           uow,
		log:           log,
	}

	achievements := postgres.NewAchievementRepository(db)
	posts := postgres.NewPostRepository(db)
	comments := postgres.NewCommentRepository(db)
	profilePics := postgres.NewProfilePicRepository(db)

	h.notificationSvc = services.NewNotificationService(h.notifications, h.publisher, nil, log)
	h.achievementSvc = services.NewAchievementService(
		achievements, h.unlocks, h.users, h.challenges, posts, profilePics,
		h.notificationSvc, uow, nil, log,
	)
	h.onboardingSvc = services.NewOnboardingService(
		h.users, profilePics, h.challenges, h.notificationSvc, uow,
		services.DefaultOnboardingRewards(), nil, log,
	)
	progress := services.NewProgressTracker(h.queue, h.achievementSvc, h.onboardingSvc, log)
	h.progress = progress
	points := services.DefaultPointValues()

	h.followSvc = services.NewFollowService(h.users, h.follows, h.notificationSvc, progress, uow, log)
	h.postSvc = services.NewPostService(posts, h.users, h.notificationSvc, progress, uow, points, nil, log)
	h.commentSvc = services.NewCommentService(comments, posts, h.users, h.notificationSvc, progress, log)
	h.profilePicSvc = services.NewProfilePicService(profilePics, h.users, progress, uow, points, nil, log)
	h.challengeSvc = services.NewChallengeService(h.challenges, h.users, progress, uow, nil, log)
	h.userSvc = services.NewUserService(h.users, h.follows, h.sessions, progress, uow, points, nil, log)
	h.sessionSvc = services.NewSessionService(h.sessions, time.Hour, log)
	h.authSvc = services.NewAuthService(
		h.users, h.sessionSvc, security.NewBcryptHasher(4),
		security.NewTokenManager("test-secret", time.Hour, "econsciente-test"), log,
	)
	return h
}

// createUser grava um usuário diretamente pelo repositório
func (h *harness) createUser(name string) *entities.User {
	GinkgoHelper()

	email, err := valueobjects.NewEmail(name + "@example.com")
	Expect(err).NotTo(HaveOccurred())

	birth := time.Date(1995, time.March, 10, 0, 0, 0, 0, time.UTC)
	user := &entities.User{
		Email:        email,
		Name:         name,
		PasswordHash: "x",
		Role:         entities.RoleUser,
		BirthDate:    &birth,
	}
	Expect(h.users.Create(h.ctx, user)).To(Succeed())
	return user
}

func (h *harness) reload(id string) *entities.User {
	GinkgoHelper()

	user, err := h.users.FindByID(h.ctx, id)
	Expect(err).NotTo(HaveOccurred())
	Expect(user).NotTo(BeNil())
	return user
}

func (h *harness) createAchievement(name string, criterion entities.Criterion, reward int) *entities.Achievement {
	GinkgoHelper()

	a, err := h.achievementSvc.Create(h.ctx, services.CreateAchievementInput{
		Name:         name,
		Description:  name,
		Category:     "teste",
		Criterion:    entities.EncodeCriterion(criterion),
		RewardPoints: reward,
	})
	Expect(err).NotTo(HaveOccurred())
	return a
}

func (h *harness) createChallenge(value int) *entities.Challenge {
	GinkgoHelper()

	c, err := h.challengeSvc.Create(h.ctx, "Separar o lixo reciclável", value)
	Expect(err).NotTo(HaveOccurred())
	return c
}

func (h *harness) notificationsOf(userID string, kind entities.NotificationType) []*entities.Notification {
	GinkgoHelper()

	all, err := h.notificationSvc.ListByUser(h.ctx, userID, false)
	Expect(err).NotTo(HaveOccurred())

	var out []*entities.Notification
	for _, n := range all {
		if n.Type == kind {
			out = append(out, n)
		}
	}
	return out
}
