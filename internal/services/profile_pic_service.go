package services

import (
	"context"
	"net/url"
	"strings"

	"github.com/biabrauna/econsciente-api/internal/domain/entities"
	"github.com/biabrauna/econsciente-api/internal/domain/errors"
	"github.com/biabrauna/econsciente-api/internal/domain/ports"
	"github.com/biabrauna/econsciente-api/internal/domain/repositories"
)

// ProfilePicService gerencia a foto de perfil, uma por usuário
type ProfilePicService struct {
	profilePicRepo repositories.ProfilePicRepository
	userRepo       repositories.UserRepository
	progress       *ProgressTracker
	uow            ports.UnitOfWork
	points         PointValues
	metrics        ports.GamificationMetrics
	logger         ports.Logger
}

// NewProfilePicService cria um novo ProfilePicService
func NewProfilePicService(
	profilePicRepo repositories.ProfilePicRepository,
	userRepo repositories.UserRepository,
	progress *ProgressTracker,
	uow ports.UnitOfWork,
	points PointValues,
	metrics ports.GamificationMetrics,
	logger ports.Logger,
) *ProfilePicService {
	return &ProfilePicService{
		profilePicRepo: profilePicRepo,
		userRepo:       userRepo,
		progress:       progress,
		uow:            uow,
		points:         points,
		metrics:        metricsOrNop(metrics),
		logger:         logger.With("service", "profile_pic"),
	}
}

// Upload define a foto do usuário. Apenas a primeira foto rende pontos;
// trocas posteriores só atualizam a URL.
func (s *ProfilePicService) Upload(ctx context.Context, userID, rawURL string) (*entities.ProfilePic, error) {
	picURL, err := validateImageURL(rawURL)
	if err != nil {
		return nil, err
	}

	pic := &entities.ProfilePic{UserID: userID, URL: picURL}
	created := false

	err = s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		exists, err := s.userRepo.Exists(txCtx, userID)
		if err != nil {
			return err
		}
		if !exists {
			return errors.ErrUserNotFound
		}

		created, err = s.profilePicRepo.Upsert(txCtx, pic)
		if err != nil || !created {
			return err
		}
		return s.userRepo.IncrementPoints(txCtx, userID, s.points.ProfilePic)
	})
	if err != nil {
		return nil, err
	}

	actions := []entities.Action{entities.ActionUploadProfilePic, entities.ActionCompleteProfile}
	if created {
		s.metrics.PointsAwarded(SourceProfilePic, s.points.ProfilePic)
		actions = append(actions, entities.ActionEarnPoints)
	}
	s.progress.Track(userID, Progress{Actions: actions, Step: entities.StepProfilePic})

	s.logger.Info("profile picture saved", "user_id", userID, "first_upload", created)
	return pic, nil
}

// Get retorna a foto atual do usuário
func (s *ProfilePicService) Get(ctx context.Context, userID string) (*entities.ProfilePic, error) {
	pic, err := s.profilePicRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if pic == nil {
		return nil, errors.ErrProfilePicNotFound
	}
	return pic, nil
}

// validateImageURL aceita apenas URLs absolutas http(s)
func validateImageURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return "", errors.Wrap(errors.ErrInvalidInput, "url must be an absolute http(s) address")
	}
	return raw, nil
}
