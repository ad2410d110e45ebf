package entities

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Action é o evento de usuário que dispara a avaliação de conquistas
type Action string

const (
	ActionUploadProfilePic  Action = "upload_profile_pic"
	ActionUpdateBio         Action = "update_bio"
	ActionCompleteChallenge Action = "complete_challenge"
	ActionEarnPoints        Action = "earn_points"
	ActionCreatePost        Action = "create_post"
	ActionLikePost          Action = "like_post"
	ActionGainFollower      Action = "gain_follower"
	ActionCompleteProfile   Action = "complete_profile"
)

// CriterionType é a tag do critério persistido em JSON
type CriterionType string

const (
	CriterionChallengesCompleted CriterionType = "desafios_completados"
	CriterionTotalPoints         CriterionType = "pontos_totais"
	CriterionProfileAction       CriterionType = "action"
	CriterionSocial              CriterionType = "social"
)

// ProfileAction são as variantes de critério do tipo "action"
type ProfileAction string

const (
	ProfileUploadPic ProfileAction = "upload_profile_pic"
	ProfileUpdateBio ProfileAction = "update_bio"
	ProfileComplete  ProfileAction = "complete_profile"
)

// SocialAction são as variantes de critério do tipo "social"
type SocialAction string

const (
	SocialFirstPost SocialAction = "first_post"
	SocialFirstLike SocialAction = "first_like"
	SocialFollowers SocialAction = "followers"
)

var (
	ErrUnknownCriterion   = errors.New("unknown criterion type")
	ErrMalformedCriterion = errors.New("malformed criterion")
)

// Criterion é a soma dos predicados de desbloqueio. Exatamente uma
// variante está ativa por conquista.
type Criterion interface {
	Type() CriterionType
	// Trigger retorna a ação que pode satisfazer o critério
	Trigger() Action
}

// ChallengesCompletedCriterion exige um número mínimo de desafios concluídos
type ChallengesCompletedCriterion struct {
	Count int
}

func (ChallengesCompletedCriterion) Type() CriterionType { return CriterionChallengesCompleted }
func (ChallengesCompletedCriterion) Trigger() Action     { return ActionCompleteChallenge }

// TotalPointsCriterion exige um total mínimo de pontos
type TotalPointsCriterion struct {
	Amount int
}

func (TotalPointsCriterion) Type() CriterionType { return CriterionTotalPoints }
func (TotalPointsCriterion) Trigger() Action     { return ActionEarnPoints }

// ProfileActionCriterion é satisfeito por uma ação de perfil
type ProfileActionCriterion struct {
	Action ProfileAction
}

func (ProfileActionCriterion) Type() CriterionType { return CriterionProfileAction }

func (c ProfileActionCriterion) Trigger() Action {
	switch c.Action {
	case ProfileUploadPic:
		return ActionUploadProfilePic
	case ProfileUpdateBio:
		return ActionUpdateBio
	default:
		return ActionCompleteProfile
	}
}

// SocialCriterion cobre post, curtida e seguidores
type SocialCriterion struct {
	Action SocialAction
	Count  int
}

func (SocialCriterion) Type() CriterionType { return CriterionSocial }

func (c SocialCriterion) Trigger() Action {
	switch c.Action {
	case SocialFirstPost:
		return ActionCreatePost
	case SocialFirstLike:
		return ActionLikePost
	default:
		return ActionGainFollower
	}
}

type criterionWire struct {
	Type   CriterionType `json:"type"`
	Count  *int          `json:"count,omitempty"`
	Amount *int          `json:"amount,omitempty"`
	Action string        `json:"action,omitempty"`
}

// ParseCriterion decodifica e valida o JSON de um critério.
// Tags desconhecidas ou formatos inválidos retornam erro; quem avalia
// deve tratá-los como "não corresponde".
func ParseCriterion(raw string) (Criterion, error) {
	var w criterionWire
	if err := json.Unmarshal([]byte(raw), &w); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedCriterion, err)
	}

	switch w.Type {
	case CriterionChallengesCompleted:
		if w.Count == nil || *w.Count < 0 {
			return nil, fmt.Errorf("%w: count is required", ErrMalformedCriterion)
		}
		return ChallengesCompletedCriterion{Count: *w.Count}, nil

	case CriterionTotalPoints:
		if w.Amount == nil || *w.Amount < 0 {
			return nil, fmt.Errorf("%w: amount is required", ErrMalformedCriterion)
		}
		return TotalPointsCriterion{Amount: *w.Amount}, nil

	case CriterionProfileAction:
		switch a := ProfileAction(w.Action); a {
		case ProfileUploadPic, ProfileUpdateBio, ProfileComplete:
			return ProfileActionCriterion{Action: a}, nil
		}
		return nil, fmt.Errorf("%w: action %q", ErrMalformedCriterion, w.Action)

	case CriterionSocial:
		switch a := SocialAction(w.Action); a {
		case SocialFirstPost, SocialFirstLike:
			return SocialCriterion{Action: a}, nil
		case SocialFollowers:
			if w.Count == nil || *w.Count < 1 {
				return nil, fmt.Errorf("%w: followers count is required", ErrMalformedCriterion)
			}
			return SocialCriterion{Action: a, Count: *w.Count}, nil
		}
		return nil, fmt.Errorf("%w: social action %q", ErrMalformedCriterion, w.Action)
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownCriterion, w.Type)
}

// EncodeCriterion serializa um critério no formato persistido
func EncodeCriterion(c Criterion) string {
	w := criterionWire{Type: c.Type()}
	switch v := c.(type) {
	case ChallengesCompletedCriterion:
		w.Count = &v.Count
	case TotalPointsCriterion:
		w.Amount = &v.Amount
	case ProfileActionCriterion:
		w.Action = string(v.Action)
	case SocialCriterion:
		w.Action = string(v.Action)
		if v.Action == SocialFollowers {
			w.Count = &v.Count
		}
	}
	data, _ := json.Marshal(w)
	return string(data)
}
