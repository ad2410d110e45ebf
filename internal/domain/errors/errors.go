package errors

import "errors"

// Business errors
// Nota: Estes são códigos de erro (message IDs para i18n).
// As traduções devem estar em internal/infrastructure/i18n/locales/*.json
var (
	ErrUserNotFound         = errors.New("error.user_not_found")
	ErrEmailAlreadyExists   = errors.New("error.email_already_exists")
	ErrInvalidCredentials   = errors.New("error.invalid_credentials")
	ErrUnauthorized         = errors.New("error.unauthorized")
	ErrForbidden            = errors.New("error.forbidden")
	ErrPasswordMismatch     = errors.New("error.password_mismatch")
	ErrUnderage             = errors.New("error.underage")
	ErrInvalidBirthDate     = errors.New("error.invalid_birth_date")
	ErrSessionInvalid       = errors.New("error.session_invalid")
	ErrNotificationNotFound = errors.New("error.notification_not_found")
)

// Gamification errors
var (
	ErrAchievementNotFound      = errors.New("error.achievement_not_found")
	ErrAchievementNameTaken     = errors.New("error.achievement_name_taken")
	ErrInvalidCriterion         = errors.New("error.invalid_criterion")
	ErrInvalidOnboardingStep    = errors.New("error.invalid_onboarding_step")
	ErrChallengeNotFound        = errors.New("error.challenge_not_found")
	ErrChallengeAlreadyComplete = errors.New("error.challenge_already_completed")
)

// Social graph and content errors
var (
	ErrSelfFollow       = errors.New("error.self_follow")
	ErrAlreadyFollowing = errors.New("error.already_following")
	ErrNotFollowing     = errors.New("error.not_following")
	ErrPostNotFound     = errors.New("error.post_not_found")
	ErrAlreadyLiked     = errors.New("error.already_liked")
	ErrNotLiked         = errors.New("error.not_liked")
	ErrCommentNotFound  = errors.New("error.comment_not_found")

	ErrProfilePicNotFound = errors.New("error.profile_pic_not_found")
)

// Domain errors
// Nota: Estes são códigos de erro (message IDs para i18n).
// As traduções devem estar em internal/infrastructure/i18n/locales/*.json
var (
	ErrInvalidEmail = errors.New("error.invalid_email")
	ErrInvalidInput = errors.New("error.invalid_input")
)

// ProblemType define tipos de problemas (URIs RFC 7807)
// Nota: O domínio base virá de configuração (API_BASE_URL)
//
//nolint:misspell
const (
	ProblemTypeValidation   = "/problems/validation-error"
	ProblemTypeNotFound     = "/problems/not-found"
	ProblemTypeConflict     = "/problems/conflict"
	ProblemTypeInvalidState = "/problems/invalid-state"
	ProblemTypeUnauthorized = "/problems/unauthorized"
	ProblemTypeForbidden    = "/problems/forbidden"
	ProblemTypeInternal     = "/problems/internal-error"
	ProblemTypeBadRequest   = "/problems/bad-request"
	ProblemTypeRateLimited  = "/problems/rate-limited"
)

// Kind classifica um erro de domínio para a camada de transporte
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindInvalidState
	KindConflict
	KindValidation
	KindUnauthorized
	KindForbidden
)

var kinds = map[error]Kind{
	ErrUserNotFound:             KindNotFound,
	ErrAchievementNotFound:      KindNotFound,
	ErrChallengeNotFound:        KindNotFound,
	ErrPostNotFound:             KindNotFound,
	ErrCommentNotFound:          KindNotFound,
	ErrNotificationNotFound:     KindNotFound,
	ErrNotFollowing:             KindNotFound,
	ErrNotLiked:                 KindNotFound,
	ErrProfilePicNotFound:       KindNotFound,
	ErrSelfFollow:               KindInvalidState,
	ErrAlreadyFollowing:         KindInvalidState,
	ErrAlreadyLiked:             KindInvalidState,
	ErrChallengeAlreadyComplete: KindInvalidState,
	ErrEmailAlreadyExists:       KindConflict,
	ErrAchievementNameTaken:     KindConflict,
	ErrInvalidCriterion:         KindValidation,
	ErrInvalidOnboardingStep:    KindValidation,
	ErrPasswordMismatch:         KindValidation,
	ErrUnderage:                 KindValidation,
	ErrInvalidBirthDate:         KindValidation,
	ErrInvalidEmail:             KindValidation,
	ErrInvalidInput:             KindValidation,
	ErrInvalidCredentials:       KindUnauthorized,
	ErrUnauthorized:             KindUnauthorized,
	ErrSessionInvalid:           KindUnauthorized,
	ErrForbidden:                KindForbidden,
}

// KindOf retorna a categoria do erro, percorrendo a cadeia de wrapping
func KindOf(err error) Kind {
	for sentinel, kind := range kinds {
		if errors.Is(err, sentinel) {
			return kind
		}
	}
	return KindInternal
}

// MessageID retorna o ID i18n do sentinel contido em err, ou "" se não houver
func MessageID(err error) string {
	for sentinel := range kinds {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return ""
}

// DomainError representa um erro de domínio com contexto adicional
type DomainError struct {
	Type    string
	Title   string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Wrap anexa uma mensagem de contexto a um erro sentinel preservando errors.Is
func Wrap(sentinel error, message string) error {
	return &DomainError{
		Type:    problemTypeFor(KindOf(sentinel)),
		Message: message,
		Err:     sentinel,
	}
}

func problemTypeFor(kind Kind) string {
	switch kind {
	case KindNotFound:
		return ProblemTypeNotFound
	case KindInvalidState:
		return ProblemTypeInvalidState
	case KindConflict:
		return ProblemTypeConflict
	case KindValidation:
		return ProblemTypeValidation
	case KindUnauthorized:
		return ProblemTypeUnauthorized
	case KindForbidden:
		return ProblemTypeForbidden
	default:
		return ProblemTypeInternal
	}
}
