package dto

import (
	errs "errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/biabrauna/econsciente-api/internal/domain/errors"
)

type problemKind struct {
	status      int
	problemType string
	titleKey    string
}

var problemKinds = map[errors.Kind]problemKind{
	errors.KindNotFound:     {http.StatusNotFound, errors.ProblemTypeNotFound, "error.not_found.title"},
	errors.KindInvalidState: {http.StatusBadRequest, errors.ProblemTypeInvalidState, "error.invalid_state.title"},
	errors.KindConflict:     {http.StatusConflict, errors.ProblemTypeConflict, "error.conflict.title"},
	errors.KindValidation:   {http.StatusBadRequest, errors.ProblemTypeValidation, "error.validation.title"},
	errors.KindUnauthorized: {http.StatusUnauthorized, errors.ProblemTypeUnauthorized, "error.unauthorized.title"},
	errors.KindForbidden:    {http.StatusForbidden, errors.ProblemTypeForbidden, "error.forbidden.title"},
}

// ErrorResponseFor converte um erro de domínio na resposta RFC 7807.
// Erros fora do catálogo viram 500 sem expor detalhes.
func ErrorResponseFor(c *gin.Context, err error) ErrorResponse {
	kind, ok := problemKinds[errors.KindOf(err)]
	if !ok {
		return InternalErrorResponseI18n(c)
	}

	response := NewErrorResponseI18n(c, kind.problemType, kind.titleKey, errors.MessageID(err), kind.status)

	var domainErr *errors.DomainError
	if errs.As(err, &domainErr) && domainErr.Message != "" {
		response.Errors = []ValidationError{{Field: "", Message: domainErr.Message}}
	}
	return response
}

// WriteError responde com o erro; erros internos são registrados no contexto para o log
func WriteError(c *gin.Context, err error) {
	if errors.KindOf(err) == errors.KindInternal {
		_ = c.Error(err)
	}
	WriteProblem(c, ErrorResponseFor(c, err))
}

// WriteBindError responde a uma falha de ShouldBind*
func WriteBindError(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	if !errs.As(err, &validationErrs) {
		response := NewErrorResponseI18n(c, errors.ProblemTypeBadRequest, "error.bad_request.title", "error.invalid_input", http.StatusBadRequest)
		WriteProblem(c, response)
		return
	}

	fields := make([]ValidationError, 0, len(validationErrs))
	for _, fe := range validationErrs {
		key := "validation." + fe.Tag()
		params := map[string]interface{}{"Field": fe.Field(), "Param": fe.Param()}

		message := T(c, key, params)
		if message == key {
			message = T(c, "validation.default", params)
		}

		fields = append(fields, ValidationError{Field: fe.Field(), Message: message, Tag: fe.Tag()})
	}

	WriteProblem(c, ValidationErrorResponseI18n(c, fields))
}

// SetupValidator faz o validator do gin reportar campos pelo nome JSON/form
func SetupValidator() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name := strings.SplitN(field.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return field.Name
	})
}
