package helper

import (
	"errors"
	"net/http"
	"strings"
	"unicode"

	"recommendations/models"

	"github.com/gin-gonic/gin"
	locale_en "github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"gopkg.in/go-playground/validator.v9"
	translations_en "gopkg.in/go-playground/validator.v9/translations/en"
)

// HTTPHelper maps domain errors to HTTP responses and runs payload
// constraint validation with translated messages.
type HTTPHelper struct {
	Validate   *validator.Validate
	Translator ut.Translator
}

func NewHTTPHelper() *HTTPHelper {
	en := locale_en.New()
	uni := ut.New(en, en)
	translator, _ := uni.GetTranslator("en")

	validate := validator.New()
	_ = translations_en.RegisterDefaultTranslations(validate, translator)

	return &HTTPHelper{Validate: validate, Translator: translator}
}

// ValidatePayload checks struct constraint tags and converts the first
// violation into an InvalidValueError.
func (u *HTTPHelper) ValidatePayload(payload interface{}) error {
	err := u.Validate.Struct(payload)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		first := validationErrors[0]
		return &models.InvalidValueError{
			Field:  Underscore(first.StructField()),
			Reason: first.Translate(u.Translator),
		}
	}
	return &models.InvalidValueError{Field: "payload", Reason: err.Error()}
}

// StatusCode resolves the HTTP status for a domain error.
func (u *HTTPHelper) StatusCode(err error) int {
	var (
		missingField   *models.MissingFieldError
		invalidValue   *models.InvalidValueError
		notFound       *models.NotFoundError
		conflict       *models.ConflictError
		dataValidation *models.DataValidationError
	)
	switch {
	case errors.As(err, &missingField), errors.As(err, &invalidValue), errors.As(err, &dataValidation):
		return http.StatusBadRequest
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &conflict):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// SendError writes the error body for a domain error.
func (u *HTTPHelper) SendError(c *gin.Context, err error) {
	u.SendErrorWithStatus(c, u.StatusCode(err), err.Error())
}

// SendErrorWithStatus writes an error body with an explicit status code.
func (u *HTTPHelper) SendErrorWithStatus(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{
		"status":  code,
		"error":   http.StatusText(code),
		"message": message,
	})
}

// Underscore converts a Go field name to its snake_case JSON key.
// Acronym runs stay together: BaseProductID -> base_product_id.
func Underscore(name string) string {
	runes := []rune(name)
	var b strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) {
			prevLower := i > 0 && !unicode.IsUpper(runes[i-1])
			nextLower := i+1 < len(runes) && !unicode.IsUpper(runes[i+1])
			if i > 0 && (prevLower || nextLower) {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
