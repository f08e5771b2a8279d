package quiz

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError lists the settings fields that failed validation.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "missing required settings: " + strings.Join(e.Fields, ", ")
}

type setupForm struct {
	User   string `validate:"required"`
	Remote RemoteConfig
}

type settingsForm struct {
	User string `validate:"required"`
}

var validate = validator.New()

func validateForm(form any) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validate settings: %w", err)
	}

	names := make([]string, 0, len(fieldErrs))
	for _, fieldErr := range fieldErrs {
		names = append(names, settingsFieldName(fieldErr.StructNamespace()))
	}
	return &ValidationError{Fields: names}
}

func settingsFieldName(namespace string) string {
	switch {
	case strings.HasSuffix(namespace, ".User"):
		return "user"
	case strings.HasSuffix(namespace, ".Token"):
		return "token"
	case strings.HasSuffix(namespace, ".Owner"):
		return "owner"
	case strings.HasSuffix(namespace, ".Repo"):
		return "repo"
	default:
		return strings.ToLower(namespace)
	}
}

func normalizeSettings(user string, cfg RemoteConfig) (string, RemoteConfig) {
	return strings.TrimSpace(user), RemoteConfig{
		Token: strings.TrimSpace(cfg.Token),
		Owner: strings.TrimSpace(cfg.Owner),
		Repo:  strings.TrimSpace(cfg.Repo),
	}
}
