package dictionary

import (
	"strings"
	"unicode/utf8"

	"github.com/ForeverProglamer/infrastructure-of-web-apps/internal/domain"
)

// CreateDictionaryInput holds the parameters for creating a dictionary.
type CreateDictionaryInput struct {
	Name string
}

// Validate checks all fields and collects all errors.
func (i CreateDictionaryInput) Validate() error {
	var errs []domain.FieldError
	errs = validateName(errs, i.Name)

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// CreateWordlistInput holds the parameters for creating a wordlist.
type CreateWordlistInput struct {
	Name   string
	DictID domain.ID
}

// Validate checks all fields and collects all errors.
func (i CreateWordlistInput) Validate() error {
	var errs []domain.FieldError
	errs = validateName(errs, i.Name)
	if i.DictID.IsZero() {
		errs = append(errs, domain.FieldError{Field: "dict_id", Message: "required"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// CreateWordlistRowInput holds the parameters for creating a wordlist row.
type CreateWordlistRowInput struct {
	Phrase     string
	Meaning    string
	WordlistID domain.ID
}

// Validate checks all fields and collects all errors.
func (i CreateWordlistRowInput) Validate() error {
	var errs []domain.FieldError
	if strings.TrimSpace(i.Phrase) == "" {
		errs = append(errs, domain.FieldError{Field: "phrase", Message: "required"})
	}
	if strings.TrimSpace(i.Meaning) == "" {
		errs = append(errs, domain.FieldError{Field: "meaning", Message: "required"})
	}
	if i.WordlistID.IsZero() {
		errs = append(errs, domain.FieldError{Field: "wordlist_id", Message: "required"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

func validateName(errs []domain.FieldError, name string) []domain.FieldError {
	name = strings.TrimSpace(name)
	switch {
	case name == "":
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	case utf8.RuneCountInString(name) > domain.MaxNameLength:
		errs = append(errs, domain.FieldError{Field: "name", Message: "max 30 characters"})
	}
	return errs
}
