package domain

import (
	"fmt"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

const (
	DefaultMinContentLength = 10
	DefaultMaxContentLength = 500
	// MaxBatchSize is the largest number of messages accepted in one call.
	MaxBatchSize = 2
)

// ContentRules bounds the length of a message, counted in characters.
type ContentRules struct {
	MinLength int `validate:"gte=1"`
	MaxLength int `validate:"gtefield=MinLength"`
}

func DefaultContentRules() ContentRules {
	return ContentRules{MinLength: DefaultMinContentLength, MaxLength: DefaultMaxContentLength}
}

// Check validates the rules themselves, typically once at startup.
func (r ContentRules) Check() error {
	return validate.Struct(r)
}

// Validate reports whether content is valid UTF-8 within the length bounds.
func (r ContentRules) Validate(content string) error {
	if !utf8.ValidString(content) {
		return fmt.Errorf("content is not valid UTF-8")
	}
	return validate.Var(content, fmt.Sprintf("min=%d,max=%d", r.MinLength, r.MaxLength))
}
