package auth

import (
	"fmt"
	"unicode"

	"github.com/atriumlabs/atrium/backend/internal/apperror"
	"github.com/google/uuid"
)

// validatePassword validates the password against security rules
func validatePassword(password string, rules *struct {
	MinLength  int
	MaxLength  int
	MinDigits  int
	MinSymbols int
}) error {
	if len(password) < rules.MinLength {
		return apperror.NewValidation(fmt.Sprintf("password must be at least %d characters long", rules.MinLength))
	}
	if len(password) > rules.MaxLength {
		return apperror.NewValidation(fmt.Sprintf("password must be at most %d characters long", rules.MaxLength))
	}

	var (
		hasUpper = false
		hasLower = false
		digits   = 0
		symbols  = 0
	)

	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsNumber(char):
			digits++
		case unicode.IsPunct(char) || unicode.IsSymbol(char):
			symbols++
		}
	}

	if !hasUpper {
		return apperror.NewValidation("password must contain at least one uppercase letter")
	}
	if !hasLower {
		return apperror.NewValidation("password must contain at least one lowercase letter")
	}
	if digits < rules.MinDigits {
		return apperror.NewValidation(fmt.Sprintf("password must contain at least %d digit(s)", rules.MinDigits))
	}
	if symbols < rules.MinSymbols {
		return apperror.NewValidation(fmt.Sprintf("password must contain at least %d symbol(s)", rules.MinSymbols))
	}

	return nil
}

// parseUserID parses a token subject into a user ID
func parseUserID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperror.NewAuthentication(apperror.ErrMsgInvalidToken).
			WithDetail("malformed token subject")
	}
	return id, nil
}
