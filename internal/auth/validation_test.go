package auth

import (
	"testing"

	"github.com/atriumlabs/atrium/backend/internal/apperror"
)

func TestValidatePassword(t *testing.T) {
	rules := &testConfig(0, 0).Password

	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"valid password", "Passw0rd!", false},
		{"too short", "Pw0!", true},
		{"missing uppercase", "passw0rd!", true},
		{"missing lowercase", "PASSW0RD!", true},
		{"missing digit", "Password!", true},
		{"missing symbol", "Passw0rdd", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validatePassword(tt.password, rules)
			if (err != nil) != tt.wantErr {
				t.Errorf("validatePassword(%q) error = %v, wantErr %v", tt.password, err, tt.wantErr)
			}
			if err != nil {
				appErr, ok := apperror.As(err)
				if !ok || appErr.Kind != apperror.KindValidation {
					t.Errorf("expected validation error, got %v", err)
				}
			}
		})
	}
}
