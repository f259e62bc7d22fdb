package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"authcore/internal/services/auth"
)

func TestValidatePasswordStrength(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{name: "too short", password: "abc", wantErr: true},
		{name: "no uppercase", password: "alllowercase1", wantErr: true},
		{name: "no lowercase", password: "NOLOWER123", wantErr: true},
		{name: "no digit", password: "NoDigitHere", wantErr: true},
		{name: "empty", password: "", wantErr: true},
		{name: "valid", password: "Valid123", wantErr: false},
		{name: "valid with specials", password: "Sup3r-Secret!", wantErr: false},
		{name: "valid exactly eight", password: "Abcdef12", wantErr: false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := auth.ValidatePasswordStrength(test.password)
			if test.wantErr {
				require.ErrorIs(t, err, auth.ErrWeakPassword)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestValidatePasswordStrength_ReportsEveryFailedRule(t *testing.T) {
	err := auth.ValidatePasswordStrength("abc")

	var weakErr *auth.WeakPasswordError
	require.ErrorAs(t, err, &weakErr)

	// Short, no uppercase, no digit. Lowercase is present.
	assert.Len(t, weakErr.Reasons, 3)
}
