// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/bijukaru-sync/internal/logger"
)

var generatedToken = regexp.MustCompile(`^[A-Z0-9]{8}$`)

func TestTokenService_GenerateToken(t *testing.T) {
	svc := NewTokenService(logger.Nop())

	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		token, err := svc.GenerateToken(context.Background())
		require.NoError(t, err)
		assert.Regexp(t, generatedToken, token)
		assert.NoError(t, svc.ValidateToken(token))
		seen[token] = struct{}{}
	}

	// 36^8 possible tokens, a collision in 100 draws would mean a broken source
	assert.Len(t, seen, 100)
}

func TestValidateToken(t *testing.T) {
	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{name: "upper case and digits", token: "AB12CD34"},
		{name: "lower case accepted", token: "ab12cd34"},
		{name: "empty", token: "", wantErr: ErrTokenMissing},
		{name: "too short", token: "AB12", wantErr: ErrTokenMalformed},
		{name: "too long", token: "AB12CD345", wantErr: ErrTokenMalformed},
		{name: "punctuation", token: "AB12CD3!", wantErr: ErrTokenMalformed},
		{name: "space", token: "AB12 D34", wantErr: ErrTokenMalformed},
		{name: "non ascii", token: "AB12CDé", wantErr: ErrTokenMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateToken(tt.token)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
