// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/MKhiriev/bijukaru-sync/internal/logger"
)

const (
	// TokenLength is the length of every device token.
	TokenLength = 8

	tokenAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

type tokenService struct {
	logger *logger.Logger
}

func NewTokenService(logger *logger.Logger) TokenService {
	return &tokenService{logger: logger}
}

// GenerateToken returns a fresh random token. It reserves nothing: two
// devices become linked only by entering the same token.
func (s *tokenService) GenerateToken(ctx context.Context) (string, error) {
	buf := make([]byte, TokenLength)
	max := big.NewInt(int64(len(tokenAlphabet)))

	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			logger.FromContext(ctx).Err(err).Str("func", "*tokenService.GenerateToken").Msg("error reading random source")
			return "", fmt.Errorf("error generating token: %w", err)
		}
		buf[i] = tokenAlphabet[n.Int64()]
	}

	return string(buf), nil
}

func (s *tokenService) ValidateToken(token string) error {
	return ValidateToken(token)
}

// ValidateToken accepts exactly TokenLength ASCII letters or digits. Lower
// case is accepted because older clients generated tokens locally.
func ValidateToken(token string) error {
	if token == "" {
		return ErrTokenMissing
	}
	if len(token) != TokenLength {
		return ErrTokenMalformed
	}
	for i := 0; i < len(token); i++ {
		c := token[i]
		isDigit := c >= '0' && c <= '9'
		isUpper := c >= 'A' && c <= 'Z'
		isLower := c >= 'a' && c <= 'z'
		if !isDigit && !isUpper && !isLower {
			return ErrTokenMalformed
		}
	}
	return nil
}
