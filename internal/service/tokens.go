package service

import (
	"context"
	"strings"

	"smart_plant/internal/notifier"
	"smart_plant/internal/repository"
)

type TokenService struct {
	repo  repository.TokenRepo
	locks *keyedMutex
}

func NewTokenService(repo repository.TokenRepo, locks *keyedMutex) *TokenService {
	return &TokenService{repo: repo, locks: locks}
}

// Bind adds token to the plant's set unless already present and returns the full set.
func (s *TokenService) Bind(ctx context.Context, plantID, token string) ([]string, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, newValidationError("token", "no token provided")
	}
	if !notifier.ValidToken(token) {
		return nil, newValidationError("token", "%q is not a valid push token", token)
	}

	unlock := s.locks.Lock("tokens:" + plantID)
	defer unlock()

	b, err := s.repo.Get(ctx, plantID)
	if err != nil {
		return nil, err
	}
	if b.Has(token) {
		return b.Tokens, nil
	}
	b.PlantID = plantID
	b.Tokens = append(b.Tokens, token)
	if err := s.repo.Save(ctx, b); err != nil {
		return nil, err
	}
	return b.Tokens, nil
}
