package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"smart_plant/internal/models"
)

type TokenSQLite struct {
	db *sql.DB
}

func NewTokenSQLite(db *sql.DB) *TokenSQLite {
	return &TokenSQLite{db: db}
}

var _ TokenRepo = (*TokenSQLite)(nil)

const (
	upsertTokensSQL = `
		INSERT INTO token_bindings (plant_id, tokens)
		VALUES (?, ?)
		ON CONFLICT(plant_id) DO UPDATE SET tokens=excluded.tokens
	`
	selectTokensSQL = `SELECT plant_id, tokens FROM token_bindings WHERE plant_id = ?`
)

// marshalTokens converts the slice to a JSON array string; nil becomes "[]".
func marshalTokens(tokens []string) (string, error) {
	if tokens == nil {
		tokens = []string{}
	}
	b, err := json.Marshal(tokens)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// unmarshalTokens parses a JSON array string into a slice.
func unmarshalTokens(s string) ([]string, error) {
	if s == "" {
		return []string{}, nil
	}
	var tokens []string
	if err := json.Unmarshal([]byte(s), &tokens); err != nil {
		return nil, err
	}
	if tokens == nil {
		tokens = []string{}
	}
	return tokens, nil
}

// Save replaces the plant's token list.
func (r *TokenSQLite) Save(ctx context.Context, b models.TokenBinding) error {
	tokensJSON, err := marshalTokens(b.Tokens)
	if err != nil {
		return fmt.Errorf("marshal tokens for plant %q: %w", b.PlantID, err)
	}
	if _, err := r.db.ExecContext(ctx, upsertTokensSQL, b.PlantID, tokensJSON); err != nil {
		return fmt.Errorf("upsert tokens for plant %q: %w", b.PlantID, err)
	}
	return nil
}

// Get returns the plant's binding; a plant without a row has an empty token list.
func (r *TokenSQLite) Get(ctx context.Context, plantID string) (models.TokenBinding, error) {
	var (
		b          models.TokenBinding
		tokensJSON string
	)
	if err := r.db.QueryRowContext(ctx, selectTokensSQL, plantID).Scan(&b.PlantID, &tokensJSON); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.TokenBinding{PlantID: plantID, Tokens: []string{}}, nil
		}
		return models.TokenBinding{}, fmt.Errorf("select tokens for plant %q: %w", plantID, err)
	}
	tokens, err := unmarshalTokens(tokensJSON)
	if err != nil {
		return models.TokenBinding{}, fmt.Errorf("decode tokens for plant %q: %w", plantID, err)
	}
	b.Tokens = tokens
	return b, nil
}
