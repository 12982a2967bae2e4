package service

import (
	"context"
	"fmt"
	"time"

	"smart_plant/internal/models"
	"smart_plant/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const operatorSubject = "operator"

// PurgeService implements the two-phase removal of a plant's readings:
// a request creates a ticket, an authenticated operator approves or denies it.
type PurgeService struct {
	readings   repository.ReadingRepo
	tickets    repository.PurgeTicketStore
	debug      bool
	keyHash    string
	signingKey []byte
	tokenTTL   time.Duration
	now        func() time.Time
}

func NewPurgeService(readings repository.ReadingRepo, tickets repository.PurgeTicketStore, opts Options, now func() time.Time) *PurgeService {
	return &PurgeService{
		readings:   readings,
		tickets:    tickets,
		debug:      opts.Debug,
		keyHash:    opts.OperatorKeyHash,
		signingKey: []byte(opts.SigningKey),
		tokenTTL:   opts.TokenTTL,
		now:        now,
	}
}

// IssueOperatorToken checks operatorKey against the configured bcrypt hash
// and returns a signed HS256 token.
func (s *PurgeService) IssueOperatorToken(operatorKey string) (string, error) {
	if !s.debug || s.keyHash == "" || len(s.signingKey) == 0 {
		return "", ErrForbidden
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.keyHash), []byte(operatorKey)); err != nil {
		return "", ErrInvalidOperatorKey
	}

	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   operatorSubject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	})
	return token.SignedString(s.signingKey)
}

// ParseOperatorToken validates signature, expiry and subject.
func (s *PurgeService) ParseOperatorToken(accessToken string) error {
	if len(s.signingKey) == 0 {
		return ErrInvalidToken
	}
	token, err := jwt.ParseWithClaims(accessToken, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.signingKey, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid || claims.Subject != operatorSubject {
		return ErrInvalidToken
	}
	return nil
}

// RequestPurge opens a ticket for plantID and returns it with the current reading count.
func (s *PurgeService) RequestPurge(ctx context.Context, plantID string) (models.PurgeTicket, int, error) {
	if !s.debug {
		return models.PurgeTicket{}, 0, ErrForbidden
	}
	count, err := s.readings.Count(ctx, plantID)
	if err != nil {
		return models.PurgeTicket{}, 0, err
	}
	t := models.PurgeTicket{ID: uuid.NewString(), PlantID: plantID, RequestedAt: s.now().UTC()}
	if err := s.tickets.Save(ctx, t); err != nil {
		return models.PurgeTicket{}, 0, err
	}
	return t, count, nil
}

// ConfirmPurge consumes the ticket. Approval deletes every reading of its plant.
func (s *PurgeService) ConfirmPurge(ctx context.Context, ticketID string, approve bool) (PurgeResult, error) {
	if !s.debug {
		return PurgeResult{}, ErrForbidden
	}
	t, err := s.tickets.Take(ctx, ticketID)
	if err != nil {
		return PurgeResult{}, err
	}
	if t == nil {
		return PurgeResult{}, ErrTicketNotFound
	}

	if approve {
		if _, err := s.readings.DeleteAll(ctx, t.PlantID); err != nil {
			return PurgeResult{}, err
		}
	}
	count, err := s.readings.Count(ctx, t.PlantID)
	if err != nil {
		return PurgeResult{}, err
	}
	return PurgeResult{PlantID: t.PlantID, Approved: approve, Count: count}, nil
}
