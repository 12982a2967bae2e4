package service

import (
	"context"
	"strings"
	"time"

	"smart_plant/internal/models"
	"smart_plant/internal/repository"
)

type NotificationService struct {
	repo repository.NotificationRepo
}

func NewNotificationService(repo repository.NotificationRepo) *NotificationService {
	return &NotificationService{repo: repo}
}

func normalizeToUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}

func normalizeReason(s string) models.NotificationReason {
	return models.NotificationReason(strings.TrimSpace(strings.ToUpper(s)))
}

// normalizeAndValidateFilter prepares query parameters and validates range and reason.
func normalizeAndValidateFilter(f NotificationFilter) (time.Time, time.Time, models.NotificationReason, error) {
	from := normalizeToUTC(f.From)
	to := normalizeToUTC(f.To)

	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return time.Time{}, time.Time{}, "", newValidationError("from", "must not be after to")
	}

	reason := normalizeReason(f.Reason)
	if reason != "" && !reason.Valid() {
		return time.Time{}, time.Time{}, "", newValidationError("reason", "unknown reason %q", f.Reason)
	}
	return from, to, reason, nil
}

func (s *NotificationService) List(ctx context.Context, plantID string, f NotificationFilter) ([]models.NotificationRecord, error) {
	from, to, reason, err := normalizeAndValidateFilter(f)
	if err != nil {
		return nil, err
	}
	return s.repo.List(ctx, plantID, from, to, reason)
}
