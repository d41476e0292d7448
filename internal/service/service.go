package service

import (
	"strings"

	"github.com/google/uuid"

	appErrors "github.com/kmdev/school-records-api/pkg/errors"
)

// validateID rejects malformed identities before any store access.
func validateID(id, label string) error {
	if _, err := uuid.Parse(id); err != nil {
		return appErrors.Clone(appErrors.ErrValidation, "invalid "+label)
	}
	return nil
}

// requireValue trims the value and rejects it when nothing remains.
// Update payloads may omit a required field but never blank it out.
func requireValue(value, field string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", appErrors.Clone(appErrors.ErrValidation, field+" must not be empty")
	}
	return trimmed, nil
}
