package validator

import (
	"regexp"
	"strings"

	apperrors "github.com/mysterymeet/backend/pkg/errors"
)

type Validator interface {
	ValidateCoordinates(lat, lon float64) error
	ValidateEmail(email string) error
	ValidatePassword(password string) error
	ValidateName(name string) error
	ValidateTitle(title string) error
	ValidateAddress(address string) error
	ValidateMaxParticipants(max int) error
	ValidateComment(text string) error
}

type validator struct {
	emailRegex *regexp.Regexp
}

func NewValidator() Validator {
	return &validator{
		emailRegex: regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`),
	}
}

func (v *validator) ValidateCoordinates(lat, lon float64) error {
	if lat < -90 || lat > 90 {
		return apperrors.ErrInvalidLatitude
	}

	if lon < -180 || lon > 180 {
		return apperrors.ErrInvalidLongitude
	}

	return nil
}

func (v *validator) ValidateEmail(email string) error {
	if !v.emailRegex.MatchString(email) {
		return apperrors.ErrInvalidEmail
	}
	return nil
}

func (v *validator) ValidatePassword(password string) error {
	if len(password) < 6 {
		return apperrors.ErrInvalidPassword
	}
	return nil
}

func (v *validator) ValidateName(name string) error {
	trimmed := strings.TrimSpace(name)
	if len(trimmed) < 2 || len(trimmed) > 50 {
		return apperrors.ErrInvalidName
	}
	return nil
}

func (v *validator) ValidateTitle(title string) error {
	trimmed := strings.TrimSpace(title)
	if len(trimmed) < 1 || len(trimmed) > 120 {
		return apperrors.ErrInvalidTitle
	}
	return nil
}

func (v *validator) ValidateAddress(address string) error {
	if strings.TrimSpace(address) == "" {
		return apperrors.ErrInvalidAddress
	}
	return nil
}

func (v *validator) ValidateMaxParticipants(max int) error {
	if max < 1 || max > 10000 {
		return apperrors.ErrInvalidCapacity
	}
	return nil
}

func (v *validator) ValidateComment(text string) error {
	trimmed := strings.TrimSpace(text)

	if len(trimmed) == 0 {
		return apperrors.ErrEmptyComment
	}

	if len(text) > 1000 {
		return apperrors.ErrCommentTooLong
	}

	return nil
}
