package validator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/mysterymeet/backend/pkg/errors"
)

func TestValidateCoordinates(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name    string
		lat     float64
		lon     float64
		wantErr error
	}{
		{"valid", 40.0, -74.0, nil},
		{"lat north pole", 90, 0, nil},
		{"lat south pole", -90, 0, nil},
		{"lon antimeridian", 0, 180, nil},
		{"lat too high", 90.1, 0, apperrors.ErrInvalidLatitude},
		{"lat too low", -90.1, 0, apperrors.ErrInvalidLatitude},
		{"lon too high", 0, 180.1, apperrors.ErrInvalidLongitude},
		{"lon too low", 0, -180.1, apperrors.ErrInvalidLongitude},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateCoordinates(tt.lat, tt.lon)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.ValidateEmail("alice@example.com"))
	assert.NoError(t, v.ValidateEmail("a.b+c@sub.example.org"))

	assert.ErrorIs(t, v.ValidateEmail(""), apperrors.ErrInvalidEmail)
	assert.ErrorIs(t, v.ValidateEmail("no-at-sign"), apperrors.ErrInvalidEmail)
	assert.ErrorIs(t, v.ValidateEmail("missing@tld"), apperrors.ErrInvalidEmail)
	assert.ErrorIs(t, v.ValidateEmail("spaces in@example.com"), apperrors.ErrInvalidEmail)
}

func TestValidatePassword(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.ValidatePassword("hunter22"))
	assert.ErrorIs(t, v.ValidatePassword("short"), apperrors.ErrInvalidPassword)
	assert.ErrorIs(t, v.ValidatePassword(""), apperrors.ErrInvalidPassword)
}

func TestValidateName(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.ValidateName("Al"))
	assert.NoError(t, v.ValidateName("  padded name  "))

	assert.ErrorIs(t, v.ValidateName("A"), apperrors.ErrInvalidName)
	assert.ErrorIs(t, v.ValidateName("   "), apperrors.ErrInvalidName)
	assert.ErrorIs(t, v.ValidateName(strings.Repeat("x", 51)), apperrors.ErrInvalidName)
}

func TestValidateTitle(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.ValidateTitle("Rooftop party"))
	assert.ErrorIs(t, v.ValidateTitle("  "), apperrors.ErrInvalidTitle)
	assert.ErrorIs(t, v.ValidateTitle(strings.Repeat("x", 121)), apperrors.ErrInvalidTitle)
}

func TestValidateAddress(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.ValidateAddress("12 Main St, Springfield"))
	assert.ErrorIs(t, v.ValidateAddress(""), apperrors.ErrInvalidAddress)
	assert.ErrorIs(t, v.ValidateAddress("   "), apperrors.ErrInvalidAddress)
}

func TestValidateMaxParticipants(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.ValidateMaxParticipants(1))
	assert.NoError(t, v.ValidateMaxParticipants(10000))
	assert.ErrorIs(t, v.ValidateMaxParticipants(0), apperrors.ErrInvalidCapacity)
	assert.ErrorIs(t, v.ValidateMaxParticipants(-3), apperrors.ErrInvalidCapacity)
	assert.ErrorIs(t, v.ValidateMaxParticipants(10001), apperrors.ErrInvalidCapacity)
}

func TestValidateComment(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.ValidateComment("count me in"))
	assert.ErrorIs(t, v.ValidateComment("   "), apperrors.ErrEmptyComment)
	assert.ErrorIs(t, v.ValidateComment(strings.Repeat("x", 1001)), apperrors.ErrCommentTooLong)
}
