package apierr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorIs(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		target error
		want   bool
	}{
		{
			name:   "same kind matches sentinel",
			err:    Validation("bad field"),
			target: ErrValidation,
			want:   true,
		},
		{
			name:   "wrapped error matches sentinel",
			err:    fmt.Errorf("create order: %w", NotFound("order %d", 7)),
			target: ErrNotFound,
			want:   true,
		},
		{
			name:   "different kind does not match",
			err:    Authentication(AuthSentinelMessage, 401),
			target: ErrValidation,
			want:   false,
		},
		{
			name:   "plain error does not match",
			err:    errors.New("boom"),
			target: ErrAPI,
			want:   false,
		},
		{
			name:   "nil error",
			err:    nil,
			target: ErrTransport,
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errors.Is(tt.err, tt.target))
		})
	}
}

func TestErrorMessage(t *testing.T) {
	err := &Error{
		Kind:       KindAPI,
		Message:    "validation failed",
		StatusCode: 422,
		Fields:     map[string][]string{"phone": {"required"}, "email": {"invalid", "taken"}},
	}
	assert.Equal(t, "salesdrive: api_error (status 422): validation failed [email: invalid, taken; phone: required]", err.Error())

	wrapped := Wrap(KindTransport, errors.New("connection refused"))
	assert.Equal(t, "salesdrive: transport: connection refused", wrapped.Error())
	assert.ErrorIs(t, wrapped, ErrTransport)
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNotFound, KindOf(fmt.Errorf("lookup: %w", NotFound("missing"))))
	assert.Equal(t, Kind(""), KindOf(errors.New("plain")))
	assert.Equal(t, Kind(""), KindOf(nil))
}

func TestCheckAuthMessage(t *testing.T) {
	err := CheckAuthMessage("api key is invalid")
	assert.ErrorIs(t, err, ErrAuthentication)
	assert.Equal(t, "salesdrive: authentication (status 401): api key is invalid", err.Error())

	assert.NoError(t, CheckAuthMessage(""))
	assert.NoError(t, CheckAuthMessage("order not found"))
}
