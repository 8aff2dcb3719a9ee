package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Email    string  `json:"email" binding:"required,email"`
	Password string  `json:"password" binding:"required,min=8"`
	Priority string  `json:"priority" binding:"required,oneof=high medium low"`
	Birthday *string `form:"date_of_birth" binding:"omitempty,datetime=2006-01-02,past_date"`
}

// validate runs gin's binding validator the way request binding does
func validate(s interface{}) error {
	InitValidator()
	return FormatValidationError(binding.Validator.ValidateStruct(s))
}

func TestValidateStruct_FieldMessages(t *testing.T) {
	future := time.Now().AddDate(0, 0, 1).Format(DateLayout)
	err := validate(sample{Email: "nope", Password: "short", Priority: "urgent", Birthday: &future})

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"The email must be a valid email address."}, verr.Fields["email"])
	assert.Equal(t, []string{"The password must be at least 8 characters."}, verr.Fields["password"])
	assert.Equal(t, []string{"The selected priority is invalid. Allowed: high, medium, low."}, verr.Fields["priority"])
	assert.Equal(t, []string{"The date of birth must be a date before today."}, verr.Fields["date_of_birth"])
}

func TestValidateStruct_Valid(t *testing.T) {
	past := "1990-05-01"
	assert.NoError(t, validate(sample{Email: "a@example.com", Password: "longenough", Priority: "low", Birthday: &past}))
	assert.NoError(t, validate(sample{Email: "a@example.com", Password: "longenough", Priority: "high"}))
}

func TestValidateStruct_Required(t *testing.T) {
	err := validate(sample{})
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"The email field is required."}, verr.Fields["email"])
	assert.Contains(t, verr.Error(), "The password field is required.")
}

func TestFormatValidationError_PassesThroughOtherErrors(t *testing.T) {
	plain := errors.New("boom")
	assert.Equal(t, plain, FormatValidationError(plain))
}
