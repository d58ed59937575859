package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidCPF(t *testing.T) {
	tests := []struct {
		name  string
		cpf   string
		valid bool
	}{
		{"valid", "52998224725", true},
		{"another valid", "11144477735", true},
		{"wrong second check digit", "52998224724", false},
		{"repeated digits", "11111111111", false},
		{"all zeros", "00000000000", false},
		{"too short", "5299822472", false},
		{"too long", "529982247250", false},
		{"letters", "5299822472a", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, IsValidCPF(tt.cpf))
		})
	}
}

func TestValidateCPF_AcceptsMaskedInput(t *testing.T) {
	assert.NoError(t, ValidateCPF("529.982.247-25"))
	assert.Error(t, ValidateCPF("111.111.111-11"))
	assert.Error(t, ValidateCPF(""))
}

func TestValidateName(t *testing.T) {
	assert.NoError(t, ValidateName("Maria da Silva", "full name"))
	assert.NoError(t, ValidateName("João D'Ávila-Souza Jr.", "full name"))

	err := ValidateName("R2D2", "full name")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "digits")

	assert.Error(t, ValidateName("   ", "full name"))
	assert.Error(t, ValidateName("ana@home", "full name"))
}

func TestValidatePhone(t *testing.T) {
	assert.NoError(t, ValidatePhone("(11) 98765-4321"))
	assert.NoError(t, ValidatePhone("1134567890"))
	assert.Error(t, ValidatePhone("98765-4321"))
	assert.Error(t, ValidatePhone(""))
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail(""))
	assert.NoError(t, ValidateEmail("ana@example.com"))
	assert.Error(t, ValidateEmail("ana@example"))
	assert.Error(t, ValidateEmail("ana example@x.com"))
}

func TestValidateDate(t *testing.T) {
	assert.Error(t, ValidateDate(time.Time{}, "birth date"))
	assert.NoError(t, ValidateDate(time.Date(1990, 1, 2, 0, 0, 0, 0, time.UTC), "birth date"))
}

func TestFieldErrors_KeepsFirstReason(t *testing.T) {
	fields := FieldErrors{}
	assert.NoError(t, fields.Err())

	fields.Add("phone", "first")
	fields.Add("phone", "second")
	fields.Check("email", nil)

	err := fields.Err()
	require.Error(t, err)
	assert.True(t, IsKind(err, KindValidationFailed))

	var appErr *AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, map[string]string{"phone": "first"}, appErr.Fields)
}

func TestRound(t *testing.T) {
	assert.Equal(t, 0.3, Round(0.1+0.2))
	assert.Equal(t, 10.01, Round(10.005000001))
	assert.Equal(t, 0.6, Sum([]float64{0.1, 0.2, 0.3}))
}
