package change_pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidUUID(t *testing.T) {
	tests := []struct {
		id    string
		valid bool
	}{
		{"mother01-63e2-4acc-9b94-26663b9bc267", true},
		{"629eaf3c-04e5-4497-94f7-6e318537a0b1", true},
		// legacy ids are shape-checked, not hex-checked
		{"nurse001-63e2-4acc-9b94-26663b9bc267", true},
		{"mother01", false},
		{"", false},
		{"mother01-63e2-4acc-9b94-26663b9bc26", false},
		{"mother01x63e2-4acc-9b94-26663b9bc267", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.valid, IsValidUUID(tt.id), "id %q", tt.id)
	}
}

func TestNormalizeMsisdn(t *testing.T) {
	assert.Equal(t, "+27820001001", NormalizeMsisdn("0820001001"))
	assert.Equal(t, "+27820001001", NormalizeMsisdn("+27820001001"))
	assert.Equal(t, "+27820001001", NormalizeMsisdn("082 000 1001"))
	// unparseable input comes back unchanged
	assert.Equal(t, "not a number", NormalizeMsisdn("not a number"))
}

func TestIsValidMsisdn(t *testing.T) {
	assert.True(t, IsValidMsisdn("+27820001001"))
	assert.True(t, IsValidMsisdn("0820001001"))
	assert.False(t, IsValidMsisdn("not a number"))
	assert.False(t, IsValidMsisdn(""))
}

func TestIsValidFaccode(t *testing.T) {
	assert.True(t, IsValidFaccode("234567"))
	assert.True(t, IsValidFaccode("1"))
	assert.False(t, IsValidFaccode(""))
	assert.False(t, IsValidFaccode("23456a"))
	assert.False(t, IsValidFaccode("23 456"))
}

func TestValidateIdentityDocument(t *testing.T) {
	assert.Empty(t, validateIdentityDocument("sa_id",
		[]string{"dob", "id_type", "sa_id_no"}))
	assert.Empty(t, validateIdentityDocument("passport",
		[]string{"dob", "id_type", "passport_no", "passport_origin"}))

	assert.Equal(t,
		[]string{"SA ID update requires fields id_type, sa_id_no, dob"},
		validateIdentityDocument("sa_id", []string{"dob", "id_type", "passport_no"}))
	assert.Equal(t,
		[]string{"Passport update requires fields id_type, passport_no, passport_origin, dob"},
		validateIdentityDocument("passport", []string{"id_type", "passport_no", "passport_origin"}))
	assert.Equal(t,
		[]string{"ID type should be passport or sa_id"},
		validateIdentityDocument("dob", []string{"dob", "id_type"}))
}
