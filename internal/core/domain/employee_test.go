package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmployeeDraftDefaults(t *testing.T) {
	d := NewEmployeeDraft()

	assert.Equal(t, Male, d.Gender)
	assert.Equal(t, AppUser, d.Role)
	assert.Empty(t, d.Name)
	assert.Nil(t, d.ProfilePhoto)
}

func TestApplySetsEveryField(t *testing.T) {
	d := NewEmployeeDraft()
	updates := map[string]string{
		FieldName:                 "Ana Silva",
		FieldEmail:                "ana@x.com",
		FieldGender:               "FEMININO",
		FieldRole:                 "ADMINISTRADOR",
		FieldBirthDate:            "1990-05-01",
		FieldAddress:              "Rua 1",
		FieldCountry:              "3f2504e0-4f89-41d3-9a0c-0305e82c3301",
		FieldPhoneNumber:          "+351911111111",
		FieldPassword:             "12345678",
		FieldPasswordConfirmation: "12345678",
		FieldBiography:            "bio",
	}
	for field, value := range updates {
		require.NoError(t, d.Apply(FieldUpdate{Field: field, Value: value}), field)
	}

	assert.Equal(t, EmployeeDraft{
		Name:                 "Ana Silva",
		Email:                "ana@x.com",
		Gender:               Female,
		Role:                 Admin,
		BirthDate:            "1990-05-01",
		Address:              "Rua 1",
		CountryID:            "3f2504e0-4f89-41d3-9a0c-0305e82c3301",
		PhoneNumber:          "+351911111111",
		Password:             "12345678",
		PasswordConfirmation: "12345678",
		Biography:            "bio",
	}, d)
}

func TestApplyRejectsUnknownAndPhotoFields(t *testing.T) {
	d := NewEmployeeDraft()

	err := d.Apply(FieldUpdate{Field: "salario", Value: "1"})
	assert.True(t, errors.Is(err, ErrUnknownField))

	err = d.Apply(FieldUpdate{Field: FieldProfilePhoto, Value: "x"})
	assert.ErrorIs(t, err, ErrPhotoViaField)

	assert.Equal(t, NewEmployeeDraft(), d)
}

func TestValidationResultAccessors(t *testing.T) {
	r := ValidationResult{Errors: []FieldError{
		{Field: FieldName, Rule: "required", Message: "m1"},
		{Field: FieldPasswordConfirmation, Rule: "eqfield", Message: "m2"},
	}}

	assert.False(t, r.Valid())
	fe, ok := r.Get(FieldPasswordConfirmation)
	assert.True(t, ok)
	assert.Equal(t, "eqfield", fe.Rule)
	_, ok = r.Get(FieldEmail)
	assert.False(t, ok)
	assert.Equal(t, map[string]string{FieldName: "m1", FieldPasswordConfirmation: "m2"}, r.Map())
	assert.True(t, ValidationResult{}.Valid())
}

func TestPhotoPreviewURL(t *testing.T) {
	var none *Photo
	assert.Empty(t, none.PreviewURL())

	p := &Photo{ContentType: "image/png", Data: []byte("abc")}
	assert.Equal(t, "data:image/png;base64,YWJj", p.PreviewURL())
}

func TestApplyNormalisesCountryID(t *testing.T) {
	d := NewEmployeeDraft()

	require.NoError(t, d.Apply(FieldUpdate{Field: FieldCountry, Value: " 3F2504E0-4F89-41D3-9A0C-0305E82C3301 "}))

	assert.Equal(t, "3f2504e0-4f89-41d3-9a0c-0305e82c3301", d.CountryID)
	assert.True(t, HasCountry([]Country{{ID: "3F2504E0-4F89-41D3-9A0C-0305E82C3301"}}, d.CountryID))
}
