package domain

import (
	"errors"
	"fmt"
	"strings"
)

type Gender string

const (
	Male   Gender = "MASCULINO"
	Female Gender = "FEMININO"
)

type Role string

const (
	Admin   Role = "ADMINISTRADOR"
	AppUser Role = "USUARIO"
)

// Wire names of the draft fields. They double as validation keys and
// multipart part names.
const (
	FieldName                 = "nome"
	FieldGender               = "genero"
	FieldBirthDate            = "dataNascimento"
	FieldEmail                = "email"
	FieldAddress              = "morada"
	FieldRole                 = "papel"
	FieldBiography            = "biografia"
	FieldCountry              = "pais"
	FieldProfilePhoto         = "fotoPerfil"
	FieldPhoneNumber          = "numero"
	FieldPassword             = "senha"
	FieldPasswordConfirmation = "confirmacaoSenha"
)

// FieldOrder is the order in which fields appear on the form.
var FieldOrder = []string{
	FieldName,
	FieldEmail,
	FieldGender,
	FieldRole,
	FieldBirthDate,
	FieldAddress,
	FieldCountry,
	FieldPhoneNumber,
	FieldPassword,
	FieldPasswordConfirmation,
	FieldBiography,
	FieldProfilePhoto,
}

var (
	ErrUnknownField  = errors.New("unknown field")
	ErrPhotoViaField = errors.New("profile photo must be selected as a file")
)

// EmployeeDraft is the unsaved employee being edited on the form.
// It has no identity until the upstream creates it.
type EmployeeDraft struct {
	Name                 string `json:"nome" form:"nome" validate:"required,max=100"`
	Email                string `json:"email" form:"email" validate:"required,email"`
	Gender               Gender `json:"genero" form:"genero" validate:"required,oneof=MASCULINO FEMININO"`
	Role                 Role   `json:"papel" form:"papel" validate:"required,oneof=USUARIO ADMINISTRADOR"`
	BirthDate            string `json:"dataNascimento" form:"dataNascimento" validate:"required,datetime=2006-01-02,not_future"`
	Address              string `json:"morada" form:"morada" validate:"required"`
	CountryID            string `json:"pais" form:"pais" validate:"required,uuid"`
	PhoneNumber          string `json:"numero" form:"numero" validate:"required"`
	Password             string `json:"-" form:"senha" validate:"required,min=8,max=32"`
	PasswordConfirmation string `json:"-" form:"confirmacaoSenha" validate:"required,min=8,max=32,eqfield=Password"`
	Biography            string `json:"biografia" form:"biografia" validate:"required"`
	ProfilePhoto         *Photo `json:"-" form:"fotoPerfil" validate:"-"`
}

// NewEmployeeDraft returns a draft holding the form defaults.
func NewEmployeeDraft() EmployeeDraft {
	return EmployeeDraft{
		Gender: Male,
		Role:   AppUser,
	}
}

// FieldUpdate is a single edit dispatched to a draft.
type FieldUpdate struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`
}

// Apply writes the update into the draft.
func (d *EmployeeDraft) Apply(u FieldUpdate) error {
	switch u.Field {
	case FieldName:
		d.Name = u.Value
	case FieldEmail:
		d.Email = u.Value
	case FieldGender:
		d.Gender = Gender(u.Value)
	case FieldRole:
		d.Role = Role(u.Value)
	case FieldBirthDate:
		d.BirthDate = u.Value
	case FieldAddress:
		d.Address = u.Value
	case FieldCountry:
		// UUIDs are matched in lower case.
		d.CountryID = strings.ToLower(strings.TrimSpace(u.Value))
	case FieldPhoneNumber:
		d.PhoneNumber = u.Value
	case FieldPassword:
		d.Password = u.Value
	case FieldPasswordConfirmation:
		d.PasswordConfirmation = u.Value
	case FieldBiography:
		d.Biography = u.Value
	case FieldProfilePhoto:
		return ErrPhotoViaField
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, u.Field)
	}
	return nil
}

// Employee is the upstream representation of a created employee.
type Employee struct {
	ID        string `json:"id"`
	Name      string `json:"nome"`
	Email     string `json:"email,omitempty"`
	Gender    Gender `json:"genero,omitempty"`
	Role      Role   `json:"papel,omitempty"`
	BirthDate string `json:"dataNascimento,omitempty"`
}

// MultipartPayload is an encoded creation request body.
type MultipartPayload struct {
	Body        []byte
	ContentType string
}
