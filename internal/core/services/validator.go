package services

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/go-playground/validator/v10"

	"github.com/sm8ta/station_control_console/internal/core/domain"
)

// Clock returns the current time.
type Clock func() time.Time

const ruleCountry = "country"

var messages = map[string]map[string]string{
	domain.FieldName: {
		"required": "O nome do funcionário é requerido.",
		"max":      "O nome do funcionário deve ter no máximo 100 caracteres.",
	},
	domain.FieldGender: {
		"required": "O gênero do funcionário é requerido.",
		"oneof":    "Gênero inválido.",
	},
	domain.FieldBirthDate: {
		"required":   "A data de nascimento do funcionário é requerida.",
		"datetime":   "Data de nascimento inválida: use o formato AAAA-MM-DD.",
		"not_future": "A data de nascimento não pode estar no futuro.",
	},
	domain.FieldEmail: {
		"required": "O email do funcionário é requerido.",
		"email":    "Email inválido: exemplo@gmail.com",
	},
	domain.FieldAddress: {
		"required": "A morada do funcionário é requerida.",
	},
	domain.FieldRole: {
		"required": "O papel do funcionário é requerido.",
		"oneof":    "Papel inválido.",
	},
	domain.FieldBiography: {
		"required": "A biografia do funcionário é requerida.",
	},
	domain.FieldCountry: {
		"required":  "O pais do funcionário é requerido.",
		"uuid":      "Pais inválido.",
		ruleCountry: "Pais inválido.",
	},
	domain.FieldPhoneNumber: {
		"required": "O número de telefone do funcionário é requerido.",
	},
	domain.FieldPassword: {
		"required": "Uma senha para a conta do funcionário é requerida.",
		"min":      "A senha do funcionário deve ter no mínimo 8 caracteres.",
		"max":      "A senha do funcionário deve ter no máximo 32 caracteres.",
	},
	domain.FieldPasswordConfirmation: {
		"required": "A confirmação da senha para a conta do funcionário é requerida.",
		"min":      "A senha do funcionário deve ter no mínimo 8 caracteres.",
		"max":      "A senha do funcionário deve ter no máximo 32 caracteres.",
		"eqfield":  "A senha e a confirmação da senha devem ser iguais.",
	},
}

// DraftValidator checks an employee draft locally. It never touches the
// network.
type DraftValidator struct {
	validate *validator.Validate
	now      Clock
}

func NewDraftValidator(validate *validator.Validate, now Clock) (*DraftValidator, error) {
	if now == nil {
		now = time.Now
	}
	v := &DraftValidator{validate: validate, now: now}

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	if err := validate.RegisterValidation("not_future", v.notFuture); err != nil {
		return nil, fmt.Errorf("register not_future: %w", err)
	}
	return v, nil
}

// notFuture accepts dates up to and including today in the clock's zone.
func (v *DraftValidator) notFuture(fl validator.FieldLevel) bool {
	date, err := time.Parse(strfmt.RFC3339FullDate, fl.Field().String())
	if err != nil {
		return false
	}
	y, m, d := v.now().Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return !date.After(today)
}

// Validate applies the field rules to draft. When countries is non-empty the
// selected country must be one of them.
func (v *DraftValidator) Validate(draft domain.EmployeeDraft, countries []domain.Country) domain.ValidationResult {
	var result domain.ValidationResult

	if err := v.validate.Struct(draft); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			result.Errors = append(result.Errors, domain.FieldError{
				Field:   "",
				Rule:    "invalid",
				Message: err.Error(),
			})
			return result
		}
		for _, fe := range verrs {
			result.Errors = append(result.Errors, domain.FieldError{
				Field:   fe.Field(),
				Rule:    fe.Tag(),
				Message: message(fe.Field(), fe.Tag()),
			})
		}
	}

	if _, failed := result.Get(domain.FieldCountry); !failed && len(countries) > 0 &&
		!domain.HasCountry(countries, draft.CountryID) {
		result.Errors = append(result.Errors, domain.FieldError{
			Field:   domain.FieldCountry,
			Rule:    ruleCountry,
			Message: message(domain.FieldCountry, ruleCountry),
		})
	}

	if draft.ProfilePhoto != nil {
		if err := CheckPhoto(draft.ProfilePhoto); err != nil {
			result.Errors = append(result.Errors, domain.FieldError{
				Field:   domain.FieldProfilePhoto,
				Rule:    photoRule(err),
				Message: PhotoMessage(err),
			})
		}
	}

	sortByFieldOrder(result.Errors)
	return result
}

func message(field, rule string) string {
	if msg, ok := messages[field][rule]; ok {
		return msg
	}
	return fmt.Sprintf("O campo %s é inválido.", field)
}

func sortByFieldOrder(errs []domain.FieldError) {
	rank := make(map[string]int, len(domain.FieldOrder))
	for i, f := range domain.FieldOrder {
		rank[f] = i
	}
	sort.SliceStable(errs, func(i, j int) bool {
		return rank[errs[i].Field] < rank[errs[j].Field]
	})
}
