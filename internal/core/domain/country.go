package domain

import (
	"strings"

	"github.com/go-openapi/strfmt"
)

type Country struct {
	ID   strfmt.UUID `json:"id"`
	Name string      `json:"nome"`
}

type CountryFilter struct {
	Name string `form:"nome" json:"nome,omitempty"`
}

// HasCountry reports whether id names one of the countries.
func HasCountry(countries []Country, id string) bool {
	for _, c := range countries {
		if strings.EqualFold(string(c.ID), id) {
			return true
		}
	}
	return false
}
