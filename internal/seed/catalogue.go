// Package seed loads reference data: diagnostics and doctors with their
// validity periods, staff specializations, commissions and diseases.
package seed

import (
	"github.com/medsys/hospital/internal/domain/clinical"
	"github.com/medsys/hospital/internal/domain/reference"
)

// Catalogue is a batch of reference rows keyed by their natural keys.
type Catalogue struct {
	Diagnostics     []reference.Diagnostic
	Doctors         []reference.Doctor
	Specializations []string
	Commissions     []string
	Diseases        []clinical.Disease
}

// Len is the number of rows in the catalogue.
func (c *Catalogue) Len() int {
	return len(c.Diagnostics) + len(c.Doctors) + len(c.Specializations) + len(c.Commissions) + len(c.Diseases)
}

const forever = 9999

// Default returns the catalogue a fresh installation starts with.
func Default() *Catalogue {
	return &Catalogue{
		Diagnostics: []reference.Diagnostic{
			{Name: "Serology", ExpiresInDays: 6},
			{Name: "Blood donor panel", ExpiresInDays: 6},
			{Name: "Complete blood count", ExpiresInDays: 3},
			{Name: "Urinalysis", ExpiresInDays: 3},
			{Name: "Blood chemistry", ExpiresInDays: 3},
			{Name: "Antibody titers", ExpiresInDays: forever},
			{Name: "COVID-19 blood test", ExpiresInDays: 1},
			{Name: "COVID-19 swab", ExpiresInDays: 999},
			{Name: "Glycated hemoglobin", ExpiresInDays: 999},
			{Name: "Tumor markers", ExpiresInDays: 999},
			{Name: "Sputum culture", ExpiresInDays: 999},
			{Name: "Urine culture", ExpiresInDays: 999},
			{Name: "Enterobiasis", ExpiresInDays: 999},
			{Name: "Ultrasound", ExpiresInDays: 999},
			{Name: "ECG", ExpiresInDays: 3},
			{Name: "Fluorography", ExpiresInDays: 6},
			{Name: "X-ray", ExpiresInDays: 999},
		},
		Doctors: []reference.Doctor{
			{Name: "Therapist", ExpiresInDays: 6},
			{Name: "Neurologist", ExpiresInDays: 6},
			{Name: "Ophthalmologist", ExpiresInDays: 999},
			{Name: "Dermatologist", ExpiresInDays: 999},
			{Name: "Otolaryngologist", ExpiresInDays: 999},
			{Name: "Surgeon", ExpiresInDays: 999},
			{Name: "Physiotherapist", ExpiresInDays: 999},
			{Name: "Oncologist", ExpiresInDays: 999},
			{Name: "Phthisiatrician", ExpiresInDays: 999},
			{Name: "Dentist", ExpiresInDays: 999},
			{Name: "Infectious disease specialist", ExpiresInDays: 999},
		},
		Specializations: []string{
			"Therapist", "Neurologist", "Ophthalmologist", "Dermatologist",
			"Otolaryngologist", "Surgeon", "Physiotherapist", "Oncologist",
			"Phthisiatrician", "Dentist", "Infectious disease specialist", "Nurse",
		},
		Commissions: []string{"Disability assessment", "Boarding school admission"},
		Diseases: []clinical.Disease{
			{Code: "A15", Title: "Respiratory tuberculosis", Source: 10, IsActual: true},
			{Code: "E11", Title: "Type 2 diabetes mellitus", Source: 10, IsActual: true},
			{Code: "I10", Title: "Essential (primary) hypertension", Source: 10, IsActual: true},
			{Code: "J06", Title: "Acute upper respiratory infections", Source: 10, IsActual: true},
			{Code: "J10", Title: "Influenza due to identified seasonal influenza virus", Source: 10, IsActual: true},
			{Code: "U07.1", Title: "COVID-19, virus identified", Source: 10, IsActual: true},
		},
	}
}
