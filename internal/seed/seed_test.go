package seed

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/tealeg/xlsx"

	"github.com/medsys/hospital/internal/domain/clinical"
	"github.com/medsys/hospital/internal/domain/reference"
	"github.com/medsys/hospital/internal/domain/staff"
	"github.com/medsys/hospital/internal/platform/crud/crudtest"
)

type fixture struct {
	ref             reference.Stores
	specializations *crudtest.MemStore[staff.Specialization]
	diseases        *crudtest.MemStore[clinical.Disease]
	tx              *crudtest.TxRunner
	seeder          *Seeder
}

func newFixture() *fixture {
	f := &fixture{
		ref: reference.Stores{
			Doctors:                   crudtest.New(reference.DoctorSchema),
			Diagnostics:               crudtest.New(reference.DiagnosticSchema),
			Commissions:               crudtest.New(reference.CommissionSchema),
			CommissionSpecializations: crudtest.New(reference.CommissionSpecializationSchema),
			CommissionDiagnostics:     crudtest.New(reference.CommissionDiagnosticSchema),
		},
		specializations: crudtest.New(staff.SpecializationSchema),
		diseases:        crudtest.New(clinical.DiseaseSchema),
		tx:              &crudtest.TxRunner{},
	}
	svc := reference.NewService(f.ref, f.specializations)
	f.seeder = New(f.tx, svc, f.specializations, f.diseases, zerolog.Nop())
	return f
}

func TestApply_Default(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	c := Default()

	for i := 0; i < 2; i++ {
		if err := f.seeder.Apply(ctx, c); err != nil {
			t.Fatalf("Apply #%d: %v", i+1, err)
		}
	}
	if f.tx.Commits != 2 {
		t.Errorf("expected 2 commits, got %d", f.tx.Commits)
	}

	diag := f.ref.Diagnostics.(*crudtest.MemStore[reference.Diagnostic])
	if diag.Len() != len(c.Diagnostics) {
		t.Errorf("expected %d diagnostics after reseeding, got %d", len(c.Diagnostics), diag.Len())
	}
	if f.specializations.Len() != len(c.Specializations) {
		t.Errorf("expected %d specializations, got %d", len(c.Specializations), f.specializations.Len())
	}
	if f.diseases.Len() != len(c.Diseases) {
		t.Errorf("expected %d diseases, got %d", len(c.Diseases), f.diseases.Len())
	}
}

func TestApply_RefreshesExpiry(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.seeder.Apply(ctx, &Catalogue{Diagnostics: []reference.Diagnostic{{Name: "ECG", ExpiresInDays: 3}}})
	if err := f.seeder.Apply(ctx, &Catalogue{Diagnostics: []reference.Diagnostic{{Name: "ECG", ExpiresInDays: 30}}}); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	d, err := f.ref.Diagnostics.Get(ctx, 1)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if d.ExpiresInDays != 30 {
		t.Errorf("expected refreshed expiry 30, got %d", d.ExpiresInDays)
	}
}

func TestApply_StoreError(t *testing.T) {
	f := newFixture()
	boom := errors.New("boom")
	f.diseases.Err = boom

	err := f.seeder.Apply(context.Background(), Default())
	if !errors.Is(err, boom) {
		t.Fatalf("expected store error, got %v", err)
	}
	if f.tx.Rollbacks != 1 || f.tx.Commits != 0 {
		t.Errorf("expected a rollback, got commits=%d rollbacks=%d", f.tx.Commits, f.tx.Rollbacks)
	}
}

func addRow(sheet *xlsx.Sheet, cells ...string) {
	row := sheet.AddRow()
	for _, v := range cells {
		row.AddCell().Value = v
	}
}

func newWorkbook(t *testing.T) *xlsx.File {
	t.Helper()
	f := xlsx.NewFile()
	diag, err := f.AddSheet("Diagnostics")
	if err != nil {
		t.Fatalf("AddSheet: %v", err)
	}
	addRow(diag, "name", "expires_in_days")
	addRow(diag, "ECG", "3")
	addRow(diag, " X-ray ", "")
	addRow(diag, "", "")

	doctors, _ := f.AddSheet("doctors")
	addRow(doctors, "name", "expires_in_days")
	addRow(doctors, "Surgeon", "999")

	commissions, _ := f.AddSheet("commissions")
	addRow(commissions, "title")
	addRow(commissions, "Disability assessment")

	diseases, _ := f.AddSheet("diseases")
	addRow(diseases, "code", "title", "source")
	addRow(diseases, "I10", "Essential hypertension", "10")

	notes, _ := f.AddSheet("notes")
	addRow(notes, "ignored")
	addRow(notes, "ignored too")
	return f
}

func TestParseWorkbook(t *testing.T) {
	c, err := ParseWorkbook(newWorkbook(t))
	if err != nil {
		t.Fatalf("ParseWorkbook: %v", err)
	}
	if len(c.Diagnostics) != 2 {
		t.Fatalf("expected 2 diagnostics, got %+v", c.Diagnostics)
	}
	if c.Diagnostics[0].ExpiresInDays != 3 || c.Diagnostics[1].Name != "X-ray" || c.Diagnostics[1].ExpiresInDays != 0 {
		t.Errorf("unexpected diagnostics %+v", c.Diagnostics)
	}
	if len(c.Doctors) != 1 || c.Doctors[0].ExpiresInDays != 999 {
		t.Errorf("unexpected doctors %+v", c.Doctors)
	}
	if len(c.Commissions) != 1 || len(c.Specializations) != 0 {
		t.Errorf("unexpected commissions %v specializations %v", c.Commissions, c.Specializations)
	}
	if len(c.Diseases) != 1 || c.Diseases[0].Code != "I10" || c.Diseases[0].Source != 10 {
		t.Errorf("unexpected diseases %+v", c.Diseases)
	}
	if c.Len() != 5 {
		t.Errorf("expected 5 rows, got %d", c.Len())
	}
}

func TestParseWorkbook_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		sheet string
		row   []string
	}{
		{"non-numeric expiry", "diagnostics", []string{"ECG", "soon"}},
		{"negative expiry", "doctors", []string{"Surgeon", "-1"}},
		{"disease without title", "diseases", []string{"I10"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := xlsx.NewFile()
			sheet, _ := f.AddSheet(tt.sheet)
			addRow(sheet, "header")
			addRow(sheet, tt.row...)
			if _, err := ParseWorkbook(f); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
