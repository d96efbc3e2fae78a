package patient

import (
	"context"
	"errors"
	"testing"

	"github.com/medsys/hospital/internal/domain/reference"
	"github.com/medsys/hospital/internal/domain/staff"
	"github.com/medsys/hospital/internal/platform/apierr"
	"github.com/medsys/hospital/internal/platform/crud/crudtest"
	"github.com/medsys/hospital/internal/platform/db"
	"github.com/medsys/hospital/pkg/isodate"
)

var testToday = isodate.New(2024, 6, 1)

type fixture struct {
	st   Stores
	ref  *reference.Service
	tx   *crudtest.TxRunner
	svc  *Service
	crew *crudtest.MemStore[staff.Staff]
}

func newFixture() *fixture {
	st := Stores{
		Patients:    crudtest.New(PatientSchema),
		Doctors:     crudtest.New(PatientDoctorSchema),
		Diagnostics: crudtest.New(PatientDiagnosticSchema),
		Commissions: crudtest.New(PatientCommissionSchema),
	}
	ref := reference.NewService(reference.Stores{
		Doctors:                   crudtest.New(reference.DoctorSchema),
		Diagnostics:               crudtest.New(reference.DiagnosticSchema),
		Commissions:               crudtest.New(reference.CommissionSchema),
		CommissionSpecializations: crudtest.New(reference.CommissionSpecializationSchema),
		CommissionDiagnostics:     crudtest.New(reference.CommissionDiagnosticSchema),
	}, crudtest.New(staff.SpecializationSchema))
	crew := crudtest.New(staff.StaffSchema)
	tx := &crudtest.TxRunner{}
	svc := NewService(st, tx, ref, crew)
	svc.today = func() isodate.Date { return testToday }
	return &fixture{st: st, ref: ref, tx: tx, svc: svc, crew: crew}
}

func (f *fixture) addPatient(t *testing.T, first, last string) *Patient {
	t.Helper()
	p := &Patient{FirstName: first, LastName: last, BirthDate: isodate.New(1980, 3, 4)}
	if err := f.svc.CreatePatient(context.Background(), p); err != nil {
		t.Fatalf("CreatePatient: %v", err)
	}
	return p
}

func TestCreatePatient_WithoutDocuments(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	a := &Patient{WithoutDocuments: true}
	b := &Patient{WithoutDocuments: true, FirstName: "ignored", LastName: "ignored"}
	for _, p := range []*Patient{a, b} {
		if err := f.svc.CreatePatient(ctx, p); err != nil {
			t.Fatalf("CreatePatient: %v", err)
		}
		if p.FirstName == "" || p.FirstName != p.LastName {
			t.Errorf("expected equal placeholder names, got %q / %q", p.FirstName, p.LastName)
		}
		if p.BirthDate.String() != testToday.String() {
			t.Errorf("expected birth date to default to today, got %s", p.BirthDate)
		}
	}
	if a.FirstName == b.FirstName {
		t.Error("placeholder names must be unique across patients")
	}
	if b.FirstName == "ignored" {
		t.Error("placeholder must replace supplied names")
	}
}

func TestCreatePatient_RequiresNames(t *testing.T) {
	f := newFixture()
	err := f.svc.CreatePatient(context.Background(), &Patient{LastName: "Ivanov"})
	var ve *apierr.ValidationError
	if !errors.As(err, &ve) || ve.Fields[0].Field != "first_name" {
		t.Fatalf("expected first_name validation error, got %v", err)
	}
	if f.st.Patients.(*crudtest.MemStore[Patient]).Len() != 0 {
		t.Error("invalid patient was persisted")
	}
}

func TestCreatePatient_DuplicateIdentity(t *testing.T) {
	f := newFixture()
	f.addPatient(t, "Anna", "Ivanova")
	err := f.svc.CreatePatient(context.Background(), &Patient{FirstName: "Anna", LastName: "Ivanova", BirthDate: isodate.New(1980, 3, 4)})
	if !errors.Is(err, db.ErrConflict) {
		t.Errorf("expected conflict for the same identity, got %v", err)
	}
}

func TestCreatePatient_Therapist(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	missing := int64(3)
	err := f.svc.CreatePatient(ctx, &Patient{FirstName: "A", LastName: "B", TherapistID: &missing})
	var ve *apierr.ValidationError
	if !errors.As(err, &ve) || ve.Fields[0].Field != "therapist_id" {
		t.Fatalf("expected therapist_id validation error, got %v", err)
	}

	f.crew.Create(ctx, &staff.Staff{FirstName: "Olga", LastName: "Smirnova"})
	one := int64(1)
	if err := f.svc.CreatePatient(ctx, &Patient{FirstName: "A", LastName: "B", TherapistID: &one}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestCreateThenGet(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	mi := "1234567890"
	in := &Patient{FirstName: "Petr", LastName: "Petrov", BirthDate: isodate.New(1990, 12, 31), ToInternat: true, MedicalInsurance: &mi}
	if err := f.svc.CreatePatient(ctx, in); err != nil {
		t.Fatalf("CreatePatient: %v", err)
	}
	got, err := f.st.Patients.Get(ctx, in.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.FirstName != "Petr" || got.LastName != "Petrov" || got.BirthDate.String() != "1990-12-31" ||
		!got.ToInternat || got.ToCommittee || got.MedicalInsurance == nil || *got.MedicalInsurance != mi {
		t.Errorf("round trip mismatch: %+v", got)
	}
}

func TestUpdatePatient_KeepsPlaceholder(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	p := &Patient{WithoutDocuments: true}
	f.svc.CreatePatient(ctx, p)

	upd := &Patient{ID: p.ID, WithoutDocuments: true, ToCommittee: true}
	if err := f.svc.UpdatePatient(ctx, upd); err != nil {
		t.Fatalf("UpdatePatient: %v", err)
	}
	got, _ := f.st.Patients.Get(ctx, p.ID)
	if got.FirstName != p.FirstName || !got.ToCommittee || got.BirthDate.String() != p.BirthDate.String() {
		t.Errorf("unexpected patient after update: %+v", got)
	}

	if err := f.svc.UpdatePatient(ctx, &Patient{ID: 42, FirstName: "x", LastName: "y"}); !errors.Is(err, db.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDetail_VisitsAndExpiry(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	p := f.addPatient(t, "Anna", "Ivanova")

	dentist, _ := f.ref.UpsertDoctor(ctx, "Dentist", 30)
	oculist, _ := f.ref.UpsertDoctor(ctx, "Oculist", 365)
	xray, _ := f.ref.UpsertDiagnostic(ctx, "X-ray", 0)

	if _, err := f.svc.LinkDoctor(ctx, p.ID, dentist.ID, isodate.New(2024, 1, 1)); err != nil {
		t.Fatalf("LinkDoctor: %v", err)
	}
	if _, err := f.svc.LinkDoctor(ctx, p.ID, oculist.ID, isodate.New(2024, 5, 1)); err != nil {
		t.Fatalf("LinkDoctor: %v", err)
	}
	if _, err := f.svc.LinkDiagnostic(ctx, p.ID, xray.ID, testToday); err != nil {
		t.Fatalf("LinkDiagnostic: %v", err)
	}

	d, err := f.svc.Detail(ctx, p.ID, nil)
	if err != nil {
		t.Fatalf("Detail: %v", err)
	}
	if len(d.Doctors) != 2 || d.Doctors[0].Name != "Oculist" || d.Doctors[1].Name != "Dentist" {
		t.Fatalf("expected doctors newest first, got %+v", d.Doctors)
	}
	if d.Doctors[0].Expired || !d.Doctors[1].Expired {
		t.Errorf("unexpected expiry flags %+v", d.Doctors)
	}
	if d.Doctors[1].ExpiresAt.String() != "2024-01-31" {
		t.Errorf("expected dentist visit to expire 2024-01-31, got %s", d.Doctors[1].ExpiresAt)
	}
	if len(d.Diagnostics) != 1 || d.Diagnostics[0].Expired {
		t.Errorf("a visit expiring today is still valid, got %+v", d.Diagnostics)
	}
	if d.Commissions == nil || len(d.Commissions) != 0 {
		t.Errorf("expected empty commissions, got %+v", d.Commissions)
	}

	yes := true
	only, _ := f.svc.DoctorVisits(ctx, p.ID, &yes)
	if len(only) != 1 || only[0].Name != "Dentist" {
		t.Errorf("expected only the expired dentist visit, got %+v", only)
	}
	no := false
	only, _ = f.svc.DoctorVisits(ctx, p.ID, &no)
	if len(only) != 1 || only[0].Name != "Oculist" {
		t.Errorf("expected only the valid oculist visit, got %+v", only)
	}

	if _, err := f.svc.Detail(ctx, 99, nil); !errors.Is(err, db.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestLinks_ConflictAndNotFound(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	p := f.addPatient(t, "Anna", "Ivanova")
	doc, _ := f.ref.UpsertDoctor(ctx, "Surgeon", 180)
	diag, _ := f.ref.UpsertDiagnostic(ctx, "ECG", 365)

	if _, err := f.svc.LinkDoctor(ctx, p.ID, doc.ID, testToday); err != nil {
		t.Fatalf("LinkDoctor: %v", err)
	}
	if _, err := f.svc.LinkDoctor(ctx, p.ID, doc.ID, testToday); !errors.Is(err, db.ErrConflict) {
		t.Errorf("expected conflict for a duplicate doctor link, got %v", err)
	}
	if _, err := f.svc.LinkDiagnostic(ctx, p.ID, diag.ID, testToday); err != nil {
		t.Fatalf("LinkDiagnostic: %v", err)
	}
	if _, err := f.svc.LinkDiagnostic(ctx, p.ID, diag.ID, testToday); !errors.Is(err, db.ErrConflict) {
		t.Errorf("expected conflict for a duplicate diagnostic link, got %v", err)
	}

	if _, err := f.svc.LinkDoctor(ctx, 77, doc.ID, testToday); !errors.Is(err, db.ErrNotFound) {
		t.Errorf("expected ErrNotFound for a missing patient, got %v", err)
	}
	if _, err := f.svc.LinkDiagnostic(ctx, p.ID, 77, testToday); !errors.Is(err, db.ErrNotFound) {
		t.Errorf("expected ErrNotFound for a missing diagnostic, got %v", err)
	}

	if err := f.svc.UnlinkDoctor(ctx, p.ID, doc.ID); err != nil {
		t.Fatalf("UnlinkDoctor: %v", err)
	}
	if err := f.svc.UnlinkDoctor(ctx, p.ID, doc.ID); !errors.Is(err, db.ErrNotFound) {
		t.Errorf("expected ErrNotFound for a removed link, got %v", err)
	}
	if err := f.svc.UnlinkDiagnostic(ctx, p.ID, diag.ID); err != nil {
		t.Errorf("UnlinkDiagnostic: %v", err)
	}
}

func TestRecordVisit(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	p := f.addPatient(t, "Anna", "Ivanova")
	doc, _ := f.ref.UpsertDoctor(ctx, "Surgeon", 10)
	f.svc.LinkDoctor(ctx, p.ID, doc.ID, isodate.New(2023, 1, 1))

	link, err := f.svc.RecordDoctorVisit(ctx, p.ID, doc.ID, testToday)
	if err != nil {
		t.Fatalf("RecordDoctorVisit: %v", err)
	}
	if link.LastAt.String() != testToday.String() {
		t.Errorf("expected last_at to move to today, got %s", link.LastAt)
	}
	visits, _ := f.svc.DoctorVisits(ctx, p.ID, nil)
	if visits[0].Expired {
		t.Error("expected a fresh visit to be valid")
	}

	if _, err := f.svc.RecordDiagnosticVisit(ctx, p.ID, 5, testToday); !errors.Is(err, db.ErrNotFound) {
		t.Errorf("expected ErrNotFound for a missing link, got %v", err)
	}
}

func TestReferToCommission(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	p := f.addPatient(t, "Anna", "Ivanova")
	f.ref.Commissions().Create(ctx, &reference.Commission{Title: "Disability"})

	if _, err := f.svc.ReferToCommission(ctx, p.ID, 1); err != nil {
		t.Fatalf("ReferToCommission: %v", err)
	}
	got, _ := f.st.Patients.Get(ctx, p.ID)
	if !got.ToCommittee {
		t.Error("expected patient to be marked for committee")
	}
	if f.tx.Commits != 1 {
		t.Errorf("expected one committed transaction, got %d", f.tx.Commits)
	}

	if _, err := f.svc.ReferToCommission(ctx, p.ID, 1); !errors.Is(err, db.ErrConflict) {
		t.Errorf("expected conflict for a duplicate referral, got %v", err)
	}
	if f.tx.Rollbacks != 1 {
		t.Errorf("expected the duplicate referral to roll back, got %d", f.tx.Rollbacks)
	}

	list, err := f.svc.Commissions(ctx, p.ID)
	if err != nil || len(list) != 1 || list[0].Title != "Disability" {
		t.Errorf("Commissions = %+v, %v", list, err)
	}
	if err := f.svc.WithdrawFromCommission(ctx, p.ID, 1); err != nil {
		t.Errorf("WithdrawFromCommission: %v", err)
	}
	if err := f.svc.WithdrawFromCommission(ctx, p.ID, 1); !errors.Is(err, db.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
