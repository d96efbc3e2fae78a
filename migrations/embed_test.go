package migrations

import (
	"strings"
	"testing"

	"github.com/medsys/hospital/internal/platform/db"
)

func TestEmbeddedMigrationsLoad(t *testing.T) {
	migs, err := db.NewMigrator(nil, FS, "").LoadMigrations()
	if err != nil {
		t.Fatalf("LoadMigrations() error: %v", err)
	}
	if len(migs) != 6 {
		t.Fatalf("expected 6 migrations, got %d", len(migs))
	}
	for i, m := range migs {
		if m.Version != i+1 {
			t.Errorf("migration %d has version %d", i, m.Version)
		}
		if strings.TrimSpace(m.SQL) == "" {
			t.Errorf("migration %s is empty", m.Name)
		}
	}
}

func TestLinkTablesAreUnique(t *testing.T) {
	all := ""
	migs, _ := db.NewMigrator(nil, FS, "").LoadMigrations()
	for _, m := range migs {
		all += m.SQL
	}
	for _, pair := range []string{
		"UNIQUE (office_id, staff_id)",
		"UNIQUE (commission_id, specialization_id)",
		"UNIQUE (commission_id, diagnostic_id)",
		"UNIQUE (patient_id, doctor_id)",
		"UNIQUE (patient_id, diagnostic_id)",
		"UNIQUE (patient_id, commission_id)",
	} {
		if !strings.Contains(all, pair) {
			t.Errorf("missing constraint %s", pair)
		}
	}
	if strings.Contains(strings.ToUpper(all), "ON DELETE CASCADE") {
		t.Error("foreign keys must not cascade")
	}
}
