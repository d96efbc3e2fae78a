package seed

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/medsys/hospital/internal/domain/clinical"
	"github.com/medsys/hospital/internal/domain/reference"
	"github.com/medsys/hospital/internal/domain/staff"
	"github.com/medsys/hospital/internal/platform/crud"
	"github.com/medsys/hospital/internal/platform/db"
)

type Seeder struct {
	tx              db.TxRunner
	ref             *reference.Service
	specializations crud.Store[staff.Specialization]
	diseases        crud.Store[clinical.Disease]
	log             zerolog.Logger
}

func New(tx db.TxRunner, ref *reference.Service, specializations crud.Store[staff.Specialization], diseases crud.Store[clinical.Disease], log zerolog.Logger) *Seeder {
	return &Seeder{
		tx:              tx,
		ref:             ref,
		specializations: specializations,
		diseases:        diseases,
		log:             log,
	}
}

// Apply upserts every row of c in one transaction. Existing rows are matched
// by natural key and get their expiry periods and titles refreshed.
func (s *Seeder) Apply(ctx context.Context, c *Catalogue) error {
	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		for _, d := range c.Diagnostics {
			if _, err := s.ref.UpsertDiagnostic(ctx, d.Name, d.ExpiresInDays); err != nil {
				return fmt.Errorf("diagnostic %q: %w", d.Name, err)
			}
		}
		for _, d := range c.Doctors {
			if _, err := s.ref.UpsertDoctor(ctx, d.Name, d.ExpiresInDays); err != nil {
				return fmt.Errorf("doctor %q: %w", d.Name, err)
			}
		}
		for _, title := range c.Specializations {
			if err := s.specializations.Upsert(ctx, &staff.Specialization{Title: title}); err != nil {
				return fmt.Errorf("specialization %q: %w", title, err)
			}
		}
		for _, title := range c.Commissions {
			if err := s.ref.Commissions().Upsert(ctx, &reference.Commission{Title: title}); err != nil {
				return fmt.Errorf("commission %q: %w", title, err)
			}
		}
		for i := range c.Diseases {
			d := c.Diseases[i]
			if err := s.diseases.Upsert(ctx, &d); err != nil {
				return fmt.Errorf("disease %s: %w", d.Code, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("seed reference data: %w", err)
	}

	s.log.Info().
		Int("diagnostics", len(c.Diagnostics)).
		Int("doctors", len(c.Doctors)).
		Int("specializations", len(c.Specializations)).
		Int("commissions", len(c.Commissions)).
		Int("diseases", len(c.Diseases)).
		Msg("reference data seeded")
	return nil
}
