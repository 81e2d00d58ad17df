// Package seed populates a database with demo data for development
// environments. Patients are created through the domain service, so the
// generated IDs follow the same sequence contract as API-created ones.
package seed

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nsitapara/stellarcare/internal/domain/customfield"
	"github.com/nsitapara/stellarcare/internal/domain/patient"
	"github.com/nsitapara/stellarcare/internal/domain/records"
	"github.com/nsitapara/stellarcare/internal/domain/user"
	"github.com/nsitapara/stellarcare/pkg/types"
)

type Seeder struct {
	patients *patient.Service
	fields   *customfield.Service
	users    *user.Service
	userRepo user.Repository
	records  records.Repository
	logger   zerolog.Logger
	rng      *rand.Rand
}

func New(patients *patient.Service, fields *customfield.Service, users *user.Service,
	userRepo user.Repository, recs records.Repository, logger zerolog.Logger) *Seeder {
	return &Seeder{
		patients: patients,
		fields:   fields,
		users:    users,
		userRepo: userRepo,
		records:  recs,
		logger:   logger,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Run seeds users, custom-field definitions, a shared pool of clinical
// records and numPatients patients wired to random subsets of that pool.
func (s *Seeder) Run(ctx context.Context, numPatients int) error {
	admin, err := s.seedAdmin(ctx)
	if err != nil {
		return fmt.Errorf("seed admin user: %w", err)
	}
	defs, err := s.seedDefinitions(ctx, admin.ID)
	if err != nil {
		return fmt.Errorf("seed custom field definitions: %w", err)
	}
	pool, err := s.seedRecords(ctx, numPatients)
	if err != nil {
		return fmt.Errorf("seed clinical records: %w", err)
	}

	for i := 0; i < numPatients; i++ {
		p, err := s.seedPatient(ctx, defs, pool)
		if err != nil {
			return fmt.Errorf("seed patient %d: %w", i, err)
		}
		s.logger.Debug().Int("patient_id", p.ID).Msg("seeded patient")
	}

	s.logger.Info().
		Int("patients", numPatients).
		Int("definitions", len(defs)).
		Msg("seeding complete")
	return nil
}

// seedAdmin registers the demo account and flips it active, since
// registration alone always produces an inactive account.
func (s *Seeder) seedAdmin(ctx context.Context) (*user.User, error) {
	u, err := s.users.Register(ctx, &user.RegisterInput{
		Username:       "admin",
		Email:          "admin@stellarcare.local",
		Password:       "stellarcare-dev",
		PasswordRetype: "stellarcare-dev",
		FirstName:      "Admin",
		LastName:       "User",
	})
	if err != nil {
		return nil, err
	}
	u.IsActive = true
	if err := s.userRepo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Seeder) seedDefinitions(ctx context.Context, creatorID uuid.UUID) ([]*customfield.Definition, error) {
	specs := []struct {
		name string
		typ  customfield.FieldType
	}{
		{"Referring Physician", customfield.FieldTypeText},
		{"Insurance Notes", customfield.FieldTypeText},
		{"BMI", customfield.FieldTypeNumber},
		{"Neck Circumference (cm)", customfield.FieldTypeNumber},
		{"Epworth Sleepiness Score", customfield.FieldTypeNumber},
	}
	defs := make([]*customfield.Definition, 0, len(specs))
	for i, spec := range specs {
		d := &customfield.Definition{
			Name:         spec.name,
			Type:         spec.typ,
			IsActive:     true,
			DisplayOrder: i,
		}
		if err := s.fields.CreateDefinition(ctx, d, creatorID); err != nil {
			return nil, err
		}
		defs = append(defs, d)
	}
	return defs, nil
}

// recordPool holds the shared record IDs patients draw from. Sharing is
// deliberate: insurance policies in particular can belong to more than one
// patient.
type recordPool struct {
	studies    []uuid.UUID
	treatments []uuid.UUID
	insurance  []uuid.UUID
	visits     []uuid.UUID
}

func (s *Seeder) seedRecords(ctx context.Context, numPatients int) (*recordPool, error) {
	n := numPatients
	if n < 5 {
		n = 5
	}
	pool := &recordPool{}

	for i := 0; i < n; i++ {
		study := &records.SleepStudy{
			Date:            s.pastDate(2),
			AHI:             s.roundTo(s.rng.Float64()*60, 1),
			SleepEfficiency: s.roundTo(50+s.rng.Float64()*50, 1),
			REMLatency:      s.roundTo(60+s.rng.Float64()*120, 1),
		}
		if err := s.records.CreateSleepStudy(ctx, study); err != nil {
			return nil, err
		}
		pool.studies = append(pool.studies, study.ID)

		treatment := &records.Treatment{
			Name:      pick(s.rng, treatmentNames),
			Type:      pick(s.rng, treatmentTypes),
			Dosage:    fmt.Sprintf("%d cm H2O", 4+s.rng.Intn(12)),
			Frequency: pick(s.rng, frequencies),
			StartDate: s.pastDate(1),
		}
		if err := s.records.CreateTreatment(ctx, treatment); err != nil {
			return nil, err
		}
		pool.treatments = append(pool.treatments, treatment.ID)

		status := pick(s.rng, authorizationStatuses)
		expiry := s.futureDate(1)
		ins := &records.Insurance{
			Provider:            pick(s.rng, insuranceProviders),
			PolicyNumber:        fmt.Sprintf("POL-%06d", s.rng.Intn(1000000)),
			GroupNumber:         fmt.Sprintf("GRP-%04d", s.rng.Intn(10000)),
			PrimaryHolder:       pick(s.rng, firstNames) + " " + pick(s.rng, lastNames),
			Relationship:        pick(s.rng, relationships),
			AuthorizationStatus: &status,
			AuthorizationExpiry: &expiry,
		}
		if err := s.records.CreateInsurance(ctx, ins); err != nil {
			return nil, err
		}
		pool.insurance = append(pool.insurance, ins.ID)

		notes := pick(s.rng, visitNotes)
		visit := &records.Visit{
			Date:   s.futureDate(1),
			Time:   fmt.Sprintf("%02d:%02d:00", 8+s.rng.Intn(9), 15*s.rng.Intn(4)),
			Type:   records.VisitInPerson,
			Status: records.VisitScheduled,
			Notes:  &notes,
		}
		if s.rng.Intn(2) == 0 {
			link := fmt.Sprintf("https://zoom.us/j/%010d", s.rng.Int63n(1e10))
			visit.Type = records.VisitTelehealth
			visit.ZoomLink = &link
		}
		if err := s.records.CreateVisit(ctx, visit); err != nil {
			return nil, err
		}
		pool.visits = append(pool.visits, visit.ID)
	}

	// read the pools back from storage so reruns draw from everything
	// present, not just this run's inserts
	var err error
	if pool.studies, err = s.records.ListIDs(ctx, "sleep_studies"); err != nil {
		return nil, err
	}
	if pool.treatments, err = s.records.ListIDs(ctx, "treatments"); err != nil {
		return nil, err
	}
	if pool.insurance, err = s.records.ListIDs(ctx, "insurance"); err != nil {
		return nil, err
	}
	if pool.visits, err = s.records.ListIDs(ctx, "visits"); err != nil {
		return nil, err
	}
	return pool, nil
}

func (s *Seeder) seedPatient(ctx context.Context, defs []*customfield.Definition, pool *recordPool) (*patient.Patient, error) {
	statuses := []patient.Status{
		patient.StatusInquiry, patient.StatusOnboarding,
		patient.StatusActive, patient.StatusChurned,
	}

	in := &patient.CreateInput{
		First:       pick(s.rng, firstNames),
		Last:        pick(s.rng, lastNames),
		DateOfBirth: s.birthDate(),
		Status:      string(statuses[s.rng.Intn(len(statuses))]),
		Addresses: []patient.AddressInput{{
			Street:  fmt.Sprintf("%d %s", 1+s.rng.Intn(9999), pick(s.rng, streets)),
			City:    pick(s.rng, cities),
			State:   pick(s.rng, states),
			ZipCode: fmt.Sprintf("%05d", 10000+s.rng.Intn(89999)),
		}},
		Studies:      s.sample(pool.studies, 1+s.rng.Intn(2)),
		Treatments:   s.sample(pool.treatments, 1+s.rng.Intn(2)),
		Insurance:    s.sample(pool.insurance, 1),
		Appointments: s.sample(pool.visits, 1+s.rng.Intn(3)),
	}
	if s.rng.Intn(3) == 0 {
		middle := pick(s.rng, firstNames)
		in.Middle = &middle
	}

	for _, d := range defs {
		switch d.Type {
		case customfield.FieldTypeText:
			text := "Dr. " + pick(s.rng, lastNames)
			in.CustomFields = append(in.CustomFields, patient.CustomFieldInput{
				DefinitionID: d.ID,
				ValueText:    &text,
			})
		case customfield.FieldTypeNumber:
			num := s.roundTo(10+s.rng.Float64()*30, 1)
			in.CustomFields = append(in.CustomFields, patient.CustomFieldInput{
				DefinitionID: d.ID,
				ValueNumber:  &num,
			})
		}
	}

	return s.patients.Create(ctx, in)
}

func (s *Seeder) birthDate() types.Date {
	year := 1940 + s.rng.Intn(65)
	return types.NewDate(year, time.Month(1+s.rng.Intn(12)), 1+s.rng.Intn(28))
}

func (s *Seeder) pastDate(maxYears int) types.Date {
	t := time.Now().AddDate(0, 0, -s.rng.Intn(maxYears*365))
	return types.NewDate(t.Year(), t.Month(), t.Day())
}

func (s *Seeder) futureDate(maxYears int) types.Date {
	t := time.Now().AddDate(0, 0, s.rng.Intn(maxYears*365))
	return types.NewDate(t.Year(), t.Month(), t.Day())
}

func (s *Seeder) roundTo(v float64, places int) float64 {
	scale := 1.0
	for i := 0; i < places; i++ {
		scale *= 10
	}
	return float64(int(v*scale)) / scale
}

// sample returns up to n distinct IDs drawn from the pool.
func (s *Seeder) sample(ids []uuid.UUID, n int) []uuid.UUID {
	if n > len(ids) {
		n = len(ids)
	}
	perm := s.rng.Perm(len(ids))
	out := make([]uuid.UUID, 0, n)
	for _, idx := range perm[:n] {
		out = append(out, ids[idx])
	}
	return out
}

func pick(rng *rand.Rand, values []string) string {
	return values[rng.Intn(len(values))]
}
