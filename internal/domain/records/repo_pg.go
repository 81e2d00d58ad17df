package records

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nsitapara/stellarcare/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type recordsRepoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &recordsRepoPG{pool: pool}
}

func (r *recordsRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

// recordTables guards ListIDs against arbitrary table names.
var recordTables = map[string]string{
	"sleep_studies": "sleep_studies",
	"treatments":    "treatments",
	"insurance":     "insurance",
	"visits":        "visits",
}

const sleepStudyCols = `id, date, ahi, sleep_efficiency, rem_latency, notes, file_url, created_at, modified_at`

func (r *recordsRepoPG) CreateSleepStudy(ctx context.Context, s *SleepStudy) error {
	s.ID = uuid.New()
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO sleep_studies (id, date, ahi, sleep_efficiency, rem_latency, notes, file_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, modified_at`,
		s.ID, s.Date, s.AHI, s.SleepEfficiency, s.REMLatency, s.Notes, s.FileURL,
	).Scan(&s.CreatedAt, &s.ModifiedAt)
}

func (r *recordsRepoPG) GetSleepStudy(ctx context.Context, id uuid.UUID) (*SleepStudy, error) {
	var s SleepStudy
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT `+sleepStudyCols+` FROM sleep_studies WHERE id = $1`, id,
	).Scan(&s.ID, &s.Date, &s.AHI, &s.SleepEfficiency, &s.REMLatency,
		&s.Notes, &s.FileURL, &s.CreatedAt, &s.ModifiedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

const treatmentCols = `id, name, type, dosage, frequency, start_date, end_date, notes, created_at, modified_at`

func (r *recordsRepoPG) CreateTreatment(ctx context.Context, t *Treatment) error {
	t.ID = uuid.New()
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO treatments (id, name, type, dosage, frequency, start_date, end_date, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, modified_at`,
		t.ID, t.Name, t.Type, t.Dosage, t.Frequency, t.StartDate, t.EndDate, t.Notes,
	).Scan(&t.CreatedAt, &t.ModifiedAt)
}

func (r *recordsRepoPG) GetTreatment(ctx context.Context, id uuid.UUID) (*Treatment, error) {
	var t Treatment
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT `+treatmentCols+` FROM treatments WHERE id = $1`, id,
	).Scan(&t.ID, &t.Name, &t.Type, &t.Dosage, &t.Frequency,
		&t.StartDate, &t.EndDate, &t.Notes, &t.CreatedAt, &t.ModifiedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

const insuranceCols = `id, provider, policy_number, group_number, primary_holder, relationship,
	authorization_status, authorization_expiry, created_at, modified_at`

func (r *recordsRepoPG) CreateInsurance(ctx context.Context, i *Insurance) error {
	i.ID = uuid.New()
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO insurance (id, provider, policy_number, group_number, primary_holder,
			relationship, authorization_status, authorization_expiry)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, modified_at`,
		i.ID, i.Provider, i.PolicyNumber, i.GroupNumber, i.PrimaryHolder,
		i.Relationship, i.AuthorizationStatus, i.AuthorizationExpiry,
	).Scan(&i.CreatedAt, &i.ModifiedAt)
}

func (r *recordsRepoPG) GetInsurance(ctx context.Context, id uuid.UUID) (*Insurance, error) {
	var i Insurance
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT `+insuranceCols+` FROM insurance WHERE id = $1`, id,
	).Scan(&i.ID, &i.Provider, &i.PolicyNumber, &i.GroupNumber, &i.PrimaryHolder,
		&i.Relationship, &i.AuthorizationStatus, &i.AuthorizationExpiry,
		&i.CreatedAt, &i.ModifiedAt)
	if err != nil {
		return nil, err
	}
	return &i, nil
}

func (r *recordsRepoPG) CreateVisit(ctx context.Context, v *Visit) error {
	v.ID = uuid.New()
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO visits (id, date, time, type, status, notes, zoom_link)
		VALUES ($1, $2, $3::time, $4, $5, $6, $7)
		RETURNING created_at, modified_at`,
		v.ID, v.Date, v.Time, v.Type, v.Status, v.Notes, v.ZoomLink,
	).Scan(&v.CreatedAt, &v.ModifiedAt)
}

func (r *recordsRepoPG) GetVisit(ctx context.Context, id uuid.UUID) (*Visit, error) {
	var v Visit
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT id, date, to_char(time, 'HH24:MI:SS'), type, status, notes, zoom_link,
			created_at, modified_at
		FROM visits WHERE id = $1`, id,
	).Scan(&v.ID, &v.Date, &v.Time, &v.Type, &v.Status, &v.Notes, &v.ZoomLink,
		&v.CreatedAt, &v.ModifiedAt)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *recordsRepoPG) ListIDs(ctx context.Context, kind string) ([]uuid.UUID, error) {
	table, ok := recordTables[kind]
	if !ok {
		return nil, fmt.Errorf("unknown record kind %q", kind)
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT id FROM `+table+` ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
