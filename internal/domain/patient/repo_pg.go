package patient

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nsitapara/stellarcare/internal/domain/customfield"
	"github.com/nsitapara/stellarcare/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type patientRepoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &patientRepoPG{pool: pool}
}

func (r *patientRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

// relationTables maps a relation kind to its join table and record column.
var relationTables = map[RelationKind]struct {
	table  string
	column string
}{
	RelationStudies:      {"patient_studies", "study_id"},
	RelationTreatments:   {"patient_treatments", "treatment_id"},
	RelationInsurance:    {"patient_insurance", "insurance_id"},
	RelationAppointments: {"patient_appointments", "visit_id"},
}

const patientCols = `id, first, middle, last, date_of_birth, status, created_at, modified_at`

func (r *patientRepoPG) scanRow(row pgx.Row) (*Patient, error) {
	var p Patient
	err := row.Scan(&p.ID, &p.First, &p.Middle, &p.Last, &p.DateOfBirth, &p.Status,
		&p.CreatedAt, &p.ModifiedAt)
	return &p, err
}

// Create inserts the patient row, drawing the business ID from
// patient_id_seq. The sequence starts at 100000 and only moves forward, so
// concurrent creations cannot observe or reuse earlier values.
func (r *patientRepoPG) Create(ctx context.Context, p *Patient) error {
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO patients (id, first, middle, last, date_of_birth, status)
		VALUES (nextval('patient_id_seq'), $1, $2, $3, $4, $5)
		RETURNING id, created_at, modified_at`,
		p.First, p.Middle, p.Last, p.DateOfBirth, p.Status).
		Scan(&p.ID, &p.CreatedAt, &p.ModifiedAt)
}

func (r *patientRepoPG) GetByID(ctx context.Context, id int) (*Patient, error) {
	return r.scanRow(r.conn(ctx).QueryRow(ctx,
		`SELECT `+patientCols+` FROM patients WHERE id = $1`, id))
}

func (r *patientRepoPG) Update(ctx context.Context, p *Patient) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE patients
		SET first=$2, middle=$3, last=$4, date_of_birth=$5, status=$6, modified_at=NOW()
		WHERE id = $1`,
		p.ID, p.First, p.Middle, p.Last, p.DateOfBirth, p.Status)
	return err
}

// Delete removes the patient row. Custom-field values and join rows cascade;
// the shared address/study/treatment/insurance/visit rows are only detached.
func (r *patientRepoPG) Delete(ctx context.Context, id int) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM patients WHERE id = $1`, id)
	return err
}

func (r *patientRepoPG) List(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM patients`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+patientCols+` FROM patients ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*Patient
	for rows.Next() {
		p, err := r.scanRow(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	return items, total, rows.Err()
}

func (r *patientRepoPG) SearchByID(ctx context.Context, id int) ([]*Patient, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+patientCols+` FROM patients WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPatients(rows)
}

func (r *patientRepoPG) SearchByName(ctx context.Context, q string) ([]*Patient, error) {
	pattern := "%" + q + "%"
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+patientCols+` FROM patients
		WHERE first ILIKE $1 OR middle ILIKE $1 OR last ILIKE $1`,
		pattern)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPatients(rows)
}

func collectPatients(rows pgx.Rows) ([]*Patient, error) {
	var items []*Patient
	for rows.Next() {
		var p Patient
		if err := rows.Scan(&p.ID, &p.First, &p.Middle, &p.Last, &p.DateOfBirth, &p.Status,
			&p.CreatedAt, &p.ModifiedAt); err != nil {
			return nil, err
		}
		items = append(items, &p)
	}
	return items, rows.Err()
}

// ReplaceAddresses discards the patient's current address set and creates a
// fresh Address row per submitted tuple. Detached address rows are removed
// only once no other patient references them, so a shared row survives.
func (r *patientRepoPG) ReplaceAddresses(ctx context.Context, patientID int, addrs []AddressInput) error {
	conn := r.conn(ctx)
	rows, err := conn.Query(ctx, `
		DELETE FROM patient_addresses WHERE patient_id = $1 RETURNING address_id`,
		patientID)
	if err != nil {
		return fmt.Errorf("detach addresses: %w", err)
	}
	var detached []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return fmt.Errorf("detach addresses: %w", err)
		}
		detached = append(detached, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("detach addresses: %w", err)
	}

	if len(detached) > 0 {
		if _, err := conn.Exec(ctx, `
			DELETE FROM addresses a
			WHERE a.id = ANY($1)
			  AND NOT EXISTS (SELECT 1 FROM patient_addresses pa WHERE pa.address_id = a.id)`,
			detached); err != nil {
			return fmt.Errorf("discard orphaned addresses: %w", err)
		}
	}

	for _, a := range addrs {
		id := uuid.New()
		if _, err := conn.Exec(ctx, `
			INSERT INTO addresses (id, street, city, state, zip_code)
			VALUES ($1,$2,$3,$4,$5)`,
			id, a.Street, a.City, a.State, a.ZipCode); err != nil {
			return fmt.Errorf("create address: %w", err)
		}
		if _, err := conn.Exec(ctx, `
			INSERT INTO patient_addresses (patient_id, address_id) VALUES ($1, $2)`,
			patientID, id); err != nil {
			return fmt.Errorf("attach address: %w", err)
		}
	}
	return nil
}

func (r *patientRepoPG) AddressesByPatientIDs(ctx context.Context, ids []int) (map[int][]Address, error) {
	result := make(map[int][]Address, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT pa.patient_id, a.id, a.street, a.city, a.state, a.zip_code
		FROM patient_addresses pa
		JOIN addresses a ON a.id = pa.address_id
		WHERE pa.patient_id = ANY($1)`,
		ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var pid int
		var a Address
		if err := rows.Scan(&pid, &a.ID, &a.Street, &a.City, &a.State, &a.ZipCode); err != nil {
			return nil, err
		}
		result[pid] = append(result[pid], a)
	}
	return result, rows.Err()
}

func (r *patientRepoPG) CreateCustomFieldValue(ctx context.Context, v *CustomFieldValue) error {
	v.ID = uuid.New()
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO patient_custom_fields (id, patient_id, field_definition_id, value_text, value_number)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING created_at, modified_at`,
		v.ID, v.PatientID, v.FieldDefinitionID, v.ValueText, v.ValueNumber).
		Scan(&v.CreatedAt, &v.ModifiedAt)
}

func (r *patientRepoPG) DeleteCustomFieldValues(ctx context.Context, patientID int) error {
	_, err := r.conn(ctx).Exec(ctx,
		`DELETE FROM patient_custom_fields WHERE patient_id = $1`, patientID)
	return err
}

func (r *patientRepoPG) CustomFieldEntriesByPatientIDs(ctx context.Context, ids []int) (map[int][]CustomFieldEntry, error) {
	result := make(map[int][]CustomFieldEntry, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT v.patient_id, v.id, v.value_text, v.value_number,
			d.id, d.name, d.type, d.description, d.options, d.is_active, d.is_required,
			d.display_order, d.created_at, d.modified_at
		FROM patient_custom_fields v
		JOIN custom_field_definitions d ON d.id = v.field_definition_id
		WHERE v.patient_id = ANY($1)
		ORDER BY d.display_order, d.name`,
		ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var pid int
		var e CustomFieldEntry
		var d customfield.Definition
		if err := rows.Scan(&pid, &e.ID, &e.ValueText, &e.ValueNumber,
			&d.ID, &d.Name, &d.Type, &d.Description, &d.Options, &d.IsActive, &d.IsRequired,
			&d.DisplayOrder, &d.CreatedAt, &d.ModifiedAt); err != nil {
			return nil, err
		}
		e.FieldDefinition = &d
		result[pid] = append(result[pid], e)
	}
	return result, rows.Err()
}

// ReplaceRelation rewrites the join rows for one record relation. IDs are
// attached verbatim; existence is enforced only by the foreign key.
func (r *patientRepoPG) ReplaceRelation(ctx context.Context, patientID int, kind RelationKind, ids []uuid.UUID) error {
	rel, ok := relationTables[kind]
	if !ok {
		return fmt.Errorf("unknown relation kind: %s", kind)
	}
	conn := r.conn(ctx)
	if _, err := conn.Exec(ctx,
		fmt.Sprintf(`DELETE FROM %s WHERE patient_id = $1`, rel.table), patientID); err != nil {
		return err
	}
	for _, id := range ids {
		if _, err := conn.Exec(ctx,
			fmt.Sprintf(`INSERT INTO %s (patient_id, %s) VALUES ($1, $2)`, rel.table, rel.column),
			patientID, id); err != nil {
			return err
		}
	}
	return nil
}

func (r *patientRepoPG) RelationIDsByPatientIDs(ctx context.Context, ids []int, kind RelationKind) (map[int][]uuid.UUID, error) {
	rel, ok := relationTables[kind]
	if !ok {
		return nil, fmt.Errorf("unknown relation kind: %s", kind)
	}
	result := make(map[int][]uuid.UUID, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	rows, err := r.conn(ctx).Query(ctx,
		fmt.Sprintf(`SELECT patient_id, %s FROM %s WHERE patient_id = ANY($1)`, rel.column, rel.table),
		ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var pid int
		var rid uuid.UUID
		if err := rows.Scan(&pid, &rid); err != nil {
			return nil, err
		}
		result[pid] = append(result[pid], rid)
	}
	return result, rows.Err()
}
