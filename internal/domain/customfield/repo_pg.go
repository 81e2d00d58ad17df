package customfield

import (
	"context"

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

type definitionRepoPG struct{ pool *pgxpool.Pool }

func NewDefinitionRepoPG(pool *pgxpool.Pool) DefinitionRepository {
	return &definitionRepoPG{pool: pool}
}

func (r *definitionRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const definitionCols = `id, name, type, description, options, is_active, is_required, display_order,
	created_at, modified_at`

func (r *definitionRepoPG) scanRow(row pgx.Row) (*Definition, error) {
	var d Definition
	err := row.Scan(&d.ID, &d.Name, &d.Type, &d.Description, &d.Options, &d.IsActive, &d.IsRequired,
		&d.DisplayOrder, &d.CreatedAt, &d.ModifiedAt)
	return &d, err
}

func (r *definitionRepoPG) Create(ctx context.Context, d *Definition) error {
	d.ID = uuid.New()
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO custom_field_definitions (id, name, type, description, options, is_active, is_required, display_order)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING created_at, modified_at`,
		d.ID, d.Name, d.Type, d.Description, d.Options, d.IsActive, d.IsRequired, d.DisplayOrder).
		Scan(&d.CreatedAt, &d.ModifiedAt)
}

func (r *definitionRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Definition, error) {
	return r.scanRow(r.conn(ctx).QueryRow(ctx,
		`SELECT `+definitionCols+` FROM custom_field_definitions WHERE id = $1`, id))
}

func (r *definitionRepoPG) Update(ctx context.Context, d *Definition) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE custom_field_definitions
		SET name=$2, type=$3, description=$4, options=$5, is_active=$6, is_required=$7,
			display_order=$8, modified_at=NOW()
		WHERE id = $1`,
		d.ID, d.Name, d.Type, d.Description, d.Options, d.IsActive, d.IsRequired, d.DisplayOrder)
	return err
}

func (r *definitionRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM custom_field_definitions WHERE id = $1`, id)
	return err
}

func (r *definitionRepoPG) List(ctx context.Context) ([]*Definition, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+definitionCols+` FROM custom_field_definitions ORDER BY display_order, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*Definition
	for rows.Next() {
		d, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	return items, rows.Err()
}

func (r *definitionRepoPG) AssignToUser(ctx context.Context, defID, userID uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO user_custom_fields (user_id, field_definition_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING`,
		userID, defID)
	return err
}

func (r *definitionRepoPG) UnassignFromUser(ctx context.Context, defID, userID uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx,
		`DELETE FROM user_custom_fields WHERE user_id = $1 AND field_definition_id = $2`,
		userID, defID)
	return err
}

func (r *definitionRepoPG) ListAssigned(ctx context.Context, userID uuid.UUID) ([]*Definition, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT d.id, d.name, d.type, d.description, d.options, d.is_active, d.is_required,
			d.display_order, d.created_at, d.modified_at
		FROM custom_field_definitions d
		JOIN user_custom_fields uf ON uf.field_definition_id = d.id
		WHERE uf.user_id = $1
		ORDER BY d.display_order, d.name`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*Definition
	for rows.Next() {
		d, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	return items, rows.Err()
}
