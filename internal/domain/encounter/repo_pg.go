package encounter

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Elijah-Pyers/Final-Project-MVP/internal/platform/apperror"
	"github.com/Elijah-Pyers/Final-Project-MVP/internal/platform/db"
)

type repoPG struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

type querier interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

func (r *repoPG) conn(ctx context.Context) querier {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const encCols = `id, patient_id, provider_id, chief_complaint, vitals, status, created_at, updated_at`

func (r *repoPG) Create(ctx context.Context, enc *Encounter) error {
	err := r.conn(ctx).QueryRow(ctx, `
		INSERT INTO encounters (patient_id, provider_id, chief_complaint, vitals, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`,
		enc.PatientID, enc.ProviderID, enc.ChiefComplaint, enc.Vitals, enc.Status,
	).Scan(&enc.ID, &enc.CreatedAt, &enc.UpdatedAt)
	if db.IsForeignKeyViolation(err) {
		return apperror.Validation("patient_id and provider_id must reference existing records", "patient_id", "provider_id")
	}
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id int64) (*Encounter, error) {
	return scanEnc(r.conn(ctx).QueryRow(ctx,
		`SELECT `+encCols+` FROM encounters WHERE id = $1`, id))
}

func (r *repoPG) List(ctx context.Context, f Filter, limit, offset int) ([]*Encounter, int, error) {
	where, args := buildFilter(f)

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM encounters`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	rows, err := r.conn(ctx).Query(ctx, fmt.Sprintf(
		`SELECT %s FROM encounters%s ORDER BY id DESC LIMIT $%d OFFSET $%d`,
		encCols, where, len(args)-1, len(args)), args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	return collectEncs(rows, total)
}

func buildFilter(f Filter) (string, []interface{}) {
	var clauses []string
	var args []interface{}
	if f.PatientID > 0 {
		args = append(args, f.PatientID)
		clauses = append(clauses, fmt.Sprintf("patient_id = $%d", len(args)))
	}
	if f.ProviderID > 0 {
		args = append(args, f.ProviderID)
		clauses = append(clauses, fmt.Sprintf("provider_id = $%d", len(args)))
	}
	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func (r *repoPG) Update(ctx context.Context, enc *Encounter) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE encounters SET chief_complaint=$2, vitals=$3, status=$4, updated_at=NOW()
		WHERE id = $1`,
		enc.ID, enc.ChiefComplaint, enc.Vitals, enc.Status,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperror.NotFound("encounter")
	}
	return nil
}

func (r *repoPG) Delete(ctx context.Context, id int64) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM encounters WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperror.NotFound("encounter")
	}
	return nil
}

func scanEnc(row pgx.Row) (*Encounter, error) {
	var enc Encounter
	err := row.Scan(&enc.ID, &enc.PatientID, &enc.ProviderID, &enc.ChiefComplaint,
		&enc.Vitals, &enc.Status, &enc.CreatedAt, &enc.UpdatedAt)
	if db.IsNoRows(err) {
		return nil, apperror.NotFound("encounter")
	}
	if err != nil {
		return nil, err
	}
	return &enc, nil
}

func collectEncs(rows pgx.Rows, total int) ([]*Encounter, int, error) {
	var encs []*Encounter
	for rows.Next() {
		var enc Encounter
		if err := rows.Scan(&enc.ID, &enc.PatientID, &enc.ProviderID, &enc.ChiefComplaint,
			&enc.Vitals, &enc.Status, &enc.CreatedAt, &enc.UpdatedAt); err != nil {
			return nil, 0, err
		}
		encs = append(encs, &enc)
	}
	return encs, total, rows.Err()
}
