// Package talents stores talents (talentos) on PostgreSQL.
package talents

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/talentdesk/internal/common"
	"github.com/dmitrijs2005/talentdesk/internal/dbx"
	"github.com/dmitrijs2005/talentdesk/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const selectTalent = `SELECT id, nombre_y_apellido, seniority, rol, estado, referente_lider_id, referente_mentor_id, created_at, updated_at FROM talentos`

func scanTalent(row dbx.Scanner) (*models.Talent, error) {
	var (
		t             models.Talent
		seniority     string
		estado        string
		lider, mentor sql.NullInt64
	)
	if err := row.Scan(&t.ID, &t.NombreYApellido, &seniority, &t.Rol, &estado, &lider, &mentor, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	t.Seniority = models.Seniority(seniority)
	t.Estado = models.TalentStatus(estado)
	t.ReferenteLiderID = nullableID(lider)
	t.ReferenteMentorID = nullableID(mentor)
	return &t, nil
}

func nullableID(n sql.NullInt64) *int64 {
	if !n.Valid {
		return nil
	}
	v := n.Int64
	return &v
}

func (r *PostgresRepository) Create(ctx context.Context, t *models.Talent) (*models.Talent, error) {
	query :=
		`INSERT INTO talentos (nombre_y_apellido, seniority, rol, estado, referente_lider_id, referente_mentor_id)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		t.NombreYApellido, string(t.Seniority), t.Rol, string(t.Estado), t.ReferenteLiderID, t.ReferenteMentorID).
		Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return t, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Talent, error) {
	t, err := scanTalent(r.db.QueryRowContext(ctx, selectTalent+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return t, nil
}

func (r *PostgresRepository) GetMany(ctx context.Context, ids []int64) ([]models.Talent, error) {
	if len(ids) == 0 {
		return []models.Talent{}, nil
	}
	query := selectTalent + ` WHERE id IN (` + dbx.Placeholders(1, len(ids)) + `)`
	return r.query(ctx, query, dbx.Int64Args(ids)...)
}

func (r *PostgresRepository) List(ctx context.Context, p ListParams) ([]models.Talent, error) {
	dir := "ASC"
	if p.Desc {
		dir = "DESC"
	}
	query := selectTalent + ` ORDER BY nombre_y_apellido ` + dir + `, id LIMIT $1 OFFSET $2`
	return r.query(ctx, query, p.Limit, p.Offset)
}

func (r *PostgresRepository) ListByReferentes(ctx context.Context, ids []int64) ([]models.Talent, error) {
	if len(ids) == 0 {
		return []models.Talent{}, nil
	}
	in := dbx.Placeholders(1, len(ids))
	query := selectTalent + ` WHERE referente_lider_id IN (` + in + `) OR referente_mentor_id IN (` + in + `) ORDER BY id`
	return r.query(ctx, query, dbx.Int64Args(ids)...)
}

func (r *PostgresRepository) query(ctx context.Context, query string, args ...any) ([]models.Talent, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]models.Talent, 0)
	for rows.Next() {
		t, err := scanTalent(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) Update(ctx context.Context, t *models.Talent) (*models.Talent, error) {
	query :=
		`UPDATE talentos SET nombre_y_apellido = $2, seniority = $3, rol = $4, estado = $5,
		     referente_lider_id = $6, referente_mentor_id = $7, updated_at = NOW()
		 WHERE id = $1
		 RETURNING created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		t.ID, t.NombreYApellido, string(t.Seniority), t.Rol, string(t.Estado), t.ReferenteLiderID, t.ReferenteMentorID).
		Scan(&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return t, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM talentos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
