// Package referentes stores technical sponsors (referentes_tecnicos).
package referentes

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

const selectReferente = `SELECT id, nombre_y_apellido, created_at, updated_at FROM referentes_tecnicos`

func scanReferente(row dbx.Scanner) (*models.Referente, error) {
	r := &models.Referente{}
	if err := row.Scan(&r.ID, &r.NombreYApellido, &r.CreatedAt, &r.UpdatedAt); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *PostgresRepository) Create(ctx context.Context, ref *models.Referente) (*models.Referente, error) {
	query :=
		`INSERT INTO referentes_tecnicos (nombre_y_apellido)
		 VALUES ($1)
		 RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query, ref.NombreYApellido).Scan(&ref.ID, &ref.CreatedAt, &ref.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return ref, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Referente, error) {
	ref, err := scanReferente(r.db.QueryRowContext(ctx, selectReferente+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return ref, nil
}

func (r *PostgresRepository) GetMany(ctx context.Context, ids []int64) ([]models.Referente, error) {
	if len(ids) == 0 {
		return []models.Referente{}, nil
	}
	query := selectReferente + ` WHERE id IN (` + dbx.Placeholders(1, len(ids)) + `)`
	return r.query(ctx, query, dbx.Int64Args(ids)...)
}

func (r *PostgresRepository) List(ctx context.Context) ([]models.Referente, error) {
	return r.query(ctx, selectReferente+` ORDER BY id`)
}

func (r *PostgresRepository) query(ctx context.Context, query string, args ...any) ([]models.Referente, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]models.Referente, 0)
	for rows.Next() {
		ref, err := scanReferente(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, *ref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) Update(ctx context.Context, ref *models.Referente) (*models.Referente, error) {
	query :=
		`UPDATE referentes_tecnicos SET nombre_y_apellido = $2, updated_at = NOW()
		 WHERE id = $1
		 RETURNING created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query, ref.ID, ref.NombreYApellido).Scan(&ref.CreatedAt, &ref.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return ref, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM referentes_tecnicos WHERE id = $1`, id)
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
