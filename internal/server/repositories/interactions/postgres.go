// Package interactions stores talent interactions (interacciones).
package interactions

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

const selectInteraction = `SELECT id, talento_id, tipo_de_interaccion, fecha, detalle, estado, created_at, updated_at FROM interacciones`

func scanInteraction(row dbx.Scanner) (*models.Interaction, error) {
	var (
		i       models.Interaction
		talento sql.NullInt64
		estado  string
	)
	if err := row.Scan(&i.ID, &talento, &i.TipoDeInteraccion, &i.Fecha, &i.Detalle, &estado, &i.CreatedAt, &i.UpdatedAt); err != nil {
		return nil, err
	}
	if talento.Valid {
		v := talento.Int64
		i.TalentoID = &v
	}
	i.Estado = models.InteractionStatus(estado)
	return &i, nil
}

func (r *PostgresRepository) Create(ctx context.Context, i *models.Interaction) (*models.Interaction, error) {
	query :=
		`INSERT INTO interacciones (talento_id, tipo_de_interaccion, fecha, detalle, estado)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		i.TalentoID, i.TipoDeInteraccion, i.Fecha, i.Detalle, string(i.Estado)).
		Scan(&i.ID, &i.CreatedAt, &i.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return i, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Interaction, error) {
	i, err := scanInteraction(r.db.QueryRowContext(ctx, selectInteraction+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return i, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]models.Interaction, error) {
	return r.query(ctx, selectInteraction+` ORDER BY fecha DESC, id DESC`)
}

func (r *PostgresRepository) ListByTalents(ctx context.Context, ids []int64) ([]models.Interaction, error) {
	if len(ids) == 0 {
		return []models.Interaction{}, nil
	}
	query := selectInteraction + ` WHERE talento_id IN (` + dbx.Placeholders(1, len(ids)) + `) ORDER BY fecha DESC, id DESC`
	return r.query(ctx, query, dbx.Int64Args(ids)...)
}

func (r *PostgresRepository) query(ctx context.Context, query string, args ...any) ([]models.Interaction, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]models.Interaction, 0)
	for rows.Next() {
		i, err := scanInteraction(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, *i)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) Update(ctx context.Context, i *models.Interaction) (*models.Interaction, error) {
	query :=
		`UPDATE interacciones SET talento_id = $2, tipo_de_interaccion = $3, fecha = $4, detalle = $5, estado = $6, updated_at = NOW()
		 WHERE id = $1
		 RETURNING created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		i.ID, i.TalentoID, i.TipoDeInteraccion, i.Fecha, i.Detalle, string(i.Estado)).
		Scan(&i.CreatedAt, &i.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return i, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM interacciones WHERE id = $1`, id)
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
