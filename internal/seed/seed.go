// Package seed loads a small demo data set: three referentes, two talents
// and three interactions.
package seed

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/talentdesk/internal/dbx"
	"github.com/dmitrijs2005/talentdesk/internal/server/models"
	"github.com/dmitrijs2005/talentdesk/internal/server/repositories/repomanager"
)

// Result holds the ids that were created.
type Result struct {
	Referentes   []int64
	Talents      []int64
	Interactions []int64
}

// Run inserts the demo data in one transaction. With a nil db (the in-memory
// store) the inserts run directly.
func Run(ctx context.Context, db *sql.DB, m repomanager.RepositoryManager, now time.Time) (*Result, error) {
	var res *Result
	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		res, err = insert(ctx, tx, m, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func insert(ctx context.Context, tx dbx.DBTX, m repomanager.RepositoryManager, now time.Time) (*Result, error) {
	res := &Result{}

	refs := m.Referentes(tx)
	var refIDs [3]int64
	for i, name := range []string{"Juan Pérez", "María Gómez", "Carlos Rodríguez"} {
		r, err := refs.Create(ctx, &models.Referente{NombreYApellido: name})
		if err != nil {
			return nil, fmt.Errorf("seed referente %q: %w", name, err)
		}
		refIDs[i] = r.ID
	}
	res.Referentes = refIDs[:]
	lider1, mentor1, lider2 := refIDs[0], refIDs[1], refIDs[2]

	talents := []models.Talent{
		{
			NombreYApellido:   "Ana Martínez",
			Seniority:         models.SeniorityJunior,
			Rol:               "Frontend Developer",
			Estado:            models.TalentActive,
			ReferenteLiderID:  &lider1,
			ReferenteMentorID: &mentor1,
		},
		{
			NombreYApellido:   "Luis Fernández",
			Seniority:         models.SenioritySenior,
			Rol:               "Backend Developer",
			Estado:            models.TalentActive,
			ReferenteLiderID:  &lider2,
			ReferenteMentorID: &mentor1,
		},
	}
	for i := range talents {
		t, err := m.Talents(tx).Create(ctx, &talents[i])
		if err != nil {
			return nil, fmt.Errorf("seed talent %q: %w", talents[i].NombreYApellido, err)
		}
		res.Talents = append(res.Talents, t.ID)
	}
	ana, luis := res.Talents[0], res.Talents[1]

	interactions := []models.Interaction{
		{TalentoID: &ana, TipoDeInteraccion: "Reunión", Detalle: "Reunión inicial con el líder", Estado: models.InteractionStarted},
		{TalentoID: &ana, TipoDeInteraccion: "Feedback", Detalle: "Feedback sobre primer proyecto", Estado: models.InteractionInProgress},
		{TalentoID: &luis, TipoDeInteraccion: "Reunión", Detalle: "Reunión de seguimiento", Estado: models.InteractionFinished},
	}
	for i := range interactions {
		interactions[i].Fecha = now
		in, err := m.Interactions(tx).Create(ctx, &interactions[i])
		if err != nil {
			return nil, fmt.Errorf("seed interaction: %w", err)
		}
		res.Interactions = append(res.Interactions, in.ID)
	}

	return res, nil
}
