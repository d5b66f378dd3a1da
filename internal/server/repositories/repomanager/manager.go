package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/talentdesk/internal/dbx"
	"github.com/dmitrijs2005/talentdesk/internal/server/repositories/interactions"
	"github.com/dmitrijs2005/talentdesk/internal/server/repositories/referentes"
	"github.com/dmitrijs2005/talentdesk/internal/server/repositories/talents"
	"github.com/dmitrijs2005/talentdesk/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DBTX, so the same code
// path runs against the pool or inside a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Talents(db dbx.DBTX) talents.Repository
	Referentes(db dbx.DBTX) referentes.Repository
	Interactions(db dbx.DBTX) interactions.Repository
}
