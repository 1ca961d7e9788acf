package app

import (
	"database/sql"

	"github.com/quadrodev/quadro/internal/events"
	"github.com/quadrodev/quadro/internal/models"
	auditservice "github.com/quadrodev/quadro/internal/services/audit"
	boardservice "github.com/quadrodev/quadro/internal/services/board"
	columnservice "github.com/quadrodev/quadro/internal/services/column"
	projectservice "github.com/quadrodev/quadro/internal/services/project"
	taskservice "github.com/quadrodev/quadro/internal/services/task"
)

// App holds all application services and provides dependency injection.
// This is the main application container that manages service lifecycles.
type App struct {
	db          *sql.DB
	eventClient events.Publisher

	ProjectService projectservice.Service
	ColumnService  columnservice.Service
	TaskService    taskservice.Service
	BoardService   boardservice.Service
	AuditService   auditservice.Service
}

// New creates a new App with all services initialized.
// This is the single entry point for creating the application container.
// seeds is the canonical column set installed into every new project.
func New(db *sql.DB, eventClient events.Publisher, seeds []models.ColumnSeed) *App {
	audits := auditservice.NewService(db)
	columns := columnservice.NewService(db, eventClient, seeds)

	return &App{
		db:             db,
		eventClient:    eventClient,
		ProjectService: projectservice.NewService(db, columns, eventClient),
		ColumnService:  columns,
		TaskService:    taskservice.NewService(db, audits, eventClient),
		BoardService:   boardservice.NewService(db),
		AuditService:   audits,
	}
}

// DB returns the underlying database handle
func (a *App) DB() *sql.DB {
	return a.db
}

// Close releases application resources
func (a *App) Close() error {
	return a.db.Close()
}
