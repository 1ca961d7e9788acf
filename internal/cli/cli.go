package cli

import (
	"context"
	"fmt"

	"github.com/quadrodev/quadro/internal/app"
	"github.com/quadrodev/quadro/internal/config"
	"github.com/quadrodev/quadro/internal/database"
	"github.com/quadrodev/quadro/internal/events"
	"github.com/quadrodev/quadro/internal/testutil"
)

// CLI represents the CLI application context
type CLI struct {
	App         *app.App
	Config      *config.Config
	eventClient events.Publisher
	ctx         context.Context
	injected    bool
}

// GetCLIFromContext returns the CLI for one command invocation. Tests inject
// a prebuilt app through testutil.TestAppKey; otherwise the full stack is
// initialized as in NewCLI.
func GetCLIFromContext(ctx context.Context) (*CLI, error) {
	if testApp, ok := ctx.Value(testutil.TestAppKey).(*app.App); ok {
		return &CLI{App: testApp, ctx: ctx, injected: true}, nil
	}
	return NewCLI(ctx)
}

// NewCLI initializes the CLI with database and optional daemon connection
func NewCLI(ctx context.Context) (*CLI, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	db, err := database.InitDB(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Try to connect to daemon (optional - silent fallback)
	var eventClient events.Publisher
	client, err := events.NewClient(cfg.SocketPath)
	if err == nil {
		if err := client.Connect(ctx); err == nil {
			eventClient = client
		}
	}

	application := app.New(db, eventClient, cfg.DefaultColumns())

	return &CLI{
		App:         application,
		Config:      cfg,
		eventClient: eventClient,
		ctx:         ctx,
	}, nil
}

// Close cleans up CLI resources. Injected test apps are owned by the test,
// so their database stays open.
func (c *CLI) Close() error {
	if c.injected {
		return nil
	}
	if c.eventClient != nil {
		if err := c.eventClient.Close(); err != nil {
			return err
		}
	}
	return c.App.Close()
}
