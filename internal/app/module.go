package app

import (
	"log/slog"
	"os"

	"github.com/shandysiswandi/gomdc/internal/user"
)

func (a *App) initModules() {
	if a.config.GetBool("modules.user.enabled") {
		err := user.New(user.Dependency{
			Config: a.config,
			Router: a.router,
			Pool:   a.pool,
			ID:     a.snowflake,
		})
		if err != nil {
			slog.Error("failed to init module user", "error", err)
			os.Exit(1)
		}
	}
}
