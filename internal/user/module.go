package user

import (
	"github.com/shandysiswandi/gomdc/internal/pkg/pkgconfig"
	"github.com/shandysiswandi/gomdc/internal/pkg/pkgrouter"
	"github.com/shandysiswandi/gomdc/internal/pkg/pkgroutine"
	"github.com/shandysiswandi/gomdc/internal/pkg/pkguid"
	"github.com/shandysiswandi/gomdc/internal/user/inbound"
	"github.com/shandysiswandi/gomdc/internal/user/notify"
	"github.com/shandysiswandi/gomdc/internal/user/store"
	"github.com/shandysiswandi/gomdc/internal/user/usecase"
)

const defaultMailFrom = "no-reply@gomdc.local"

type Dependency struct {
	Config pkgconfig.Config
	Pool   *pkgroutine.Pool
	Router *pkgrouter.Router
	ID     pkguid.NumberID
}

// New wires the user module onto dep.Router. The module owns no resources of
// its own: the pool it schedules emails on is stopped by the app.
func New(dep Dependency) error {
	if dep.ID == nil {
		ids, err := pkguid.NewSnowflake()
		if err != nil {
			return err
		}
		dep.ID = ids
	}

	from := defaultMailFrom
	if dep.Config != nil {
		if v := dep.Config.GetString("modules.user.mail_from"); v != "" {
			from = v
		}
	}

	uc := usecase.New(usecase.Dependency{
		Store:  store.NewInMemoryStore(),
		Mailer: notify.NewMailer(from),
		Runner: dep.Pool,
		ID:     dep.ID,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}
