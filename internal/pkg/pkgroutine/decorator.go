package pkgroutine

import (
	"context"

	"github.com/shandysiswandi/gomdc/internal/pkg/pkglog"
	"github.com/shandysiswandi/gomdc/internal/pkg/pkgtenant"
)

// contextTask carries copies of the submitter's diagnostic fields and tenant
// taken at submission time.
type contextTask struct {
	task      Task
	fields    pkglog.Fields // nil when the submitter had no fields
	tenant    pkgtenant.Info
	hasTenant bool
}

// PropagateContext is the default pool Decorator.
//
// It snapshots the diagnostic fields and the tenant of ctx immediately, so
// anything the submitter does to its own context afterwards (including
// clearing it when the request ends) is invisible to the task. When the task
// runs it gets its own scope seeded from the snapshot, and that scope is
// cleared once the task returns or panics.
func PropagateContext(ctx context.Context, t Task) Task {
	info, ok := pkgtenant.Get(ctx)
	return &contextTask{
		task:      t,
		fields:    pkglog.Snapshot(ctx),
		tenant:    info,
		hasTenant: ok,
	}
}

func (c *contextTask) Run(ctx context.Context) error {
	if c.fields != nil {
		ctx = pkglog.Restore(ctx, c.fields)
		if c.hasTenant {
			ctx = pkgtenant.Set(ctx, c.tenant)
		} else {
			ctx = pkgtenant.Clear(ctx)
		}
	}
	defer pkglog.Clear(ctx)

	return c.task.Run(ctx)
}
