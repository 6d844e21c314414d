package inbound

import (
	"context"

	"github.com/shandysiswandi/gomdc/internal/pkg/pkgrouter"
	"github.com/shandysiswandi/gomdc/internal/user/entity"
	"github.com/shandysiswandi/gomdc/internal/user/usecase"
)

type uc interface {
	Create(ctx context.Context, in usecase.CreateInput) (entity.User, error)
	Get(ctx context.Context, id int64) (entity.User, error)
	List(ctx context.Context) ([]entity.User, error)
}

func RegisterHTTPEndpoint(r *pkgrouter.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.POST("/users", end.Create)
	r.GET("/users", end.List)
	r.GET("/users/:id", end.Get)
}
