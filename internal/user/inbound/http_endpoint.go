package inbound

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/shandysiswandi/gomdc/internal/pkg/pkgerror"
	"github.com/shandysiswandi/gomdc/internal/pkg/pkgrouter"
	"github.com/shandysiswandi/gomdc/internal/user/entity"
	"github.com/shandysiswandi/gomdc/internal/user/usecase"
)

const maxBodyBytes = 1 << 20

type HTTPEndpoint struct {
	uc uc
}

func (h *HTTPEndpoint) Create(ctx context.Context, r *http.Request) (any, error) {
	if r.Body == nil {
		return nil, pkgerror.NewInvalidFormat()
	}

	var req CreateUserRequest
	if err := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		return nil, pkgerror.NewInvalidFormat()
	}

	user, err := h.uc.Create(ctx, usecase.CreateInput{Name: req.Name, Email: req.Email})
	if err != nil {
		return nil, err
	}

	return CreateUserResponse{User: toHTTPUser(user)}, nil
}

func (h *HTTPEndpoint) Get(ctx context.Context, _ *http.Request) (any, error) {
	id, err := strconv.ParseInt(pkgrouter.GetParam(ctx, "id"), 10, 64)
	if err != nil {
		return nil, pkgerror.NewInvalidInput(errors.New("invalid user id"))
	}

	user, err := h.uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	return toHTTPUser(user), nil
}

func (h *HTTPEndpoint) List(ctx context.Context, _ *http.Request) (any, error) {
	users, err := h.uc.List(ctx)
	if err != nil {
		return nil, err
	}

	resp := make(ListUsersResponse, 0, len(users))
	for _, user := range users {
		resp = append(resp, toHTTPUser(user))
	}

	return resp, nil
}

func toHTTPUser(user entity.User) User {
	return User{
		ID:        strconv.FormatInt(user.ID, 10),
		Name:      user.Name,
		Email:     user.Email,
		CreatedBy: user.CreatedBy,
		CreatedAt: user.CreatedAt,
	}
}
