package usecase

import (
	"context"
	"errors"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/shandysiswandi/gomdc/internal/pkg/pkgerror"
	"github.com/shandysiswandi/gomdc/internal/pkg/pkgroutine"
	"github.com/shandysiswandi/gomdc/internal/pkg/pkgtenant"
	"github.com/shandysiswandi/gomdc/internal/pkg/pkguid"
	"github.com/shandysiswandi/gomdc/internal/user/entity"
)

type Store interface {
	Save(ctx context.Context, user entity.User) error
	Get(ctx context.Context, id int64) (entity.User, error)
	List(ctx context.Context) ([]entity.User, error)
}

type Mailer interface {
	SendWelcome(ctx context.Context, user entity.User) error
}

// Runner schedules work off the request goroutine. Tasks see the diagnostic
// fields and tenant of the ctx they were submitted with.
type Runner interface {
	Submit(ctx context.Context, t pkgroutine.Task) error
}

type Clock interface {
	Now() time.Time
}

type Dependency struct {
	Store  Store
	Mailer Mailer
	Runner Runner
	Clock  Clock
	ID     pkguid.NumberID
}

type Usecase struct {
	store  Store
	mailer Mailer
	runner Runner
	clock  Clock
	id     pkguid.NumberID
}

func New(dep Dependency) *Usecase {
	clock := dep.Clock
	if clock == nil {
		clock = realClock{}
	}

	return &Usecase{
		store:  dep.Store,
		mailer: dep.Mailer,
		runner: dep.Runner,
		clock:  clock,
		id:     dep.ID,
	}
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}

func (u *Usecase) Create(ctx context.Context, in CreateInput) (entity.User, error) {
	if u.store == nil || u.id == nil || u.runner == nil || u.mailer == nil {
		return entity.User{}, pkgerror.NewServer(errors.New("missing dependency"))
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return entity.User{}, pkgerror.NewInvalidInput(errors.New("name is required"))
	}

	email := strings.TrimSpace(in.Email)
	if _, err := mail.ParseAddress(email); err != nil {
		return entity.User{}, pkgerror.NewInvalidInput(errors.New("email is invalid"))
	}

	slog.InfoContext(ctx, "create user requested", "name", name, "email", email)

	user := entity.User{
		ID:        u.id.Generate(),
		Name:      name,
		Email:     email,
		CreatedAt: u.clock.Now().UTC(),
	}
	if info, ok := pkgtenant.Get(ctx); ok {
		user.CreatedBy = info.UserName
	}

	err := u.runner.Submit(ctx, pkgroutine.TaskFunc(func(ctx context.Context) error {
		return u.mailer.SendWelcome(ctx, user)
	}))
	if err != nil {
		return entity.User{}, mapRunnerErr(err)
	}

	if err := u.store.Save(ctx, user); err != nil {
		return entity.User{}, normalizeErr(err)
	}

	slog.InfoContext(ctx, "user saved", "user_id", user.ID)

	return user, nil
}

func (u *Usecase) Get(ctx context.Context, id int64) (entity.User, error) {
	if id <= 0 {
		return entity.User{}, pkgerror.NewInvalidInput(errors.New("invalid user id"))
	}

	user, err := u.store.Get(ctx, id)
	if err != nil {
		return entity.User{}, mapStoreErr(err)
	}

	return user, nil
}

func (u *Usecase) List(ctx context.Context) ([]entity.User, error) {
	users, err := u.store.List(ctx)
	if err != nil {
		return nil, normalizeErr(err)
	}

	return users, nil
}

func mapRunnerErr(err error) error {
	if errors.Is(err, pkgroutine.ErrRejected) || errors.Is(err, pkgroutine.ErrStopped) {
		return pkgerror.NewUnavailable(err)
	}
	return normalizeErr(err)
}

func mapStoreErr(err error) error {
	if errors.Is(err, pkgerror.ErrNotFound) {
		return pkgerror.NewBusiness("user not found", pkgerror.CodeNotFound)
	}
	return normalizeErr(err)
}

func normalizeErr(err error) error {
	var perr *pkgerror.Error
	if errors.As(err, &perr) {
		return perr
	}
	return pkgerror.NewServer(err)
}
