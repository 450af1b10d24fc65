// Package usecase holds one type per business action. Every use case that
// mutates an entity, or creates one under a parent, fetches first and only
// mutates when the fetch succeeds.
package usecase

import (
	"context"
	"strings"

	"storytasks/internal/errs"
	"storytasks/internal/models"
)

// UseCase is a single business operation with a fixed request and reply.
type UseCase[Req, Rep any] interface {
	Execute(ctx context.Context, req Req) (Rep, error)
}

// Guarded runs lookup and, only if it succeeds, passes its result to mutate.
// A lookup failure is returned unchanged and mutate is never called.
func Guarded[F, R any](
	ctx context.Context,
	lookup func(context.Context) (F, error),
	mutate func(context.Context, F) (R, error),
) (R, error) {
	found, err := lookup(ctx)
	if err != nil {
		var zero R
		return zero, err
	}
	return mutate(ctx, found)
}

// cleanName trims name and validates it.
func cleanName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if err := models.ValidateName(name); err != nil {
		return "", errs.NewInvalidArgs(err.Error())
	}
	return name, nil
}

func checkStatus(status *models.Status) error {
	if status != nil && !status.Valid() {
		return errs.NewInvalidArgs("status must be 'Incomplete' or 'Complete'")
	}
	return nil
}
