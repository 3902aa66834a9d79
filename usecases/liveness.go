package usecases

import (
	"context"
)

type livenessRepository interface {
	Liveness(ctx context.Context) error
}

type LivenessUsecase struct {
	collaborator livenessRepository
}

func (u *LivenessUsecase) Liveness(ctx context.Context) error {
	return u.collaborator.Liveness(ctx)
}
