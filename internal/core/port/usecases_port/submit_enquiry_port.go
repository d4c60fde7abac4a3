package usecases_port

import (
	"context"

	"github.com/keertiraj-bot/realstate/internal/core/domain"
)

type SubmitEnquiryUseCase interface {
	Execute(ctx context.Context, cmd domain.EnquiryCommand) (*domain.SubmissionResult, error)
}

type SubmitContactUseCase interface {
	Execute(ctx context.Context, cmd domain.ContactCommand) (*domain.SubmissionResult, error)
}
