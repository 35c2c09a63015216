package services

import (
	"context"
	"errors"

	"onboarding_backend/internal/logger"
	"onboarding_backend/internal/models"
	"onboarding_backend/internal/repositories"
	"onboarding_backend/internal/services/dto"

	"gorm.io/gorm"
)

// Session copy shown to the applicant. The wording is part of the product:
// applicants get these lines verbatim on the page.
const (
	MsgMissingToken     = "Invalid upload link. Please check your WhatsApp message."
	MsgInvalidToken     = "Invalid or expired upload link."
	MsgAlreadyCompleted = "Documents already uploaded for this application."
)

// SessionService resolves the state of an upload session from its token.
type SessionService interface {
	// Validate runs the token lookup and returns the gated view state. It is
	// read-only and never fails outward: lookup problems become the Invalid
	// state, not an error.
	Validate(ctx context.Context, db *gorm.DB, query *dto.SessionQuery) *dto.SessionResponse
}

type sessionService struct {
	applicantRepo repositories.ApplicantRepository
}

func NewSessionService(applicantRepo repositories.ApplicantRepository) SessionService {
	return &sessionService{
		applicantRepo: applicantRepo,
	}
}

func (s *sessionService) Validate(ctx context.Context, db *gorm.DB, query *dto.SessionQuery) *dto.SessionResponse {
	session := models.NewUploadSession(query.Token)

	// A missing token short-circuits: no lookup is attempted.
	if query.Token == "" {
		_ = session.Transition(models.SessionInvalid)
		return &dto.SessionResponse{
			State:   session.State,
			Message: MsgMissingToken,
		}
	}

	applicant, err := s.applicantRepo.FindByUploadToken(db, query.Token)
	if err != nil {
		if !errors.Is(err, repositories.ErrApplicantNotFound) {
			logger.CtxWithError(ctx, "applicant lookup failed", err)
		}
		_ = session.Transition(models.SessionInvalid)
		return &dto.SessionResponse{
			State:   session.State,
			Message: MsgInvalidToken,
		}
	}

	if applicant.DocumentsUploaded {
		_ = session.Transition(models.SessionAlreadyCompleted)
		return &dto.SessionResponse{
			State:   session.State,
			Message: MsgAlreadyCompleted,
		}
	}

	_ = session.Transition(models.SessionAwaitingSubmission)
	return &dto.SessionResponse{
		State:         session.State,
		ApplicantName: applicant.DisplayName(query.Name),
	}
}
