package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/skillbridge/skillbridge/internal/app/models"
	"github.com/skillbridge/skillbridge/internal/app/models/dto"
	"github.com/skillbridge/skillbridge/internal/pkg/apperrors"
)

// requestStore is the slice of the request repository RequestService depends on
type requestStore interface {
	Create(ctx context.Context, request *models.Request) error
	GetByID(ctx context.Context, id int64) (*models.Request, error)
	ListByUser(ctx context.Context, userID int64, status, role string) ([]*models.Request, error)
	UpdateStatus(ctx context.Context, id int64, status models.RequestStatus) error
	Delete(ctx context.Context, id int64) error
}

// requestUserStore resolves the parties of a request
type requestUserStore interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

// requestProfileStore resolves the targeted skill profile
type requestProfileStore interface {
	GetByID(ctx context.Context, id int64) (*models.SkillProfile, error)
}

// notificationWriter fans lifecycle events out to the parties
type notificationWriter interface {
	Create(ctx context.Context, notification *models.Notification) error
}

// RequestService handles the mentorship request lifecycle
type RequestService struct {
	requests      requestStore
	users         requestUserStore
	profiles      requestProfileStore
	notifications notificationWriter
	logger        zerolog.Logger
}

// NewRequestService creates a new RequestService
func NewRequestService(
	requests requestStore,
	users requestUserStore,
	profiles requestProfileStore,
	notifications notificationWriter,
	logger zerolog.Logger,
) *RequestService {
	return &RequestService{
		requests:      requests,
		users:         users,
		profiles:      profiles,
		notifications: notifications,
		logger:        logger,
	}
}

// Create opens a pending mentorship request and notifies the mentor
func (s *RequestService) Create(ctx context.Context, studentID int64, req dto.CreateRequestRequest) (*dto.RequestResponse, error) {
	if studentID == req.MentorID {
		return nil, apperrors.NewValidationError("you cannot send a mentorship request to yourself")
	}

	student, err := s.users.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	mentor, err := s.users.GetByID(ctx, req.MentorID)
	if err != nil {
		return nil, err
	}

	profile, err := s.profiles.GetByID(ctx, req.SkillProfileID)
	if err != nil {
		return nil, err
	}
	if profile.UserID != req.MentorID {
		return nil, apperrors.NewValidationError("skill profile does not belong to the given mentor")
	}

	request := &models.Request{
		StudentID:      studentID,
		MentorID:       req.MentorID,
		SkillProfileID: req.SkillProfileID,
		Message:        strings.TrimSpace(req.Message),
	}

	if err := s.requests.Create(ctx, request); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("requestId", request.ID).
		Int64("studentId", studentID).
		Int64("mentorId", req.MentorID).
		Msg("Mentorship request created")

	s.notify(ctx, &models.Notification{
		UserID:           mentor.ID,
		Title:            "New mentorship request",
		Message:          fmt.Sprintf("%s wants to learn %s from you", student.FullName(), profile.Title),
		Type:             models.NotificationTypeRequest,
		RelatedRequestID: &request.ID,
	})

	request.Student = student
	request.Mentor = mentor
	request.SkillProfile = profile

	resp := dto.ToRequestResponse(request)
	return &resp, nil
}

// List returns the requests the user is a party to, newest first
func (s *RequestService) List(ctx context.Context, userID int64, query dto.ListRequestsQuery) ([]dto.RequestResponse, error) {
	role := strings.ToLower(strings.TrimSpace(query.Role))
	if role != "" && role != "student" && role != "mentor" {
		return nil, apperrors.NewValidationError("role must be student or mentor")
	}

	status := strings.ToUpper(strings.TrimSpace(query.Status))
	switch status {
	case "", string(models.RequestStatusPending), string(models.RequestStatusAccepted):
	default:
		return nil, apperrors.NewValidationError("status must be pending or accepted")
	}

	requests, err := s.requests.ListByUser(ctx, userID, status, role)
	if err != nil {
		return nil, err
	}

	results := make([]dto.RequestResponse, 0, len(requests))
	for _, request := range requests {
		results = append(results, dto.ToRequestResponse(request))
	}

	return results, nil
}

// Transition applies an accept or reject to a pending request. Only the
// mentor may transition; both outcomes notify the student, and a reject
// removes the request entirely.
func (s *RequestService) Transition(ctx context.Context, requestID, userID int64, action models.RequestAction) (*dto.RequestResponse, error) {
	request, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if request.MentorID != userID {
		return nil, apperrors.NewForbiddenError("only the mentor can accept or reject a request")
	}
	if request.Status != models.RequestStatusPending {
		return nil, apperrors.ErrRequestNotPending
	}

	switch action {
	case models.RequestActionAccept:
		return s.accept(ctx, request)
	case models.RequestActionReject:
		return s.reject(ctx, request)
	default:
		return nil, apperrors.NewValidationError("action must be accept or reject")
	}
}

// Delete removes a request. Either party may delete; messages cascade away
// and notifications keep a NULLed reference.
func (s *RequestService) Delete(ctx context.Context, requestID, userID int64) error {
	request, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return err
	}

	if !request.IsParty(userID) {
		return apperrors.NewForbiddenError("only a party to the request can delete it")
	}

	if err := s.requests.Delete(ctx, requestID); err != nil {
		return err
	}

	s.logger.Info().Int64("requestId", requestID).Int64("userId", userID).Msg("Mentorship request deleted")
	return nil
}

func (s *RequestService) accept(ctx context.Context, request *models.Request) (*dto.RequestResponse, error) {
	if err := s.requests.UpdateStatus(ctx, request.ID, models.RequestStatusAccepted); err != nil {
		return nil, err
	}
	request.Status = models.RequestStatusAccepted

	s.logger.Info().Int64("requestId", request.ID).Msg("Mentorship request accepted")

	mentorName := request.Mentor.FullName()
	s.notify(ctx, &models.Notification{
		UserID:           request.StudentID,
		Title:            "Request accepted",
		Message:          fmt.Sprintf("%s accepted your mentorship request", mentorName),
		Type:             models.NotificationTypeAcceptance,
		RelatedRequestID: &request.ID,
	})
	s.notify(ctx, &models.Notification{
		UserID:           request.MentorID,
		Title:            "Mentorship started",
		Message:          fmt.Sprintf("You accepted the request from %s", request.Student.FullName()),
		Type:             models.NotificationTypeSystem,
		RelatedRequestID: &request.ID,
	})

	resp := dto.ToRequestResponse(request)
	return &resp, nil
}

func (s *RequestService) reject(ctx context.Context, request *models.Request) (*dto.RequestResponse, error) {
	// Notify before deleting so the FK still resolves at insert time;
	// the delete then nulls the reference.
	s.notify(ctx, &models.Notification{
		UserID:           request.StudentID,
		Title:            "Request declined",
		Message:          fmt.Sprintf("%s declined your mentorship request", request.Mentor.FullName()),
		Type:             models.NotificationTypeRejection,
		RelatedRequestID: &request.ID,
	})

	if err := s.requests.Delete(ctx, request.ID); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("requestId", request.ID).Msg("Mentorship request rejected and removed")

	resp := dto.ToRequestResponse(request)
	return &resp, nil
}

// notify writes a notification, degrading to a log entry on failure. A
// failed fan-out never rolls back the lifecycle change that caused it.
func (s *RequestService) notify(ctx context.Context, notification *models.Notification) {
	if err := s.notifications.Create(ctx, notification); err != nil {
		s.logger.Error().Err(err).
			Int64("userId", notification.UserID).
			Str("type", string(notification.Type)).
			Msg("Failed to create notification")
	}
}
