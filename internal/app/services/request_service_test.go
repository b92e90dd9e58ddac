package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/skillbridge/skillbridge/internal/app/models"
	"github.com/skillbridge/skillbridge/internal/app/models/dto"
	"github.com/skillbridge/skillbridge/internal/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRequestStore struct {
	requests map[int64]*models.Request
	nextID   int64
	statuses map[int64]models.RequestStatus
	deleted  []int64
}

func newFakeRequestStore() *fakeRequestStore {
	return &fakeRequestStore{
		requests: make(map[int64]*models.Request),
		statuses: make(map[int64]models.RequestStatus),
		nextID:   1,
	}
}

func (f *fakeRequestStore) Create(_ context.Context, request *models.Request) error {
	for _, existing := range f.requests {
		if existing.StudentID == request.StudentID &&
			existing.MentorID == request.MentorID &&
			existing.SkillProfileID == request.SkillProfileID &&
			existing.Status == models.RequestStatusPending {
			return apperrors.ErrDuplicatePendingExists
		}
	}
	request.ID = f.nextID
	request.Status = models.RequestStatusPending
	f.nextID++
	f.requests[request.ID] = request
	return nil
}

func (f *fakeRequestStore) GetByID(_ context.Context, id int64) (*models.Request, error) {
	request, ok := f.requests[id]
	if !ok {
		return nil, apperrors.ErrRequestNotFound
	}
	return request, nil
}

func (f *fakeRequestStore) ListByUser(_ context.Context, userID int64, status, role string) ([]*models.Request, error) {
	var result []*models.Request
	for _, request := range f.requests {
		if role == "student" && request.StudentID != userID {
			continue
		}
		if role == "mentor" && request.MentorID != userID {
			continue
		}
		if role == "" && !request.IsParty(userID) {
			continue
		}
		if status != "" && string(request.Status) != status {
			continue
		}
		result = append(result, request)
	}
	return result, nil
}

func (f *fakeRequestStore) UpdateStatus(_ context.Context, id int64, status models.RequestStatus) error {
	request, ok := f.requests[id]
	if !ok {
		return apperrors.ErrRequestNotFound
	}
	request.Status = status
	f.statuses[id] = status
	return nil
}

func (f *fakeRequestStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.requests[id]; !ok {
		return apperrors.ErrRequestNotFound
	}
	delete(f.requests, id)
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeUserStore struct {
	users map[int64]*models.User
}

func (f *fakeUserStore) GetByID(_ context.Context, id int64) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

type fakeProfileGetter struct {
	profiles map[int64]*models.SkillProfile
}

func (f *fakeProfileGetter) GetByID(_ context.Context, id int64) (*models.SkillProfile, error) {
	profile, ok := f.profiles[id]
	if !ok {
		return nil, apperrors.ErrProfileNotFound
	}
	return profile, nil
}

type fakeNotificationWriter struct {
	created []*models.Notification
	err     error
}

func (f *fakeNotificationWriter) Create(_ context.Context, notification *models.Notification) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, notification)
	return nil
}

func newRequestFixture() (*RequestService, *fakeRequestStore, *fakeNotificationWriter) {
	requests := newFakeRequestStore()
	users := &fakeUserStore{users: map[int64]*models.User{
		1: {ID: 1, FirstName: "Ada", LastName: "Student"},
		2: {ID: 2, FirstName: "Grace", LastName: "Mentor"},
	}}
	profiles := &fakeProfileGetter{profiles: map[int64]*models.SkillProfile{
		10: {ID: 10, UserID: 2, Title: "Jazz Guitar"},
	}}
	notifications := &fakeNotificationWriter{}

	service := NewRequestService(requests, users, profiles, notifications, zerolog.Nop())
	return service, requests, notifications
}

func TestRequestCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects self request", func(t *testing.T) {
		service, _, _ := newRequestFixture()

		_, err := service.Create(ctx, 2, dto.CreateRequestRequest{MentorID: 2, SkillProfileID: 10})

		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("rejects profile owned by someone else", func(t *testing.T) {
		service, _, _ := newRequestFixture()

		_, err := service.Create(ctx, 2, dto.CreateRequestRequest{MentorID: 1, SkillProfileID: 10})

		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("rejects unknown mentor", func(t *testing.T) {
		service, _, _ := newRequestFixture()

		_, err := service.Create(ctx, 1, dto.CreateRequestRequest{MentorID: 99, SkillProfileID: 10})

		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	})

	t.Run("creates pending request and notifies mentor", func(t *testing.T) {
		service, _, notifications := newRequestFixture()

		result, err := service.Create(ctx, 1, dto.CreateRequestRequest{MentorID: 2, SkillProfileID: 10, Message: "hi"})

		require.NoError(t, err)
		assert.Equal(t, string(models.RequestStatusPending), result.Status)
		assert.Equal(t, "Ada Student", result.StudentName)
		assert.Equal(t, "Jazz Guitar", result.SkillProfileTitle)

		require.Len(t, notifications.created, 1)
		assert.Equal(t, int64(2), notifications.created[0].UserID)
		assert.Equal(t, models.NotificationTypeRequest, notifications.created[0].Type)
		require.NotNil(t, notifications.created[0].RelatedRequestID)
		assert.Equal(t, result.ID, *notifications.created[0].RelatedRequestID)
	})

	t.Run("duplicate pending surfaces as conflict", func(t *testing.T) {
		service, _, _ := newRequestFixture()

		_, err := service.Create(ctx, 1, dto.CreateRequestRequest{MentorID: 2, SkillProfileID: 10})
		require.NoError(t, err)

		_, err = service.Create(ctx, 1, dto.CreateRequestRequest{MentorID: 2, SkillProfileID: 10})
		assert.ErrorIs(t, err, apperrors.ErrDuplicatePendingExists)
	})

	t.Run("notification failure does not fail the request", func(t *testing.T) {
		service, _, notifications := newRequestFixture()
		notifications.err = assert.AnError

		result, err := service.Create(ctx, 1, dto.CreateRequestRequest{MentorID: 2, SkillProfileID: 10})

		require.NoError(t, err)
		assert.NotZero(t, result.ID)
	})
}

func TestRequestTransition(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*RequestService, *fakeRequestStore, *fakeNotificationWriter, int64) {
		service, requests, notifications := newRequestFixture()
		result, err := service.Create(ctx, 1, dto.CreateRequestRequest{MentorID: 2, SkillProfileID: 10})
		require.NoError(t, err)
		notifications.created = nil
		return service, requests, notifications, result.ID
	}

	t.Run("only the mentor may transition", func(t *testing.T) {
		service, _, _, requestID := setup(t)

		_, err := service.Transition(ctx, requestID, 1, models.RequestActionAccept)

		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})

	t.Run("accept moves to accepted and notifies both parties", func(t *testing.T) {
		service, requests, notifications, requestID := setup(t)

		result, err := service.Transition(ctx, requestID, 2, models.RequestActionAccept)

		require.NoError(t, err)
		assert.Equal(t, string(models.RequestStatusAccepted), result.Status)
		assert.Equal(t, models.RequestStatusAccepted, requests.statuses[requestID])

		require.Len(t, notifications.created, 2)
		assert.Equal(t, models.NotificationTypeAcceptance, notifications.created[0].Type)
		assert.Equal(t, int64(1), notifications.created[0].UserID)
		assert.Equal(t, models.NotificationTypeSystem, notifications.created[1].Type)
		assert.Equal(t, int64(2), notifications.created[1].UserID)
	})

	t.Run("reject notifies the student and deletes the request", func(t *testing.T) {
		service, requests, notifications, requestID := setup(t)

		_, err := service.Transition(ctx, requestID, 2, models.RequestActionReject)

		require.NoError(t, err)
		assert.Contains(t, requests.deleted, requestID)

		require.Len(t, notifications.created, 1)
		assert.Equal(t, models.NotificationTypeRejection, notifications.created[0].Type)
		assert.Equal(t, int64(1), notifications.created[0].UserID)
	})

	t.Run("accepted request cannot transition again", func(t *testing.T) {
		service, _, _, requestID := setup(t)

		_, err := service.Transition(ctx, requestID, 2, models.RequestActionAccept)
		require.NoError(t, err)

		_, err = service.Transition(ctx, requestID, 2, models.RequestActionReject)
		assert.ErrorIs(t, err, apperrors.ErrRequestNotPending)
	})

	t.Run("unknown request", func(t *testing.T) {
		service, _, _ := newRequestFixture()

		_, err := service.Transition(ctx, 404, 2, models.RequestActionAccept)

		assert.ErrorIs(t, err, apperrors.ErrRequestNotFound)
	})
}

func TestRequestList(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects unknown status", func(t *testing.T) {
		service, _, _ := newRequestFixture()

		_, err := service.List(ctx, 1, dto.ListRequestsQuery{Status: "rejected"})

		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("rejects unknown role", func(t *testing.T) {
		service, _, _ := newRequestFixture()

		_, err := service.List(ctx, 1, dto.ListRequestsQuery{Role: "observer"})

		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("status filter is case insensitive", func(t *testing.T) {
		service, _, _ := newRequestFixture()
		_, err := service.Create(ctx, 1, dto.CreateRequestRequest{MentorID: 2, SkillProfileID: 10})
		require.NoError(t, err)

		result, err := service.List(ctx, 1, dto.ListRequestsQuery{Status: "pending", Role: "student"})

		require.NoError(t, err)
		assert.Len(t, result, 1)
	})
}

func TestRequestDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("third parties may not delete", func(t *testing.T) {
		service, _, _ := newRequestFixture()
		result, err := service.Create(ctx, 1, dto.CreateRequestRequest{MentorID: 2, SkillProfileID: 10})
		require.NoError(t, err)

		err = service.Delete(ctx, result.ID, 42)

		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})

	t.Run("either party may delete", func(t *testing.T) {
		service, requests, _ := newRequestFixture()
		result, err := service.Create(ctx, 1, dto.CreateRequestRequest{MentorID: 2, SkillProfileID: 10})
		require.NoError(t, err)

		require.NoError(t, service.Delete(ctx, result.ID, 1))
		assert.Contains(t, requests.deleted, result.ID)
	})
}
