package dto

import (
	"time"

	"github.com/skillbridge/skillbridge/internal/app/models"
)

// CreateRequestRequest represents the payload to create a mentorship request
type CreateRequestRequest struct {
	MentorID       int64  `json:"mentorId" binding:"required,min=1"`
	SkillProfileID int64  `json:"skillProfileId" binding:"required,min=1"`
	Message        string `json:"message" binding:"max=1000"`
}

// ListRequestsQuery holds the optional list filters
type ListRequestsQuery struct {
	Status string `form:"status"`
	Role   string `form:"role"` // student | mentor
}

// RequestResponse represents a mentorship request populated for display
type RequestResponse struct {
	ID                int64     `json:"id"`
	StudentID         int64     `json:"studentId"`
	StudentName       string    `json:"studentName,omitempty"`
	MentorID          int64     `json:"mentorId"`
	MentorName        string    `json:"mentorName,omitempty"`
	SkillProfileID    int64     `json:"skillProfileId"`
	SkillProfileTitle string    `json:"skillProfileTitle,omitempty"`
	Message           string    `json:"message,omitempty"`
	Status            string    `json:"status"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// ToRequestResponse converts a request model to its response shape
func ToRequestResponse(request *models.Request) RequestResponse {
	if request == nil {
		return RequestResponse{}
	}

	resp := RequestResponse{
		ID:             request.ID,
		StudentID:      request.StudentID,
		MentorID:       request.MentorID,
		SkillProfileID: request.SkillProfileID,
		Message:        request.Message,
		Status:         string(request.Status),
		CreatedAt:      request.CreatedAt,
		UpdatedAt:      request.UpdatedAt,
	}

	if request.Student != nil {
		resp.StudentName = request.Student.FullName()
	}
	if request.Mentor != nil {
		resp.MentorName = request.Mentor.FullName()
	}
	if request.SkillProfile != nil {
		resp.SkillProfileTitle = request.SkillProfile.Title
	}

	return resp
}
