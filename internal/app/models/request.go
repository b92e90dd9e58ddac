package models

import "time"

// RequestStatus represents the lifecycle state of a mentorship request.
// REJECTED is never persisted: a reject transition notifies the student and
// deletes the record.
type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "PENDING"
	RequestStatusAccepted RequestStatus = "ACCEPTED"
)

// RequestAction is a transition requested by the mentor
type RequestAction string

const (
	RequestActionAccept RequestAction = "accept"
	RequestActionReject RequestAction = "reject"
)

// Request links a student, a mentor and a skill profile
type Request struct {
	ID             int64         `json:"id" db:"id"`
	StudentID      int64         `json:"studentId" db:"student_id"`
	MentorID       int64         `json:"mentorId" db:"mentor_id"`
	SkillProfileID int64         `json:"skillProfileId" db:"skill_profile_id"`
	Message        string        `json:"message" db:"message"`
	Status         RequestStatus `json:"status" db:"status"`
	CreatedAt      time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time     `json:"updatedAt" db:"updated_at"`

	// Related entities
	Student      *User         `json:"student,omitempty"`
	Mentor       *User         `json:"mentor,omitempty"`
	SkillProfile *SkillProfile `json:"skillProfile,omitempty"`
}

// IsParty reports whether the user is the request's student or mentor
func (r *Request) IsParty(userID int64) bool {
	return r.StudentID == userID || r.MentorID == userID
}

// OtherParty returns the counterpart of the given user on this request.
// The caller must already be a party.
func (r *Request) OtherParty(userID int64) int64 {
	if r.StudentID == userID {
		return r.MentorID
	}
	return r.StudentID
}
