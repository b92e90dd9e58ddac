// Package repositories contains the database access layer.
package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all repository instances
type Repositories struct {
	UserRepository         *UserRepository
	ProfileRepository      *ProfileRepository
	RequestRepository      *RequestRepository
	NotificationRepository *NotificationRepository
	MessageRepository      *MessageRepository
}

// NewRepositories creates all repositories sharing one connection pool
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:         NewUserRepository(db),
		ProfileRepository:      NewProfileRepository(db),
		RequestRepository:      NewRequestRepository(db),
		NotificationRepository: NewNotificationRepository(db),
		MessageRepository:      NewMessageRepository(db),
	}
}
