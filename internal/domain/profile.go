package domain

import (
	"time"

	"github.com/google/uuid"
)

// AdminProfile is the acting administrator's identity, cached with a
// freshness window at the API boundary.
type AdminProfile struct {
	AdminID  uuid.UUID
	Email    string
	FullName string
	Role     string
	LoadedAt time.Time
}
