package model

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID             uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Email          string    `gorm:"uniqueIndex;not null"`
	Username       string    `gorm:"uniqueIndex;not null"`
	Name           string    `gorm:"not null"`
	HashedPassword string    `gorm:"not null"`
	Role           string    `gorm:"not null;default:'employee';check:role IN ('admin', 'employee')"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
}

// User roles
const (
	RoleAdmin    = "admin"    // full access to every record and status
	RoleEmployee = "employee" // restricted to their own turn in the assignee queue
)
