package employee

import (
	"time"

	"github.com/google/uuid"
)

const (
	GenderFemale = "female"
	GenderMale   = "male"
	GenderOther  = "other"
)

// Employee doubles as the login account: credentials and role live on the
// same row HR manages.
type Employee struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeNumber string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_employees_number"`
	Name           string    `gorm:"type:varchar(150);not null"`
	Email          string    `gorm:"type:varchar(200);not null;uniqueIndex:idx_employees_email"`
	PasswordHash   string    `gorm:"type:varchar(100);not null"`
	Gender         string    `gorm:"type:varchar(10);not null"`
	Department     string    `gorm:"type:varchar(100);not null"`
	Role           string    `gorm:"type:varchar(20);not null;default:'employee'"`
	JoiningDate    time.Time `gorm:"type:date;not null"`
	IsActive       bool      `gorm:"not null;default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
