package leavetype

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Category drives policy: gendered gating for maternity/paternity and the
// balance-check exemption for unpaid leave. Keying policy off the category
// instead of the type name means renaming a leave type never changes
// behavior.
const (
	CategoryStandard  = "standard"
	CategoryMaternity = "maternity"
	CategoryPaternity = "paternity"
	CategoryUnpaid    = "unpaid"
)

type LeaveType struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_leave_types_name"`
	Description string    `gorm:"type:text"`
	DefaultDays int       `gorm:"type:int;not null"`
	Color       string    `gorm:"type:varchar(7);not null;default:'#3B82F6'"`
	Category    string    `gorm:"type:varchar(20);not null;default:'standard'"`
	IsActive    bool      `gorm:"not null;default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DeriveCategory infers a category from a type name for requests that do
// not set one explicitly.
func DeriveCategory(name string) string {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "maternity"):
		return CategoryMaternity
	case strings.Contains(lower, "paternity"):
		return CategoryPaternity
	case strings.Contains(lower, "unpaid"):
		return CategoryUnpaid
	default:
		return CategoryStandard
	}
}
