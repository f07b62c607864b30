package holiday

import (
	"time"

	"github.com/google/uuid"
)

type PublicHoliday struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string    `gorm:"type:varchar(100);not null"`
	Date        time.Time `gorm:"type:date;not null;uniqueIndex:idx_public_holidays_date"`
	Description string    `gorm:"type:text"`
	IsActive    bool      `gorm:"not null;default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
