package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Question is one practice interview question for a target country.
// Difficulty runs 1 (warm-up) to 3 (probing).
type Question struct {
	ID         uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CountryID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"country_id"`
	Text       string         `gorm:"type:text;not null" json:"text"`
	Category   string         `gorm:"type:varchar(50);not null;index" json:"category"`
	Difficulty int            `gorm:"not null;default:1" json:"difficulty"`
	Tags       datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"tags"`
	IsActive   bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for Question
func (Question) TableName() string {
	return "questions"
}
