package entities

import (
	"time"

	"github.com/google/uuid"
)

// Plan represents a subscription tier
type Plan string

const (
	PlanFree    Plan = "FREE"
	PlanPro     Plan = "PRO"
	PlanPremium Plan = "PREMIUM"
)

// UnlimitedInterviews is the sentinel limit for plans without a cap
const UnlimitedInterviews = -1

// planLimits maps each plan to its interview quota per billing period
var planLimits = map[Plan]int{
	PlanFree:    1,
	PlanPro:     10,
	PlanPremium: UnlimitedInterviews,
}

// InterviewLimit returns the interview quota for the plan
func (p Plan) InterviewLimit() int {
	if limit, ok := planLimits[p]; ok {
		return limit
	}
	return planLimits[PlanFree]
}

// SupportsVoiceMode reports whether the plan allows voice interviews
func (p Plan) SupportsVoiceMode() bool {
	return p == PlanPro || p == PlanPremium
}

// Subscription tracks a user's plan and usage. Billing itself lives with the
// payment provider; only the entitlement snapshot is stored here.
type Subscription struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID          uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	Plan            Plan      `gorm:"type:varchar(20);not null;default:'FREE'" json:"plan"`
	InterviewsUsed  int       `gorm:"not null;default:0" json:"interviews_used"`
	InterviewsLimit int       `gorm:"not null;default:1" json:"interviews_limit"`
	RenewsAt        *time.Time `json:"renews_at,omitempty"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for Subscription
func (Subscription) TableName() string {
	return "subscriptions"
}

// NewSubscription creates a free-tier subscription for a user
func NewSubscription(userID uuid.UUID) *Subscription {
	return &Subscription{
		ID:              uuid.New(),
		UserID:          userID,
		Plan:            PlanFree,
		InterviewsLimit: PlanFree.InterviewLimit(),
	}
}

// CanStartInterview reports whether the user has quota left
func (s *Subscription) CanStartInterview() bool {
	limit := s.Plan.InterviewLimit()
	return limit == UnlimitedInterviews || s.InterviewsUsed < limit
}
