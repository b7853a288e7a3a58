package domain

import (
	"time"
)

// CallOutcome is a call-level classification tag, distinct from lead status
type CallOutcome string

const (
	CallOutcomeBooked        CallOutcome = "booked"
	CallOutcomeQualified     CallOutcome = "qualified"
	CallOutcomeHasAgent      CallOutcome = "has_agent"
	CallOutcomeNotInterested CallOutcome = "not_interested"
	CallOutcomeContacted     CallOutcome = "contacted"
)

// CallLog is the immutable record of one completed call. Rows are append-only;
// no update path exists anywhere in the service.
type CallLog struct {
	ID             string       `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	OrgID          string       `json:"org_id" gorm:"type:uuid;index;not null"`
	LeadID         *string      `json:"lead_id" gorm:"type:uuid;index"`
	ExternalCallID string       `json:"external_call_id" gorm:"type:varchar(255);index"`
	Status         string       `json:"status" gorm:"type:varchar(64)"`
	Outcome        *CallOutcome `json:"outcome" gorm:"type:varchar(32)"`
	Duration       int          `json:"duration" gorm:"not null;default:0"`
	Summary        string       `json:"summary" gorm:"type:text"`
	Transcript     string       `json:"transcript" gorm:"type:text"`
	RecordingURL   *string      `json:"recording_url" gorm:"type:text"`
	CreatedAt      time.Time    `json:"created_at" gorm:"autoCreateTime"`
}

// TableName sets the table name for CallLog
func (CallLog) TableName() string {
	return "call_logs"
}
