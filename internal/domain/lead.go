package domain

import (
	"time"
)

// LeadStatus is the qualification-funnel stage of a lead. It is written only
// from call-outcome derivation results, apart from the ATTEMPTED mark applied
// after the platform confirms an outbound call was created.
type LeadStatus string

const (
	LeadStatusNew          LeadStatus = "NEW"
	LeadStatusAttempted    LeadStatus = "ATTEMPTED"
	LeadStatusContacted    LeadStatus = "CONTACTED"
	LeadStatusQualifying   LeadStatus = "QUALIFYING"
	LeadStatusQualified    LeadStatus = "QUALIFIED"
	LeadStatusDisqualified LeadStatus = "DISQUALIFIED"
)

// Lead represents a property owner imported by the tenant for outreach
type Lead struct {
	ID        string     `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	OrgID     string     `json:"org_id" gorm:"type:uuid;index;not null"`
	Name      string     `json:"name" gorm:"type:varchar(255);not null"`
	Phone     string     `json:"phone" gorm:"type:varchar(32);not null"`
	Address   *string    `json:"address" gorm:"type:text"`
	Status    LeadStatus `json:"status" gorm:"type:varchar(16);default:NEW"`
	LastCall  *time.Time `json:"last_call"`
	CreatedAt time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName sets the table name for Lead
func (Lead) TableName() string {
	return "leads"
}

// ImportLeadRequest is one entry of a bulk lead import
type ImportLeadRequest struct {
	Name    string  `json:"name"`
	Phone   string  `json:"phone"`
	Address *string `json:"address,omitempty"`
}
