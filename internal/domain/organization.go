package domain

import (
	"time"
)

// Organization represents a tenant whose phone number, script and voice
// settings parameterize every call made or answered on its behalf.
type Organization struct {
	ID                string      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ClerkUserID       string      `json:"clerk_user_id" gorm:"type:varchar(255);uniqueIndex:uni_organizations_clerk_user_id;not null"`
	Name              string      `json:"name" gorm:"type:varchar(255);not null"`
	Email             string      `json:"email" gorm:"type:varchar(255)"`
	PhoneNumber       string      `json:"phone_number" gorm:"type:varchar(32);uniqueIndex:uni_organizations_phone_number"`
	OpeningLine       string      `json:"opening_line" gorm:"type:text"`
	QualificationQs   StringArray `json:"qualification_qs" gorm:"type:jsonb"`
	VoiceConfig       JSONB       `json:"voice_config" gorm:"type:jsonb"`
	Plan              string      `json:"plan" gorm:"type:varchar(32);default:core"`
	VapiPhoneNumberID string      `json:"vapi_phone_number_id" gorm:"type:varchar(255)"`
	SubscriptionID    string      `json:"subscription_id" gorm:"type:varchar(255)"`
	CreatedAt         time.Time   `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt         time.Time   `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName sets the table name for Organization
func (Organization) TableName() string {
	return "organizations"
}

// SelectedModel returns the tenant's LLM choice, defaulting to the fast tier.
func (o *Organization) SelectedModel() string {
	if o.VoiceConfig != nil {
		if m, ok := o.VoiceConfig["model"].(string); ok && m != "" {
			return m
		}
	}
	return "gpt-4o-mini"
}

// ToolsEnabled reports whether in-call tools should be attached.
// Tools are on unless the tenant explicitly disabled them.
func (o *Organization) ToolsEnabled() bool {
	if o.VoiceConfig != nil {
		if v, ok := o.VoiceConfig["useTools"].(bool); ok {
			return v
		}
	}
	return true
}

// UpdateOrganizationRequest represents the settings-dashboard update payload
type UpdateOrganizationRequest struct {
	Name            *string      `json:"name,omitempty"`
	Email           *string      `json:"email,omitempty"`
	OpeningLine     *string      `json:"openingLine,omitempty"`
	QualificationQs *StringArray `json:"qualificationQs,omitempty"`
	VoiceConfig     *JSONB       `json:"voiceConfig,omitempty"`
}
