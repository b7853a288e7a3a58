package call

import (
	"encoding/json"
)

// Webhook payload structures for the voice platform's server messages.
// One envelope carries every event kind; the type field discriminates.

// Event type discriminator values
const (
	EventAssistantRequest = "assistant-request"
	EventToolCalls        = "tool-calls"
	EventEndOfCallReport  = "end-of-call-report"
)

// WebhookEnvelope is the outer webhook body
type WebhookEnvelope struct {
	Message WebhookMessage `json:"message"`
}

// WebhookMessage is the event payload inside the envelope
type WebhookMessage struct {
	Type         string            `json:"type"`
	Call         *CallPayload      `json:"call,omitempty"`
	ToolCalls    []ToolCallRequest `json:"toolCalls,omitempty"`
	Analysis     *AnalysisPayload  `json:"analysis,omitempty"`
	Transcript   string            `json:"transcript,omitempty"`
	RecordingURL string            `json:"recordingUrl,omitempty"`
}

// CallPayload describes the call an event belongs to
type CallPayload struct {
	ID              string           `json:"id"`
	Status          string           `json:"status"`
	PhoneNumber     string           `json:"phone_number"`
	DurationSeconds float64          `json:"durationSeconds"`
	Customer        *CustomerPayload `json:"customer,omitempty"`
	Metadata        *CallMetadata    `json:"metadata,omitempty"`
	Assistant       *AssistantRef    `json:"assistant,omitempty"`
	RecordingURL    string           `json:"recordingUrl,omitempty"`
}

// CustomerPayload is the far-end party of the call
type CustomerPayload struct {
	Number string `json:"number"`
	Name   string `json:"name,omitempty"`
}

// AssistantRef carries the assistant echo on call events; only the metadata
// we planted at synthesis time is read back.
type AssistantRef struct {
	Metadata *CallMetadata `json:"metadata,omitempty"`
}

// CallMetadata is the correlation payload planted in the assistant spec.
// Outbound calls carry a lead id; inbound calls do not.
type CallMetadata struct {
	OrgID     string `json:"orgId"`
	LeadID    string `json:"leadId,omitempty"`
	LeadPhone string `json:"leadPhone,omitempty"`
	CallType  string `json:"callType,omitempty"`
}

// CorrelationMetadata resolves the metadata echo, preferring the assistant
// copy over the call-level copy (platforms differ on where they echo it).
func (c *CallPayload) CorrelationMetadata() *CallMetadata {
	if c == nil {
		return nil
	}
	if c.Assistant != nil && c.Assistant.Metadata != nil {
		return c.Assistant.Metadata
	}
	return c.Metadata
}

// AnalysisPayload is the platform's post-call analysis block
type AnalysisPayload struct {
	Summary        string              `json:"summary,omitempty"`
	StructuredData *StructuredAnalysis `json:"structuredData,omitempty"`
}

// StructuredAnalysis is the structured extraction declared in the assistant
// spec's analysis schema. Booleans are pointers: absent and false are
// different signals to the decision tables.
type StructuredAnalysis struct {
	CallerIntent         string `json:"caller_intent,omitempty"`
	Qualified            *bool  `json:"qualified,omitempty"`
	ObjectionType        string `json:"objection_type,omitempty"`
	AppointmentBooked    *bool  `json:"appointment_booked,omitempty"`
	FollowUpNeeded       *bool  `json:"follow_up_needed,omitempty"`
	PropertyTypeInterest string `json:"property_type_interest,omitempty"`
	LanguageUsed         string `json:"language_used,omitempty"`
}

// ToolCallRequest is one entry of a mid-call tool invocation batch.
// Parameters stay raw so one undecodable entry cannot fail the batch decode.
type ToolCallRequest struct {
	ID       string           `json:"id"`
	Function ToolCallFunction `json:"function"`
}

// ToolCallFunction names the function and carries its raw parameters
type ToolCallFunction struct {
	Name       string          `json:"name"`
	Parameters json.RawMessage `json:"parameters,omitempty"`
}

// ToolCallResult maps one batch entry back to its result string
type ToolCallResult struct {
	ToolCallID string `json:"toolCallId"`
	Result     string `json:"result"`
}
