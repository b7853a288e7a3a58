package assistant

import (
	"github.com/thavon/voice-lead-service/internal/domain"
	"github.com/thavon/voice-lead-service/internal/prompts"
)

// Voice stack defaults shared by every generated spec
const (
	transcriberProvider = "deepgram"
	transcriberModel    = "nova-3"
	transcriberLanguage = "en-US"

	modelProvider    = "openai"
	modelTemperature = 0.3
	modelMaxTokens   = 150
	fallbackModel    = "gpt-3.5-turbo"

	voiceProvider = "11labs"
	voiceID       = "cjVigY5qzO86Huf0OWal"
	voiceModel    = "eleven_turbo_v2_5"

	environment = "production"
)

// Builder synthesizes per-call assistant specifications from tenant
// configuration. All methods are pure value constructors; the single tenant
// lookup on the inbound path happens before the builder is invoked.
type Builder struct {
	prompts *prompts.Generator
}

// NewBuilder creates an assistant spec builder
func NewBuilder(promptGen *prompts.Generator) *Builder {
	return &Builder{prompts: promptGen}
}

// BuildInbound builds the assistant spec for an inbound call answered on the
// tenant's number.
func (b *Builder) BuildInbound(org *domain.Organization) *Spec {
	spec := b.buildBase(org, b.prompts.InboundSystemPrompt(org))
	spec.FirstMessage = org.OpeningLine
	spec.Metadata = &Metadata{
		OrgID:          org.ID,
		SubscriptionID: org.SubscriptionID,
		Environment:    environment,
		CallType:       string(domain.CallDirectionInbound),
	}
	return spec
}

// BuildOutbound builds the assistant spec for an outbound call to a known
// lead. Lead id and phone ride in metadata so the end-of-call report can
// update the lead without a lookup.
func (b *Builder) BuildOutbound(org *domain.Organization, lead *domain.Lead) *Spec {
	spec := b.buildBase(org, b.prompts.OutboundSystemPrompt(org, lead))
	spec.FirstMessage = b.prompts.OutboundFirstMessage(org, lead)
	spec.Metadata = &Metadata{
		OrgID:          org.ID,
		LeadID:         lead.ID,
		LeadPhone:      lead.Phone,
		SubscriptionID: org.SubscriptionID,
		Environment:    environment,
		CallType:       string(domain.CallDirectionOutbound),
	}
	return spec
}

// BuildTestCall builds the simplified spec used by the dashboard test-call
// endpoint. No tools and no analysis plan; the call never produces a report
// that updates leads.
func (b *Builder) BuildTestCall(org *domain.Organization) *Spec {
	return &Spec{
		FirstMessage: org.OpeningLine,
		Model: ModelConfig{
			Provider:    modelProvider,
			Model:       "gpt-4o-mini",
			Temperature: modelTemperature,
			Messages: []Message{
				{Role: "system", Content: b.prompts.TestCallSystemPrompt(org)},
			},
		},
		Voice: &Voice{
			Provider: voiceProvider,
			VoiceID:  voiceID,
			Model:    voiceModel,
		},
		Metadata: &Metadata{
			OrgID:       org.ID,
			Environment: "test",
			CallType:    "outbound-test",
		},
	}
}

// Fallback builds the spec returned when an inbound number resolves to no
// tenant. The call is answered with an apology rather than dropped.
func (b *Builder) Fallback() *Spec {
	return &Spec{
		FirstMessage: prompts.PromptFallbackFirstMessage,
		Model: ModelConfig{
			Provider: modelProvider,
			Model:    fallbackModel,
			Messages: []Message{
				{Role: "system", Content: prompts.PromptFallbackSystem},
			},
		},
	}
}

// buildBase assembles the voice stack shared by inbound and outbound calls
func (b *Builder) buildBase(org *domain.Organization, systemPrompt string) *Spec {
	var tools []Tool
	if org.ToolsEnabled() {
		tools = toolSchemas()
	}

	return &Spec{
		Transcriber: &Transcriber{
			Provider:    transcriberProvider,
			Model:       transcriberModel,
			Language:    transcriberLanguage,
			SmartFormat: true,
		},
		Model: ModelConfig{
			Provider:    modelProvider,
			Model:       org.SelectedModel(),
			Temperature: modelTemperature,
			MaxTokens:   modelMaxTokens,
			Messages: []Message{
				{Role: "system", Content: systemPrompt},
			},
			Tools: tools,
		},
		Voice: &Voice{
			Provider: voiceProvider,
			VoiceID:  voiceID,
			Model:    voiceModel,
		},
		StartSpeakingPlan: &StartSpeakingPlan{
			WaitSeconds:          0.4,
			SmartEndpointingPlan: &SmartEndpointingPlan{Provider: "livekit"},
		},
		StopSpeakingPlan: &StopSpeakingPlan{
			NumWords:       0,
			VoiceSeconds:   0.2,
			BackoffSeconds: 1.0,
		},
		AnalysisPlan: &AnalysisPlan{
			StructuredDataPlan: &StructuredDataPlan{
				Enabled: true,
				Schema:  structuredDataSchema(),
			},
			SuccessEvaluationPlan: &SuccessEvaluationPlan{
				Enabled: true,
				Rubric:  "NumericScale",
			},
		},
	}
}

// structuredDataSchema is the fixed post-call extraction schema. The enums
// here feed the outcome decision tables; changing them changes what the
// derivation can see.
func structuredDataSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"caller_intent": map[string]interface{}{
				"type": "string",
				"enum": []string{"buy", "sell", "rent", "info", "complaint", "other"},
			},
			"qualified": map[string]interface{}{"type": "boolean"},
			"objection_type": map[string]interface{}{
				"type": "string",
				"enum": []string{"none", "has_agent", "not_interested", "timing", "price", "trust"},
			},
			"appointment_booked": map[string]interface{}{"type": "boolean"},
			"follow_up_needed":   map[string]interface{}{"type": "boolean"},
			"property_type_interest": map[string]interface{}{
				"type": "string",
				"enum": []string{"apartment", "house", "commercial", "land", "unknown"},
			},
			"language_used": map[string]interface{}{
				"type": "string",
				"enum": []string{"en", "fr", "de", "es"},
			},
		},
	}
}

// toolSchemas declares the three in-call functions
func toolSchemas() []Tool {
	return []Tool{
		{
			Type: "function",
			Function: ToolFunction{
				Name:        "book_appointment",
				Description: "Book an appointment ONLY when the caller has confirmed a specific date and time.",
				Parameters: map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"date":   map[string]interface{}{"type": "string", "description": "Date in YYYY-MM-DD format"},
						"time":   map[string]interface{}{"type": "string", "description": "Time in HH:MM format"},
						"reason": map[string]interface{}{"type": "string", "description": "Brief reason for the appointment"},
					},
					"required": []string{"date", "time", "reason"},
				},
			},
		},
		{
			Type: "function",
			Function: ToolFunction{
				Name:        "check_availability",
				Description: "Check if a specific time slot is available.",
				Parameters: map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"time": map[string]interface{}{"type": "string", "description": "Time/Date to check"},
					},
				},
			},
		},
		{
			Type: "function",
			Function: ToolFunction{
				Name:        "end_call",
				Description: "End the call. Use when: conversation is complete, caller wants to stop, caller is not interested, or after booking confirmation.",
				Parameters: map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"reason": map[string]interface{}{
							"type": "string",
							"enum": []string{"booking_confirmed", "not_interested", "has_agent", "callback_scheduled", "do_not_call", "wrong_number", "completed"},
						},
						"outcome": map[string]interface{}{
							"type": "string",
							"enum": []string{"qualified", "not_qualified", "callback", "booked", "removed"},
						},
					},
					"required": []string{"reason", "outcome"},
				},
			},
		},
	}
}
