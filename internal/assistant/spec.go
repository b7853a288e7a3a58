package assistant

// Spec is the per-call assistant specification returned to the voice platform
// on assistant-request and attached inline to outbound call creation.
// Field names follow the platform's wire format.
type Spec struct {
	FirstMessage      string             `json:"firstMessage"`
	Transcriber       *Transcriber       `json:"transcriber,omitempty"`
	Model             ModelConfig        `json:"model"`
	Voice             *Voice             `json:"voice,omitempty"`
	StartSpeakingPlan *StartSpeakingPlan `json:"startSpeakingPlan,omitempty"`
	StopSpeakingPlan  *StopSpeakingPlan  `json:"stopSpeakingPlan,omitempty"`
	AnalysisPlan      *AnalysisPlan      `json:"analysisPlan,omitempty"`
	Metadata          *Metadata          `json:"metadata,omitempty"`
}

// Transcriber configures speech-to-text for the call
type Transcriber struct {
	Provider    string `json:"provider"`
	Model       string `json:"model"`
	Language    string `json:"language"`
	SmartFormat bool   `json:"smart_format"`
}

// ModelConfig configures the language model driving the conversation
type ModelConfig struct {
	Provider    string    `json:"provider"`
	Model       string    `json:"model"`
	Temperature float64   `json:"temperature,omitempty"`
	MaxTokens   int       `json:"maxTokens,omitempty"`
	Messages    []Message `json:"messages"`
	Tools       []Tool    `json:"tools,omitempty"`
}

// Message is one chat message in the model configuration
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Tool declares one callable function schema
type Tool struct {
	Type     string       `json:"type"`
	Function ToolFunction `json:"function"`
}

// ToolFunction is the JSON-schema function declaration inside a tool
type ToolFunction struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Parameters  map[string]interface{} `json:"parameters"`
}

// Voice configures speech synthesis for the call
type Voice struct {
	Provider string `json:"provider"`
	VoiceID  string `json:"voiceId"`
	Model    string `json:"model"`
}

// StartSpeakingPlan tunes when the assistant starts talking after the caller stops
type StartSpeakingPlan struct {
	WaitSeconds          float64               `json:"waitSeconds"`
	SmartEndpointingPlan *SmartEndpointingPlan `json:"smartEndpointingPlan,omitempty"`
}

// SmartEndpointingPlan selects the endpointing provider
type SmartEndpointingPlan struct {
	Provider string `json:"provider"`
}

// StopSpeakingPlan tunes interruption handling while the assistant talks
type StopSpeakingPlan struct {
	NumWords       int     `json:"numWords"`
	VoiceSeconds   float64 `json:"voiceSeconds"`
	BackoffSeconds float64 `json:"backoffSeconds"`
}

// AnalysisPlan declares the post-call analysis the platform should run
type AnalysisPlan struct {
	StructuredDataPlan    *StructuredDataPlan    `json:"structuredDataPlan,omitempty"`
	SuccessEvaluationPlan *SuccessEvaluationPlan `json:"successEvaluationPlan,omitempty"`
}

// StructuredDataPlan declares the structured extraction schema
type StructuredDataPlan struct {
	Enabled bool                   `json:"enabled"`
	Schema  map[string]interface{} `json:"schema"`
}

// SuccessEvaluationPlan declares the call-success rubric
type SuccessEvaluationPlan struct {
	Enabled bool   `json:"enabled"`
	Rubric  string `json:"rubric"`
}

// Metadata is echoed back on every later event for the same call so the
// report path never needs a repeat tenant lookup.
type Metadata struct {
	OrgID          string `json:"orgId"`
	LeadID         string `json:"leadId,omitempty"`
	LeadPhone      string `json:"leadPhone,omitempty"`
	SubscriptionID string `json:"subscriptionId,omitempty"`
	Environment    string `json:"environment"`
	CallType       string `json:"callType"`
}
