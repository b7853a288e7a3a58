package prompts

import (
	"fmt"
	"strings"

	"github.com/thavon/voice-lead-service/internal/domain"
)

// Generator renders per-call system prompts from tenant configuration
type Generator struct{}

// NewGenerator creates a prompt generator
func NewGenerator() *Generator {
	return &Generator{}
}

// InboundSystemPrompt renders the inbound ISA prompt for a tenant
func (g *Generator) InboundSystemPrompt(org *domain.Organization) string {
	return strings.TrimSpace(fmt.Sprintf(
		PromptInboundTemplate,
		collapseSpaces(org.Name),
		joinQuestions(org.QualificationQs),
	))
}

// OutboundSystemPrompt renders the outbound FSBO prompt for a tenant and lead
func (g *Generator) OutboundSystemPrompt(org *domain.Organization, lead *domain.Lead) string {
	return strings.TrimSpace(fmt.Sprintf(
		PromptOutboundTemplate,
		collapseSpaces(org.Name),
		lead.Name,
		addressLine(lead),
		joinQuestions(org.QualificationQs),
	))
}

// OutboundFirstMessage renders the personalized outbound greeting
func (g *Generator) OutboundFirstMessage(org *domain.Organization, lead *domain.Lead) string {
	return fmt.Sprintf(
		PromptOutboundFirstMessage,
		firstName(lead.Name),
		org.Name,
		addressLine(lead),
	)
}

// TestCallSystemPrompt renders the simplified prompt for dashboard test calls
func (g *Generator) TestCallSystemPrompt(org *domain.Organization) string {
	var bullets []string
	for _, q := range org.QualificationQs {
		bullets = append(bullets, "- "+q)
	}

	return strings.TrimSpace(fmt.Sprintf(
		PromptTestCallTemplate,
		org.Name,
		org.OpeningLine,
		strings.Join(bullets, "\n"),
	))
}

// collapseSpaces normalizes runs of whitespace inside a tenant name so prompt
// text never carries stray line breaks from the settings form.
func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// joinQuestions renders the tenant-ordered question list for the P2 tier
func joinQuestions(qs domain.StringArray) string {
	return strings.Join(qs, ", ")
}

// addressLine renders " at <address>" or nothing when the lead has no address
func addressLine(lead *domain.Lead) string {
	if lead.Address == nil || *lead.Address == "" {
		return ""
	}
	return " at " + *lead.Address
}

// firstName extracts the lead's first name for the greeting
func firstName(full string) string {
	fields := strings.Fields(full)
	if len(fields) == 0 {
		return full
	}
	return fields[0]
}
