package call

import (
	"github.com/thavon/voice-lead-service/internal/domain"
)

// OutcomeInput is everything the outcome derivation is allowed to see.
// The function is pure: same input, same (status, outcome) pair, always.
type OutcomeInput struct {
	Analysis        *StructuredAnalysis
	DurationSeconds int
	HasLead         bool
}

// shortCallSeconds is the threshold below which a call is treated as
// unanswered or voicemail rather than a real conversation.
const shortCallSeconds = 10

// statusRule is one (predicate, result) pair of the lead-status table
type statusRule struct {
	name    string
	matches func(in OutcomeInput) bool
	status  domain.LeadStatus
}

// outcomeRule is one (predicate, result) pair of the call-outcome table
type outcomeRule struct {
	name    string
	matches func(a *StructuredAnalysis) bool
	outcome domain.CallOutcome
}

// leadStatusRules is evaluated top-down, first match wins:
//  1. appointment booked        -> QUALIFIED
//  2. disqualification signals  -> DISQUALIFIED
//  3. call too short            -> ATTEMPTED
//  4. real conversation         -> CONTACTED
var leadStatusRules = []statusRule{
	{
		name: "appointment_booked",
		matches: func(in OutcomeInput) bool {
			return in.Analysis != nil && boolTrue(in.Analysis.AppointmentBooked)
		},
		status: domain.LeadStatusQualified,
	},
	{
		name: "disqualified",
		matches: func(in OutcomeInput) bool {
			a := in.Analysis
			if a == nil {
				return false
			}
			if a.CallerIntent == "not_interested" {
				return true
			}
			if a.ObjectionType == "not_interested" || a.ObjectionType == "has_agent" {
				return true
			}
			return boolFalse(a.FollowUpNeeded) && boolFalse(a.Qualified)
		},
		status: domain.LeadStatusDisqualified,
	},
	{
		name: "too_short",
		matches: func(in OutcomeInput) bool {
			return in.DurationSeconds < shortCallSeconds
		},
		status: domain.LeadStatusAttempted,
	},
	{
		name:    "contacted",
		matches: func(OutcomeInput) bool { return true },
		status:  domain.LeadStatusContacted,
	},
}

// callOutcomeRules is evaluated top-down, first match wins. It only runs when
// a structured analysis is present; without one the outcome is absent.
var callOutcomeRules = []outcomeRule{
	{
		name:    "booked",
		matches: func(a *StructuredAnalysis) bool { return boolTrue(a.AppointmentBooked) },
		outcome: domain.CallOutcomeBooked,
	},
	{
		name:    "qualified",
		matches: func(a *StructuredAnalysis) bool { return boolTrue(a.Qualified) },
		outcome: domain.CallOutcomeQualified,
	},
	{
		name:    "has_agent",
		matches: func(a *StructuredAnalysis) bool { return a.ObjectionType == "has_agent" },
		outcome: domain.CallOutcomeHasAgent,
	},
	{
		name:    "not_interested",
		matches: func(a *StructuredAnalysis) bool { return a.ObjectionType == "not_interested" },
		outcome: domain.CallOutcomeNotInterested,
	},
	{
		name:    "contacted",
		matches: func(*StructuredAnalysis) bool { return true },
		outcome: domain.CallOutcomeContacted,
	},
}

// DeriveOutcome maps a call's structured analysis to the lead funnel status
// and the call-level outcome tag. Total and deterministic: defined for every
// input, including a missing analysis, with no hidden state.
func DeriveOutcome(in OutcomeInput) (domain.LeadStatus, *domain.CallOutcome) {
	return deriveLeadStatus(in), deriveCallOutcome(in.Analysis)
}

func deriveLeadStatus(in OutcomeInput) domain.LeadStatus {
	for _, rule := range leadStatusRules {
		if rule.matches(in) {
			return rule.status
		}
	}
	// Unreachable: the last rule always matches.
	return domain.LeadStatusContacted
}

func deriveCallOutcome(a *StructuredAnalysis) *domain.CallOutcome {
	if a == nil {
		return nil
	}
	for _, rule := range callOutcomeRules {
		if rule.matches(a) {
			outcome := rule.outcome
			return &outcome
		}
	}
	return nil
}

func boolTrue(b *bool) bool {
	return b != nil && *b
}

func boolFalse(b *bool) bool {
	return b != nil && !*b
}
