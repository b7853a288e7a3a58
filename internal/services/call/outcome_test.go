package call

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thavon/voice-lead-service/internal/domain"
)

func boolPtr(b bool) *bool { return &b }

func TestDeriveOutcome_AppointmentBookedWinsRegardlessOfDuration(t *testing.T) {
	status, outcome := DeriveOutcome(OutcomeInput{
		Analysis: &StructuredAnalysis{
			AppointmentBooked: boolPtr(true),
			ObjectionType:     "has_agent", // booking still wins
		},
		DurationSeconds: 3,
		HasLead:         true,
	})

	assert.Equal(t, domain.LeadStatusQualified, status)
	require.NotNil(t, outcome)
	assert.Equal(t, domain.CallOutcomeBooked, *outcome)
}

func TestDeriveOutcome_NotInterestedDisqualifies(t *testing.T) {
	cases := []struct {
		name     string
		analysis *StructuredAnalysis
	}{
		{
			name:     "intent not_interested",
			analysis: &StructuredAnalysis{CallerIntent: "not_interested"},
		},
		{
			name:     "objection not_interested",
			analysis: &StructuredAnalysis{ObjectionType: "not_interested"},
		},
		{
			name:     "objection has_agent",
			analysis: &StructuredAnalysis{ObjectionType: "has_agent"},
		},
		{
			name: "no follow up and not qualified",
			analysis: &StructuredAnalysis{
				FollowUpNeeded: boolPtr(false),
				Qualified:      boolPtr(false),
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, _ := DeriveOutcome(OutcomeInput{
				Analysis:        tc.analysis,
				DurationSeconds: 120,
				HasLead:         true,
			})
			assert.Equal(t, domain.LeadStatusDisqualified, status)
		})
	}
}

func TestDeriveOutcome_AbsentBooleansAreNotFalse(t *testing.T) {
	// follow_up_needed and qualified missing entirely must not disqualify
	status, _ := DeriveOutcome(OutcomeInput{
		Analysis:        &StructuredAnalysis{CallerIntent: "valuation_request"},
		DurationSeconds: 90,
		HasLead:         true,
	})
	assert.Equal(t, domain.LeadStatusContacted, status)
}

func TestDeriveOutcome_ShortCallWithoutAnalysisIsAttempted(t *testing.T) {
	status, outcome := DeriveOutcome(OutcomeInput{
		Analysis:        nil,
		DurationSeconds: 5,
		HasLead:         true,
	})

	assert.Equal(t, domain.LeadStatusAttempted, status)
	assert.Nil(t, outcome)
}

func TestDeriveOutcome_CleanConversationIsContacted(t *testing.T) {
	status, outcome := DeriveOutcome(OutcomeInput{
		Analysis:        &StructuredAnalysis{LanguageUsed: "english"},
		DurationSeconds: 120,
		HasLead:         true,
	})

	assert.Equal(t, domain.LeadStatusContacted, status)
	require.NotNil(t, outcome)
	assert.Equal(t, domain.CallOutcomeContacted, *outcome)
}

func TestDeriveOutcome_QualifiedWithoutBooking(t *testing.T) {
	status, outcome := DeriveOutcome(OutcomeInput{
		Analysis: &StructuredAnalysis{
			Qualified:      boolPtr(true),
			FollowUpNeeded: boolPtr(true),
		},
		DurationSeconds: 200,
		HasLead:         true,
	})

	assert.Equal(t, domain.LeadStatusContacted, status)
	require.NotNil(t, outcome)
	assert.Equal(t, domain.CallOutcomeQualified, *outcome)
}

func TestDeriveOutcome_IsDeterministic(t *testing.T) {
	in := OutcomeInput{
		Analysis: &StructuredAnalysis{
			ObjectionType: "has_agent",
			Qualified:     boolPtr(false),
		},
		DurationSeconds: 45,
		HasLead:         true,
	}

	firstStatus, firstOutcome := DeriveOutcome(in)
	for i := 0; i < 10; i++ {
		status, outcome := DeriveOutcome(in)
		assert.Equal(t, firstStatus, status)
		require.NotNil(t, outcome)
		assert.Equal(t, *firstOutcome, *outcome)
	}
}

func TestDeriveOutcome_LongCallNoAnalysisHasNoOutcome(t *testing.T) {
	status, outcome := DeriveOutcome(OutcomeInput{
		Analysis:        nil,
		DurationSeconds: 300,
		HasLead:         false,
	})

	assert.Equal(t, domain.LeadStatusContacted, status)
	assert.Nil(t, outcome)
}
