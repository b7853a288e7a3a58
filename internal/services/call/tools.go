package call

import (
	"encoding/json"
	"fmt"

	"github.com/thavon/voice-lead-service/pkg/logger"
	"go.uber.org/zap"
)

// In-call function names the assistant may invoke
const (
	ToolBookAppointment   = "book_appointment"
	ToolCheckAvailability = "check_availability"
	ToolEndCall           = "end_call"
)

const toolResultDefault = "Action completed."

type bookAppointmentParams struct {
	Date   string `json:"date"`
	Time   string `json:"time"`
	Reason string `json:"reason"`
}

type endCallParams struct {
	Reason  string `json:"reason"`
	Outcome string `json:"outcome"`
}

// ExecuteToolCalls processes a batch of mid-call function invocations.
// Entries are independent: a malformed or unknown entry still yields a result
// so the rest of the batch is never blocked. Results map one-to-one to the
// input order by tool call id. No storage is touched here; bookings are only
// acted on once the end-of-call analysis confirms them.
func ExecuteToolCalls(batch []ToolCallRequest) []ToolCallResult {
	results := make([]ToolCallResult, 0, len(batch))

	for _, tc := range batch {
		results = append(results, ToolCallResult{
			ToolCallID: tc.ID,
			Result:     executeOne(tc),
		})
	}

	return results
}

func executeOne(tc ToolCallRequest) string {
	switch tc.Function.Name {
	case ToolBookAppointment:
		var params bookAppointmentParams
		if err := json.Unmarshal(tc.Function.Parameters, &params); err != nil {
			logger.Base().Warn("undecodable book_appointment parameters",
				zap.String("tool_call_id", tc.ID),
				zap.Error(err),
			)
			return toolResultDefault
		}
		logger.Base().Info("booking requested",
			zap.String("tool_call_id", tc.ID),
			zap.String("date", params.Date),
			zap.String("time", params.Time),
			zap.String("reason", params.Reason),
		)
		return fmt.Sprintf("Appointment booked for %s at %s. Requesting confirmation.", params.Date, params.Time)

	case ToolCheckAvailability:
		// No real calendar integration; always affirmative.
		return "Yes, that time is available."

	case ToolEndCall:
		var params endCallParams
		if err := json.Unmarshal(tc.Function.Parameters, &params); err != nil {
			logger.Base().Warn("undecodable end_call parameters",
				zap.String("tool_call_id", tc.ID),
				zap.Error(err),
			)
			return "Call ended."
		}
		logger.Base().Info("call termination requested",
			zap.String("tool_call_id", tc.ID),
			zap.String("reason", params.Reason),
			zap.String("outcome", params.Outcome),
		)
		return "Call ended."

	default:
		return toolResultDefault
	}
}
