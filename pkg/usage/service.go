package usage

import (
	"context"
	"fmt"
	"time"

	"github.com/thavon/voice-lead-service/internal/domain"
	"github.com/thavon/voice-lead-service/internal/repository"
)

// Unlimited marks a plan with no minute cap
const Unlimited int64 = -1

// planLimitSeconds maps a billing plan to its monthly call-time allowance
var planLimitSeconds = map[string]int64{
	domain.PlanCore:     500 * 60,
	domain.PlanGrowth:   2000 * 60,
	domain.PlanAgencyOS: Unlimited,
}

// Summary is the tenant-facing view of the current month's consumption
type Summary struct {
	Plan         string `json:"plan"`
	UsedSeconds  int64  `json:"usedSeconds"`
	LimitSeconds int64  `json:"limitSeconds"`
	Unlimited    bool   `json:"unlimited"`
}

// Service computes per-tenant monthly call-time usage against plan limits
type Service struct {
	callLogs repository.CallLogRepository
}

// NewService creates a usage service
func NewService(callLogs repository.CallLogRepository) *Service {
	return &Service{callLogs: callLogs}
}

// LimitSeconds returns the monthly allowance for a plan. Unknown plans fall
// back to the entry tier.
func LimitSeconds(plan string) int64 {
	if limit, ok := planLimitSeconds[plan]; ok {
		return limit
	}
	return planLimitSeconds[domain.PlanCore]
}

// MonthWindow returns the [start, end) bounds of the calendar month
// containing now, in UTC.
func MonthWindow(now time.Time) (time.Time, time.Time) {
	now = now.UTC()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

// MonthlyUsage sums the completed call seconds for the org in the current
// calendar month.
func (s *Service) MonthlyUsage(ctx context.Context, orgID string) (int64, error) {
	since, until := MonthWindow(time.Now())
	used, err := s.callLogs.SumDurationSince(ctx, orgID, since, until)
	if err != nil {
		return 0, fmt.Errorf("sum monthly usage: %w", err)
	}
	return used, nil
}

// CheckUsageLimit reports whether the org may place another outbound call.
// Fails open is not an option here: a storage error blocks the call.
func (s *Service) CheckUsageLimit(ctx context.Context, org *domain.Organization) (bool, *Summary, error) {
	limit := LimitSeconds(org.Plan)

	used, err := s.MonthlyUsage(ctx, org.ID)
	if err != nil {
		return false, nil, err
	}

	summary := &Summary{
		Plan:         org.Plan,
		UsedSeconds:  used,
		LimitSeconds: limit,
		Unlimited:    limit == Unlimited,
	}
	if limit == Unlimited {
		return true, summary, nil
	}
	return used < limit, summary, nil
}
