package call

import (
	"context"
	"fmt"
	"html"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/thavon/voice-lead-service/internal/domain"
	"github.com/thavon/voice-lead-service/internal/repository"
	"github.com/thavon/voice-lead-service/pkg/logger"
	"go.uber.org/zap"
)

// NotificationSender delivers a call summary to the tenant. Implementations
// are best-effort; a failed send must never surface to the webhook caller.
type NotificationSender interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// ReportService ingests end-of-call reports: it derives the outcome, persists
// the call record, advances the lead funnel and notifies the tenant.
type ReportService struct {
	repos  repository.RepositoryManager
	notify NotificationSender
}

// NewReportService creates a report service. notify may be nil when no
// notification channel is configured.
func NewReportService(repos repository.RepositoryManager, notify NotificationSender) *ReportService {
	return &ReportService{
		repos:  repos,
		notify: notify,
	}
}

// ProcessEndOfCallReport handles one end-of-call-report event. Every side
// effect here is best-effort: failures are logged and swallowed so the
// platform never retries a report we already acted on. There is no error
// return on purpose.
func (s *ReportService) ProcessEndOfCallReport(ctx context.Context, msg *WebhookMessage) {
	if msg == nil || msg.Call == nil {
		logger.Base().Warn("end-of-call report without call payload")
		return
	}

	meta := msg.Call.CorrelationMetadata()
	if meta == nil || meta.OrgID == "" {
		logger.Base().Warn("end-of-call report without org metadata, dropping",
			zap.String("call_id", msg.Call.ID),
		)
		return
	}

	duration := int(math.Round(msg.Call.DurationSeconds))
	var analysis *StructuredAnalysis
	summary := ""
	if msg.Analysis != nil {
		analysis = msg.Analysis.StructuredData
		summary = msg.Analysis.Summary
	}
	if summary == "" {
		summary = "No summary available"
	}
	transcript := msg.Transcript
	if transcript == "" {
		transcript = "No transcript available"
	}

	leadStatus, callOutcome := DeriveOutcome(OutcomeInput{
		Analysis:        analysis,
		DurationSeconds: duration,
		HasLead:         meta.LeadID != "",
	})

	recordingURL := msg.RecordingURL
	if recordingURL == "" {
		recordingURL = msg.Call.RecordingURL
	}

	entry := &domain.CallLog{
		OrgID:          meta.OrgID,
		ExternalCallID: msg.Call.ID,
		Status:         msg.Call.Status,
		Outcome:        callOutcome,
		Duration:       duration,
		Summary:        summary,
		Transcript:     transcript,
	}
	if meta.LeadID != "" {
		leadID := meta.LeadID
		entry.LeadID = &leadID
	}
	if recordingURL != "" {
		url := recordingURL
		entry.RecordingURL = &url
	}

	// The three writes/reads are independent; run them concurrently and join
	// before the notification, which needs the org's email.
	var (
		wg  sync.WaitGroup
		org *domain.Organization
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		if _, err := s.repos.CallLog().Create(ctx, entry); err != nil {
			logger.Base().Error("failed to persist call log",
				zap.String("org_id", meta.OrgID),
				zap.String("call_id", msg.Call.ID),
				zap.Error(err),
			)
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		target, err := s.repos.Organization().GetNotificationTarget(ctx, meta.OrgID)
		if err != nil {
			logger.Base().Error("failed to load notification target",
				zap.String("org_id", meta.OrgID),
				zap.Error(err),
			)
			return
		}
		org = target
	}()

	if meta.LeadID != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := s.repos.Lead().UpdateStatus(ctx, meta.LeadID, leadStatus, time.Now()); err != nil {
				logger.Base().Error("failed to update lead status",
					zap.String("org_id", meta.OrgID),
					zap.String("lead_id", meta.LeadID),
					zap.String("status", string(leadStatus)),
					zap.Error(err),
				)
			}
		}()
	}

	wg.Wait()

	s.sendSummary(ctx, org, msg, meta, leadStatus, duration, summary, recordingURL)
}

func (s *ReportService) sendSummary(ctx context.Context, org *domain.Organization, msg *WebhookMessage, meta *CallMetadata, leadStatus domain.LeadStatus, duration int, summary, recordingURL string) {
	if s.notify == nil || org == nil || org.Email == "" {
		return
	}

	subject := fmt.Sprintf("New Call Summary - %s", time.Now().Format("Jan 2, 2006"))
	body := buildSummaryHTML(msg, meta, leadStatus, duration, summary, recordingURL)

	if err := s.notify.Send(ctx, org.Email, subject, body); err != nil {
		logger.Base().Error("failed to send call summary",
			zap.String("org_id", org.ID),
			zap.String("to", org.Email),
			zap.Error(err),
		)
		return
	}
	logger.Base().Info("call summary sent",
		zap.String("org_id", org.ID),
		zap.String("call_id", msg.Call.ID),
	)
}

func buildSummaryHTML(msg *WebhookMessage, meta *CallMetadata, leadStatus domain.LeadStatus, duration int, summary, recordingURL string) string {
	leadLine := "N/A (inbound)"
	if meta.LeadID != "" {
		leadLine = string(leadStatus)
	}

	var b strings.Builder
	b.WriteString("<h2>Call Summary</h2>")
	fmt.Fprintf(&b, "<p><strong>Status:</strong> %s</p>", html.EscapeString(msg.Call.Status))
	fmt.Fprintf(&b, "<p><strong>Duration:</strong> %ds</p>", duration)
	fmt.Fprintf(&b, "<p><strong>Lead Status:</strong> %s</p>", html.EscapeString(leadLine))
	fmt.Fprintf(&b, "<p><strong>Summary:</strong> %s</p>", html.EscapeString(summary))
	if recordingURL != "" {
		fmt.Fprintf(&b, `<p><a href="%s">Listen to recording</a></p>`, html.EscapeString(recordingURL))
	}
	if msg.Transcript != "" {
		fmt.Fprintf(&b, "<h3>Transcript</h3><pre>%s</pre>", html.EscapeString(msg.Transcript))
	}
	return b.String()
}
