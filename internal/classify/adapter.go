package classify

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/paveup/paveup/internal/models"
	"github.com/paveup/paveup/internal/registry"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// fallbackETA is the resolution estimate attached to synthesized results.
const fallbackETA = "7-15 days"

// degradedLabel is the issue label for results synthesized from an
// unparseable reply.
const degradedLabel = "General Civic Issue"

// errorLabel is the issue label for results synthesized from a failed call.
const errorLabel = "Classification Error"

// fallbackActionSteps is the canned guidance attached to degraded results.
var fallbackActionSteps = []string{
	"Visit the recommended portal",
	"File online complaint with photo",
	"Note complaint reference number",
	"Follow up after 7 days",
}

// Adapter classifies one image per call. It never leaves the caller without a
// usable ClassificationResult: transport failures and unparseable replies both
// resolve to synthesized fallbacks routed to the default authority. No retries
// and no caching happen at this layer.
type Adapter struct {
	provider Provider
	limiter  *rate.Limiter
}

// NewAdapter creates an adapter over the given provider. callsPerMinute paces
// outbound classifier calls.
func NewAdapter(provider Provider, callsPerMinute float64) *Adapter {
	if callsPerMinute <= 0 {
		callsPerMinute = 30
	}
	return &Adapter{
		provider: provider,
		limiter:  rate.NewLimiter(rate.Limit(callsPerMinute/60.0), 1),
	}
}

// classifierReply mirrors the JSON shapes the instruction requires.
type classifierReply struct {
	IsCivicIssue            bool         `json:"isCivicIssue"`
	IssueType               string       `json:"issueType"`
	Severity                string       `json:"severity"`
	Description             string       `json:"description"`
	RecommendedPortal       *portalReply `json:"recommendedPortal"`
	ActionSteps             []string     `json:"actionSteps"`
	EstimatedResolutionTime string       `json:"estimatedResolutionTime"`
}

type portalReply struct {
	Name            string `json:"name"`
	Department      string `json:"department"`
	Website         string `json:"website"`
	Helpline        string `json:"helpline"`
	OnlineComplaint string `json:"onlineComplaint"`
}

// Classify analyzes one image and returns a normalized result. The returned
// result is always usable; the error is non-nil only when the external call
// itself failed, so callers can log or assert on the failure mode while still
// presenting the fallback.
func (a *Adapter) Classify(ctx context.Context, image ImageData, language string) (models.ClassificationResult, error) {
	prompt := buildPrompt(language)

	if err := a.limiter.Wait(ctx); err != nil {
		log.Warn().Err(err).Msg("Classifier call canceled while waiting for pacing")
		return errorFallback(err, language), err
	}

	replyText, err := a.provider.AnalyzeImage(ctx, image, prompt)
	if err != nil {
		log.Warn().Err(err).Str("provider", a.provider.Name()).Msg("Classifier call failed, returning error fallback")
		return errorFallback(err, language), err
	}

	reply, ok := parseReply(replyText)
	if !ok {
		log.Warn().Str("provider", a.provider.Name()).Msg("Could not parse classifier reply, returning degraded result")
		return degradedFallback(replyText, language), nil
	}

	return normalize(reply, language), nil
}

// parseReply parses the reply body into one of the expected shapes. A reply
// missing the issue type is treated as unparseable even when it is valid JSON.
func parseReply(text string) (classifierReply, bool) {
	cleaned := stripCodeFences(text)

	var reply classifierReply
	if err := json.Unmarshal([]byte(cleaned), &reply); err != nil {
		return classifierReply{}, false
	}
	if reply.IssueType == "" {
		return classifierReply{}, false
	}
	return reply, true
}

// normalize converts a parsed reply into the well-typed result, enforcing the
// non-issue invariant: no severity, authority, action steps, or ETA when
// isCivicIssue is false.
func normalize(reply classifierReply, language string) models.ClassificationResult {
	result := models.ClassificationResult{
		IsCivicIssue: reply.IsCivicIssue,
		IssueLabel:   reply.IssueType,
		Description:  reply.Description,
		Source:       models.SourceClassifier,
		Language:     language,
	}

	if !reply.IsCivicIssue {
		return result
	}

	result.Severity = normalizeSeverity(reply.Severity)
	result.ActionSteps = reply.ActionSteps
	result.EstimatedResolutionTime = reply.EstimatedResolutionTime

	if p := reply.RecommendedPortal; p != nil && p.Name != "" {
		result.RecommendedAuthority = &models.AuthorityRecord{
			Name:               p.Name,
			Department:         p.Department,
			Website:            p.Website,
			Helpline:           p.Helpline,
			OnlineComplaintURL: p.OnlineComplaint,
		}
	}

	return result
}

func normalizeSeverity(s string) models.Severity {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return models.SeverityLow
	case "medium":
		return models.SeverityMedium
	case "high":
		return models.SeverityHigh
	default:
		return models.SeverityNone
	}
}

// degradedFallback synthesizes a result when the reply cannot be parsed. The
// raw text is kept in the description for human inspection.
func degradedFallback(rawText, language string) models.ClassificationResult {
	rec := registry.Default()
	return models.ClassificationResult{
		IsCivicIssue:            true,
		IssueLabel:              degradedLabel,
		Severity:                models.SeverityMedium,
		Description:             rawText,
		RecommendedAuthority:    &rec,
		ActionSteps:             append([]string(nil), fallbackActionSteps...),
		EstimatedResolutionTime: fallbackETA,
		Source:                  models.SourceDegradedParse,
		Language:                language,
	}
}

// errorFallback synthesizes a result when the external call itself failed,
// distinguishable from the degraded-parse case by its source and label.
func errorFallback(err error, language string) models.ClassificationResult {
	rec := registry.Default()
	return models.ClassificationResult{
		IsCivicIssue:            true,
		IssueLabel:              errorLabel,
		Severity:                models.SeverityMedium,
		Description:             "Error: " + err.Error(),
		RecommendedAuthority:    &rec,
		ActionSteps:             append([]string(nil), fallbackActionSteps...),
		EstimatedResolutionTime: fallbackETA,
		Source:                  models.SourceErrorFallback,
		Language:                language,
	}
}

// stripCodeFences removes a surrounding markdown code fence if present.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
