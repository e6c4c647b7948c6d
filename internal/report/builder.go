package report

import (
	"time"

	"github.com/google/uuid"
	"github.com/paveup/paveup/internal/models"
	"github.com/paveup/paveup/internal/registry"
	"github.com/paveup/paveup/internal/resolve"
	"github.com/rs/zerolog/log"
)

// genericETA is used when neither the classifier nor the authority supplies
// a resolution estimate.
const genericETA = "Within standard SLA"

// BuildPayload validates the draft and assembles the final submission record.
//
// Authority precedence: (1) the classifier's embedded recommendation, (2) the
// category derived from the classifier's free-text label, (3) the manually
// selected category, (4) the GHMC default. Derivation failures are absorbed by
// falling through, never surfaced as errors.
//
// ETA precedence: classifier estimate, then the authority's SLA description,
// then a generic literal.
func BuildPayload(draft models.ReportDraft) (models.SubmissionPayload, error) {
	draft.Phone = SanitizePhone(draft.Phone)
	if err := ValidateDraft(draft); err != nil {
		return models.SubmissionPayload{}, err
	}

	authority := selectAuthority(draft)
	eta := selectETA(draft.Classification, authority)

	payload := models.SubmissionPayload{
		ReferenceID:         uuid.New().String(),
		IssueType:           issueType(draft),
		Location:            *draft.Coordinates,
		Address:             draft.Address,
		Pincode:             draft.Pincode,
		Name:                draft.Name,
		Phone:               draft.Phone,
		PhotoName:           draft.PhotoName,
		Authority:           authority,
		EstimatedResolution: eta,
		Timestamp:           time.Now().UTC(),
	}

	log.Info().
		Str("reference_id", payload.ReferenceID).
		Str("issue_type", payload.IssueType).
		Str("authority", payload.Authority.Name).
		Msg("Report payload assembled")

	return payload, nil
}

func selectAuthority(draft models.ReportDraft) models.AuthorityRecord {
	if c := draft.Classification; c != nil {
		if c.RecommendedAuthority != nil && c.RecommendedAuthority.Name != "" {
			return *c.RecommendedAuthority
		}
		if key, ok := resolve.DeriveCategory(c.IssueLabel); ok {
			return resolve.ResolveWithLocation(key, draft.Coordinates)
		}
	}
	if draft.ManualCategory != "" {
		return resolve.ResolveWithLocation(draft.ManualCategory, draft.Coordinates)
	}
	return registry.Default()
}

func selectETA(c *models.ClassificationResult, authority models.AuthorityRecord) string {
	if c != nil && c.EstimatedResolutionTime != "" {
		return c.EstimatedResolutionTime
	}
	if authority.SLADescription != "" {
		return authority.SLADescription
	}
	return genericETA
}

func issueType(draft models.ReportDraft) string {
	if draft.Classification != nil && draft.Classification.IssueLabel != "" {
		return draft.Classification.IssueLabel
	}
	if draft.ManualCategory != "" {
		return draft.ManualCategory
	}
	return "General Civic Issue"
}
