package report

import (
	"errors"
	"testing"

	"github.com/paveup/paveup/internal/models"
	"github.com/paveup/paveup/internal/registry"
)

func validDraft() models.ReportDraft {
	return models.ReportDraft{
		PhotoName:   "pothole.jpg",
		Coordinates: &models.Coordinates{Lat: 17.38, Lng: 78.48},
	}
}

func TestSanitizePhone(t *testing.T) {
	tests := []struct {
		in   string
		want string
		desc string
	}{
		{"1234567890", "1234567890", "Clean 10 digits"},
		{"12a34", "1234", "Letters removed"},
		{"+91 98765 43210", "9198765432", "Punctuation removed, capped at 10"},
		{"", "", "Empty stays empty"},
		{"abc", "", "No digits"},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			if got := SanitizePhone(tt.in); got != tt.want {
				t.Errorf("SanitizePhone(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestValidateDraft(t *testing.T) {
	tests := []struct {
		mutate    func(*models.ReportDraft)
		wantField string
		desc      string
	}{
		{func(d *models.ReportDraft) {}, "", "Valid draft"},
		{func(d *models.ReportDraft) { d.PhotoName = "" }, FieldMissingPhoto, "Missing photo"},
		{func(d *models.ReportDraft) { d.Coordinates = nil }, FieldMissingCoordinates, "Missing coordinates"},
		{func(d *models.ReportDraft) { d.Phone = "123456789" }, FieldInvalidPhone, "Nine digit phone"},
		{func(d *models.ReportDraft) { d.Phone = "1234567890" }, "", "Ten digit phone"},
		{func(d *models.ReportDraft) { d.Phone = "" }, "", "Empty phone is optional"},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			draft := validDraft()
			tt.mutate(&draft)
			err := ValidateDraft(draft)
			if tt.wantField == "" {
				if err != nil {
					t.Errorf("Expected valid draft, got %v", err)
				}
				return
			}
			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("Expected ValidationError, got %v", err)
			}
			if vErr.Field != tt.wantField {
				t.Errorf("Expected field %q, got %q", tt.wantField, vErr.Field)
			}
		})
	}
}

func TestBuildPayload_RequiresPhotoAndCoordinates(t *testing.T) {
	draft := validDraft()
	draft.Coordinates = nil

	_, err := BuildPayload(draft)
	var vErr *ValidationError
	if !errors.As(err, &vErr) || vErr.Field != FieldMissingCoordinates {
		t.Errorf("Expected missing_coordinates, got %v", err)
	}
}

func TestBuildPayload_SanitizesPhoneBeforeLengthCheck(t *testing.T) {
	draft := validDraft()
	draft.Phone = "12a34"

	_, err := BuildPayload(draft)
	var vErr *ValidationError
	if !errors.As(err, &vErr) || vErr.Field != FieldInvalidPhone {
		t.Errorf("Expected invalid_phone after sanitation to 4 digits, got %v", err)
	}
}

func TestBuildPayload_AuthorityPrecedence(t *testing.T) {
	recommended := models.AuthorityRecord{
		Name:       "GHMC Roads Division",
		Department: "Greater Hyderabad Municipal Corporation",
		Website:    "https://ghmc.gov.in",
		Helpline:   "040-21111111",
	}

	tests := []struct {
		mutate        func(*models.ReportDraft)
		wantAuthority string
		desc          string
	}{
		{
			func(d *models.ReportDraft) {
				d.Classification = &models.ClassificationResult{
					IsCivicIssue:         true,
					IssueLabel:           "Stagnant Water", // would derive to HMWSSB
					RecommendedAuthority: &recommended,
				}
			},
			"GHMC Roads Division",
			"Embedded recommendation wins over label derivation",
		},
		{
			func(d *models.ReportDraft) {
				d.Classification = &models.ClassificationResult{
					IsCivicIssue: true,
					IssueLabel:   "Stagnant water near the colony",
				}
			},
			"HMWSSB",
			"Label derivation used when no recommendation embedded",
		},
		{
			func(d *models.ReportDraft) {
				d.Classification = &models.ClassificationResult{
					IsCivicIssue: true,
					IssueLabel:   "Something entirely unrecognizable",
				}
				d.ManualCategory = "dead-animal"
			},
			"Swachhata App",
			"Manual category used when derivation fails",
		},
		{
			func(d *models.ReportDraft) {
				d.Classification = &models.ClassificationResult{
					IsCivicIssue: true,
					IssueLabel:   "Something entirely unrecognizable",
				}
			},
			"GHMC (MyGHMC/IGS)",
			"Default GHMC when nothing matches",
		},
		{
			func(d *models.ReportDraft) { d.ManualCategory = "pothole" },
			"GHMC (MyGHMC/IGS)",
			"Manual category alone resolves",
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			draft := validDraft()
			tt.mutate(&draft)
			payload, err := BuildPayload(draft)
			if err != nil {
				t.Fatalf("BuildPayload failed: %v", err)
			}
			if payload.Authority.Name != tt.wantAuthority {
				t.Errorf("Authority = %q, want %q", payload.Authority.Name, tt.wantAuthority)
			}
		})
	}
}

func TestBuildPayload_ElectricalUsesLocation(t *testing.T) {
	draft := validDraft()
	draft.Coordinates = &models.Coordinates{Lat: 19.0, Lng: 78.5}
	draft.Classification = &models.ClassificationResult{
		IsCivicIssue: true,
		IssueLabel:   "Hanging wires over the street",
	}

	payload, err := BuildPayload(draft)
	if err != nil {
		t.Fatalf("BuildPayload failed: %v", err)
	}
	if payload.Authority.Key != registry.KeyTSNPDCL {
		t.Errorf("Expected northern power provider for lat 19.0, got %q", payload.Authority.Key)
	}
}

func TestBuildPayload_ETAPrecedence(t *testing.T) {
	tests := []struct {
		mutate  func(*models.ReportDraft)
		wantETA string
		desc    string
	}{
		{
			func(d *models.ReportDraft) {
				d.Classification = &models.ClassificationResult{
					IsCivicIssue:            true,
					IssueLabel:              "Pothole",
					EstimatedResolutionTime: "3-7 days",
				}
			},
			"3-7 days",
			"Classifier estimate wins",
		},
		{
			func(d *models.ReportDraft) {
				d.Classification = &models.ClassificationResult{
					IsCivicIssue: true,
					IssueLabel:   "Pothole",
				}
			},
			"Varies by category (1-15 days per GHMC Charter)",
			"Authority SLA when classifier gives none",
		},
		{
			func(d *models.ReportDraft) {
				d.Classification = &models.ClassificationResult{
					IsCivicIssue: true,
					IssueLabel:   "Pothole",
					RecommendedAuthority: &models.AuthorityRecord{
						Name: "GHMC Roads Division",
					},
				}
			},
			genericETA,
			"Generic literal when neither supplies one",
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			draft := validDraft()
			tt.mutate(&draft)
			payload, err := BuildPayload(draft)
			if err != nil {
				t.Fatalf("BuildPayload failed: %v", err)
			}
			if payload.EstimatedResolution != tt.wantETA {
				t.Errorf("ETA = %q, want %q", payload.EstimatedResolution, tt.wantETA)
			}
		})
	}
}

func TestBuildPayload_PopulatesRecordFields(t *testing.T) {
	draft := validDraft()
	draft.Name = "Asha"
	draft.Phone = "1234567890"
	draft.Address = "Tank Bund Road"
	draft.Pincode = "500004"

	payload, err := BuildPayload(draft)
	if err != nil {
		t.Fatalf("BuildPayload failed: %v", err)
	}
	if payload.ReferenceID == "" {
		t.Error("Expected a reference ID")
	}
	if payload.Timestamp.IsZero() {
		t.Error("Expected a timestamp")
	}
	if payload.Location.Lat != 17.38 || payload.Location.Lng != 78.48 {
		t.Errorf("Unexpected location: %+v", payload.Location)
	}
	if payload.PhotoName != "pothole.jpg" || payload.Name != "Asha" || payload.Phone != "1234567890" {
		t.Errorf("Draft fields not carried: %+v", payload)
	}
}

func TestBuildPayload_EndToEndPotholeScenario(t *testing.T) {
	// Clear pothole photo, classifier recommends the GHMC roads record,
	// coordinates detected in Hyderabad.
	draft := validDraft()
	draft.Classification = &models.ClassificationResult{
		IsCivicIssue: true,
		IssueLabel:   "Pothole",
		Severity:     models.SeverityHigh,
		RecommendedAuthority: &models.AuthorityRecord{
			Name:               "GHMC Roads Division",
			Department:         "Greater Hyderabad Municipal Corporation",
			Website:            "https://ghmc.gov.in",
			Helpline:           "040-21111111",
			OnlineComplaintURL: "https://grievance.ghmc.gov.in",
		},
		EstimatedResolutionTime: "5-10 days",
		Source:                  models.SourceClassifier,
	}

	payload, err := BuildPayload(draft)
	if err != nil {
		t.Fatalf("BuildPayload failed: %v", err)
	}
	if payload.Authority.Name != "GHMC Roads Division" {
		t.Errorf("Expected the recommended roads record, got %q", payload.Authority.Name)
	}
	if payload.EstimatedResolution != "5-10 days" {
		t.Errorf("Expected classifier ETA, got %q", payload.EstimatedResolution)
	}
	if payload.IssueType != "Pothole" {
		t.Errorf("Expected issue type from classifier, got %q", payload.IssueType)
	}
}

func TestSession_LastSubmittedImageWins(t *testing.T) {
	s := NewSession()

	first := s.Begin()
	second := s.Begin()

	stale := models.ClassificationResult{IssueLabel: "Garbage"}
	if s.Complete(first, stale) {
		t.Error("Stale generation must not apply")
	}
	if _, ok := s.Current(); ok {
		t.Error("No result should be visible after a stale completion")
	}

	fresh := models.ClassificationResult{IssueLabel: "Pothole"}
	if !s.Complete(second, fresh) {
		t.Error("Current generation must apply")
	}
	got, ok := s.Current()
	if !ok || got.IssueLabel != "Pothole" {
		t.Errorf("Expected the fresh result, got %+v ok=%v", got, ok)
	}
}

func TestSession_BeginDiscardsPreviousResult(t *testing.T) {
	s := NewSession()
	gen := s.Begin()
	s.Complete(gen, models.ClassificationResult{IssueLabel: "Garbage"})

	s.Begin()
	if _, ok := s.Current(); ok {
		t.Error("A new image submission must discard the previous result")
	}
}

func TestSession_Reset(t *testing.T) {
	s := NewSession()
	gen := s.Begin()
	s.Complete(gen, models.ClassificationResult{IssueLabel: "Garbage"})

	s.Reset()
	if _, ok := s.Current(); ok {
		t.Error("Reset must discard state")
	}
	if s.Complete(gen, models.ClassificationResult{IssueLabel: "Garbage"}) {
		t.Error("Completions from before the reset must be stale")
	}
}
