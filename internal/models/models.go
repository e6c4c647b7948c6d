// Package models defines the core data structures used throughout the application.
package models

import (
	"time"
)

// Severity rates a civic issue by its public safety impact.
type Severity string

const (
	SeverityLow    Severity = "Low"
	SeverityMedium Severity = "Medium"
	SeverityHigh   Severity = "High"
	SeverityNone   Severity = ""
)

// ClassificationSource indicates how a classification result was produced.
type ClassificationSource string

const (
	// SourceClassifier marks a result parsed from a genuine classifier reply.
	SourceClassifier ClassificationSource = "classifier"
	// SourceDegradedParse marks a synthesized result used when the reply body
	// could not be parsed into one of the expected shapes.
	SourceDegradedParse ClassificationSource = "degraded_parse"
	// SourceErrorFallback marks a synthesized result used when the classifier
	// call itself failed (transport, auth, timeout, non-success status).
	SourceErrorFallback ClassificationSource = "error_fallback"
)

// AuthorityRecord describes one government department or complaint portal.
type AuthorityRecord struct {
	Key                 string `json:"key"`
	Name                string `json:"name"`
	Department          string `json:"department"`
	Website             string `json:"website"`
	Helpline            string `json:"helpline"`
	OnlineComplaintURL  string `json:"online_complaint_url"`
	App                 string `json:"app,omitempty"`
	CoverageDescription string `json:"coverage,omitempty"`
	SLADescription      string `json:"sla,omitempty"`
}

// Coordinates is a decimal-degree latitude/longitude pair.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// ClassificationResult is the normalized output of analyzing one image.
//
// Invariant: when IsCivicIssue is false, Severity is empty and
// RecommendedAuthority and ActionSteps are absent — they carry no meaning
// for non-issues.
type ClassificationResult struct {
	IsCivicIssue            bool                 `json:"is_civic_issue"`
	IssueLabel              string               `json:"issue_label"`
	Severity                Severity             `json:"severity,omitempty"`
	Description             string               `json:"description"`
	RecommendedAuthority    *AuthorityRecord     `json:"recommended_authority,omitempty"`
	ActionSteps             []string             `json:"action_steps,omitempty"`
	EstimatedResolutionTime string               `json:"estimated_resolution_time,omitempty"`
	Source                  ClassificationSource `json:"source"`
	Language                string               `json:"language,omitempty"`
}

// ReportDraft is the in-progress user submission. It is owned by a single
// form session and discarded on submit or reset; drafts are never persisted.
type ReportDraft struct {
	PhotoName      string                `json:"photo_name"`
	PhotoSize      int64                 `json:"photo_size,omitempty"`
	Coordinates    *Coordinates          `json:"coordinates,omitempty"`
	Classification *ClassificationResult `json:"classification,omitempty"`
	ManualCategory string                `json:"manual_category,omitempty"`
	Address        string                `json:"address,omitempty"`
	Pincode        string                `json:"pincode,omitempty"`
	Name           string                `json:"name,omitempty"`
	Phone          string                `json:"phone,omitempty"`
	CreatedAt      time.Time             `json:"created_at"`
}

// SubmissionPayload is the final structured record assembled at submit time.
// The current system emits it to a local sink only; no network submission
// endpoint exists.
type SubmissionPayload struct {
	ReferenceID         string          `json:"reference_id"`
	IssueType           string          `json:"issue_type"`
	Location            Coordinates     `json:"location"`
	Address             string          `json:"address,omitempty"`
	Pincode             string          `json:"pincode,omitempty"`
	Name                string          `json:"name,omitempty"`
	Phone               string          `json:"phone,omitempty"`
	PhotoName           string          `json:"photo_name,omitempty"`
	Authority           AuthorityRecord `json:"authority"`
	EstimatedResolution string          `json:"estimated_resolution"`
	Timestamp           time.Time       `json:"timestamp"`
}

// Address is a best-effort human-readable location from reverse geocoding.
type Address struct {
	RoadOrArea string `json:"road_or_area,omitempty"`
	Pincode    string `json:"pincode,omitempty"`
}

// Warning represents a non-fatal issue during processing.
type Warning struct {
	Source  string `json:"source"`
	Message string `json:"message"`
}

// ClassifyResponse is the API response for a classification request. Both the
// success and fallback paths carry a usable Analysis; callers branch on
// Success only to distinguish failure modes, never to handle an empty result.
type ClassifyResponse struct {
	Success   bool                 `json:"success"`
	Analysis  ClassificationResult `json:"analysis"`
	Authority AuthorityRecord      `json:"authority"`
	Warnings  []Warning            `json:"warnings,omitempty"`
}

// SubmitReportRequest is the request body for report submission.
type SubmitReportRequest struct {
	PhotoName      string                `json:"photo_name"`
	Coordinates    *Coordinates          `json:"coordinates,omitempty"`
	Classification *ClassificationResult `json:"classification,omitempty"`
	ManualCategory string                `json:"manual_category,omitempty"`
	Address        string                `json:"address,omitempty"`
	Pincode        string                `json:"pincode,omitempty"`
	Name           string                `json:"name,omitempty"`
	Phone          string                `json:"phone,omitempty"`
}

// SubmitReportResponse acknowledges an accepted report.
type SubmitReportResponse struct {
	ReferenceID string            `json:"reference_id"`
	Payload     SubmissionPayload `json:"payload"`
}

// CategoryInfo pairs an issue category key with its responsible authority.
type CategoryInfo struct {
	Key       string `json:"key"`
	Authority string `json:"authority"`
}
