// Package registry holds the static table of Telangana government authorities
// and the mapping from civic-issue categories to the authority responsible for
// them. The table is built once at package init and never mutated; lookups
// return value copies.
package registry

import (
	"fmt"

	"github.com/paveup/paveup/internal/models"
)

// Provider keys. GHMC is the designated catch-all municipal authority.
const (
	KeyGHMC         = "ghmc"
	KeyTRACSHA      = "tracsha"
	KeyHMWSSB       = "hmwssb"
	KeyTSSPDCL      = "tsspdcl"
	KeyTSNPDCL      = "tsnpdcl"
	KeySwachhata    = "swachhata"
	KeyHawkEye      = "hawkeye"
	KeyNHAI         = "nhai"
	KeyCitizenBuddy = "citizenbuddy"
)

// ErrUnknownProvider indicates a lookup with a provider key that is not in the
// table. With a correctly initialized registry this is a programming-invariant
// violation, not a runtime condition to recover from.
var ErrUnknownProvider = fmt.Errorf("registry: unknown provider key")

// providerOrder preserves the declaration order of the table for AllRecords.
var providerOrder = []string{
	KeyGHMC,
	KeyTRACSHA,
	KeyHMWSSB,
	KeyTSSPDCL,
	KeyTSNPDCL,
	KeySwachhata,
	KeyHawkEye,
	KeyNHAI,
	KeyCitizenBuddy,
}

// Portal metadata with SLA and coverage info, based on official portal
// analysis: GHMC, T-RACSHA, HMWSSB, TSSPDCL/TSNPDCL, Swachhata, etc.
var providers = map[string]models.AuthorityRecord{
	KeyGHMC: {
		Key:                 KeyGHMC,
		Name:                "GHMC (MyGHMC/IGS)",
		Department:          "Greater Hyderabad Municipal Corporation",
		Website:             "https://ghmc.gov.in",
		Helpline:            "040-21111111",
		OnlineComplaintURL:  "https://grievance.ghmc.gov.in",
		App:                 "MyGHMC",
		CoverageDescription: "Hyderabad city limits",
		SLADescription:      "Varies by category (1-15 days per GHMC Charter)",
	},
	KeyTRACSHA: {
		Key:                 KeyTRACSHA,
		Name:                "T-RACSHA",
		Department:          "Roads & Buildings Department",
		Website:             "https://tracsha.telangana.gov.in",
		Helpline:            "040-23450123",
		OnlineComplaintURL:  "https://tracsha.telangana.gov.in",
		CoverageDescription: "State R&B roads (~30,000 km, excludes GHMC)",
		SLADescription:      "Not specified publicly",
	},
	KeyHMWSSB: {
		Key:                 KeyHMWSSB,
		Name:                "HMWSSB",
		Department:          "Hyderabad Metro Water Supply & Sewerage Board",
		Website:             "https://www.hyderabadwater.gov.in",
		Helpline:            "155313",
		OnlineComplaintURL:  "https://www.hyderabadwater.gov.in/grievance",
		CoverageDescription: "Hyderabad metropolitan water & sewerage areas",
		SLADescription:      "24x7 helpline, SLA varies by issue type",
	},
	KeyTSSPDCL: {
		Key:                 KeyTSSPDCL,
		Name:                "TSSPDCL",
		Department:          "Telangana Southern Power Distribution Company",
		Website:             "https://www.tssouthernpower.com",
		Helpline:            "1912",
		OnlineComplaintURL:  "https://www.tssouthernpower.com/complaints",
		CoverageDescription: "Southern Telangana (includes Hyderabad)",
		SLADescription:      "Standards of Performance: 4h urban/8h rural for fuse-off",
	},
	KeyTSNPDCL: {
		Key:                 KeyTSNPDCL,
		Name:                "TSNPDCL",
		Department:          "Telangana Northern Power Distribution Company",
		Website:             "https://www.tsnpdcl.in",
		Helpline:            "1912",
		OnlineComplaintURL:  "https://www.tsnpdcl.in/complaints",
		CoverageDescription: "Northern Telangana",
		SLADescription:      "Standards of Performance: 4h urban/8h rural for fuse-off",
	},
	KeySwachhata: {
		Key:                 KeySwachhata,
		Name:                "Swachhata App",
		Department:          "Ministry of Housing & Urban Affairs",
		Website:             "https://swachhbharaturban.gov.in",
		Helpline:            "1969",
		OnlineComplaintURL:  "Swachhata Mobile App",
		CoverageDescription: "All ULBs across Telangana",
		SLADescription:      "12-48 hours per category",
	},
	KeyHawkEye: {
		Key:                 KeyHawkEye,
		Name:                "Hawk Eye",
		Department:          "Telangana Police",
		Website:             "https://tspolice.gov.in",
		Helpline:            "100",
		OnlineComplaintURL:  "Hawk Eye Mobile App",
		CoverageDescription: "Statewide",
		SLADescription:      "Immediate response for emergencies",
	},
	KeyNHAI: {
		Key:                 KeyNHAI,
		Name:                "NHAI (RajmargYatra)",
		Department:          "National Highways Authority of India",
		Website:             "https://www.nhai.gov.in",
		Helpline:            "1033",
		OnlineComplaintURL:  "RajmargYatra App / Call 1033",
		CoverageDescription: "National Highways in Telangana",
		SLADescription:      "24x7 assistance",
	},
	KeyCitizenBuddy: {
		Key:                 KeyCitizenBuddy,
		Name:                "Citizen Buddy 2.0",
		Department:          "CDMA/MA&UD",
		Website:             "https://emunicipal.telangana.gov.in",
		Helpline:            "Varies by ULB",
		OnlineComplaintURL:  "Citizen Buddy Mobile App",
		CoverageDescription: "All Telangana ULBs outside GHMC",
		SLADescription:      "Varies by ULB",
	},
}

type categoryMapping struct {
	Category string
	Provider string
}

// Issue category to provider mapping with priority routing. Order matters:
// DeriveCategory in the resolve package tries keys in declaration order.
var categories = []categoryMapping{
	// Roads & Infrastructure (GHMC within city, T-RACSHA for state roads)
	{"pothole", KeyGHMC},
	{"road-damage", KeyGHMC},
	{"footpath-repair", KeyGHMC},
	{"bridge-damage", KeyTRACSHA}, // bridges typically R&B
	{"road-obstruction", KeyGHMC},
	{"traffic-island-repair", KeyGHMC},
	{"flyover-repair", KeyTRACSHA},

	// Water & Sewerage (HMWSSB)
	{"stagnant-water", KeyHMWSSB},
	{"sewerage-overflow", KeyHMWSSB},
	{"water-leakage", KeyHMWSSB},
	{"manhole-cover", KeyHMWSSB},
	{"water-contamination", KeyHMWSSB},
	{"ugd-overflow", KeyHMWSSB},

	// Electricity (TSSPDCL/TSNPDCL, refined by location in the resolver)
	{"electrical", KeyTSSPDCL},
	{"power-outage", KeyTSSPDCL},
	{"transformer-failure", KeyTSSPDCL},
	{"street-light", KeyGHMC}, // street lights are GHMC responsibility
	{"electric-shock", KeyTSSPDCL},
	{"hanging-wires", KeyTSSPDCL},

	// Sanitation & Waste (GHMC/Swachhata)
	{"garbage", KeyGHMC},
	{"garbage-bin", KeyGHMC},
	{"debris", KeyGHMC},
	{"burning-waste", KeyGHMC},
	{"dead-animal", KeySwachhata},
	{"public-toilet", KeySwachhata},
	{"sweeping", KeyGHMC},

	// Animals & Health (GHMC Veterinary)
	{"stray-cattle", KeyGHMC},
	{"stray-dogs", KeyGHMC},
	{"stray-pigs", KeyGHMC},
	{"mosquito-menace", KeyGHMC},
	{"illegal-slaughter", KeyGHMC},

	// Encroachment & Planning (GHMC)
	{"illegal-construction", KeyGHMC},
	{"encroachment", KeyGHMC},
	{"unauthorized-ads", KeyGHMC},
	{"tree-cutting", KeyGHMC},
	{"parking-issue", KeyGHMC},

	// Safety & Emergency (Police)
	{"women-safety", KeyHawkEye},
	{"traffic-violation", KeyHawkEye},
	{"emergency", KeyHawkEye},

	// Highways (NHAI)
	{"highway-pothole", KeyNHAI},
	{"toll-issue", KeyNHAI},
	{"highway-obstruction", KeyNHAI},

	// Property & Revenue (GHMC)
	{"property-tax", KeyGHMC},
	{"trade-license", KeyGHMC},
	{"voter-list", KeyGHMC},
}

var categoryIndex = func() map[string]string {
	idx := make(map[string]string, len(categories))
	for _, m := range categories {
		idx[m.Category] = m.Provider
	}
	return idx
}()

// RecordFor returns the authority record for a provider key.
func RecordFor(providerKey string) (models.AuthorityRecord, error) {
	rec, ok := providers[providerKey]
	if !ok {
		return models.AuthorityRecord{}, fmt.Errorf("%w: %q", ErrUnknownProvider, providerKey)
	}
	return rec, nil
}

// Default returns the GHMC record, the catch-all used whenever category
// resolution cannot determine a more specific match.
func Default() models.AuthorityRecord {
	return providers[KeyGHMC]
}

// AllRecords returns every authority record in table-declaration order.
func AllRecords() []models.AuthorityRecord {
	records := make([]models.AuthorityRecord, 0, len(providerOrder))
	for _, key := range providerOrder {
		records = append(records, providers[key])
	}
	return records
}

// ProviderFor returns the provider key mapped to an issue category.
func ProviderFor(category string) (string, bool) {
	key, ok := categoryIndex[category]
	return key, ok
}

// Categories returns all known issue category keys in declaration order.
func Categories() []string {
	keys := make([]string, 0, len(categories))
	for _, m := range categories {
		keys = append(keys, m.Category)
	}
	return keys
}
