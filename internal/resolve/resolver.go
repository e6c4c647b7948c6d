// Package resolve maps issue categories to responsible authorities. All
// functions are pure lookups over the immutable registry: they never fail and
// never return an empty record.
package resolve

import (
	"strings"

	"github.com/paveup/paveup/internal/models"
	"github.com/paveup/paveup/internal/registry"
)

// electricityCategories are the categories whose authority is split between
// the two regional power distribution companies.
var electricityCategories = map[string]bool{
	"electrical":          true,
	"power-outage":        true,
	"transformer-failure": true,
	"electric-shock":      true,
	"hanging-wires":       true,
}

// northernLatitude is the rough boundary between TSNPDCL (north) and TSSPDCL
// (south, includes Hyderabad). A coarse heuristic, not a true service-boundary
// polygon.
const northernLatitude = 18.5

// Resolve returns the authority responsible for an issue category. Unknown,
// empty, or unmapped categories fall back to the GHMC record, the documented
// catch-all municipal authority; the function is total over all string inputs.
// A category that legitimately maps to GHMC is not distinguishable from the
// unknown-key fallback in the output.
func Resolve(issueCategory string) models.AuthorityRecord {
	key := strings.TrimSpace(issueCategory)
	if key == "" {
		return registry.Default()
	}
	providerKey, ok := registry.ProviderFor(key)
	if !ok {
		return registry.Default()
	}
	rec, err := registry.RecordFor(providerKey)
	if err != nil {
		// Only reachable if the registry tables disagree, which the registry
		// tests rule out.
		return registry.Default()
	}
	return rec
}

// ResolveWithLocation resolves like Resolve, except that electricity-related
// categories are routed between the regional power providers by latitude:
// above northernLatitude goes to TSNPDCL, everything else (including absent
// coordinates) to TSSPDCL.
func ResolveWithLocation(issueCategory string, coords *models.Coordinates) models.AuthorityRecord {
	key := strings.TrimSpace(issueCategory)
	if electricityCategories[key] {
		providerKey := registry.KeyTSSPDCL
		if coords != nil && coords.Lat > northernLatitude {
			providerKey = registry.KeyTSNPDCL
		}
		rec, err := registry.RecordFor(providerKey)
		if err != nil {
			return registry.Default()
		}
		return rec
	}
	return Resolve(key)
}

// DeriveCategory normalizes a free-text classifier label to a known issue
// category key. Precedence order:
//
//  1. exact match after folding (lowercase, spaces and underscores to hyphens)
//  2. a known key contained in the folded label
//  3. the folded label contained in a known key
//
// Within each step, keys are tried in registry declaration order and the
// first hit wins. Returns ("", false) when nothing matches; callers absorb
// that by falling through to the default authority.
func DeriveCategory(issueLabel string) (string, bool) {
	folded := foldLabel(issueLabel)
	if folded == "" {
		return "", false
	}

	keys := registry.Categories()

	for _, key := range keys {
		if folded == key {
			return key, true
		}
	}
	for _, key := range keys {
		if strings.Contains(folded, key) {
			return key, true
		}
	}
	for _, key := range keys {
		if strings.Contains(key, folded) {
			return key, true
		}
	}
	return "", false
}

func foldLabel(label string) string {
	s := strings.ToLower(strings.TrimSpace(label))
	s = strings.ReplaceAll(s, "_", "-")
	s = strings.Join(strings.Fields(s), "-")
	return s
}
