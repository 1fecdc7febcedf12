// Package kpi is the derivation layer over the KPI catalog: conjunctive
// filtering and progress computation. It holds no state and performs no I/O.
package kpi

import (
	"strings"

	"github.com/google/uuid"

	"mscp/internal/domain"
	"mscp/internal/scope"
)

// Filter holds the optional catalog filter criteria. Zero values (and the
// "All Sub-Clusters" sentinel) match everything.
type Filter struct {
	SubClusterName string
	CategoryID     uuid.UUID
	SearchText     string
}

// FilterItems applies the filter conjunctively. Sub-cluster matching is by
// resolved name so that the sentinel and unresolved ids behave like the rest
// of the catalog. Search is a case-insensitive substring match against title
// or description.
func FilterItems(items []domain.KpiItem, f Filter, r *scope.Resolver) []domain.KpiItem {
	out := make([]domain.KpiItem, 0, len(items))
	search := strings.ToLower(strings.TrimSpace(f.SearchText))

	for _, item := range items {
		if !matchesSubCluster(item, f.SubClusterName, r) {
			continue
		}
		if f.CategoryID != uuid.Nil && item.CategoryID != f.CategoryID {
			continue
		}
		if search != "" && !matchesSearch(item, search) {
			continue
		}
		out = append(out, item)
	}
	return out
}

func matchesSubCluster(item domain.KpiItem, name string, r *scope.Resolver) bool {
	if name == "" || name == scope.AllSubClustersName {
		return true
	}
	return r.SubClusterName(item.SubClusterID) == name
}

func matchesSearch(item domain.KpiItem, lowered string) bool {
	return strings.Contains(strings.ToLower(item.Title), lowered) ||
		strings.Contains(strings.ToLower(item.Description), lowered)
}

// Progress returns current/target as a percentage clamped to [0,100]. A zero
// or negative target yields 0, not a division error. Over-achievement is
// clamped here; report achievement (tracker.Achievement) deliberately is not.
func Progress(current, target float64) float64 {
	if target <= 0 {
		return 0
	}
	pct := current / target * 100
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
