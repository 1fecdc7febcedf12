// Package directory computes each viewer's slice of the user and stakeholder
// directory, and validates bulk-import rows. Pure derivations over store
// snapshots; the authoritative gate remains the access package plus the
// repository layer.
package directory

import (
	"strings"

	"github.com/google/uuid"

	"mscp/internal/domain"
)

// StakeholderIndex is an id → stakeholder lookup used for organization-name
// search and sub-cluster intersection tests.
type StakeholderIndex map[uuid.UUID]domain.Stakeholder

// NewStakeholderIndex builds a StakeholderIndex from a snapshot.
func NewStakeholderIndex(stakeholders []domain.Stakeholder) StakeholderIndex {
	idx := make(StakeholderIndex, len(stakeholders))
	for _, s := range stakeholders {
		idx[s.ID] = s
	}
	return idx
}

// VisibleUsers returns the users the viewer may manage, per role:
//
//   - admin: every account except the viewer's own (no self-management).
//   - focal person: stakeholder accounts whose organization shares at least
//     one sub-cluster with the viewer.
//   - stakeholder admin: accounts of its own organization only.
//   - stakeholder user and everything else: nobody.
func VisibleUsers(viewer domain.User, users []domain.User, idx StakeholderIndex) []domain.User {
	out := make([]domain.User, 0, len(users))
	switch viewer.Role {
	case domain.RoleAdmin:
		for _, u := range users {
			if u.ID == viewer.ID {
				continue
			}
			out = append(out, u)
		}
	case domain.RoleFocalPerson:
		for _, u := range users {
			if !isStakeholderAccount(u) || u.StakeholderID == nil {
				continue
			}
			org, ok := idx[*u.StakeholderID]
			if !ok {
				continue
			}
			if intersects(org.SubClusterIDs, viewer.SubClusterIDs) {
				out = append(out, u)
			}
		}
	case domain.RoleStakeholderAdmin:
		if viewer.StakeholderID == nil {
			return out
		}
		for _, u := range users {
			if !isStakeholderAccount(u) {
				continue
			}
			if u.StakeholderID != nil && *u.StakeholderID == *viewer.StakeholderID {
				out = append(out, u)
			}
		}
	}
	return out
}

// SearchUsers filters an already role-scoped list by a case-insensitive
// substring match over username, email, or resolved organization name.
func SearchUsers(users []domain.User, query string, idx StakeholderIndex) []domain.User {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return users
	}
	out := make([]domain.User, 0, len(users))
	for _, u := range users {
		if strings.Contains(strings.ToLower(u.Username), q) ||
			strings.Contains(strings.ToLower(u.Email), q) ||
			strings.Contains(strings.ToLower(orgName(u, idx)), q) {
			out = append(out, u)
		}
	}
	return out
}

func orgName(u domain.User, idx StakeholderIndex) string {
	if u.StakeholderID == nil {
		return ""
	}
	return idx[*u.StakeholderID].Name
}

func isStakeholderAccount(u domain.User) bool {
	return u.Role == domain.RoleStakeholderAdmin || u.Role == domain.RoleStakeholderUser
}

func intersects(a, b []uuid.UUID) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	set := make(map[uuid.UUID]bool, len(a))
	for _, id := range a {
		set[id] = true
	}
	for _, id := range b {
		if set[id] {
			return true
		}
	}
	return false
}
