// Package scope resolves the static coordination hierarchy: sub-clusters,
// their KPI categories, and the geographic reference data used by action
// plans. A Resolver is a read-only derivation over store snapshots; it never
// fails on dangling references, it filters them out.
package scope

import (
	"github.com/google/uuid"

	"mscp/internal/domain"
)

// AllSubClustersName is the synthetic sentinel shown to viewers who can see
// more than one sub-cluster. Its ID is uuid.Nil so it can never collide with
// a stored cluster.
const AllSubClustersName = "All Sub-Clusters"

// Resolver provides O(1) id→name lookups and containment filters over a
// snapshot of sub-clusters and KPI categories.
type Resolver struct {
	subClusterNames map[uuid.UUID]string
	categoryNames   map[uuid.UUID]string
	categoriesBySC  map[uuid.UUID][]domain.KpiCategory
}

// NewResolver builds a Resolver from store snapshots. Categories referencing
// a missing sub-cluster are kept for name lookup but excluded from
// CategoriesOf, so an orphaned category can never surface in a filter.
func NewResolver(subClusters []domain.SubCluster, categories []domain.KpiCategory) *Resolver {
	r := &Resolver{
		subClusterNames: make(map[uuid.UUID]string, len(subClusters)),
		categoryNames:   make(map[uuid.UUID]string, len(categories)),
		categoriesBySC:  make(map[uuid.UUID][]domain.KpiCategory),
	}
	for _, sc := range subClusters {
		r.subClusterNames[sc.ID] = sc.Name
	}
	for _, cat := range categories {
		r.categoryNames[cat.ID] = cat.Name
		if _, ok := r.subClusterNames[cat.SubClusterID]; !ok {
			continue
		}
		r.categoriesBySC[cat.SubClusterID] = append(r.categoriesBySC[cat.SubClusterID], cat)
	}
	return r
}

// SubClusterName resolves a sub-cluster id to its name, falling back to the
// raw id string when unknown.
func (r *Resolver) SubClusterName(id uuid.UUID) string {
	if name, ok := r.subClusterNames[id]; ok {
		return name
	}
	return id.String()
}

// CategoryName resolves a category id to its name, falling back to the raw
// id string when unknown.
func (r *Resolver) CategoryName(id uuid.UUID) string {
	if name, ok := r.categoryNames[id]; ok {
		return name
	}
	return id.String()
}

// CategoriesOf returns the categories belonging to a sub-cluster. Orphaned
// categories are never included.
func (r *Resolver) CategoriesOf(subClusterID uuid.UUID) []domain.KpiCategory {
	return r.categoriesBySC[subClusterID]
}

// SubClustersVisibleTo computes the sub-clusters a viewer may see. Admins see
// every cluster; scoped roles see exactly their memberships in store order,
// deduplicated. Admins and focal persons with more than one visible cluster
// additionally get the "All Sub-Clusters" sentinel prepended.
func SubClustersVisibleTo(role domain.UserRole, memberships []domain.SubCluster, all []domain.SubCluster) []domain.SubCluster {
	var visible []domain.SubCluster
	switch role {
	case domain.RoleAdmin:
		visible = dedupe(all)
	case domain.RoleFocalPerson, domain.RoleStakeholderAdmin, domain.RoleStakeholderUser:
		visible = dedupe(memberships)
	default:
		return nil
	}

	if (role == domain.RoleAdmin || role == domain.RoleFocalPerson) && len(visible) > 1 {
		sentinel := domain.SubCluster{ID: uuid.Nil, Name: AllSubClustersName}
		visible = append([]domain.SubCluster{sentinel}, visible...)
	}
	return visible
}

func dedupe(in []domain.SubCluster) []domain.SubCluster {
	seen := make(map[uuid.UUID]bool, len(in))
	out := make([]domain.SubCluster, 0, len(in))
	for _, sc := range in {
		if seen[sc.ID] {
			continue
		}
		seen[sc.ID] = true
		out = append(out, sc)
	}
	return out
}

// Locations resolves the geographic hierarchy for action-plan levels.
type Locations struct {
	countries map[uuid.UUID]domain.Country
	provinces map[uuid.UUID]domain.Province
	districts map[uuid.UUID]domain.District
}

// NewLocations builds a Locations index from store snapshots.
func NewLocations(countries []domain.Country, provinces []domain.Province, districts []domain.District) *Locations {
	l := &Locations{
		countries: make(map[uuid.UUID]domain.Country, len(countries)),
		provinces: make(map[uuid.UUID]domain.Province, len(provinces)),
		districts: make(map[uuid.UUID]domain.District, len(districts)),
	}
	for _, c := range countries {
		l.countries[c.ID] = c
	}
	for _, p := range provinces {
		l.provinces[p.ID] = p
	}
	for _, d := range districts {
		l.districts[d.ID] = d
	}
	return l
}

// HasCountry reports whether the country id exists.
func (l *Locations) HasCountry(id uuid.UUID) bool {
	_, ok := l.countries[id]
	return ok
}

// HasProvince reports whether the province id exists.
func (l *Locations) HasProvince(id uuid.UUID) bool {
	_, ok := l.provinces[id]
	return ok
}

// HasDistrict reports whether the district id exists.
func (l *Locations) HasDistrict(id uuid.UUID) bool {
	_, ok := l.districts[id]
	return ok
}
