package scope_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"mscp/internal/domain"
	"mscp/internal/scope"
)

func TestResolver_NameLookups(t *testing.T) {
	health := domain.SubCluster{ID: uuid.New(), Name: "Health"}
	maternal := domain.KpiCategory{ID: uuid.New(), SubClusterID: health.ID, Name: "Maternal Care"}

	r := scope.NewResolver([]domain.SubCluster{health}, []domain.KpiCategory{maternal})

	assert.Equal(t, "Health", r.SubClusterName(health.ID))
	assert.Equal(t, "Maternal Care", r.CategoryName(maternal.ID))

	// Unknown ids fall back to the raw id string, never empty.
	unknown := uuid.New()
	assert.Equal(t, unknown.String(), r.SubClusterName(unknown))
	assert.Equal(t, unknown.String(), r.CategoryName(unknown))
}

func TestResolver_CategoriesOf_ExcludesOrphans(t *testing.T) {
	health := domain.SubCluster{ID: uuid.New(), Name: "Health"}
	maternal := domain.KpiCategory{ID: uuid.New(), SubClusterID: health.ID, Name: "Maternal Care"}
	orphan := domain.KpiCategory{ID: uuid.New(), SubClusterID: uuid.New(), Name: "Ghost"}

	r := scope.NewResolver([]domain.SubCluster{health}, []domain.KpiCategory{maternal, orphan})

	cats := r.CategoriesOf(health.ID)
	assert.Len(t, cats, 1)
	assert.Equal(t, "Maternal Care", cats[0].Name)

	// The orphan is not reachable through containment but still resolves by name.
	assert.Empty(t, r.CategoriesOf(orphan.SubClusterID))
	assert.Equal(t, "Ghost", r.CategoryName(orphan.ID))
}

func TestSubClustersVisibleTo_Admin(t *testing.T) {
	a := domain.SubCluster{ID: uuid.New(), Name: "Health"}
	b := domain.SubCluster{ID: uuid.New(), Name: "Education"}

	visible := scope.SubClustersVisibleTo(domain.RoleAdmin, nil, []domain.SubCluster{a, b})

	// Sentinel first, then all clusters in store order.
	assert.Len(t, visible, 3)
	assert.Equal(t, scope.AllSubClustersName, visible[0].Name)
	assert.Equal(t, uuid.Nil, visible[0].ID)
	assert.Equal(t, "Health", visible[1].Name)
	assert.Equal(t, "Education", visible[2].Name)
}

func TestSubClustersVisibleTo_NoSentinelForSingleCluster(t *testing.T) {
	a := domain.SubCluster{ID: uuid.New(), Name: "Health"}

	visible := scope.SubClustersVisibleTo(domain.RoleAdmin, nil, []domain.SubCluster{a})
	assert.Len(t, visible, 1)
	assert.Equal(t, "Health", visible[0].Name)
}

func TestSubClustersVisibleTo_FocalPerson(t *testing.T) {
	a := domain.SubCluster{ID: uuid.New(), Name: "Health"}
	b := domain.SubCluster{ID: uuid.New(), Name: "Education"}
	all := []domain.SubCluster{a, b, {ID: uuid.New(), Name: "WASH"}}

	visible := scope.SubClustersVisibleTo(domain.RoleFocalPerson, []domain.SubCluster{a, b, a}, all)

	// Memberships only, deduplicated, store order, sentinel prepended.
	assert.Len(t, visible, 3)
	assert.Equal(t, scope.AllSubClustersName, visible[0].Name)
	assert.Equal(t, "Health", visible[1].Name)
	assert.Equal(t, "Education", visible[2].Name)
}

func TestSubClustersVisibleTo_StakeholderRolesGetNoSentinel(t *testing.T) {
	a := domain.SubCluster{ID: uuid.New(), Name: "Health"}
	b := domain.SubCluster{ID: uuid.New(), Name: "Education"}

	visible := scope.SubClustersVisibleTo(domain.RoleStakeholderAdmin, []domain.SubCluster{a, b}, nil)
	assert.Len(t, visible, 2)
	assert.Equal(t, "Health", visible[0].Name)

	visible = scope.SubClustersVisibleTo(domain.RoleStakeholderUser, []domain.SubCluster{a}, nil)
	assert.Len(t, visible, 1)
}

func TestSubClustersVisibleTo_UnknownRole(t *testing.T) {
	a := domain.SubCluster{ID: uuid.New(), Name: "Health"}
	assert.Empty(t, scope.SubClustersVisibleTo("auditor", []domain.SubCluster{a}, []domain.SubCluster{a}))
}

func TestLocations(t *testing.T) {
	c := domain.Country{ID: uuid.New(), Name: "Zambia"}
	p := domain.Province{ID: uuid.New(), CountryID: c.ID, Name: "Lusaka"}
	d := domain.District{ID: uuid.New(), ProvinceID: p.ID, Name: "Chongwe"}

	l := scope.NewLocations([]domain.Country{c}, []domain.Province{p}, []domain.District{d})

	assert.True(t, l.HasCountry(c.ID))
	assert.True(t, l.HasProvince(p.ID))
	assert.True(t, l.HasDistrict(d.ID))
	assert.False(t, l.HasCountry(uuid.New()))
	assert.False(t, l.HasDistrict(p.ID))
}
