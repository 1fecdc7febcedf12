package kpi_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"mscp/internal/domain"
	"mscp/internal/kpi"
	"mscp/internal/scope"
)

func catalogFixture() ([]domain.KpiItem, *scope.Resolver, domain.SubCluster, domain.KpiCategory) {
	health := domain.SubCluster{ID: uuid.New(), Name: "Health"}
	education := domain.SubCluster{ID: uuid.New(), Name: "Education"}
	maternal := domain.KpiCategory{ID: uuid.New(), SubClusterID: health.ID, Name: "Maternal Care"}
	literacy := domain.KpiCategory{ID: uuid.New(), SubClusterID: education.ID, Name: "Literacy"}

	r := scope.NewResolver(
		[]domain.SubCluster{health, education},
		[]domain.KpiCategory{maternal, literacy},
	)

	items := []domain.KpiItem{
		{
			ID: uuid.New(), SubClusterID: health.ID, CategoryID: maternal.ID,
			Title: "ANC Visits", Description: "Antenatal care visits completed",
			CurrentValue: 0, TargetValue: 100,
		},
		{
			ID: uuid.New(), SubClusterID: health.ID, CategoryID: maternal.ID,
			Title: "Skilled Birth Attendance", Description: "Deliveries attended by skilled staff",
			CurrentValue: 40, TargetValue: 80,
		},
		{
			ID: uuid.New(), SubClusterID: education.ID, CategoryID: literacy.ID,
			Title: "Reading Proficiency", Description: "Grade 4 learners reading at level",
			CurrentValue: 55, TargetValue: 70,
		},
	}
	return items, r, health, maternal
}

func TestFilterItems_BySubClusterName(t *testing.T) {
	items, r, _, _ := catalogFixture()

	got := kpi.FilterItems(items, kpi.Filter{SubClusterName: "Health"}, r)
	assert.Len(t, got, 2)
	for _, item := range got {
		assert.Equal(t, "Health", r.SubClusterName(item.SubClusterID))
	}
}

func TestFilterItems_SentinelAndEmptyMatchAll(t *testing.T) {
	items, r, _, _ := catalogFixture()

	assert.Len(t, kpi.FilterItems(items, kpi.Filter{}, r), 3)
	assert.Len(t, kpi.FilterItems(items, kpi.Filter{SubClusterName: scope.AllSubClustersName}, r), 3)
}

func TestFilterItems_Conjunctive(t *testing.T) {
	items, r, _, maternal := catalogFixture()

	got := kpi.FilterItems(items, kpi.Filter{
		SubClusterName: "Health",
		CategoryID:     maternal.ID,
		SearchText:     "anc",
	}, r)

	assert.Len(t, got, 1)
	assert.Equal(t, "ANC Visits", got[0].Title)
}

func TestFilterItems_SearchMatchesDescription(t *testing.T) {
	items, r, _, _ := catalogFixture()

	got := kpi.FilterItems(items, kpi.Filter{SearchText: "SKILLED STAFF"}, r)
	assert.Len(t, got, 1)
	assert.Equal(t, "Skilled Birth Attendance", got[0].Title)

	assert.Empty(t, kpi.FilterItems(items, kpi.Filter{SearchText: "nonexistent"}, r))
}

func TestFilterItems_Idempotent(t *testing.T) {
	items, r, _, _ := catalogFixture()
	f := kpi.Filter{SubClusterName: "Health", SearchText: "visits"}

	once := kpi.FilterItems(items, f, r)
	twice := kpi.FilterItems(once, f, r)
	assert.Equal(t, once, twice)
}

func TestFilterItems_EndToEndScenario(t *testing.T) {
	// Admin creates "Health" > "Maternal Care" > "ANC Visits" (target 100, current 0).
	items, r, _, _ := catalogFixture()
	anc := items[0]

	got := kpi.FilterItems([]domain.KpiItem{anc}, kpi.Filter{SubClusterName: "Health"}, r)
	assert.Len(t, got, 1)
	assert.Equal(t, anc.ID, got[0].ID)
	assert.Equal(t, 0.0, kpi.Progress(anc.CurrentValue, anc.TargetValue))
}

func TestProgress(t *testing.T) {
	assert.Equal(t, 0.0, kpi.Progress(50, 0))
	assert.Equal(t, 0.0, kpi.Progress(0, 0))
	assert.Equal(t, 0.0, kpi.Progress(-10, 0))
	assert.Equal(t, 50.0, kpi.Progress(50, 100))
	assert.Equal(t, 100.0, kpi.Progress(150, 100)) // clamped, unlike achievement
	assert.Equal(t, 0.0, kpi.Progress(-5, 100))
	assert.Equal(t, 100.0, kpi.Progress(70, 70))
}
