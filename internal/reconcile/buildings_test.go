package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scanpang/data-pipeline/internal/model"
)

func TestNormalizeBuildings_NameFallsBackToAddress(t *testing.T) {
	out := NormalizeBuildings([]model.RawBuilding{
		{Name: "", RoadAddress: "Teheran-ro 123", GroundFloors: 5},
	})
	require.Len(t, out, 1)
	assert.Equal(t, "Teheran-ro 123", out[0].Name)
	assert.Equal(t, 5, out[0].GroundFloors)
	assert.Equal(t, 5, out[0].TotalFloors)
}

func TestNormalizeBuildings_BlankNameFallsBack(t *testing.T) {
	out := NormalizeBuildings([]model.RawBuilding{
		{Name: "   ", JibunAddress: "서울특별시 강남구 역삼동 737", GroundFloors: 3},
	})
	require.Len(t, out, 1)
	assert.Equal(t, "서울특별시 강남구 역삼동 737", out[0].Name)
}

func TestNormalizeBuildings_CleansFields(t *testing.T) {
	out := NormalizeBuildings([]model.RawBuilding{
		{Name: " <b>강남파이낸스센터</b> ", RoadAddress: "서울특별시  강남구 테헤란로  152", GroundFloors: 45, BasementFloors: 8, ApprovalDate: "20010315", Use: "업무시설"},
	})
	require.Len(t, out, 1)
	b := out[0]
	assert.Equal(t, "강남파이낸스센터", b.Name)
	assert.Equal(t, "서울특별시 강남구 테헤란로 152", b.Address)
	assert.Equal(t, 53, b.TotalFloors)
	assert.Equal(t, 2001, b.CompletionYear)
	assert.Equal(t, "업무시설", b.Use)
	assert.False(t, b.ID.IsZero())
}

func TestNormalizeBuildings_KeepsTallestDuplicate(t *testing.T) {
	out := NormalizeBuildings([]model.RawBuilding{
		{Name: "GT타워", RoadAddress: "강남대로 411", GroundFloors: 3, RegistryKey: "a"},
		{Name: "GT타워", RoadAddress: "강남대로  411", GroundFloors: 24, RegistryKey: "b"},
		{Name: "GT타워", RoadAddress: "강남대로 411", GroundFloors: 10, RegistryKey: "c"},
	})
	require.Len(t, out, 1)
	assert.Equal(t, 24, out[0].GroundFloors)
	assert.Equal(t, "b", out[0].RegistryKey)
}

func TestNormalizeBuildings_TieKeepsFirst(t *testing.T) {
	out := NormalizeBuildings([]model.RawBuilding{
		{Name: "A", RoadAddress: "x 1", GroundFloors: 5, RegistryKey: "first"},
		{Name: "A", RoadAddress: "x 1", GroundFloors: 5, RegistryKey: "second"},
	})
	require.Len(t, out, 1)
	assert.Equal(t, "first", out[0].RegistryKey)
}

func TestNormalizeBuildings_DropsZeroFloors(t *testing.T) {
	out := NormalizeBuildings([]model.RawBuilding{
		{Name: "창고", RoadAddress: "x 1", GroundFloors: 0},
		{Name: "주차구조물", RoadAddress: "x 2", GroundFloors: -1},
		{Name: "빌딩", RoadAddress: "x 3", GroundFloors: 1},
	})
	require.Len(t, out, 1)
	assert.Equal(t, "빌딩", out[0].Name)
	for _, b := range out {
		assert.GreaterOrEqual(t, b.GroundFloors, 1)
	}
}

func TestNormalizeBuildings_Reproducible(t *testing.T) {
	raw := []model.RawBuilding{
		{Name: "A", RoadAddress: "x 1", GroundFloors: 2},
		{Name: "B", RoadAddress: "x 2", GroundFloors: 7},
		{Name: "C", RoadAddress: "x 3", GroundFloors: 7},
		{Name: "A", RoadAddress: "x 1", GroundFloors: 4},
		{Name: "D", RoadAddress: "x 4", GroundFloors: 1},
	}
	first := NormalizeBuildings(raw)
	for range 5 {
		assert.Equal(t, first, NormalizeBuildings(raw))
	}

	names := make([]string, len(first))
	for i, b := range first {
		names[i] = b.Name
	}
	assert.Equal(t, []string{"B", "C", "A", "D"}, names)
}

func TestNormalizeBuildings_Empty(t *testing.T) {
	assert.Empty(t, NormalizeBuildings(nil))
}

func TestNewBuildingID_Stable(t *testing.T) {
	a := NewBuildingID("GT타워", "강남대로 411")
	b := NewBuildingID("GT타워", "강남대로 411")
	c := NewBuildingID("GT타워", "강남대로 412")
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	// The separator keeps ("ab", "c") and ("a", "bc") apart.
	assert.NotEqual(t, NewBuildingID("ab", "c"), NewBuildingID("a", "bc"))
}
