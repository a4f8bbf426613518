package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scanpang/data-pipeline/internal/model"
)

func TestReconcile(t *testing.T) {
	raw := []model.RawBuilding{
		{Name: "강남파이낸스센터", RoadAddress: "서울특별시 강남구 테헤란로 152", GroundFloors: 45, BasementFloors: 8},
		{Name: "", RoadAddress: "서울특별시 강남구 역삼로 1", GroundFloors: 0},
	}
	naver := []model.RawPlace{
		{Title: "<b>스타벅스</b> 강남파이낸스센터점", Category: "카페,디저트>카페", Address: "서울특별시 강남구 테헤란로 152 강남파이낸스센터", Source: model.SourceNaver},
	}
	google := []model.RawPlace{
		{Title: "스타벅스 강남파이낸스센터점", Category: "카페", Address: "서울특별시 강남구 테헤란로 152 강남파이낸스센터", Source: model.SourceGoogle, PlaceID: "g1",
			Coords: &model.Coordinates{Lat: 37.5, Lng: 127.03}},
		{Title: "편의점", Category: "convenience_store", Address: "강남대로 1", Source: model.SourceGoogle, PlaceID: "g2"},
	}

	res := Reconcile(raw, naver, google)
	require.Len(t, res.Buildings, 1)
	require.Len(t, res.Tenants, 2)
	assert.Equal(t, MatchStats{Matched: 1, Unmatched: 1}, res.Stats)

	b, ok := res.Building(res.Tenants[0].BuildingID)
	require.True(t, ok)
	assert.Equal(t, "강남파이낸스센터", b.Name)
	assert.NotNil(t, res.Tenants[0].Coords)

	_, ok = res.Building(res.Tenants[1].BuildingID)
	assert.False(t, ok)
}
