package loader

import (
	"fmt"

	"github.com/scanpang/data-pipeline/internal/model"
)

// No source provides floor-level tenant data, so every tenant is placed on 1F.
const (
	defaultFloorNumber = "1F"
	defaultFloorOrder  = 1
)

type facility struct {
	Type     string
	Location string
	Status   string
}

// Amenities attached to every building.
var defaultFacilities = []facility{
	{Type: "주차장", Location: "B1-B2", Status: "유료"},
	{Type: "와이파이", Location: "전층", Status: "무료"},
	{Type: "냉난방", Location: "전층", Status: "중앙 공급"},
}

type stat struct {
	Type  string
	Value string
	Icon  string
	Order int
}

// Display statistics. occupancy and congestion are fixed placeholders and the
// tenant count is a floor-based estimate; none of them are measured.
const (
	placeholderOccupancy  = "85%"
	placeholderCongestion = "보통"
)

func buildingStats(b model.Building) []stat {
	return []stat{
		{Type: "total_floors", Value: fmt.Sprintf("%d층", b.GroundFloors), Icon: "layers", Order: 1},
		{Type: "basement", Value: fmt.Sprintf("지하 %d층", b.BasementFloors), Icon: "arrow_downward", Order: 2},
		{Type: "occupancy", Value: placeholderOccupancy, Icon: "pie_chart", Order: 3},
		{Type: "tenants", Value: fmt.Sprintf("%d개", max(b.GroundFloors, 1)*2), Icon: "store", Order: 4},
		{Type: "congestion", Value: placeholderCongestion, Icon: "people", Order: 5},
	}
}

type feed struct {
	Type        string
	Title       string
	Description string
	Icon        string
	IconColor   string
	TimeLabel   string
}

// Activity feed entries attached to every building.
var feedTemplates = []feed{
	{
		Type:        "congestion",
		Title:       "현재 혼잡도: 보통",
		Description: "평상시 대비 적정 수준입니다.",
		Icon:        "people",
		IconColor:   "green",
		TimeLabel:   "현재",
	},
	{
		Type:        "event",
		Title:       "1층 로비 리모델링 공사 중",
		Description: "2층 출입구를 이용해 주세요.",
		Icon:        "construction",
		IconColor:   "orange",
		TimeLabel:   "오늘",
	},
	{
		Type:        "promotion",
		Title:       "B1 카페 오픈 기념 할인",
		Description: "아메리카노 50% 할인 (~이번주)",
		Icon:        "local_offer",
		IconColor:   "red",
		TimeLabel:   "진행중",
	},
}
