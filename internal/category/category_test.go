package category

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_Exact(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"한식", Restaurant},
		{"Restaurant", Restaurant},
		{"  CAFE ", Cafe},
		{"베이커리", Cafe},
		{"convenience_store", ConvenienceStore},
		{"약국", Pharmacy},
		{"ATM", Bank},
		{"치과", Hospital},
		{"hair_care", Salon},
		{"피트니스", Gym},
		{"교육", Academy},
		{"parking", Parking},
		{"store", Retail},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.raw))
		})
	}
}

func TestNormalize_Substring(t *testing.T) {
	// Naver categories are hierarchical "a>b" strings.
	assert.Equal(t, Restaurant, Normalize("음식점>한식>육류,고기요리"))
	assert.Equal(t, Cafe, Normalize("카페,디저트>베이커리"))
	assert.Equal(t, Hospital, Normalize("병원,의원>내과"))
	// Input contained in a key.
	assert.Equal(t, Restaurant, Normalize("음식"))
}

func TestNormalize_PriorityOrder(t *testing.T) {
	// Both "음식점" and "카페" occur; the earlier table entry wins.
	assert.Equal(t, Restaurant, Normalize("카페 음식점"))
	// "한의원" contains "의원"; the exact lookup hits first.
	assert.Equal(t, Hospital, Normalize("한의원"))
}

func TestNormalize_Fallback(t *testing.T) {
	assert.Equal(t, Other, Normalize(""))
	assert.Equal(t, Other, Normalize("   "))
	assert.Equal(t, Other, Normalize("car_wash"))
	assert.Equal(t, Other, Normalize("노래방"))
}

func TestNormalize_AlwaysCanonical(t *testing.T) {
	inputs := []string{
		"", " ", "x", "음", "음식점", "RESTAURANT", "주유소", "<b>카페</b>",
		"gym & spa", "쇼핑,유통>상점", "\t\n", "한식;중식", "convenience", "st",
	}
	for _, in := range inputs {
		got := Normalize(in)
		assert.NotEmpty(t, got, "input %q", in)
		assert.True(t, IsCanonical(got), "input %q -> %q", in, got)
	}
}

func TestIcon(t *testing.T) {
	assert.Equal(t, "restaurant", Icon(Normalize("한식")))
	assert.Equal(t, Icon(Normalize("한식")), Icon(Normalize("Restaurant")))
	assert.Equal(t, "local_pharmacy", Icon(Pharmacy))
	assert.Equal(t, "content_cut", Icon(Salon))
	assert.Equal(t, DefaultIcon, Icon(Other))
	assert.Equal(t, DefaultIcon, Icon("unknown"))
}

func TestCanonical_EveryCategoryHasIconOrFallback(t *testing.T) {
	for _, c := range Canonical() {
		assert.NotEmpty(t, Icon(c), c)
	}
	assert.Len(t, Canonical(), 12)
}

func TestNormalize_FullWidth(t *testing.T) {
	assert.Equal(t, Cafe, Normalize("ＣＡＦＥ"))
	assert.Equal(t, Cafe, Normalize("  Ｃａｆｅ "))
}

func TestNormalize_ShortKeysMatchExactlyOnly(t *testing.T) {
	assert.Equal(t, Bank, Normalize("ATM"))
	assert.Equal(t, Bank, Normalize(" atm "))
	assert.Equal(t, Other, Normalize("hair treatment"))
	assert.Equal(t, Other, Normalize("at"))
}
