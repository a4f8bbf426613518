// Package category maps provider category strings onto a fixed display taxonomy.
package category

import (
	"strings"

	"golang.org/x/text/width"
)

// Canonical categories.
const (
	Restaurant       = "restaurant"
	Cafe             = "cafe"
	ConvenienceStore = "convenience_store"
	Pharmacy         = "pharmacy"
	Bank             = "bank"
	Hospital         = "hospital"
	Salon            = "salon"
	Gym              = "gym"
	Academy          = "academy"
	Parking          = "parking"
	Retail           = "retail"
	Other            = "other"
)

// DefaultIcon is returned for categories without an icon entry.
const DefaultIcon = "store"

type synonym struct {
	key       string
	canonical string
}

// synonyms is scanned in order for substring matches, so earlier entries win.
var synonyms = []synonym{
	{"음식점", Restaurant},
	{"한식", Restaurant},
	{"중식", Restaurant},
	{"일식", Restaurant},
	{"양식", Restaurant},
	{"분식", Restaurant},
	{"치킨", Restaurant},
	{"피자", Restaurant},
	{"패스트푸드", Restaurant},
	{"restaurant", Restaurant},

	{"카페", Cafe},
	{"커피", Cafe},
	{"디저트", Cafe},
	{"베이커리", Cafe},
	{"cafe", Cafe},

	{"편의점", ConvenienceStore},
	{"convenience_store", ConvenienceStore},
	{"약국", Pharmacy},
	{"pharmacy", Pharmacy},
	{"은행", Bank},
	{"bank", Bank},

	{"병원", Hospital},
	{"의원", Hospital},
	{"치과", Hospital},
	{"한의원", Hospital},
	{"hospital", Hospital},

	{"미용실", Salon},
	{"헤어", Salon},
	{"hair_care", Salon},
	{"헬스장", Gym},
	{"피트니스", Gym},
	{"gym", Gym},

	{"학원", Academy},
	{"교육", Academy},

	{"주차장", Parking},
	{"parking", Parking},
	{"상점", Retail},
	{"store", Retail},
}

// exactOnly keys are too short to scan for as substrings.
var exactOnly = map[string]string{
	"atm": Bank,
}

var exact = func() map[string]string {
	m := make(map[string]string, len(synonyms)+len(exactOnly))
	for k, v := range exactOnly {
		m[k] = v
	}
	for _, s := range synonyms {
		if _, ok := m[s.key]; !ok {
			m[s.key] = s.canonical
		}
	}
	return m
}()

var icons = map[string]string{
	Restaurant:       "restaurant",
	Cafe:             "cafe",
	ConvenienceStore: "convenience_store",
	Pharmacy:         "local_pharmacy",
	Bank:             "account_balance",
	Hospital:         "local_hospital",
	Salon:            "content_cut",
	Gym:              "fitness_center",
	Academy:          "school",
	Parking:          "local_parking",
	Retail:           "store",
}

// Normalize returns the canonical category for a raw provider category.
// Blank input and input matching no synonym yield Other. Full-width forms
// are folded before lookup.
func Normalize(raw string) string {
	key := strings.ToLower(strings.TrimSpace(width.Fold.String(raw)))
	if key == "" {
		return Other
	}
	if c, ok := exact[key]; ok {
		return c
	}
	for _, s := range synonyms {
		if strings.Contains(key, s.key) || strings.Contains(s.key, key) {
			return s.canonical
		}
	}
	return Other
}

// Icon returns the icon identifier for a canonical category.
func Icon(canonical string) string {
	if icon, ok := icons[canonical]; ok {
		return icon
	}
	return DefaultIcon
}

// Canonical lists every value Normalize can return.
func Canonical() []string {
	return []string{
		Restaurant, Cafe, ConvenienceStore, Pharmacy, Bank, Hospital,
		Salon, Gym, Academy, Parking, Retail, Other,
	}
}

// IsCanonical reports whether c belongs to the taxonomy.
func IsCanonical(c string) bool {
	for _, v := range Canonical() {
		if v == c {
			return true
		}
	}
	return false
}
