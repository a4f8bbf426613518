package textclean

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"plain", "Cafe Joy", "Cafe Joy"},
		{"highlight tags", "<b>Cafe Joy</b>", "Cafe Joy"},
		{"partial highlight", "스타벅스 <b>역삼</b>점", "스타벅스 역삼점"},
		{"whitespace runs", "  서울특별시   강남구\t역삼동\n737 ", "서울특별시 강남구 역삼동 737"},
		{"tags between words", "a <b> </b> b", "a b"},
		{"fullwidth", "ＧＴ타워", "GT타워"},
		{"nbsp", "테헤란로 152", "테헤란로 152"},
		{"lone bracket", "a < b", "a < b"},
		{"empty brackets", "a<>b", "a<>b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Clean(tt.in))
		})
	}
}

func TestClean_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"<b>Cafe Joy</b>",
		"  x  ",
		"<<b>b>",
		"e<b></b>́",
		"＜b＞fullwidth tag＜/b＞",
		"서울 강남구 <em>테헤란로</em> 152",
		"a　b",
		"<a href=\"x\">link</a> text",
	}
	for _, in := range inputs {
		once := Clean(in)
		assert.Equal(t, once, Clean(once), "input %q", in)
	}
}

func TestCleanAny(t *testing.T) {
	s := " <b>x</b> "
	var nilStr *string
	assert.Equal(t, "x", CleanAny(s))
	assert.Equal(t, "x", CleanAny(&s))
	assert.Equal(t, "", CleanAny(nilStr))
	assert.Equal(t, "", CleanAny(nil))
	assert.Equal(t, "", CleanAny(42))
	assert.Equal(t, "", CleanAny(3.14))
}

func TestFoldKey(t *testing.T) {
	assert.Equal(t, "cafejoy", FoldKey("Cafe Joy"))
	assert.Equal(t, "cafejoy", FoldKey(" CAFE  joy "))
	assert.Equal(t, FoldKey("스타벅스 역삼점"), FoldKey("스타벅스역삼점"))
}

func TestClean_UnicodeWhitespace(t *testing.T) {
	assert.Equal(t, "테헤란로 152", Clean("테헤란로\v152"))
	assert.Equal(t, "테헤란로 152", Clean("테헤란로\u0085152"))
	assert.Equal(t, "테헤란로 152", Clean("테헤란로\u2028\u3000152 "))
	assert.Equal(t, "a b", Clean(" a\t b\n"))
	assert.Equal(t, "cafejoy", FoldKey("Cafe\u0085Joy\v"))
}
