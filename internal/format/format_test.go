package format

import (
	"encoding/json"
	"math"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func utcFormatter(opts ...Option) *Formatter {
	return NewFormatter(append([]Option{WithLocation(time.UTC)}, opts...)...)
}

func TestFormat_Scalars(t *testing.T) {
	f := utcFormatter()

	tests := []struct {
		name string
		in   any
		want Display
	}{
		{"nil", nil, Display{Text: Placeholder}},
		{"typed nil pointer", (*string)(nil), Display{Text: Placeholder}},
		{"true", true, Display{Text: "Yes"}},
		{"false", false, Display{Text: "No"}},
		{"int", 30, Display{Text: "30"}},
		{"grouped int", 1234567, Display{Text: "1,234,567"}},
		{"float", 1234.5678, Display{Text: "1,234.568"}},
		{"json number", json.Number("42"), Display{Text: "42"}},
		{"pointer to int", ptr(7), Display{Text: "7"}},
		{"short string", "  Ann ", Display{Text: "Ann"}},
		{"blank string", "   ", Display{Text: Placeholder}},
		{"empty slice", []string{}, Display{Text: Placeholder}},
		{"nil slice", []int(nil), Display{Text: Placeholder}},
		{"slice", []any{1, "a", nil, true}, Display{Text: "1, a, , true"}},
		{"map", map[string]int{"a": 1}, Display{Text: `{"a":1}`}},
		{"struct", struct {
			X int `json:"x"`
		}{X: 2}, Display{Text: `{"x":2}`}},
		{"func", func() {}, Display{Text: Placeholder}},
		{"channel", make(chan int), Display{Text: Placeholder}},
		{"complex", complex(1, 2), Display{Text: Placeholder}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.Format(tt.in))
		})
	}
}

func TestFormat_NonFiniteNumbers(t *testing.T) {
	f := utcFormatter()
	assert.Equal(t, "NaN", f.Format(math.NaN()).Text)
	assert.Equal(t, "∞", f.Format(math.Inf(1)).Text)
	assert.Equal(t, "-∞", f.Format(math.Inf(-1)).Text)
}

func TestFormat_LocaleGrouping(t *testing.T) {
	de := utcFormatter(WithLocale(language.German))
	assert.Equal(t, "1.234.567", de.Format(1234567).Text)
	assert.Equal(t, "1.234,5", de.Format(1234.5).Text)
}

func TestFormat_ISOTimestamps(t *testing.T) {
	f := utcFormatter()

	tests := []struct {
		in   string
		want string
	}{
		{"2024-05-01T12:00:00Z", "5/1/2024, 12:00:00 PM"},
		{"2024-05-01T12:00:00.123Z", "5/1/2024, 12:00:00 PM"},
		{"2024-05-01T14:30:00+02:00", "5/1/2024, 12:30:00 PM"},
		{"2024-05-01T07:00:00-05:00", "5/1/2024, 12:00:00 PM"},
		{"2024-05-01T09:15:00", "5/1/2024, 9:15:00 AM"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			d := f.Format("  " + tt.in + "  ")
			assert.Equal(t, tt.want, d.Text)
			assert.Equal(t, tt.in, d.Tooltip, "tooltip carries the trimmed raw value")
		})
	}
}

func TestFormat_InvalidTimestampsFallBackToText(t *testing.T) {
	f := utcFormatter()

	for _, in := range []string{
		"2024-13-01T12:00:00Z", // matches the pattern, impossible month
		"2024-05-01 12:00:00",  // no T separator
		"2024-05-01",           // date only
		"2024-05-01T12:00:00+0200",
	} {
		t.Run(in, func(t *testing.T) {
			d := f.Format(in)
			assert.Equal(t, in, d.Text)
			assert.False(t, d.HasTooltip())
		})
	}
}

func TestFormat_TimestampLocales(t *testing.T) {
	in := "2024-05-01T12:00:00Z"
	assert.Equal(t, "1.5.2024, 12:00:00", utcFormatter(WithLocale(language.German)).Format(in).Text)
	assert.Equal(t, "01/05/2024, 12:00:00", utcFormatter(WithLocale(language.BritishEnglish)).Format(in).Text)
	assert.Equal(t, "2024/5/1 12:00:00", utcFormatter(WithLocale(language.Japanese)).Format(in).Text)
}

func TestTruncate(t *testing.T) {
	for _, max := range []int{1, 5, 10, 80} {
		for _, n := range []int{0, 1, max - 1, max, max + 1, max * 3} {
			if n < 0 {
				continue
			}
			in := strings.Repeat("é", n)
			d := Truncate(in, max)
			if n <= max {
				assert.Equal(t, in, d.Text)
				assert.False(t, d.HasTooltip())
				continue
			}
			assert.Equal(t, max+1, utf8.RuneCountInString(d.Text), "max=%d n=%d", max, n)
			assert.True(t, strings.HasSuffix(d.Text, Ellipsis))
			assert.Equal(t, in, d.Tooltip)
		}
	}
}

func TestTruncateNonPositiveMaxUsesDefault(t *testing.T) {
	long := strings.Repeat("a", DefaultMaxLen+5)
	for _, max := range []int{0, -1, -100} {
		d := Truncate(long, max)
		assert.Equal(t, DefaultMaxLen+1, utf8.RuneCountInString(d.Text), "max=%d", max)
		assert.Equal(t, long, d.Tooltip)
		assert.Equal(t, "hello", Truncate("hello", max).Text)
	}
}

func TestFormat_LongValuesTruncate(t *testing.T) {
	f := utcFormatter(WithMaxLen(10))

	d := f.Format("abcdefghijklmnop")
	assert.Equal(t, "abcdefghij…", d.Text)
	assert.Equal(t, "abcdefghijklmnop", d.Tooltip)

	d = f.Format([]string{"alpha", "beta", "gamma"})
	assert.Equal(t, "alpha, bet…", d.Text)
	assert.Equal(t, "alpha, beta, gamma", d.Tooltip)

	d = f.Format(map[string]string{"key": "a long value"})
	assert.Equal(t, `{"key":"a …`, d.Text)
	assert.Equal(t, `{"key":"a long value"}`, d.Tooltip)
}

func TestFormat_DefaultMaxLen(t *testing.T) {
	f := NewFormatter(WithMaxLen(0))
	assert.Equal(t, DefaultMaxLen, f.MaxLen())
}

type unmarshalable struct {
	C chan int `json:"c"`
}

func TestFormat_SerializationFailureUsesMarker(t *testing.T) {
	d := utcFormatter().Format(unmarshalable{C: make(chan int)})
	assert.Equal(t, Display{Text: ObjectMarker}, d)
}

type explodingStringer struct{}

func (explodingStringer) MarshalJSON() ([]byte, error) {
	panic("boom")
}

func TestFormat_NeverPanics(t *testing.T) {
	f := utcFormatter()
	values := []any{
		explodingStringer{},
		map[string]any{"x": explodingStringer{}},
		[]any{[]any{1, 2}, map[string]int{"a": 1}},
		struct{}{},
		[3]int{1, 2, 3},
		uintptr(5),
	}
	for _, v := range values {
		require.NotPanics(t, func() {
			d := f.Format(v)
			assert.NotEmpty(t, d.Text)
		})
	}
}

func TestParseLocale(t *testing.T) {
	tag, err := ParseLocale("")
	require.NoError(t, err)
	assert.Equal(t, language.AmericanEnglish, tag)

	tag, err = ParseLocale("de-DE")
	require.NoError(t, err)
	assert.Equal(t, "1.5.2024, 12:00:00", utcFormatter(WithLocale(tag)).Format("2024-05-01T12:00:00Z").Text)

	_, err = ParseLocale("not a locale!")
	assert.Error(t, err)
}

func ptr[T any](v T) *T {
	return &v
}
