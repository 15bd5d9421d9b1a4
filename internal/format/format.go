// Package format renders arbitrary cell values as display text.
//
// A value of any shape becomes a Display: the text shown in the cell and an
// optional tooltip carrying the full value when the text was shortened or
// reformatted. Formatting never fails; values that cannot be rendered fall back
// to the placeholder glyph or the [object] marker.
package format

import (
	"encoding/json"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const (
	// Placeholder is shown for null, empty and unrenderable values.
	Placeholder = "—"

	// Ellipsis is appended to truncated text.
	Ellipsis = "…"

	// ObjectMarker replaces values whose serialization failed.
	ObjectMarker = "[object]"

	// DefaultMaxLen is the truncation threshold in characters.
	DefaultMaxLen = 80
)

// isoTimestamp accepts 2024-05-01T12:34:56, optional fractional seconds and an
// optional Z or +hh:mm offset.
var isoTimestamp = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(?:\.\d+)?(?:Z|[+-]\d{2}:\d{2})?$`)

// Display is the rendered form of a value. An empty Tooltip means none.
type Display struct {
	Text    string
	Tooltip string
}

// HasTooltip reports whether the display carries a tooltip.
func (d Display) HasTooltip() bool {
	return d.Tooltip != ""
}

// Option configures a Formatter.
type Option func(*Formatter)

// WithMaxLen sets the truncation threshold. Values below 1 keep the default.
func WithMaxLen(n int) Option {
	return func(f *Formatter) {
		if n > 0 {
			f.maxLen = n
		}
	}
}

// WithLocale sets the locale used for numerals and timestamps.
func WithLocale(tag language.Tag) Option {
	return func(f *Formatter) {
		f.locale = tag
	}
}

// WithLocation sets the time zone timestamps are shown in. Timestamps without
// an offset are also interpreted in this zone.
func WithLocation(loc *time.Location) Option {
	return func(f *Formatter) {
		if loc != nil {
			f.location = loc
		}
	}
}

// Formatter holds resolved formatting options. It is safe for concurrent use.
type Formatter struct {
	maxLen   int
	locale   language.Tag
	location *time.Location
	printer  *message.Printer
	layout   string
}

// NewFormatter returns a formatter with the given options applied over the
// defaults (80 characters, US English, local time).
func NewFormatter(opts ...Option) *Formatter {
	f := &Formatter{
		maxLen:   DefaultMaxLen,
		locale:   language.AmericanEnglish,
		location: time.Local,
	}
	for _, opt := range opts {
		opt(f)
	}
	f.printer = message.NewPrinter(f.locale)
	f.layout = dateLayout(f.locale)
	return f
}

// Format renders v with a one-off formatter built from opts.
func Format(v any, opts ...Option) Display {
	return NewFormatter(opts...).Format(v)
}

// MaxLen returns the truncation threshold.
func (f *Formatter) MaxLen() int {
	return f.maxLen
}

// Format renders v. It never panics.
func (f *Formatter) Format(v any) (d Display) {
	defer func() {
		if r := recover(); r != nil {
			d = Display{Text: ObjectMarker}
		}
	}()

	if v == nil {
		return Display{Text: Placeholder}
	}

	switch x := v.(type) {
	case string:
		return f.formatString(x)
	case bool:
		return Display{Text: yesNo(x)}
	case json.Number:
		if fl, err := x.Float64(); err == nil {
			return Display{Text: f.Number(fl)}
		}
		return f.truncate(x.String())
	case time.Time:
		if x.IsZero() {
			return Display{Text: Placeholder}
		}
		return Display{Text: f.Time(x), Tooltip: x.Format(time.RFC3339)}
	case error:
		return f.truncate(x.Error())
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return Display{Text: Placeholder}
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.String:
		return f.formatString(rv.String())
	case reflect.Bool:
		return Display{Text: yesNo(rv.Bool())}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Display{Text: f.printer.Sprint(number.Decimal(rv.Int()))}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return Display{Text: f.printer.Sprint(number.Decimal(rv.Uint()))}
	case reflect.Float32, reflect.Float64:
		return Display{Text: f.Number(rv.Float())}
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return Display{Text: Placeholder}
		}
		if rv.Len() == 0 {
			return Display{Text: Placeholder}
		}
		return f.truncate(joinElements(rv))
	case reflect.Map:
		if rv.IsNil() {
			return Display{Text: Placeholder}
		}
		return f.formatObject(rv.Interface())
	case reflect.Struct:
		if t, ok := rv.Interface().(time.Time); ok {
			return f.Format(t)
		}
		return f.formatObject(rv.Interface())
	default:
		return Display{Text: Placeholder}
	}
}

// Number renders a float with locale grouping and at most three fraction digits.
func (f *Formatter) Number(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "∞"
	case math.IsInf(v, -1):
		return "-∞"
	}
	return f.printer.Sprint(number.Decimal(v, number.MaxFractionDigits(3)))
}

// Time renders t in the formatter's zone using the locale's date layout.
func (f *Formatter) Time(t time.Time) string {
	return t.In(f.location).Format(f.layout)
}

// Timestamp parses an ISO-8601 timestamp. ok is false when s does not match the
// accepted pattern or names an impossible instant.
func (f *Formatter) Timestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if !isoTimestamp.MatchString(s) {
		return time.Time{}, false
	}

	if strings.HasSuffix(s, "Z") || hasOffset(s) {
		t, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	}

	t, err := time.ParseInLocation("2006-01-02T15:04:05.999999999", s, f.location)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func (f *Formatter) formatString(s string) Display {
	s = strings.TrimSpace(s)
	if t, ok := f.Timestamp(s); ok {
		return Display{Text: f.Time(t), Tooltip: s}
	}
	d := f.truncate(s)
	if d.Text == "" {
		d.Text = Placeholder
	}
	return d
}

func (f *Formatter) formatObject(v any) Display {
	data, err := json.Marshal(v)
	if err != nil {
		return Display{Text: ObjectMarker}
	}
	return f.truncate(string(data))
}

// truncate applies the shared rule: text up to maxLen characters is shown as
// is, longer text is cut to maxLen characters plus an ellipsis and the full
// text becomes the tooltip.
func (f *Formatter) truncate(text string) Display {
	return Truncate(text, f.maxLen)
}

// Truncate applies the truncation rule to text with the given threshold.
// Thresholds below 1 fall back to DefaultMaxLen, as in WithMaxLen.
func Truncate(text string, max int) Display {
	if max < 1 {
		max = DefaultMaxLen
	}
	trimmed := strings.TrimSpace(text)
	if utf8.RuneCountInString(trimmed) <= max {
		return Display{Text: trimmed}
	}
	runes := []rune(trimmed)
	return Display{Text: string(runes[:max]) + Ellipsis, Tooltip: trimmed}
}

func joinElements(rv reflect.Value) string {
	parts := make([]string, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		parts[i] = plainText(rv.Index(i))
	}
	return strings.Join(parts, ", ")
}

// plainText is the unlocalized text of a list element.
func plainText(rv reflect.Value) string {
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return ""
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.String:
		return rv.String()
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 64)
	case reflect.Slice, reflect.Array:
		parts := make([]string, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			parts[i] = plainText(rv.Index(i))
		}
		return strings.Join(parts, ",")
	case reflect.Map, reflect.Struct:
		data, err := json.Marshal(rv.Interface())
		if err != nil {
			return ObjectMarker
		}
		return string(data)
	default:
		return ""
	}
}

func hasOffset(s string) bool {
	if len(s) < 6 {
		return false
	}
	sign := s[len(s)-6]
	return (sign == '+' || sign == '-') && s[len(s)-3] == ':'
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
