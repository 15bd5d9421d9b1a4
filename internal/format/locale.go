package format

import (
	"fmt"

	"golang.org/x/text/language"
)

// Date layouts keyed by locale. Lookup tries the full tag, then base+region,
// then the base language.
var dateLayouts = map[string]string{
	"en":    "1/2/2006, 3:04:05 PM",
	"en-GB": "02/01/2006, 15:04:05",
	"en-AU": "02/01/2006, 3:04:05 pm",
	"en-CA": "2006-01-02, 3:04:05 p.m.",
	"de":    "2.1.2006, 15:04:05",
	"nl":    "2-1-2006, 15:04:05",
	"fr":    "02/01/2006 15:04:05",
	"es":    "2/1/2006, 15:04:05",
	"it":    "2/1/2006, 15:04:05",
	"pt":    "02/01/2006, 15:04:05",
	"ru":    "02.01.2006, 15:04:05",
	"pl":    "2.01.2006, 15:04:05",
	"sv":    "2006-01-02 15:04:05",
	"ja":    "2006/1/2 15:04:05",
	"zh":    "2006/1/2 15:04:05",
	"ko":    "2006. 1. 2. 15:04:05",
}

func dateLayout(tag language.Tag) string {
	if l, ok := dateLayouts[tag.String()]; ok {
		return l
	}
	base, _ := tag.Base()
	if region, conf := tag.Region(); conf == language.Exact {
		if l, ok := dateLayouts[fmt.Sprintf("%s-%s", base, region)]; ok {
			return l
		}
	}
	if l, ok := dateLayouts[base.String()]; ok {
		return l
	}
	return dateLayouts["en"]
}

// ParseLocale parses a BCP 47 tag such as "en-US" or "de". An empty string
// yields US English.
func ParseLocale(s string) (language.Tag, error) {
	if s == "" {
		return language.AmericanEnglish, nil
	}
	tag, err := language.Parse(s)
	if err != nil {
		return language.Und, fmt.Errorf("invalid locale %q: %w", s, err)
	}
	return tag, nil
}
