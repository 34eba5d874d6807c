// Package locale supplies localized unit and direction labels and the decimal
// separator for a display language.
package locale

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"github.com/couchcryptid/fix-display-service/internal/domain"
)

// translations holds the label strings per language. Labels a language leaves
// out are filled from English.
var translations = map[language.Tag]map[domain.LabelID]string{
	language.English: {
		domain.LabelMetres:            "m",
		domain.LabelKilometres:        "km",
		domain.LabelFeet:              "ft",
		domain.LabelMiles:             "mi",
		domain.LabelNauticalMiles:     "nm",
		domain.LabelMetresPerSecond:   "m/s",
		domain.LabelKilometresPerHour: "km/h",
		domain.LabelMilesPerHour:      "mph",
		domain.LabelFeetPerSecond:     "ft/s",
		domain.LabelKnots:             "kn",
		domain.LabelNorth:             "N",
		domain.LabelNorthNortheast:    "NNE",
		domain.LabelNortheast:         "NE",
		domain.LabelEastNortheast:     "ENE",
		domain.LabelEast:              "E",
		domain.LabelEastSoutheast:     "ESE",
		domain.LabelSoutheast:         "SE",
		domain.LabelSouthSoutheast:    "SSE",
		domain.LabelSouth:             "S",
		domain.LabelSouthSouthwest:    "SSW",
		domain.LabelSouthwest:         "SW",
		domain.LabelWestSouthwest:     "WSW",
		domain.LabelWest:              "W",
		domain.LabelWestNorthwest:     "WNW",
		domain.LabelNorthwest:         "NW",
		domain.LabelNorthNorthwest:    "NNW",
	},
	language.Italian: {
		domain.LabelSouthSouthwest: "SSO",
		domain.LabelSouthwest:      "SO",
		domain.LabelWestSouthwest:  "OSO",
		domain.LabelWest:           "O",
		domain.LabelWestNorthwest:  "ONO",
		domain.LabelNorthwest:      "NO",
		domain.LabelNorthNorthwest: "NNO",
		domain.LabelKnots:          "nodi",
		domain.LabelNauticalMiles:  "NM",
	},
	language.German: {
		domain.LabelNorthNortheast: "NNO",
		domain.LabelNortheast:      "NO",
		domain.LabelEastNortheast:  "ONO",
		domain.LabelEast:           "O",
		domain.LabelEastSoutheast:  "OSO",
		domain.LabelSoutheast:      "SO",
		domain.LabelSouthSoutheast: "SSO",
		domain.LabelNauticalMiles:  "sm",
	},
}

// Catalog resolves labels for any of the supported languages.
type Catalog struct {
	builder *catalog.Builder
	matcher language.Matcher
	tags    []language.Tag
}

// NewCatalog builds the label catalog for every supported language.
func NewCatalog() (*Catalog, error) {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	english := translations[language.English]
	for tag, labels := range translations {
		for _, id := range domain.LabelIDs() {
			text, ok := labels[id]
			if !ok {
				text = english[id]
			}
			if err := b.SetString(tag, id.Key(), text); err != nil {
				return nil, fmt.Errorf("set %s label %s: %w", tag, id.Key(), err)
			}
		}
	}

	// English first so the matcher falls back to it.
	tags := []language.Tag{language.English}
	for _, tag := range b.Languages() {
		if tag != language.English {
			tags = append(tags, tag)
		}
	}

	return &Catalog{
		builder: b,
		matcher: language.NewMatcher(tags),
		tags:    tags,
	}, nil
}

// Languages lists the supported languages, English first.
func (c *Catalog) Languages() []language.Tag {
	return c.tags
}

// Match returns the supported language closest to the requested one.
func (c *Catalog) Match(requested ...language.Tag) language.Tag {
	_, idx, _ := c.matcher.Match(requested...)
	return c.tags[idx]
}

// Labels returns a label resolver for the supported language closest to tag.
func (c *Catalog) Labels(tag language.Tag) *Labels {
	matched := c.Match(tag)
	return &Labels{
		tag:     matched,
		printer: message.NewPrinter(matched, message.Catalog(c.builder)),
	}
}

// Labels resolves domain label identifiers through a message printer.
type Labels struct {
	tag     language.Tag
	printer *message.Printer
}

// Language reports the language the labels are rendered in.
func (l *Labels) Language() language.Tag {
	return l.tag
}

// Label implements domain.Labels.
func (l *Labels) Label(id domain.LabelID) string {
	key := id.Key()
	if key == "" {
		return ""
	}
	return l.printer.Sprintf(key)
}

// DecimalSeparator returns the symbol a language puts between the integer and
// fractional digits, e.g. "," for Italian.
func DecimalSeparator(tag language.Tag) string {
	sample := message.NewPrinter(tag).Sprintf("%.1f", 0.5)
	sep := strings.TrimSuffix(strings.TrimPrefix(sample, "0"), "5")
	if sep == "" {
		return "."
	}
	return sep
}
