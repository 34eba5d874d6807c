// Command physfmt renders a single measurement the way the display service
// would, for checking preference profiles from a shell.
//
// Usage:
//
//	physfmt speed 10 --units nautical-kn
//	physfmt latitude -- -33.25 --decimal-coordinates
//	physfmt time 1714140000000 --local-time --timezone Europe/Rome
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"golang.org/x/text/language"

	"github.com/couchcryptid/fix-display-service/internal/domain"
	"github.com/couchcryptid/fix-display-service/internal/locale"
	"github.com/couchcryptid/fix-display-service/internal/preferences"
)

type cli struct {
	Kind  string `arg:"" help:"Measurement kind: latitude, longitude, altitude, speed, speed-avg, accuracy, bearing, distance, duration, time."`
	Value string `arg:"" help:"Raw value in SI units, degrees, or milliseconds. Time also accepts RFC 3339."`

	Prefs              string `help:"YAML preferences profile used as the base for the flags below." type:"existingfile"`
	Units              string `help:"Unit system (metric-ms, metric-kmh, imperial-fps, imperial-mph, nautical-kn, nautical-mph)."`
	Bearing            string `help:"Bearing mode (compass, angle)."`
	DecimalCoordinates bool   `help:"Show coordinates as decimal degrees."`
	LocalTime          bool   `help:"Show times in --timezone instead of UTC."`
	Timezone           string `help:"IANA zone for --local-time."`
	Lang               string `help:"Display language." default:"en"`
}

func main() {
	var args cli
	parser, err := kong.New(&args,
		kong.Name("physfmt"),
		kong.Description("Format a physical quantity for display."),
		kong.UsageOnError(),
	)
	if err != nil {
		panic(err)
	}

	_, err = parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	if err := run(args, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "physfmt: %s\n", err)
		os.Exit(1)
	}
}

func run(args cli, out io.Writer) error {
	kind, ok := domain.ParseKind(args.Kind)
	if !ok {
		return fmt.Errorf("unknown kind %q", args.Kind)
	}

	p, err := resolvePreferences(args)
	if err != nil {
		return err
	}

	tag, err := language.Parse(args.Lang)
	if err != nil {
		return fmt.Errorf("lang: %w", err)
	}
	catalog, err := locale.NewCatalog()
	if err != nil {
		return err
	}
	labels := catalog.Labels(tag)
	f := domain.NewFormatter(labels, domain.WithDecimalSeparator(locale.DecimalSeparator(labels.Language())))

	q, err := format(f, p, kind, args.Value)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, strings.TrimSpace(q.Value+" "+q.Unit))
	return err
}

func resolvePreferences(args cli) (domain.Preferences, error) {
	p := domain.DefaultPreferences()
	if args.Prefs != "" {
		loaded, err := preferences.Load(args.Prefs)
		if err != nil {
			return domain.Preferences{}, err
		}
		p = loaded
	}

	// Flags override the profile only when given.
	f := preferences.Describe(p)
	if args.Units != "" {
		f.Units = args.Units
	}
	if args.Bearing != "" {
		f.Bearing = args.Bearing
	}
	if args.Timezone != "" {
		f.TimeZone = args.Timezone
	}
	f.DecimalCoordinates = f.DecimalCoordinates || args.DecimalCoordinates
	f.LocalTime = f.LocalTime || args.LocalTime
	return f.Preferences()
}

func format(f *domain.Formatter, p domain.Preferences, kind domain.Kind, value string) (domain.FormattedQuantity, error) {
	switch kind {
	case domain.KindSpeed, domain.KindSpeedAvg, domain.KindAccuracy, domain.KindBearing, domain.KindDistance:
		v, err := strconv.ParseFloat(value, 32)
		if err != nil {
			return domain.FormattedQuantity{}, fmt.Errorf("%s value: %w", kind, err)
		}
		return f.Format(p, float32(v), kind), nil

	case domain.KindLatitude, domain.KindLongitude, domain.KindAltitude:
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return domain.FormattedQuantity{}, fmt.Errorf("%s value: %w", kind, err)
		}
		return f.FormatPrecise(p, v, kind), nil

	case domain.KindDuration, domain.KindTime:
		ms, err := parseMillis(kind, value)
		if err != nil {
			return domain.FormattedQuantity{}, err
		}
		return f.FormatMillis(p, ms, kind), nil

	default:
		return domain.FormattedQuantity{}, fmt.Errorf("unsupported kind %s", kind)
	}
}

func parseMillis(kind domain.Kind, value string) (int64, error) {
	ms, err := strconv.ParseInt(value, 10, 64)
	if err == nil {
		return ms, nil
	}
	if kind == domain.KindTime {
		if t, terr := time.Parse(time.RFC3339, value); terr == nil {
			return t.UnixMilli(), nil
		}
	}
	return 0, fmt.Errorf("%s value: %w", kind, err)
}
