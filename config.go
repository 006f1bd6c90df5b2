package openinghours

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"maps"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/Xevion/go-openinghours/internal"
	"github.com/Xevion/go-openinghours/types"
)

// Create builds an OpeningHours from its declarative configuration.
// Overlapping ranges within a day are an error; see
// CreateAndMergeOverlappingRanges.
func Create(cfg types.Config) (*OpeningHours, error) {
	return builderFromConfig(cfg).Build()
}

// CreateAndMergeOverlappingRanges merges the overlapping ranges of every day
// and exception before building.
func CreateAndMergeOverlappingRanges(cfg types.Config) (*OpeningHours, error) {
	merged, err := MergeOverlappingConfig(cfg)
	if err != nil {
		return nil, err
	}
	return Create(merged)
}

// IsValid reports whether cfg builds without error.
func IsValid(cfg types.Config) bool {
	_, err := Create(cfg)
	return err == nil
}

// MergeOverlappingConfig returns a copy of cfg in which the ranges of each
// day and each exception have been merged independently. Everything else,
// metadata included, is passed through unchanged.
func MergeOverlappingConfig(cfg types.Config) (types.Config, error) {
	mergeDay := func(d types.DayConfig) (types.DayConfig, error) {
		merged, err := MergeOverlappingRangeStrings(d.Strings())
		if err != nil {
			return types.DayConfig{}, err
		}
		hours := make([]types.TimeRangeString, len(merged))
		for i, s := range merged {
			hours[i] = types.TimeRangeString(s)
		}
		return types.DayConfig{Hours: hours, Data: d.Data}, nil
	}

	out := cfg
	out.Days = make(map[string]types.DayConfig, len(cfg.Days))
	for name, d := range cfg.Days {
		merged, err := mergeDay(d)
		if err != nil {
			return types.Config{}, fmt.Errorf("%s: %w", name, err)
		}
		out.Days[name] = merged
	}

	out.Exceptions = make(map[types.DateString]types.DayConfig, len(cfg.Exceptions))
	for key, d := range cfg.Exceptions {
		merged, err := mergeDay(d)
		if err != nil {
			return types.Config{}, fmt.Errorf("exception %s: %w", key, err)
		}
		out.Exceptions[key] = merged
	}

	out.ClosingPeriods = maps.Clone(cfg.ClosingPeriods)
	return out, nil
}

func builderFromConfig(cfg types.Config) *Builder {
	b := NewBuilder().Data(cfg.Data)

	if cfg.Timezone != "" {
		b.Timezone(cfg.Timezone)
	}

	for name, d := range cfg.Days {
		day, err := ParseDay(name)
		if err != nil {
			b.errors = append(b.errors, err)
			continue
		}
		b.Day(day, d.Strings()...).DayData(day, d.Data)
	}

	for start, end := range cfg.ClosingPeriods {
		b.ClosingPeriod(string(start), string(end))
	}

	for key, d := range cfg.Exceptions {
		b.Exception(string(key), d.Strings()...).ExceptionData(string(key), d.Data)
	}

	for i, fc := range cfg.Filters {
		f, err := filterFromConfig(fc)
		if err != nil {
			b.errors = append(b.errors, fmt.Errorf("filter %d: %w", i, err))
			continue
		}
		b.Filter(f)
	}

	return b
}

func filterFromConfig(fc types.FilterConfig) (Filter, error) {
	switch {
	case fc.Cron != "" && fc.Sun != nil:
		return nil, fmt.Errorf("%w: cron and sun are mutually exclusive", ErrInvalidFilter)
	case fc.Cron != "":
		hours := make([]string, len(fc.Hours))
		for i, h := range fc.Hours {
			hours[i] = string(h)
		}
		return CronFilter(fc.Cron, hours...)
	case fc.Sun != nil:
		var offset time.Duration
		if fc.Sun.Offset != "" {
			d, err := time.ParseDuration(string(fc.Sun.Offset))
			if err != nil {
				return nil, fmt.Errorf("%w: sun offset: %w", ErrInvalidFilter, err)
			}
			offset = d
		}
		return SunFilter(fc.Sun.Latitude, fc.Sun.Longitude, offset), nil
	}
	return nil, fmt.Errorf("%w: one of cron or sun is required", ErrInvalidFilter)
}

// DecodeYAML reads a configuration written in YAML.
func DecodeYAML(data []byte) (types.Config, error) {
	var cfg types.Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&cfg); err != nil {
		return types.Config{}, fmt.Errorf("decoding yaml: %w", err)
	}
	return cfg, nil
}

// DecodeTOML reads a configuration written in TOML. Day names are top level
// keys next to timezone, closing_periods, exceptions, filters and data.
func DecodeTOML(data []byte) (types.Config, error) {
	var raw map[string]toml.Primitive
	md, err := toml.Decode(string(data), &raw)
	if err != nil {
		return types.Config{}, fmt.Errorf("decoding toml: %w", err)
	}

	cfg := types.Config{Days: make(map[string]types.DayConfig)}
	for key, prim := range raw {
		switch key {
		case "timezone":
			err = md.PrimitiveDecode(prim, &cfg.Timezone)
		case "closing_periods":
			err = md.PrimitiveDecode(prim, &cfg.ClosingPeriods)
		case "exceptions":
			err = md.PrimitiveDecode(prim, &cfg.Exceptions)
		case "filters":
			err = md.PrimitiveDecode(prim, &cfg.Filters)
		case "data":
			err = md.PrimitiveDecode(prim, &cfg.Data)
		default:
			var day types.DayConfig
			err = md.PrimitiveDecode(prim, &day)
			cfg.Days[key] = day
		}
		if err != nil {
			return types.Config{}, fmt.Errorf("decoding toml key %q: %w", key, err)
		}
	}
	return cfg, nil
}

// Decode picks the decoder from a file name or content type hint: TOML for
// ".toml" and "toml" content types, YAML otherwise.
func Decode(data []byte, hint string) (types.Config, error) {
	if strings.EqualFold(filepath.Ext(hint), ".toml") || strings.Contains(strings.ToLower(hint), "toml") {
		return DecodeTOML(data)
	}
	return DecodeYAML(data)
}

// LoadFile reads and builds the configuration at filename.
func LoadFile(filename string) (*OpeningHours, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	cfg, err := Decode(data, filename)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}

	slog.Info("Loaded opening hours", "path", filename, "days", len(cfg.Days), "exceptions", len(cfg.Exceptions))
	return Create(cfg)
}

// LoadURL fetches and builds the configuration published at rawURL.
func LoadURL(ctx context.Context, rawURL string) (*OpeningHours, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}

	base := *u
	base.Path, base.RawQuery = "", ""
	client := internal.NewHttpClient(ctx, &base)

	doc, err := client.GetDocument(u.RequestURI())
	if err != nil {
		return nil, err
	}

	hint := doc.ContentType
	if path.Ext(u.Path) != "" {
		hint = u.Path
	}
	cfg, err := Decode(doc.Body, hint)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", rawURL, err)
	}

	slog.Info("Fetched opening hours", "url", rawURL, "days", len(cfg.Days), "exceptions", len(cfg.Exceptions))
	return Create(cfg)
}
