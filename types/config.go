package types

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Config is the declarative form of a schedule, as found in YAML or TOML
// files:
//
//	timezone: Europe/Brussels
//	monday: ["09:00-12:00", "13:00-18:00"]
//	saturday:
//	  hours: ["10:00-16:00"]
//	  data: {note: "market day"}
//	closing_periods:
//	  "2024-08-01": "2024-08-15"
//	exceptions:
//	  "12-25": []
//	filters:
//	  - cron: "1 * *"
//	    hours: ["10:00-12:00"]
//	data: {name: "Bakery"}
type Config struct {
	Timezone string `yaml:"timezone,omitempty" toml:"timezone"`

	// Days maps day names, in any case, to their regular hours.
	Days map[string]DayConfig `yaml:",inline" toml:"-"`

	// ClosingPeriods maps the first closed date to the last one.
	ClosingPeriods map[DateString]DateString `yaml:"closing_periods,omitempty" toml:"closing_periods"`

	Exceptions map[DateString]DayConfig `yaml:"exceptions,omitempty" toml:"exceptions"`
	Filters    []FilterConfig           `yaml:"filters,omitempty" toml:"filters"`
	Data       any                      `yaml:"data,omitempty" toml:"data"`
}

// DayConfig holds the ranges of one day. It is written either as a plain
// list of ranges or as a mapping with "hours" and "data".
type DayConfig struct {
	Hours []TimeRangeString `yaml:"hours" toml:"hours"`
	Data  any               `yaml:"data,omitempty" toml:"data"`
}

// Strings returns the ranges as plain strings.
func (d DayConfig) Strings() []string {
	s := make([]string, len(d.Hours))
	for i, h := range d.Hours {
		s[i] = string(h)
	}
	return s
}

func (d *DayConfig) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.SequenceNode:
		*d = DayConfig{}
		return value.Decode(&d.Hours)
	case yaml.MappingNode:
		type plain DayConfig
		var p plain
		if err := value.Decode(&p); err != nil {
			return err
		}
		*d = DayConfig(p)
		return nil
	case yaml.ScalarNode:
		if value.ShortTag() == "!!null" {
			*d = DayConfig{}
			return nil
		}
	}
	return fmt.Errorf("line %d: hours must be a list of ranges or a mapping with hours and data", value.Line)
}

func (d DayConfig) MarshalYAML() (interface{}, error) {
	if d.Data == nil {
		if d.Hours == nil {
			return []TimeRangeString{}, nil
		}
		return d.Hours, nil
	}
	type plain DayConfig
	return plain(d), nil
}

func (d *DayConfig) UnmarshalTOML(data interface{}) error {
	*d = DayConfig{}

	switch v := data.(type) {
	case []interface{}:
		hours, err := toRanges(v)
		if err != nil {
			return err
		}
		d.Hours = hours
		return nil
	case map[string]interface{}:
		if raw, ok := v["hours"]; ok {
			list, ok := raw.([]interface{})
			if !ok {
				return fmt.Errorf("hours must be a list of ranges, got %T", raw)
			}
			hours, err := toRanges(list)
			if err != nil {
				return err
			}
			d.Hours = hours
		}
		d.Data = v["data"]
		return nil
	}
	return fmt.Errorf("hours must be a list of ranges or a table with hours and data, got %T", data)
}

func toRanges(list []interface{}) ([]TimeRangeString, error) {
	ranges := make([]TimeRangeString, 0, len(list))
	for _, item := range list {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("range must be a string, got %T", item)
		}
		ranges = append(ranges, TimeRangeString(s))
	}
	return ranges, nil
}

// FilterConfig declares a filter. Exactly one of Cron or Sun is set.
type FilterConfig struct {
	// Cron is a "day-of-month month day-of-week" expression; matching dates
	// get Hours.
	Cron  string            `yaml:"cron,omitempty" toml:"cron"`
	Hours []TimeRangeString `yaml:"hours,omitempty" toml:"hours"`

	// Sun opens from sunrise to sunset.
	Sun *SunConfig `yaml:"sun,omitempty" toml:"sun"`
}

// SunConfig locates a sunrise to sunset filter.
type SunConfig struct {
	Latitude  float64        `yaml:"latitude" toml:"latitude"`
	Longitude float64        `yaml:"longitude" toml:"longitude"`
	Offset    DurationString `yaml:"offset,omitempty" toml:"offset"`
}
