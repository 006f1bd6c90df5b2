package openinghours

import (
	"github.com/goccy/go-json"
)

// OpeningHoursSpecification is a schema.org OpeningHoursSpecification record.
type OpeningHoursSpecification struct {
	Type         string `json:"@type"`
	DayOfWeek    string `json:"dayOfWeek,omitempty"`
	Opens        string `json:"opens"`
	Closes       string `json:"closes"`
	ValidFrom    string `json:"validFrom,omitempty"`
	ValidThrough string `json:"validThrough,omitempty"`
}

const specificationType = "OpeningHoursSpecification"

// AsStructuredData describes the schedule as schema.org records: one per
// range of the regular week, then one per range of each exception, in date
// order. A closed exception becomes a single record opening and closing at
// "00:00".
func (o *OpeningHours) AsStructuredData() []OpeningHoursSpecification {
	var specs []OpeningHoursSpecification

	for _, day := range Days() {
		for _, r := range o.ForDay(day).ranges {
			specs = append(specs, OpeningHoursSpecification{
				Type:      specificationType,
				DayOfWeek: day.Name(),
				Opens:     r.start.String(),
				Closes:    r.end.String(),
			})
		}
	}

	for _, date := range o.exceptions.Dates() {
		hours := o.exceptions[date]
		key := date.String()

		if hours.IsEmpty() {
			specs = append(specs, OpeningHoursSpecification{
				Type:         specificationType,
				Opens:        "00:00",
				Closes:       "00:00",
				ValidFrom:    key,
				ValidThrough: key,
			})
			continue
		}

		for _, r := range hours.ranges {
			specs = append(specs, OpeningHoursSpecification{
				Type:         specificationType,
				Opens:        r.start.String(),
				Closes:       r.end.String(),
				ValidFrom:    key,
				ValidThrough: key,
			})
		}
	}

	return specs
}

// MarshalStructuredData encodes AsStructuredData as a JSON array.
func (o *OpeningHours) MarshalStructuredData() ([]byte, error) {
	specs := o.AsStructuredData()
	if specs == nil {
		specs = []OpeningHoursSpecification{}
	}
	return json.Marshal(specs)
}
