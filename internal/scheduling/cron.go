package scheduling

import (
	"fmt"
	"time"

	"github.com/dromara/carbon/v2"
	"github.com/robfig/cron/v3"
)

// DateMatcher matches calendar dates against a three field cron expression:
// day of month, month and day of week, e.g. "25 12 *" or "* * 0".
type DateMatcher struct {
	expression string
	schedule   cron.Schedule
}

// NewDateMatcher parses a day-of-month / month / day-of-week expression.
func NewDateMatcher(expression string) (*DateMatcher, error) {
	parser := cron.NewParser(cron.Dom | cron.Month | cron.Dow)
	schedule, err := parser.Parse(expression)
	if err != nil {
		return nil, fmt.Errorf("invalid cron expression: %w", err)
	}

	return &DateMatcher{
		expression: expression,
		schedule:   schedule,
	}, nil
}

// Expression returns the expression the matcher was built from.
func (m *DateMatcher) Expression() string {
	return m.expression
}

// Matches reports whether the calendar date of t, in t's location, satisfies
// the expression.
func (m *DateMatcher) Matches(t time.Time) bool {
	midnight := carbon.CreateFromStdTime(t).StartOfDay().StdTime()
	return m.schedule.Next(midnight.Add(-time.Second)).Equal(midnight)
}
