package http

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/abdul-hamid-achik/easyfetch/packages/httperr"
)

// Success is the result of a request that came back with a 2xx status.
type Success struct {
	Status int    `json:"status"`
	Data   string `json:"data"`
	Time   string `json:"time"`

	Duration time.Duration     `json:"-"`
	Headers  map[string]string `json:"-"`
}

func (s *Success) Header(key string) string {
	for k, v := range s.Headers {
		if strings.EqualFold(k, key) {
			return v
		}
	}
	return ""
}

func (s *Success) ContentType() string {
	return s.Header("Content-Type")
}

func (s *Success) IsJSON() bool {
	return strings.Contains(s.ContentType(), "application/json")
}

func (s *Success) DurationMs() int64 {
	return s.Duration.Milliseconds()
}

// FormatDuration renders d as whole milliseconds below one second and as
// seconds with two decimals from one second up.
func FormatDuration(d time.Duration) string {
	ms := d.Milliseconds()
	if ms < 1000 {
		return fmt.Sprintf("%dms", ms)
	}
	return fmt.Sprintf("%.2fs", float64(ms)/1000)
}

// Outcome holds exactly one of Success or Failure.
type Outcome struct {
	Success *Success
	Failure *httperr.Error
}

// NewOutcome folds a (result, error) pair into an Outcome.
func NewOutcome(s *Success, err error) Outcome {
	if err != nil {
		return Outcome{Failure: httperr.From(err)}
	}
	return Outcome{Success: s}
}

func (o Outcome) OK() bool {
	return o.Failure == nil && o.Success != nil
}

// Err returns the failure as an error, or nil on success.
func (o Outcome) Err() error {
	if o.Failure == nil {
		return nil
	}
	return o.Failure
}

func (o Outcome) MarshalJSON() ([]byte, error) {
	if o.Failure != nil {
		return json.Marshal(o.Failure)
	}
	return json.Marshal(o.Success)
}
