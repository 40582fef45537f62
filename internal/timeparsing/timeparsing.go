// Package timeparsing parses user-supplied points in time: RFC 3339, a few
// date layouts, and natural language ("yesterday", "last monday 9am").
package timeparsing

import (
	"fmt"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

var parser = newParser()

func newParser() *when.Parser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return w
}

var layouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// Parse resolves input to a time, trying fixed layouts before natural
// language relative to now.
func Parse(input string, now time.Time) (time.Time, error) {
	for _, layout := range layouts {
		if t, err := time.Parse(layout, input); err == nil {
			return t, nil
		}
	}

	result, err := parser.Parse(input, now)
	if err == nil && result != nil {
		return result.Time, nil
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q", input)
}
