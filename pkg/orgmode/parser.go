// Package orgmode reads TODO and DONE headings from Org-mode files.
package orgmode

import (
	"bufio"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/harrisonrobin/taskflow/pkg/model"
)

var (
	headingRegex  = regexp.MustCompile(`^\*+\s+(TODO|DONE)\s+(?:\[#([A-Z])\]\s*)?(.*?)(?:\s+(:[\w@:]+:))?\s*$`)
	deadlineRegex = regexp.MustCompile(`DEADLINE:\s+<(\d{4}-\d{2}-\d{2})[^>]*>`)
	drawerRegex   = regexp.MustCompile(`^:[A-Z_]+:`)
	anyHeading    = regexp.MustCompile(`^\*+\s`)
)

// ParseFile parses one Org-mode file.
func ParseFile(path string) ([]model.Draft, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// Parse returns a draft per TODO/DONE heading in document order. Priority
// cookies map A/B/C to high/medium/low, a DEADLINE becomes the due date and
// plain body lines become the description.
func Parse(r io.Reader) ([]model.Draft, error) {
	scanner := bufio.NewScanner(r)
	var drafts []model.Draft
	var current *model.Draft
	var body []string

	flush := func() {
		if current == nil {
			return
		}
		current.Description = strings.TrimSpace(strings.Join(body, "\n"))
		if current.Title != "" {
			drafts = append(drafts, *current)
		}
		current, body = nil, nil
	}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if m := headingRegex.FindStringSubmatch(line); m != nil {
			flush()
			current = &model.Draft{
				Title:     strings.TrimSpace(m[3]),
				Priority:  priorityFromCookie(m[2]),
				Completed: m[1] == "DONE",
			}
			continue
		}
		if anyHeading.MatchString(line) {
			flush()
			continue
		}
		if current == nil {
			continue
		}
		if m := deadlineRegex.FindStringSubmatch(line); m != nil {
			if due, err := model.ParseDate(m[1]); err == nil {
				current.DueDate = &due
			}
			continue
		}
		if strings.HasPrefix(line, "SCHEDULED:") || strings.HasPrefix(line, "CLOSED:") || drawerRegex.MatchString(line) {
			continue
		}
		if line != "" {
			body = append(body, line)
		}
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return drafts, nil
}

func priorityFromCookie(c string) model.Priority {
	switch c {
	case "A":
		return model.PriorityHigh
	case "C":
		return model.PriorityLow
	default:
		return model.PriorityMedium
	}
}
