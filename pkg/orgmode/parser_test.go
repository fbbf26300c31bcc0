package orgmode

import (
	"strings"
	"testing"

	"github.com/harrisonrobin/taskflow/pkg/model"
)

const sample = `#+TITLE: Inbox
* TODO [#A] Pay rent :home:
  DEADLINE: <2024-03-01 Fri 09:00>
  :PROPERTIES:
  :ID: 1234
  :END:
  Transfer before noon.
* DONE Buy milk
  CLOSED: [2024-02-28 Wed 18:00]
* Notes
  not a task
** TODO [#C] Water plants
`

func TestParse(t *testing.T) {
	drafts, err := Parse(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(drafts) != 3 {
		t.Fatalf("Expected 3 drafts, got %d: %+v", len(drafts), drafts)
	}

	rent := drafts[0]
	if rent.Title != "Pay rent" || rent.Priority != model.PriorityHigh || rent.Completed {
		t.Errorf("Unexpected first draft: %+v", rent)
	}
	if rent.DueDate == nil || rent.DueDate.String() != "2024-03-01" {
		t.Errorf("Expected deadline 2024-03-01, got %v", rent.DueDate)
	}
	if rent.Description != "Transfer before noon." {
		t.Errorf("Expected body as description, got %q", rent.Description)
	}

	if milk := drafts[1]; !milk.Completed || milk.Priority != model.PriorityMedium || milk.Description != "" {
		t.Errorf("Unexpected second draft: %+v", milk)
	}
	if plants := drafts[2]; plants.Title != "Water plants" || plants.Priority != model.PriorityLow {
		t.Errorf("Unexpected third draft: %+v", plants)
	}
}
