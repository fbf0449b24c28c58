package domain

import (
	"fmt"
	"strings"
)

const SchemaVersion = 1

// Cue is guidance text that becomes active once Offset seconds of practice
// have elapsed and stays active until the next cue.
type Cue struct {
	Offset int
	Text   string
}

type Drill struct {
	ID          string
	Name        string
	Description string
	Cues        []Cue
	Builtin     bool
}

func (d Drill) Validate() error {
	if strings.TrimSpace(d.ID) == "" {
		return fmt.Errorf("drill id is required")
	}
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("drill %s: name is required", d.ID)
	}
	prev := 0
	for i, cue := range d.Cues {
		if cue.Offset < 0 {
			return fmt.Errorf("drill %s: cue %d has negative offset %d", d.ID, i, cue.Offset)
		}
		if cue.Offset < prev {
			return fmt.Errorf("drill %s: cue %d offset %d precedes previous offset %d", d.ID, i, cue.Offset, prev)
		}
		if strings.TrimSpace(cue.Text) == "" {
			return fmt.Errorf("drill %s: cue %d text is required", d.ID, i)
		}
		prev = cue.Offset
	}
	return nil
}

// CuesWithin returns the cues scheduled no later than seconds into a practice.
func (d Drill) CuesWithin(seconds int) []Cue {
	out := make([]Cue, 0, len(d.Cues))
	for _, cue := range d.Cues {
		if cue.Offset <= seconds {
			out = append(out, cue)
		}
	}
	return out
}
