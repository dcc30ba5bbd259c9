package roster

import (
	"fmt"
	"strings"

	"github.com/conn-castle/gradebook/internal/messages"
)

// Grade is a single grade cell value.
type Grade string

// Grade choices, in display order.
const (
	GradeEmpty Grade = ""
	Grade2     Grade = "2"
	Grade3     Grade = "3"
	Grade4     Grade = "4"
	Grade5     Grade = "5"
	GradeNA    Grade = "N/A"
)

// PlaceholderGlyph is shown in place of an empty grade.
const PlaceholderGlyph = "—"

var choices = []Grade{GradeEmpty, Grade2, Grade3, Grade4, Grade5, GradeNA}

// Choices returns the grade choices in display order.
func Choices() []Grade {
	out := make([]Grade, len(choices))
	copy(out, choices)
	return out
}

// Valid reports whether g is one of the grade choices.
func (g Grade) Valid() bool {
	for _, c := range choices {
		if g == c {
			return true
		}
	}
	return false
}

// Label renders the grade for display.
func (g Grade) Label() string {
	if g == GradeEmpty {
		return PlaceholderGlyph
	}
	return string(g)
}

// Next returns the choice after g, wrapping around. Unknown values map to the first choice.
func (g Grade) Next() Grade {
	return g.step(1)
}

// Prev returns the choice before g, wrapping around.
func (g Grade) Prev() Grade {
	return g.step(-1)
}

func (g Grade) step(delta int) Grade {
	idx := -1
	for i, c := range choices {
		if g == c {
			idx = i
			break
		}
	}
	if idx < 0 {
		return choices[0]
	}
	n := len(choices)
	return choices[((idx+delta)%n+n)%n]
}

// ParseGrade converts user text to a Grade.
// Accepts the choices verbatim, "n/a" in any case, and "-" or the placeholder glyph for empty.
func ParseGrade(text string) (Grade, error) {
	trimmed := strings.TrimSpace(text)
	switch {
	case trimmed == "", trimmed == "-", trimmed == PlaceholderGlyph:
		return GradeEmpty, nil
	case strings.EqualFold(trimmed, string(GradeNA)):
		return GradeNA, nil
	}
	g := Grade(trimmed)
	if !g.Valid() {
		return GradeEmpty, fmt.Errorf("%w: "+messages.RosterInvalidGradeFmt, ErrInvalidGrade, text)
	}
	return g, nil
}
