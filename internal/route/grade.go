package route

import (
	"fmt"
	"strconv"
	"strings"
)

// Grade is a bouldering difficulty on the V scale.
type Grade string

const (
	// DefaultGrade is preselected for new routes.
	DefaultGrade Grade = "V0"
	maxV               = 17
)

// Grades lists the accepted grades from easiest to hardest.
func Grades() []Grade {
	out := make([]Grade, 0, maxV+1)
	for i := 0; i <= maxV; i++ {
		out = append(out, Grade("V"+strconv.Itoa(i)))
	}
	return out
}

// ParseGrade normalises s to a grade. A blank string yields a blank grade.
func ParseGrade(s string) (Grade, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return "", nil
	}
	if !strings.HasPrefix(s, "V") {
		return "", fmt.Errorf("%w: %q", ErrInvalidGrade, s)
	}
	n, err := strconv.Atoi(s[1:])
	if err != nil || n < 0 || n > maxV || strconv.Itoa(n) != s[1:] {
		return "", fmt.Errorf("%w: %q", ErrInvalidGrade, s)
	}
	return Grade(s), nil
}

// Step moves g by delta grades, clamped to the scale. A blank grade steps
// from DefaultGrade.
func (g Grade) Step(delta int) Grade {
	n := g.index()
	if n < 0 {
		n = 0
	}
	n += delta
	if n < 0 {
		n = 0
	}
	if n > maxV {
		n = maxV
	}
	return Grade("V" + strconv.Itoa(n))
}

func (g Grade) index() int {
	p, err := ParseGrade(string(g))
	if err != nil || p == "" {
		return -1
	}
	n, _ := strconv.Atoi(string(p[1:]))
	return n
}

func (g Grade) String() string { return string(g) }
