package grader

// Segment is a run of characters that is either unchanged or tagged as a
// mismatch. Turning tags into markup is left to the presenter.
type Segment struct {
	Text   string `json:"text"`
	Tagged bool   `json:"tagged"`
}

// Highlight holds both sides of a wrong answer, marked for display.
// In User, tagged runs are wrong characters; in Expected, they are the
// characters the user should have typed.
type Highlight struct {
	User     []Segment `json:"user"`
	Expected []Segment `json:"expected"`
}

// Diff compares the two answers rune by rune at equal positions. It does not
// search for insertions or deletions: once the strings drift out of alignment
// every later position is reported as a mismatch.
func Diff(userAnswer, expectedAnswer string) Highlight {
	u, e := []rune(userAnswer), []rune(expectedAnswer)
	n := max(len(u), len(e))

	var user, expected segments
	for i := 0; i < n; i++ {
		uok, eok := i < len(u), i < len(e)
		if uok && eok && u[i] == e[i] {
			user.add(u[i], false)
			expected.add(e[i], false)
			continue
		}
		if uok {
			user.add(u[i], true)
		}
		if eok {
			expected.add(e[i], true)
		}
	}

	return Highlight{User: user.list(), Expected: expected.list()}
}

// segments coalesces consecutive runes that share a tag.
type segments []Segment

func (s *segments) add(r rune, tagged bool) {
	if last := len(*s) - 1; last >= 0 && (*s)[last].Tagged == tagged {
		(*s)[last].Text += string(r)
		return
	}
	*s = append(*s, Segment{Text: string(r), Tagged: tagged})
}

func (s segments) list() []Segment {
	if s == nil {
		return []Segment{}
	}
	return s
}
