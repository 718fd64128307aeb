package tui

import (
	"fmt"
	"slices"
)

// selector cycles through a fixed option list.
type selector struct {
	options []string
	index   int
}

func newSelector(options ...string) selector {
	return selector{options: options}
}

func (s *selector) next() {
	s.index = (s.index + 1) % len(s.options)
}

func (s *selector) prev() {
	s.index = (s.index - 1 + len(s.options)) % len(s.options)
}

func (s selector) value() string {
	return s.options[s.index]
}

// set selects v, falling back to the first option when v is not offered.
func (s *selector) set(v string) {
	for i, o := range s.options {
		if o == v {
			s.index = i
			return
		}
	}
	s.index = 0
}

// insertSorted adds v at its sorted position unless it is already offered.
// The options must be sorted.
func (s *selector) insertSorted(v string) {
	i, found := slices.BinarySearch(s.options, v)
	if found {
		return
	}
	s.options = slices.Insert(s.options, i, v)
}

func (s selector) view(focused bool) string {
	v := s.value()
	if v == "" {
		v = "(none)"
	}
	if focused {
		return focusedLabelStyle.Render(fmt.Sprintf("‹ %s ›", v))
	}
	return selectorStyle.Render(fmt.Sprintf("  %s  ", v))
}

// timeOptions lists a blank entry followed by every quarter hour.
func timeOptions() []string {
	opts := make([]string, 0, 97)
	opts = append(opts, "")
	for h := 0; h < 24; h++ {
		for m := 0; m < 60; m += 15 {
			opts = append(opts, fmt.Sprintf("%02d:%02d", h, m))
		}
	}
	return opts
}
