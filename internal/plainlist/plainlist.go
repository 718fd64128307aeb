// Package plainlist keeps a flat, line-per-task text file.
package plainlist

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

var (
	ErrOutOfRange = errors.New("task number out of range")
	ErrEmptyTask  = errors.New("task text is empty")
	ErrDoneMarker = errors.New("task text starts with the done marker")
)

// DefaultFile is the file name used when none is given.
const DefaultFile = "tasks.txt"

const donePrefix = "[x] "

type Item struct {
	Text string `json:"text"`
	Done bool   `json:"done"`
}

func (it Item) String() string {
	if it.Done {
		return donePrefix + it.Text
	}
	return it.Text
}

type List struct {
	path  string
	items []Item
}

// Load reads path. A missing file yields an empty list.
func Load(path string) (*List, error) {
	l := &List{path: path}
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return l, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if text, ok := strings.CutPrefix(line, strings.TrimSpace(donePrefix)); ok {
			l.items = append(l.items, Item{Text: strings.TrimSpace(text), Done: true})
			continue
		}
		l.items = append(l.items, Item{Text: line})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return l, nil
}

func (l *List) Path() string { return l.path }

func (l *List) Items() []Item {
	out := make([]Item, len(l.items))
	copy(out, l.items)
	return out
}

// Add appends a pending task. Text that begins with the done marker is
// rejected since it would read back as completed.
func (l *List) Add(text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyTask
	}
	if strings.HasPrefix(text, strings.TrimSpace(donePrefix)) {
		return fmt.Errorf("%w: %q", ErrDoneMarker, text)
	}
	l.items = append(l.items, Item{Text: text})
	return nil
}

// Complete marks the n-th task (1-based) done. The task stays in the list.
func (l *List) Complete(n int) (Item, error) {
	if err := l.check(n); err != nil {
		return Item{}, err
	}
	l.items[n-1].Done = true
	return l.items[n-1], nil
}

// Delete removes the n-th task (1-based).
func (l *List) Delete(n int) (Item, error) {
	if err := l.check(n); err != nil {
		return Item{}, err
	}
	it := l.items[n-1]
	l.items = append(l.items[:n-1], l.items[n:]...)
	return it, nil
}

func (l *List) check(n int) error {
	if n < 1 || n > len(l.items) {
		return fmt.Errorf("%w: %d (have %d)", ErrOutOfRange, n, len(l.items))
	}
	return nil
}

// Save writes the list back, replacing the file atomically.
func (l *List) Save() error {
	dir := filepath.Dir(l.path)
	tmp, err := os.CreateTemp(dir, ".tasks-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := bufio.NewWriter(tmp)
	for _, it := range l.items {
		fmt.Fprintln(w, it.String())
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", l.path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), l.path); err != nil {
		return fmt.Errorf("replacing %s: %w", l.path, err)
	}
	return nil
}

// Render prints the numbered list the way the console menu shows it.
func (l *List) Render(w io.Writer) {
	if len(l.items) == 0 {
		fmt.Fprintln(w, "No Tasks Found")
		return
	}
	fmt.Fprintln(w, "Your tasks:")
	for i, it := range l.items {
		fmt.Fprintf(w, "%d. %s\n", i+1, it)
	}
}
