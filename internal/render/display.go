// Package render turns advisor results into display content and HTML.
package render

import (
	"encoding/json"
	"strings"
)

type Kind int

const (
	KindText Kind = iota + 1
	KindList
	KindProgress
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindList:
		return "list"
	case KindProgress:
		return "progress"
	}
	return "none"
}

func (k Kind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

func (k *Kind) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	switch s {
	case "text":
		*k = KindText
	case "list":
		*k = KindList
	case "progress":
		*k = KindProgress
	default:
		*k = 0
	}
	return nil
}

// Item is one list entry. Entries with a URL render as links.
type Item struct {
	Text string `json:"text"`
	URL  string `json:"url,omitempty"`
}

// Display is the content of a result panel: exactly one of Text, Items or
// Progress is meaningful, selected by Kind.
type Display struct {
	Kind     Kind   `json:"kind"`
	Text     string `json:"text,omitempty"`
	Items    []Item `json:"items,omitempty"`
	Progress int    `json:"progress,omitempty"`
}

func Text(s string) Display {
	return Display{Kind: KindText, Text: s}
}

func List(items []Item) Display {
	return Display{Kind: KindList, Items: items}
}

func Strings(values []string) Display {
	items := make([]Item, 0, len(values))
	for _, v := range values {
		items = append(items, Item{Text: v})
	}
	return List(items)
}

func Progress(v int) Display {
	return Display{Kind: KindProgress, Progress: v}
}

// Empty reports whether there is nothing to show. A progress value of zero is
// still content.
func (d Display) Empty() bool {
	switch d.Kind {
	case KindText:
		return strings.TrimSpace(d.Text) == ""
	case KindList:
		return len(d.Items) == 0
	case KindProgress:
		return false
	}
	return true
}

// SplitLines splits text on line breaks, trims every entry and drops blanks.
func SplitLines(s string) []string {
	lines := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}
