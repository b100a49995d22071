package toc

import (
	"reflect"
	"strings"
	"testing"
)

func classifyLines(lines ...string) []Stub {
	c := NewClassifier()
	for _, line := range lines {
		c.Feed(line)
	}
	return c.Stubs()
}

func TestClassifySingleArticle(t *testing.T) {
	stubs := classifyLines("Smith, John.", "A new species of beetle 45", "")

	expected := []Stub{{Author: "Smith, John", Title: "A new species of beetle ", StartPage: "45"}}
	if !reflect.DeepEqual(stubs, expected) {
		t.Errorf("Expected %+v, got %+v", expected, stubs)
	}
}

func TestFormatAuthor(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected string
	}{
		{name: "initial keeps period", line: "Jones, A.", expected: "Jones, A."},
		{name: "given name loses period", line: "SMITH, John.", expected: "Smith, John"},
		{name: "multiple initials", line: "DOS PASSOS, C. F.", expected: "Dos passos, C. F."},
		{name: "trailing whitespace", line: "BROWN, F. M.   \n", expected: "Brown, F. M."},
		{name: "no comma", line: "ANONYMOUS.", expected: "Anonymous"},
		{name: "accented surname", line: "ÉTIENNE, Paul.", expected: "Étienne, Paul"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewClassifier()
			c.Feed(tt.line)
			c.Feed("Title 1")
			stubs := c.Stubs()
			if len(stubs) != 1 {
				t.Fatalf("Expected 1 stub, got %d", len(stubs))
			}
			if stubs[0].Author != tt.expected {
				t.Errorf("Expected author %q, got %q", tt.expected, stubs[0].Author)
			}
		})
	}
}

func TestPageHeaderIsNotAuthor(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
	}{
		{name: "capitalized header", lines: []string{"Page.", "On taxonomy 100"}},
		{name: "upper case header", lines: []string{"PAGE 3.", "On taxonomy 100"}},
		{name: "header clears previous author", lines: []string{"Jones, A.", "PAGE.", "On taxonomy 100"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stubs := classifyLines(tt.lines...)
			if len(stubs) != 1 {
				t.Fatalf("Expected 1 stub, got %d", len(stubs))
			}
			if stubs[0].Author != "" {
				t.Errorf("Expected empty author, got %q", stubs[0].Author)
			}
		})
	}
}

func TestTitleContinuation(t *testing.T) {
	stubs := classifyLines(
		"Jones, A.",
		"  Notes on the butterflies  ",
		"of northern Michigan,",
		"with a key 12",
	)

	if len(stubs) != 1 {
		t.Fatalf("Expected 1 stub, got %d", len(stubs))
	}
	expected := "Notes on the butterflies of northern Michigan, with a key "
	if stubs[0].Title != expected {
		t.Errorf("Expected title %q, got %q", expected, stubs[0].Title)
	}
}

func TestAuthorCarriesOver(t *testing.T) {
	stubs := classifyLines(
		"A title without author 1",
		"Jones, A.",
		"First article 10",
		"Second article 20",
		"Brown, F. M.",
		"Third article 30",
	)

	expected := []Stub{
		{Title: "A title without author ", Author: "", StartPage: "1"},
		{Title: "First article ", Author: "Jones, A.", StartPage: "10"},
		{Title: "Second article ", Author: "Jones, A.", StartPage: "20"},
		{Title: "Third article ", Author: "Brown, F. M.", StartPage: "30"},
	}
	if !reflect.DeepEqual(stubs, expected) {
		t.Errorf("Expected %+v, got %+v", expected, stubs)
	}
}

func TestClassifyReader(t *testing.T) {
	input := "CONTENTS\n\n   \nJones, A.\nOn taxonomy 100\t\nA dangling title with no page\n"

	stubs, err := Classify(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}

	expected := []Stub{{Title: "CONTENTS On taxonomy ", Author: "Jones, A.", StartPage: "100"}}
	if !reflect.DeepEqual(stubs, expected) {
		t.Errorf("Expected %+v, got %+v", expected, stubs)
	}
}

func TestClassifyEmpty(t *testing.T) {
	stubs, err := Classify(strings.NewReader(""))
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	if len(stubs) != 0 {
		t.Errorf("Expected no stubs, got %+v", stubs)
	}
}
