package docs

import (
	"bufio"
	"os"
	"regexp"
	"strings"
	"testing"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// TestTopics keeps readme.md and the topic files in sync:
// every topic listed in readme.md must load, and every topic file
// must be listed in readme.md.
func TestTopics(t *testing.T) {
	file, err := os.Open("readme.md")
	if err != nil {
		t.Fatalf("failed to open readme.md: %v", err)
	}
	defer file.Close()

	var listed []string
	scanner := bufio.NewScanner(file)
	topicRegex := regexp.MustCompile(`^\*\s+([^:]+):.*$`)
	for scanner.Scan() {
		if m := topicRegex.FindStringSubmatch(scanner.Text()); len(m) > 1 {
			listed = append(listed, strings.TrimSpace(m[1]))
		}
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("error scanning readme.md: %v", err)
	}
	if len(listed) == 0 {
		t.Fatal("no topics listed in readme.md")
	}

	for _, name := range listed {
		t.Run("load_"+name, func(t *testing.T) {
			if _, err := Topic(name); err != nil {
				t.Errorf("failed to load topic %q: %v", name, err)
			}
		})
	}

	all, err := Topics()
	if err != nil {
		t.Fatalf("Topics: %v", err)
	}
	for _, name := range all {
		found := false
		for _, l := range listed {
			if l == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("topic %q exists but is not listed in readme.md", name)
		}
	}
}

// TestTopicsParse checks that every topic is valid markdown
// starting with a level-1 heading.
func TestTopicsParse(t *testing.T) {
	all, err := Topics()
	if err != nil {
		t.Fatalf("Topics: %v", err)
	}

	parser := goldmark.DefaultParser()
	for _, name := range all {
		t.Run(name, func(t *testing.T) {
			content, err := Topic(name)
			if err != nil {
				t.Fatalf("Topic(%q): %v", name, err)
			}
			source := []byte(content)
			root := parser.Parse(text.NewReader(source))

			first := root.FirstChild()
			if first == nil {
				t.Fatal("topic is empty")
			}
			h, ok := first.(*ast.Heading)
			if !ok {
				t.Fatalf("topic does not start with a heading, got %T", first)
			}
			if h.Level != 1 {
				t.Errorf("topic starts with a level %d heading, want 1", h.Level)
			}
		})
	}
}

func TestConcatStar(t *testing.T) {
	all, err := Topics()
	if err != nil {
		t.Fatalf("Topics: %v", err)
	}
	content, err := Topic("*")
	if err != nil {
		t.Fatalf("Topic(*): %v", err)
	}
	for _, name := range all {
		single, err := Topic(name)
		if err != nil {
			t.Fatalf("Topic(%q): %v", name, err)
		}
		if !strings.Contains(content, single) {
			t.Errorf("expanded content is missing topic %q", name)
		}
	}
}

func TestUnknownTopic(t *testing.T) {
	if _, err := Topic("no-such-topic"); err == nil {
		t.Fatal("expected an error for an unknown topic")
	}
}
