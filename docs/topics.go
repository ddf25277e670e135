// Package docs embeds the user documentation of pdash, organized in topics.
package docs

import (
	"bufio"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"regexp"
	"slices"
	"strings"
)

//go:embed *.md
var docs embed.FS

// Topic is an entry of the documentation index.
type Topic struct {
	Name    string
	Summary string
}

// indexEntry matches "* topic: summary" lines of the readme.
var indexEntry = regexp.MustCompile(`^\*\s+([^:]+):\s*(.*)$`)

// Index returns the topics listed in the readme, in order.
func Index() ([]Topic, error) {
	f, err := docs.Open("readme.md")
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var topics []Topic
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if m := indexEntry.FindStringSubmatch(scanner.Text()); m != nil {
			topics = append(topics, Topic{Name: strings.TrimSpace(m[1]), Summary: m[2]})
		}
	}
	return topics, scanner.Err()
}

// GetTopic returns the content of a documentation topic.
// The topic "*" is every topic.
func GetTopic(topic string) (string, error) {
	if topic == "*" {
		all, err := GetAllTopics()
		if err != nil {
			return "", err
		}
		return GetTopics(all...)
	}
	content, err := docs.ReadFile(topic + ".md")
	if err != nil {
		return "", fmt.Errorf("topic %q not found: %w", topic, err)
	}
	return string(content), nil
}

// GetTopics returns the content of multiple documentation topics concatenated together.
func GetTopics(topics ...string) (string, error) {
	var b strings.Builder
	for _, topic := range topics {
		content, err := GetTopic(topic)
		if err != nil {
			return "", err
		}
		b.WriteString(content)
		if topic != "*" {
			b.WriteString("\n")
		}
	}
	return b.String(), nil
}

// GetAllTopics returns the sorted names of all topics but the readme.
func GetAllTopics() ([]string, error) {
	files, err := fs.Glob(docs, "*.md")
	if err != nil {
		return nil, err
	}
	var topics []string
	for _, file := range files {
		if base := strings.TrimSuffix(path.Base(file), ".md"); base != "readme" {
			topics = append(topics, base)
		}
	}
	slices.Sort(topics)
	return topics, nil
}
