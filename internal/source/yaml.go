package source

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/nikbrunner/dropdown/internal/model"
)

// yamlEntry is the on-disk dataset shape: either a plain option or a
// labeled group with nested options.
type yamlEntry struct {
	Value    string      `yaml:"value"`
	Text     string      `yaml:"text"`
	Selected bool        `yaml:"selected"`
	Image    string      `yaml:"image"`
	Label    string      `yaml:"label"`
	Options  []yamlEntry `yaml:"options"`
}

// LoadYAML reads an entry list from a YAML dataset file.
func LoadYAML(path string) ([]model.Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	return ParseYAML(data)
}

// ParseYAML parses a YAML dataset into entries. Groups nest one level only;
// options inside a group keep their own fields.
func ParseYAML(data []byte) ([]model.Entry, error) {
	var raw []yamlEntry
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse dataset: %w", err)
	}

	entries := make([]model.Entry, 0, len(raw))
	for _, e := range raw {
		if e.Label != "" {
			children := make([]model.Entry, 0, len(e.Options))
			for _, c := range e.Options {
				children = append(children, model.Entry{
					Value:    c.Value,
					Text:     c.Text,
					Selected: c.Selected,
					Image:    c.Image,
				})
			}
			entries = append(entries, model.Entry{Label: e.Label, Children: children})
			continue
		}
		entries = append(entries, model.Entry{
			Value:    e.Value,
			Text:     e.Text,
			Selected: e.Selected,
			Image:    e.Image,
		})
	}
	return entries, nil
}
