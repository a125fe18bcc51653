package source_test

import (
	"testing"

	"github.com/nikbrunner/dropdown/internal/model"
	"github.com/nikbrunner/dropdown/internal/source"
)

func TestSource_RewritePreservesSelection(t *testing.T) {
	s := source.New([]model.Entry{
		{Value: "1", Text: "Apple", Selected: true},
		{Value: "2", Text: "Banana"},
	})

	s.Rewrite([]model.Entry{
		{Value: "1", Text: "Apple"},
		{Value: "3", Text: "Cherry"},
	}, true)

	got := s.SelectedValues()
	if len(got) != 1 || got[0] != "1" {
		t.Errorf("expected selection preserved for value 1, got %v", got)
	}
}

func TestSource_RewriteWithoutPreservationDropsSelection(t *testing.T) {
	s := source.New([]model.Entry{{Value: "1", Text: "Apple", Selected: true}})

	s.Rewrite([]model.Entry{{Value: "1", Text: "Apple"}}, false)

	if len(s.SelectedValues()) != 0 {
		t.Errorf("expected no selection, got %v", s.SelectedValues())
	}
}

func TestSource_RewritePreservesSelectionInsideGroups(t *testing.T) {
	s := source.New([]model.Entry{{Value: "2", Text: "Banana", Selected: true}})

	s.Rewrite([]model.Entry{
		model.NewGroupEntry("Fruits",
			model.Entry{Value: "2", Text: "Banana"},
			model.Entry{Value: "3", Text: "Cherry"},
		),
	}, true)

	got := s.SelectedValues()
	if len(got) != 1 || got[0] != "2" {
		t.Errorf("expected grouped selection preserved, got %v", got)
	}
}

func TestSource_OnChangeFiresPerRewrite(t *testing.T) {
	s := source.New(nil)
	fired := 0
	s.OnChange(func() { fired++ })

	s.Rewrite([]model.Entry{{Value: "1", Text: "a"}}, false)
	s.Rewrite(nil, false)

	if fired != 2 {
		t.Errorf("expected 2 change notifications, got %d", fired)
	}
}

func TestSource_ApplySelection(t *testing.T) {
	s := source.New([]model.Entry{
		{Value: "1", Text: "Apple", Selected: true},
		model.NewGroupEntry("Fruits", model.Entry{Value: "2", Text: "Banana"}),
	})

	s.ApplySelection([]string{"2"})

	got := s.SelectedValues()
	if len(got) != 1 || got[0] != "2" {
		t.Errorf("expected only value 2 selected, got %v", got)
	}
}

func TestParseYAML(t *testing.T) {
	data := []byte(`
- value: "1"
  text: Apple
  selected: true
- label: Fruits
  options:
    - value: "2"
      text: Banana
      image: banana.png
`)

	entries, err := source.ParseYAML(data)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Value != "1" || !entries[0].Selected {
		t.Errorf("unexpected first entry: %+v", entries[0])
	}
	if !entries[1].IsGroup() || entries[1].Label != "Fruits" {
		t.Fatalf("expected group entry, got %+v", entries[1])
	}
	if entries[1].Children[0].Image != "banana.png" {
		t.Errorf("expected image carried through, got %q", entries[1].Children[0].Image)
	}
}

func TestParseYAML_Malformed(t *testing.T) {
	if _, err := source.ParseYAML([]byte("{not yaml")); err == nil {
		t.Error("expected error for malformed dataset")
	}
}
