package model_test

import (
	"testing"

	"github.com/nikbrunner/dropdown/internal/model"
)

func TestEntry_IsGroup(t *testing.T) {
	tests := []struct {
		name  string
		entry model.Entry
		want  bool
	}{
		{"plain entry", model.NewEntry("1", "Apple"), false},
		{"labeled group", model.NewGroupEntry("Fruits", model.NewEntry("2", "Banana")), true},
		{"empty group", model.NewGroupEntry("Empty"), true},
		{"plain entry with selection", model.Entry{Value: "3", Text: "Cherry", Selected: true}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.entry.IsGroup(); got != tt.want {
				t.Errorf("IsGroup() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSelectedValues(t *testing.T) {
	entries := []model.Entry{
		{Value: "1", Text: "Apple", Selected: true},
		model.NewGroupEntry("Fruits",
			model.Entry{Value: "2", Text: "Banana"},
			model.Entry{Value: "3", Text: "Cherry", Selected: true},
		),
		{Value: "4", Text: "Durian"},
	}

	got := model.SelectedValues(entries)
	want := []string{"1", "3"}

	if len(got) != len(want) {
		t.Fatalf("expected %d selected values, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("SelectedValues()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestGroupItem_AppendSetsBackReference(t *testing.T) {
	g := model.NewGroupItem("Fruits", 0)
	o := model.NewOptionItem(model.NewOptionItemParams{Value: "1", Text: "Apple", Position: 1})

	g.Append(o)

	if o.Group != g {
		t.Error("expected appended option to point back at its group")
	}
	if len(g.Items) != 1 {
		t.Errorf("expected 1 item in group, got %d", len(g.Items))
	}
}

func TestGroupItem_DerivedVisibility(t *testing.T) {
	g := model.NewGroupItem("Fruits", 0)
	a := model.NewOptionItem(model.NewOptionItemParams{Value: "1", Text: "Apple"})
	b := model.NewOptionItem(model.NewOptionItemParams{Value: "2", Text: "Banana"})
	g.Append(a)
	g.Append(b)

	if !g.Visible() {
		t.Error("group with visible children should be visible")
	}

	a.Visible = false
	b.Visible = false
	if g.Visible() {
		t.Error("group with no visible children should be hidden")
	}

	b.Visible = true
	if !g.Visible() {
		t.Error("one visible child should make the group visible")
	}
}

func TestGroupItem_EmptyGroupIsHidden(t *testing.T) {
	g := model.NewGroupItem("Empty", 0)
	if g.Visible() {
		t.Error("group with no children should be hidden")
	}
}

func TestFlatten_PreservesOrder(t *testing.T) {
	top := model.NewOptionItem(model.NewOptionItemParams{Value: "1", Text: "Apple", Position: 0})
	g := model.NewGroupItem("Fruits", 1)
	g.Append(model.NewOptionItem(model.NewOptionItemParams{Value: "2", Text: "Banana", Position: 2}))
	g.Append(model.NewOptionItem(model.NewOptionItemParams{Value: "3", Text: "Cherry", Position: 3}))
	tail := model.NewOptionItem(model.NewOptionItemParams{Value: "4", Text: "Durian", Position: 4})

	nodes := []model.Node{
		model.OptionNode(top),
		model.GroupNode(g),
		model.OptionNode(tail),
	}

	flat := model.Flatten(nodes)

	wantValues := []string{"1", "2", "3", "4"}
	if len(flat) != len(wantValues) {
		t.Fatalf("expected %d flattened options, got %d", len(wantValues), len(flat))
	}
	for i, want := range wantValues {
		if flat[i].Value != want {
			t.Errorf("flat[%d].Value = %q, want %q", i, flat[i].Value, want)
		}
	}
}

func TestFlatten_LengthMatchesLeafCount(t *testing.T) {
	g1 := model.NewGroupItem("A", 0)
	g1.Append(model.NewOptionItem(model.NewOptionItemParams{Value: "1", Text: "one"}))
	g2 := model.NewGroupItem("B", 2)

	nodes := []model.Node{
		model.GroupNode(g1),
		model.GroupNode(g2),
		model.OptionNode(model.NewOptionItem(model.NewOptionItemParams{Value: "2", Text: "two"})),
	}

	if got := len(model.Flatten(nodes)); got != 2 {
		t.Errorf("expected 2 flattened options, got %d", got)
	}
}

func TestOptionItem_Key(t *testing.T) {
	o := model.NewOptionItem(model.NewOptionItemParams{Value: "1", Text: "Apple"})
	want := model.Key{Value: "1", Text: "Apple"}
	if o.Key() != want {
		t.Errorf("Key() = %+v, want %+v", o.Key(), want)
	}
}
