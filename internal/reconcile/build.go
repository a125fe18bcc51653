package reconcile

import "github.com/nikbrunner/dropdown/internal/model"

// Build constructs a fresh mixed list from a raw source list without any
// reconciliation against previous state (the cold-build path).
//
// Positions are assigned from a single global counter: a group header
// takes one tick, each child takes one more. The diff path uses the same
// counting so positions stay comparable across both paths.
func Build(entries []model.Entry) []model.Node {
	nodes := make([]model.Node, 0, len(entries))
	position := 0

	for _, e := range entries {
		if e.IsGroup() {
			group := model.NewGroupItem(e.Label, position)
			position++
			for _, c := range e.Children {
				group.Append(model.NewOptionItem(model.NewOptionItemParams{
					Value:    c.Value,
					Text:     c.Text,
					Selected: c.Selected,
					Position: position,
					Image:    c.Image,
				}))
				position++
			}
			nodes = append(nodes, model.GroupNode(group))
			continue
		}

		nodes = append(nodes, model.OptionNode(model.NewOptionItem(model.NewOptionItemParams{
			Value:    e.Value,
			Text:     e.Text,
			Selected: e.Selected,
			Position: position,
			Image:    e.Image,
		})))
		position++
	}

	return nodes
}
