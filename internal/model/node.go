package model

// NodeKind distinguishes options from groups in a mixed list.
type NodeKind int

const (
	KindOption NodeKind = iota
	KindGroup
)

// Node is one element of the mixed list: either an option or a group,
// discriminated by Kind. Groups are single level, never nested.
type Node struct {
	Kind   NodeKind
	Option *OptionItem
	Group  *GroupItem
}

// OptionNode wraps an option into a Node.
func OptionNode(o *OptionItem) Node {
	return Node{Kind: KindOption, Option: o}
}

// GroupNode wraps a group into a Node.
func GroupNode(g *GroupItem) Node {
	return Node{Kind: KindGroup, Group: g}
}

// IsGroup returns true if this node is a group.
func (n Node) IsGroup() bool {
	return n.Kind == KindGroup
}

// Flatten returns all leaf options in order: top-level options interleaved
// with each group's children, group nesting ignored. This is the order used
// for highlight navigation and value extraction.
func Flatten(nodes []Node) []*OptionItem {
	var result []*OptionItem
	for _, n := range nodes {
		switch n.Kind {
		case KindOption:
			result = append(result, n.Option)
		case KindGroup:
			result = append(result, n.Group.Items...)
		}
	}
	return result
}
