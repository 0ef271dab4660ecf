package entity

import (
	"fmt"
	"sort"
)

// DialogueOption is a learner reply. A nil NextNodeID marks a terminal branch.
type DialogueOption struct {
	Text       Translation `json:"text"`
	NextNodeID *string     `json:"next_node_id,omitempty"`
}

// HasDestination reports whether selecting the option moves the conversation.
func (o DialogueOption) HasDestination() bool {
	return o.NextNodeID != nil && *o.NextNodeID != ""
}

// DialogueNode is one tutor turn with the replies the learner may choose.
type DialogueNode struct {
	ID      string           `json:"id"`
	Text    Translation      `json:"text"`
	Options []DialogueOption `json:"options"`
}

// IsTerminal reports whether the node offers no replies.
func (n DialogueNode) IsTerminal() bool {
	return len(n.Options) == 0
}

// Dialogue is a conversation graph indexed by node id. Cycles are allowed.
type Dialogue struct {
	StartNodeID string                  `json:"start_node_id"`
	Nodes       map[string]DialogueNode `json:"nodes"`
}

// Node looks a node up by id.
func (d Dialogue) Node(id string) (DialogueNode, bool) {
	n, ok := d.Nodes[id]
	return n, ok
}

// Start returns the start node.
func (d Dialogue) Start() DialogueNode {
	return d.Nodes[d.StartNodeID]
}

// Validate checks that the start node exists, that node keys match node ids and
// that every referenced destination exists.
func (d Dialogue) Validate() error {
	if len(d.Nodes) == 0 {
		return fmt.Errorf("%w: no nodes", ErrInvalidDialogue)
	}
	if _, ok := d.Nodes[d.StartNodeID]; !ok {
		return fmt.Errorf("%w: start node %q does not exist", ErrInvalidDialogue, d.StartNodeID)
	}

	ids := make([]string, 0, len(d.Nodes))
	for id := range d.Nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		node := d.Nodes[id]
		if node.ID != id {
			return fmt.Errorf("%w: node key %q holds node %q", ErrInvalidDialogue, id, node.ID)
		}
		if node.Text.German == "" {
			return fmt.Errorf("%w: node %q has no text", ErrInvalidDialogue, id)
		}
		for i, opt := range node.Options {
			if !opt.HasDestination() {
				continue
			}
			if _, ok := d.Nodes[*opt.NextNodeID]; !ok {
				return fmt.Errorf("%w: node %q option %d points to missing node %q", ErrInvalidDialogue, id, i, *opt.NextNodeID)
			}
		}
	}
	return nil
}
