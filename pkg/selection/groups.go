package selection

import (
	"errors"
	"fmt"
	"strings"
)

// ErrItemInMultipleGroups is returned by Partition when an id is listed under
// more than one group.
var ErrItemInMultipleGroups = errors.New("selection: item belongs to more than one group")

// SelectableItem is one entry of a grouped selection list, for example a
// permission listed under its module.
type SelectableItem[ID comparable] struct {
	ID    ID     `json:"id" yaml:"id"`
	Group string `json:"group" yaml:"group"`
	Label string `json:"label" yaml:"label"`
}

// Group is an ordered partition of items sharing a group name.
type Group[ID comparable] struct {
	Name  string
	Items []SelectableItem[ID]
}

// IDs returns the group's item ids in listing order.
func (g Group[ID]) IDs() []ID {
	out := make([]ID, len(g.Items))
	for i, item := range g.Items {
		out[i] = item.ID
	}
	return out
}

// Aggregate computes the group checkbox state against selected.
func (g Group[ID]) Aggregate(selected Set[ID]) Aggregate {
	return GroupAggregate(g.IDs(), selected)
}

// Partition groups items by name, keeping groups in first-appearance order
// and items in listing order. Repeated listings of the same id under the same
// group collapse to one entry.
func Partition[ID comparable](items []SelectableItem[ID]) ([]Group[ID], error) {
	var groups []Group[ID]
	index := make(map[string]int)
	owner := make(map[ID]string, len(items))

	for _, item := range items {
		name := strings.TrimSpace(item.Group)
		if prev, seen := owner[item.ID]; seen {
			if prev != name {
				return nil, fmt.Errorf("%w: %v listed under %q and %q", ErrItemInMultipleGroups, item.ID, prev, name)
			}
			continue
		}
		owner[item.ID] = name

		pos, ok := index[name]
		if !ok {
			pos = len(groups)
			index[name] = pos
			groups = append(groups, Group[ID]{Name: name})
		}
		item.Group = name
		groups[pos].Items = append(groups[pos].Items, item)
	}
	return groups, nil
}
