package selection

// Set is an unordered collection of selected ids. Functions in this package
// never mutate the sets they receive; they return fresh copies.
type Set[ID comparable] map[ID]struct{}

// NewSet builds a set from ids, ignoring duplicates.
func NewSet[ID comparable](ids ...ID) Set[ID] {
	out := make(Set[ID], len(ids))
	for _, id := range ids {
		out[id] = struct{}{}
	}
	return out
}

// Has reports membership. A nil set contains nothing.
func (s Set[ID]) Has(id ID) bool {
	_, ok := s[id]
	return ok
}

// Len returns the number of ids in the set.
func (s Set[ID]) Len() int {
	return len(s)
}

// Clone returns an independent copy.
func (s Set[ID]) Clone() Set[ID] {
	out := make(Set[ID], len(s))
	for id := range s {
		out[id] = struct{}{}
	}
	return out
}

// Equal reports whether both sets hold the same ids.
func (s Set[ID]) Equal(other Set[ID]) bool {
	if len(s) != len(other) {
		return false
	}
	for id := range s {
		if !other.Has(id) {
			return false
		}
	}
	return true
}

// Aggregate is the derived state of a group checkbox.
type Aggregate struct {
	All  bool `json:"all"`
	Some bool `json:"some"`
}

// Indeterminate reports the partially-selected display state.
func (a Aggregate) Indeterminate() bool {
	return a.Some && !a.All
}

// GroupAggregate computes whether all and/or some of a group's ids are
// selected. An empty group is never reported as selected.
func GroupAggregate[ID comparable](groupIDs []ID, selected Set[ID]) Aggregate {
	if len(groupIDs) == 0 {
		return Aggregate{}
	}
	all := true
	some := false
	for _, id := range groupIDs {
		if selected.Has(id) {
			some = true
		} else {
			all = false
		}
	}
	return Aggregate{All: all, Some: some}
}

// NextGroupState returns the turnOn argument a group checkbox click should
// pass to ToggleGroup: partially or un-selected groups select everything, a
// fully selected group clears.
func NextGroupState(agg Aggregate) bool {
	return !agg.All
}

// ToggleGroup adds every group id to the selection when turnOn is set and
// removes them otherwise. Ids outside the group are left untouched.
func ToggleGroup[ID comparable](groupIDs []ID, selected Set[ID], turnOn bool) Set[ID] {
	out := selected.Clone()
	for _, id := range groupIDs {
		if turnOn {
			out[id] = struct{}{}
		} else {
			delete(out, id)
		}
	}
	return out
}

// ToggleItem adds or removes a single id.
func ToggleItem[ID comparable](id ID, selected Set[ID], turnOn bool) Set[ID] {
	out := selected.Clone()
	if turnOn {
		out[id] = struct{}{}
	} else {
		delete(out, id)
	}
	return out
}
