package engine

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-formengine/pkg/fields"
	"github.com/goliatone/go-formengine/pkg/schema"
	"github.com/goliatone/go-formengine/pkg/selection"
)

// GroupState is the select-all state of one option group of a multiselect.
type GroupState struct {
	Name      string
	Aggregate selection.Aggregate
	Options   []schema.Option
}

// Groups partitions a multiselect field's options by Option.Group and
// reports each group's aggregate against the current selection. Options
// without a group share the group named "".
func (f *Form) Groups(key string) ([]GroupState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	ref, ok := f.index[key]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownField, key)
	}
	value, _ := f.values.Get(key)
	return optionGroups(ref.Field, value)
}

// ToggleGroup applies a group checkbox click: a group that is not fully
// selected becomes fully selected, a fully selected group is cleared.
// Selections in other groups are untouched.
func (f *Form) ToggleGroup(key, group string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	ref, capability, err := f.editableField(key)
	if err != nil {
		return err
	}
	if capability.Kind != fields.KindMultiSelect {
		return fmt.Errorf("%w: %q", ErrNotSelectable, key)
	}

	groups, err := partitionOptions(ref.Field)
	if err != nil {
		return err
	}
	var ids []string
	found := false
	for _, g := range groups {
		if g.Name == group {
			ids = g.IDs()
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("engine: field %q has no option group %q", key, group)
	}

	current, _ := f.values.Get(key)
	selected := selectionOf(current)
	agg := selection.GroupAggregate(ids, selected)
	next := selection.ToggleGroup(ids, selected, selection.NextGroupState(agg))
	return f.storeSelection(ref.Field, current, next)
}

// ToggleOption selects or deselects a single option value of a multiselect.
func (f *Form) ToggleOption(key string, value any, on bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	ref, capability, err := f.editableField(key)
	if err != nil {
		return err
	}
	if capability.Kind != fields.KindMultiSelect {
		return fmt.Errorf("%w: %q", ErrNotSelectable, key)
	}
	if _, ok := findOption(ref.Field, value); !ok {
		return fmt.Errorf("engine: field %q has no option %v", key, value)
	}

	current, _ := f.values.Get(key)
	next := selection.ToggleItem(optionID(value), selectionOf(current), on)
	return f.storeSelection(ref.Field, current, next)
}

// storeSelection writes next back as a list ordered like the field's
// options. Previously stored values that match no option are kept at the end
// so a stale record is not silently rewritten.
func (f *Form) storeSelection(field schema.FieldSchema, current any, next selection.Set[string]) error {
	out := make([]any, 0, next.Len())
	placed := make(map[string]struct{}, next.Len())
	for _, opt := range field.Options {
		id := optionID(opt.Value)
		if next.Has(id) {
			if _, done := placed[id]; !done {
				out = append(out, opt.Value)
				placed[id] = struct{}{}
			}
		}
	}
	for _, value := range fields.AsList(current) {
		id := optionID(value)
		if _, done := placed[id]; done || !next.Has(id) {
			continue
		}
		out = append(out, value)
		placed[id] = struct{}{}
	}
	if err := f.values.Set(field.Key, out); err != nil {
		return fmt.Errorf("engine: set %q: %w", field.Key, err)
	}
	delete(f.fieldErrors, field.Key)
	return nil
}

func optionGroups(field schema.FieldSchema, value any) ([]GroupState, error) {
	groups, err := partitionOptions(field)
	if err != nil {
		return nil, err
	}
	selected := selectionOf(value)
	out := make([]GroupState, 0, len(groups))
	for _, g := range groups {
		options := make([]schema.Option, 0, len(g.Items))
		for _, item := range g.Items {
			if opt, ok := findOption(field, item.ID); ok {
				options = append(options, opt)
			}
		}
		out = append(out, GroupState{
			Name:      g.Name,
			Aggregate: g.Aggregate(selected),
			Options:   options,
		})
	}
	return out, nil
}

func partitionOptions(field schema.FieldSchema) ([]selection.Group[string], error) {
	items := make([]selection.SelectableItem[string], 0, len(field.Options))
	for _, opt := range field.Options {
		items = append(items, selection.SelectableItem[string]{
			ID:    optionID(opt.Value),
			Group: opt.Group,
			Label: opt.Label,
		})
	}
	groups, err := selection.Partition(items)
	if err != nil {
		return nil, fmt.Errorf("engine: field %q: %w", field.Key, err)
	}
	return groups, nil
}

func findOption(field schema.FieldSchema, value any) (schema.Option, bool) {
	for _, opt := range field.Options {
		if fields.SameValue(opt.Value, value) {
			return opt, true
		}
	}
	return schema.Option{}, false
}

func selectionOf(value any) selection.Set[string] {
	list := fields.AsList(value)
	ids := make([]string, 0, len(list))
	for _, v := range list {
		ids = append(ids, optionID(v))
	}
	return selection.NewSet(ids...)
}

// optionID gives option values a comparable identity; 3, 3.0 and "3" share one.
func optionID(value any) string {
	return strings.TrimSpace(fields.AsString(value))
}
