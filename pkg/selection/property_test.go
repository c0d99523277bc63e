package selection

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestSelectionProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	ids := gen.SliceOf(gen.IntRange(0, 30))

	properties.Property("all implies some for non-empty groups", prop.ForAll(
		func(group, selected []int) bool {
			agg := GroupAggregate(group, NewSet(selected...))
			if len(group) == 0 {
				return !agg.All && !agg.Some
			}
			return !agg.All || agg.Some
		},
		ids, ids,
	))

	properties.Property("ToggleGroup is idempotent", prop.ForAll(
		func(group, selected []int, on bool) bool {
			once := ToggleGroup(group, NewSet(selected...), on)
			twice := ToggleGroup(group, once, on)
			return once.Equal(twice)
		},
		ids, ids, gen.Bool(),
	))

	properties.Property("ToggleGroup only touches group ids", prop.ForAll(
		func(group, selected []int, on bool) bool {
			in := NewSet(selected...)
			members := NewSet(group...)
			out := ToggleGroup(group, in, on)
			for id := range in {
				if !members.Has(id) && !out.Has(id) {
					return false
				}
			}
			for id := range out {
				if !members.Has(id) && !in.Has(id) {
					return false
				}
			}
			return true
		},
		ids, ids, gen.Bool(),
	))

	properties.Property("ToggleItem only touches the target id", prop.ForAll(
		func(id int, selected []int, on bool) bool {
			in := NewSet(selected...)
			out := ToggleItem(id, in, on)
			if out.Has(id) != on {
				return false
			}
			for other := range in {
				if other != id && !out.Has(other) {
					return false
				}
			}
			for other := range out {
				if other != id && !in.Has(other) {
					return false
				}
			}
			return true
		},
		gen.IntRange(0, 30), ids, gen.Bool(),
	))

	properties.Property("toggling with NextGroupState flips the all flag", prop.ForAll(
		func(group, selected []int) bool {
			if len(group) == 0 {
				return true
			}
			in := NewSet(selected...)
			before := GroupAggregate(group, in)
			after := GroupAggregate(group, ToggleGroup(group, in, NextGroupState(before)))
			if before.All {
				return !after.Some
			}
			return after.All
		},
		ids, ids,
	))

	properties.TestingRun(t)
}
