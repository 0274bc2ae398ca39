package sections

import "time"

// Reorder moves the item at from to position to. Out-of-range indexes and
// from == to return an unchanged copy.
func Reorder(items []Item, from, to int) []Item {
	out := Clone(items)
	if from == to || from < 0 || to < 0 || from >= len(out) || to >= len(out) {
		return out
	}
	moved := out[from]
	out = append(out[:from], out[from+1:]...)
	out = append(out[:to], append([]Item{moved}, out[to:]...)...)
	return out
}

func SetEnabled(items []Item, key Key, enabled bool) []Item {
	out := Clone(items)
	if i := indexOf(out, key); i >= 0 {
		out[i].Enabled = enabled
	}
	return out
}

// SetSchedule sets both bounds of the matched item; nil clears a bound.
func SetSchedule(items []Item, key Key, start, end *time.Time) []Item {
	out := Clone(items)
	if i := indexOf(out, key); i >= 0 {
		out[i].ScheduleStart = copyTime(start)
		out[i].ScheduleEnd = copyTime(end)
	}
	return out
}

func AddCollection(items []Item, c ProductCollection) []Item {
	out := Clone(items)
	if indexOf(out, Key{Kind: KindCollection, CollectionID: c.ID}) >= 0 {
		return out
	}
	return append(out, Item{
		Kind:         KindCollection,
		Label:        c.Name,
		Enabled:      true,
		CollectionID: c.ID,
	})
}

func RemoveCollection(items []Item, collectionID string) []Item {
	out := make([]Item, 0, len(items))
	for _, it := range Clone(items) {
		if it.Kind == KindCollection && it.CollectionID == collectionID {
			continue
		}
		out = append(out, it)
	}
	return out
}

// IsVisibleNow reports whether the item should be rendered at now. The
// schedule window is inclusive and open-ended on a missing bound.
func IsVisibleNow(it Item, now time.Time) bool {
	if !it.Enabled {
		return false
	}
	if it.ScheduleStart != nil && now.Before(*it.ScheduleStart) {
		return false
	}
	if it.ScheduleEnd != nil && now.After(*it.ScheduleEnd) {
		return false
	}
	return true
}

// Visible returns the ordered subset of items rendered at now.
func Visible(items []Item, now time.Time) []Item {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if IsVisibleNow(it, now) {
			out = append(out, it)
		}
	}
	return Clone(out)
}

// AvailableCollections lists enabled collections not yet bound into items,
// in the order of all.
func AvailableCollections(all []ProductCollection, items []Item) []ProductCollection {
	bound := make(map[string]struct{}, len(items))
	for _, it := range items {
		if it.CollectionID != "" {
			bound[it.CollectionID] = struct{}{}
		}
	}
	out := make([]ProductCollection, 0, len(all))
	for _, c := range all {
		if !c.Enabled {
			continue
		}
		if _, ok := bound[c.ID]; ok {
			continue
		}
		out = append(out, c)
	}
	return out
}

func indexOf(items []Item, key Key) int {
	for i, it := range items {
		if it.Key() == key {
			return i
		}
	}
	return -1
}
