package dataset

import (
	"sort"
	"strconv"
	"strings"
)

// Entry is one group of an aggregation: the key tuple and the summed value.
type Entry struct {
	Keys  []string
	Value float64
}

// Label joins the key tuple for display and tooltip use.
func (e Entry) Label() string {
	return strings.Join(e.Keys, " / ")
}

func (e Entry) Key() string {
	if len(e.Keys) == 0 {
		return ""
	}
	return e.Keys[0]
}

// Aggregate groups records by the given categorical fields and sums the value
// field per group. Groups appear in first-seen order, so the output is
// deterministic for a given input order and, the reducer being a sum,
// insensitive to it in value.
func Aggregate(records []Record, groupKeys []string, valueField string) []Entry {
	var (
		list  []Entry
		index = make(map[string]int)
	)
	for _, rec := range records {
		keys := make([]string, len(groupKeys))
		for i, k := range groupKeys {
			keys[i] = rec.Key(k)
		}
		id := strings.Join(keys, "\x1f")
		at, ok := index[id]
		if !ok {
			at = len(list)
			index[id] = at
			list = append(list, Entry{Keys: keys})
		}
		list[at].Value += rec.Value(valueField)
	}
	return list
}

// RankDesc orders entries by value descending. The sort is stable so ties
// keep their original key order and repeated runs agree.
func RankDesc(entries []Entry) []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Value > out[j].Value
	})
	return out
}

// SortByKey orders entries ascending by their first key, numerically when
// both keys parse as numbers (trend charts sort by year this way).
func SortByKey(entries []Entry) []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Key(), out[j].Key()
		na, erra := strconv.Atoi(a)
		nb, errb := strconv.Atoi(b)
		if erra == nil && errb == nil {
			return na < nb
		}
		return a < b
	})
	return out
}

// Top keeps the n highest-ranked entries.
func Top(entries []Entry, n int) []Entry {
	ranked := RankDesc(entries)
	if n > 0 && n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}

// Total sums the entries; with a sum reducer it equals the flat sum over all
// aggregated records.
func Total(entries []Entry) float64 {
	var sum float64
	for _, e := range entries {
		sum += e.Value
	}
	return sum
}

// Share returns part as a percentage of total, 0 when the total is 0 so no
// NaN or Inf ever reaches a tooltip.
func Share(part, total float64) float64 {
	if total == 0 {
		return 0
	}
	return part / total * 100
}
