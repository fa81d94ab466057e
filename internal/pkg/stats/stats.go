// Package stats aggregates aid history into daily and per-type counts.
package stats

import (
	"cmp"
	"slices"

	"github.com/alfurqan/aidctl/internal/pkg/filters"
	"github.com/alfurqan/aidctl/internal/pkg/records"
)

// DayCount is the number of aids given on one date
type DayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// TypeCount is the number of aids of one type
type TypeCount struct {
	AidType string `json:"aid_type"`
	Count   int    `json:"count"`
}

// AidStats summarises aid history
type AidStats struct {
	TotalResidents int         `json:"total_residents"`
	TotalAids      int         `json:"total_aids"`
	DailyCounts    []DayCount  `json:"daily_counts"`
	AidTypeCounts  []TypeCount `json:"aid_type_counts"`
}

// Compute aggregates aids. Daily counts are ordered by date; type counts by
// descending count, then type name. Aids with an unparseable date are
// counted in the totals only.
func Compute(aids []records.Aid, totalResidents int) AidStats {
	daily := make(map[string]int)
	types := make(map[string]int)
	for _, a := range aids {
		if d, ok := filters.ParseDate(a.Date); ok {
			daily[d.Format(filters.DateLayout)]++
		}
		types[a.AidType]++
	}

	s := AidStats{
		TotalResidents: totalResidents,
		TotalAids:      len(aids),
		DailyCounts:    make([]DayCount, 0, len(daily)),
		AidTypeCounts:  make([]TypeCount, 0, len(types)),
	}
	for d, n := range daily {
		s.DailyCounts = append(s.DailyCounts, DayCount{Date: d, Count: n})
	}
	slices.SortFunc(s.DailyCounts, func(a, b DayCount) int { return cmp.Compare(a.Date, b.Date) })

	for t, n := range types {
		s.AidTypeCounts = append(s.AidTypeCounts, TypeCount{AidType: t, Count: n})
	}
	slices.SortFunc(s.AidTypeCounts, func(a, b TypeCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.AidType, b.AidType)
	})
	return s
}
