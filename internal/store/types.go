package store

import (
	"slices"
	"time"

	"github.com/rolodexapp/rolodex-server/internal/domain"
)

// ContactQuery describes a contact listing: which filter slice, an
// optional case-insensitive search term, and the sort order. The zero
// value lists active contacts sorted by last name.
type ContactQuery struct {
	Filter domain.ContactFilter
	Search string
	Sort   domain.ContactSort
}

// ActivityQuery describes the global activity feed: optional exact
// kind filter and an optional case-insensitive search over the body
// and the contact's name.
type ActivityQuery struct {
	Kind   domain.ActivityKind
	Search string
}

// DayGroup is one calendar day's slice of the activity feed.
type DayGroup struct {
	Day        time.Time // midnight, server local time
	Activities []*domain.Activity
}

// GroupActivitiesByDay partitions activities by the calendar day of
// their CreatedAt (server local time). Input order within a day is
// preserved; groups come out in descending day order. Every activity
// lands in exactly one group.
func GroupActivitiesByDay(activities []*domain.Activity) []DayGroup {
	groups := make([]DayGroup, 0)
	index := make(map[time.Time]int)

	for _, a := range activities {
		t := a.CreatedAt.Local()
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
		i, ok := index[day]
		if !ok {
			i = len(groups)
			index[day] = i
			groups = append(groups, DayGroup{Day: day})
		}
		groups[i].Activities = append(groups[i].Activities, a)
	}

	// The feed is queried newest-first, so groups usually arrive in
	// order already; sort to guarantee it for arbitrary input.
	slices.SortStableFunc(groups, func(a, b DayGroup) int {
		return b.Day.Compare(a.Day)
	})
	return groups
}
