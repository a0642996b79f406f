package store

import (
	"testing"
	"time"

	"github.com/rolodexapp/rolodex-server/internal/domain"
)

func feedActivity(id string, createdAt time.Time) *domain.Activity {
	return &domain.Activity{
		ID:        id,
		ContactID: "con-1",
		Kind:      domain.ActivityNote,
		Body:      "body " + id,
		CreatedAt: createdAt,
	}
}

func TestGroupActivitiesByDay(t *testing.T) {
	monday := time.Date(2026, 8, 24, 14, 30, 0, 0, time.Local)
	tuesday := time.Date(2026, 8, 25, 9, 0, 0, 0, time.Local)

	// Feed order: newest first.
	activities := []*domain.Activity{
		feedActivity("act-4", tuesday.Add(2*time.Hour)),
		feedActivity("act-3", tuesday),
		feedActivity("act-2", monday.Add(time.Hour)),
		feedActivity("act-1", monday),
	}

	groups := GroupActivitiesByDay(activities)
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}

	// Days descend.
	if !groups[0].Day.After(groups[1].Day) {
		t.Errorf("days should descend: %v then %v", groups[0].Day, groups[1].Day)
	}
	for _, g := range groups {
		if g.Day.Hour() != 0 || g.Day.Minute() != 0 || g.Day.Second() != 0 {
			t.Errorf("group day should be midnight, got %v", g.Day)
		}
	}

	// Within-day order is the input order.
	if groups[0].Activities[0].ID != "act-4" || groups[0].Activities[1].ID != "act-3" {
		t.Error("tuesday order not preserved")
	}
	if groups[1].Activities[0].ID != "act-2" || groups[1].Activities[1].ID != "act-1" {
		t.Error("monday order not preserved")
	}

	// Every activity lands in exactly one group.
	seen := map[string]int{}
	for _, g := range groups {
		for _, a := range g.Activities {
			seen[a.ID]++
		}
	}
	if len(seen) != len(activities) {
		t.Errorf("expected %d distinct activities, got %d", len(activities), len(seen))
	}
	for id, n := range seen {
		if n != 1 {
			t.Errorf("activity %s appears %d times", id, n)
		}
	}
}

func TestGroupActivitiesByDayUnorderedInput(t *testing.T) {
	day1 := time.Date(2026, 8, 20, 10, 0, 0, 0, time.Local)
	day2 := time.Date(2026, 8, 21, 10, 0, 0, 0, time.Local)
	day3 := time.Date(2026, 8, 22, 10, 0, 0, 0, time.Local)

	activities := []*domain.Activity{
		feedActivity("a", day2),
		feedActivity("b", day3),
		feedActivity("c", day1),
	}

	groups := GroupActivitiesByDay(activities)
	if len(groups) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(groups))
	}
	for i := 1; i < len(groups); i++ {
		if !groups[i-1].Day.After(groups[i].Day) {
			t.Errorf("groups not in descending day order at %d", i)
		}
	}
}

func TestGroupActivitiesByDayEmpty(t *testing.T) {
	groups := GroupActivitiesByDay(nil)
	if groups == nil {
		t.Fatal("expected non-nil slice")
	}
	if len(groups) != 0 {
		t.Errorf("expected no groups, got %d", len(groups))
	}
}
