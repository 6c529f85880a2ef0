package course

import (
	"testing"

	"github.com/volatiletech/null/v8"
)

func testViews() []View {
	return []View{
		{Course: Course{ID: 1, Code: "MATH101", Name: "Calculus I", Schedule: null.StringFrom("Mon 08:00")}, TeacherName: "Ada Wong"},
		{Course: Course{ID: 2, Code: "PHYS201", Name: "Mechanics"}, TeacherName: "Grace Hopper"},
		{Course: Course{ID: 3, Code: "CHEM110", Name: "Organic Chemistry", Schedule: null.StringFrom("Fri 14:00")}},
		{Course: Course{ID: 4, Code: "MATH205", Name: "Linear Algebra", Schedule: null.StringFrom("Wed 10:00")}, TeacherName: "Ada Wong"},
	}
}

func ids(views []View) []int {
	out := make([]int, 0, len(views))
	for _, v := range views {
		out = append(out, v.ID)
	}
	return out
}

func equalIDs(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name    string
		keyword string
		wantIDs []int
	}{
		{name: "blank keyword matches everything", keyword: "", wantIDs: []int{1, 2, 3, 4}},
		{name: "whitespace keyword matches everything", keyword: "   ", wantIDs: []int{1, 2, 3, 4}},
		{name: "matches code", keyword: "math", wantIDs: []int{1, 4}},
		{name: "matches name", keyword: "CHEMISTRY", wantIDs: []int{3}},
		{name: "matches teacher name", keyword: "hopper", wantIDs: []int{2}},
		{name: "no match", keyword: "biology", wantIDs: []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(testViews(), tt.keyword)
			if !equalIDs(ids(got), tt.wantIDs) {
				t.Errorf("Filter() = %v, want %v", ids(got), tt.wantIDs)
			}
		})
	}
}

func TestSort(t *testing.T) {
	tests := []struct {
		name    string
		field   string
		wantIDs []int
	}{
		{name: "by name", field: SortByName, wantIDs: []int{1, 4, 2, 3}},
		{name: "by code", field: SortByCode, wantIDs: []int{3, 1, 4, 2}},
		{name: "by teacher, courses without one first", field: SortByTeacher, wantIDs: []int{3, 1, 4, 2}},
		{name: "by schedule, null schedules last", field: SortBySchedule, wantIDs: []int{3, 1, 4, 2}},
		{name: "unknown field leaves order unchanged", field: "lol", wantIDs: []int{1, 2, 3, 4}},
		{name: "case-insensitive field name", field: "Name", wantIDs: []int{1, 4, 2, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sort(testViews(), tt.field)
			if !equalIDs(ids(got), tt.wantIDs) {
				t.Errorf("Sort() = %v, want %v", ids(got), tt.wantIDs)
			}
		})
	}
}
