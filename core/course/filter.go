package course

import (
	"sort"
	"strings"

	"github.com/trezcool/darasa/core"
)

// sortable fields
const (
	SortByName     = "name"
	SortByCode     = "code"
	SortByTeacher  = "teacher"
	SortBySchedule = "schedule"
)

// Filter returns the views whose code, name or teacher name contains
// `keyword`, matched case-insensitively. A blank keyword matches everything.
func Filter(views []View, keyword string) []View {
	keyword = core.CleanString(keyword, true /* lower */)
	if keyword == "" {
		return views
	}
	matches := make([]View, 0, len(views))
	for _, view := range views {
		if strings.Contains(strings.ToLower(view.Code), keyword) ||
			strings.Contains(strings.ToLower(view.Name), keyword) ||
			strings.Contains(strings.ToLower(view.TeacherName), keyword) {
			matches = append(matches, view)
		}
	}
	return matches
}

// Sort orders the views by the given field, ascending and case-insensitive.
// Views without a schedule sort last when ordering by schedule.
// An unknown field leaves the order unchanged.
func Sort(views []View, field string) []View {
	var less func(vi, vj View) bool
	switch core.CleanString(field, true /* lower */) {
	case SortByName:
		less = func(vi, vj View) bool {
			return strings.ToLower(vi.Name) < strings.ToLower(vj.Name)
		}
	case SortByCode:
		less = func(vi, vj View) bool {
			return strings.ToLower(vi.Code) < strings.ToLower(vj.Code)
		}
	case SortByTeacher:
		less = func(vi, vj View) bool {
			return strings.ToLower(vi.TeacherName) < strings.ToLower(vj.TeacherName)
		}
	case SortBySchedule:
		less = func(vi, vj View) bool {
			if vi.Schedule.Valid != vj.Schedule.Valid {
				return vi.Schedule.Valid
			}
			return strings.ToLower(vi.Schedule.String) < strings.ToLower(vj.Schedule.String)
		}
	default:
		return views
	}
	sort.SliceStable(views, func(i, j int) bool { return less(views[i], views[j]) })
	return views
}
