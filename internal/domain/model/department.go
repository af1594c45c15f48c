package model

import "strings"

// Department is the canonical client-side shape of a department record.
// Every response from the remote service is normalized into this type before
// it leaves the API adapter.
type Department struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// IsZero reports whether no field is set.
func (d Department) IsZero() bool {
	return d.ID == "" && d.Name == "" && d.Description == ""
}

// CreateDepartmentRequest is the body sent to the add-department endpoint.
type CreateDepartmentRequest struct {
	Name        string `json:"name"        validate:"required"`
	Description string `json:"description" validate:"required"`
}

// DepartmentList is an ordered, server-ordered snapshot of departments.
// It is rebuilt wholesale after each mutation and never patched in place.
type DepartmentList []Department

// Len returns the number of departments in the snapshot.
func (l DepartmentList) Len() int { return len(l) }

// Find returns the department with the given ID, if present.
func (l DepartmentList) Find(id string) (Department, bool) {
	for _, d := range l {
		if d.ID == id {
			return d, true
		}
	}
	return Department{}, false
}

// Filter returns the departments whose name or description contains query,
// case-insensitively. An empty query returns the list unchanged.
func (l DepartmentList) Filter(query string) DepartmentList {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return l
	}
	out := make(DepartmentList, 0, len(l))
	for _, d := range l {
		if strings.Contains(strings.ToLower(d.Name), q) || strings.Contains(strings.ToLower(d.Description), q) {
			out = append(out, d)
		}
	}
	return out
}
