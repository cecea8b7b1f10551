// Package roster derives a player's age and age-group batch and persists
// profile changes that affect them.
package roster

import (
	"time"
)

// Batch is an age group such as U16.
type Batch struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	MinAge int    `json:"min_age"`
	MaxAge int    `json:"max_age"`
}

// Contains reports whether age falls inside [MinAge, MaxAge].
func (b Batch) Contains(age int) bool {
	return b.MinAge <= age && age <= b.MaxAge
}

// DefaultBatches are seeded by `admin seed-batches`.
var DefaultBatches = []Batch{
	{Name: "U14", MinAge: 0, MaxAge: 13},
	{Name: "U16", MinAge: 14, MaxAge: 15},
	{Name: "U19", MinAge: 16, MaxAge: 18},
	{Name: "Senior", MinAge: 19, MaxAge: 120},
}

// Age returns completed years between dob and on.
func Age(dob, on time.Time) int {
	years := on.Year() - dob.Year()
	if on.Month() < dob.Month() || (on.Month() == dob.Month() && on.Day() < dob.Day()) {
		years--
	}
	return years
}

// AssignBatch returns the first batch whose range contains age, or nil.
// batches are tried in the given order.
func AssignBatch(age int, batches []Batch) *Batch {
	for i := range batches {
		if batches[i].Contains(age) {
			return &batches[i]
		}
	}
	return nil
}

// Classification is the derived age and batch for a player.
type Classification struct {
	Age     *int
	BatchID *int64
}

// Classify derives age and batch from an optional date of birth. Without a
// date of birth nothing is derived; without a matching batch only the age
// is.
func Classify(dob *time.Time, on time.Time, batches []Batch) Classification {
	if dob == nil {
		return Classification{}
	}
	age := Age(*dob, on)
	c := Classification{Age: &age}
	if b := AssignBatch(age, batches); b != nil && b.ID != 0 {
		id := b.ID
		c.BatchID = &id
	}
	return c
}
