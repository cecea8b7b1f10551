package roster

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAge(t *testing.T) {
	dob := date(2010, time.June, 15)
	tests := []struct {
		on   time.Time
		want int
	}{
		{date(2026, time.June, 14), 15},
		{date(2026, time.June, 15), 16},
		{date(2026, time.December, 1), 16},
		{date(2026, time.January, 1), 15},
	}
	for _, tt := range tests {
		if got := Age(dob, tt.on); got != tt.want {
			t.Errorf("Age(%s) = %d, want %d", tt.on.Format(time.DateOnly), got, tt.want)
		}
	}
}

func TestAssignBatch(t *testing.T) {
	batches := []Batch{
		{ID: 1, Name: "U14", MinAge: 0, MaxAge: 13},
		{ID: 2, Name: "U16", MinAge: 14, MaxAge: 15},
		{ID: 3, Name: "Overlap", MinAge: 15, MaxAge: 18},
	}
	tests := []struct {
		age  int
		want string
	}{
		{9, "U14"},
		{14, "U16"},
		{15, "U16"},
		{17, "Overlap"},
		{30, ""},
	}
	for _, tt := range tests {
		b := AssignBatch(tt.age, batches)
		got := ""
		if b != nil {
			got = b.Name
		}
		if got != tt.want {
			t.Errorf("AssignBatch(%d) = %q, want %q", tt.age, got, tt.want)
		}
	}
}

func TestClassify(t *testing.T) {
	batches := []Batch{{ID: 5, Name: "U19", MinAge: 16, MaxAge: 18}}
	on := date(2026, time.March, 1)

	if c := Classify(nil, on, batches); c.Age != nil || c.BatchID != nil {
		t.Errorf("Classify(nil) = %+v, want empty", c)
	}

	dob := date(2009, time.February, 1)
	c := Classify(&dob, on, batches)
	if c.Age == nil || *c.Age != 17 {
		t.Fatalf("age = %v, want 17", c.Age)
	}
	if c.BatchID == nil || *c.BatchID != 5 {
		t.Errorf("batch = %v, want 5", c.BatchID)
	}

	young := date(2020, time.January, 1)
	c = Classify(&young, on, batches)
	if c.Age == nil || *c.Age != 6 || c.BatchID != nil {
		t.Errorf("Classify(young) = age %v batch %v, want 6 and no batch", c.Age, c.BatchID)
	}
}

func TestDefaultBatchesCoverAges(t *testing.T) {
	for age := 0; age <= 60; age++ {
		if AssignBatch(age, DefaultBatches) == nil {
			t.Errorf("age %d has no default batch", age)
		}
	}
	for i := 1; i < len(DefaultBatches); i++ {
		if DefaultBatches[i].MinAge != DefaultBatches[i-1].MaxAge+1 {
			t.Errorf("gap or overlap between %s and %s", DefaultBatches[i-1].Name, DefaultBatches[i].Name)
		}
	}
}
