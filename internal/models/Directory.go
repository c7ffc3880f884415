package models

import (
	"slices"
	"time"
)

// DefaultHorizonDays is the window used by UpcomingBirthdays when the caller
// has no preference.
const DefaultHorizonDays = 7

// UpcomingBirthday is one hit of Directory.UpcomingBirthdays.
type UpcomingBirthday struct {
	Name string    `json:"name"`
	Date time.Time `json:"date"`
}

// Directory maps contact names to records and remembers insertion order.
type Directory struct {
	index   map[string]*Record
	records []*Record
}

func NewDirectory() *Directory {
	return &Directory{
		index:   make(map[string]*Record),
		records: make([]*Record, 0),
	}
}

// AddRecord returns the record stored under name, creating an empty one
// first if the name is new.
func (d *Directory) AddRecord(name string) (*Record, error) {
	if name == "" {
		return nil, validationError("add record", "Contact name must not be empty.")
	}
	if r, ok := d.index[name]; ok {
		return r, nil
	}
	r := newRecord(name)
	d.index[name] = r
	d.records = append(d.records, r)
	return r, nil
}

func (d *Directory) Find(name string) (*Record, bool) {
	r, ok := d.index[name]
	return r, ok
}

func (d *Directory) Delete(name string) error {
	r, ok := d.index[name]
	if !ok {
		return ContactNotFoundError("delete")
	}
	delete(d.index, name)
	d.records = slices.DeleteFunc(d.records, func(x *Record) bool { return x == r })
	return nil
}

func (d *Directory) Len() int {
	return len(d.records)
}

// Names lists contact names in insertion order.
func (d *Directory) Names() []string {
	out := make([]string, len(d.records))
	for i, r := range d.records {
		out[i] = r.name
	}
	return out
}

// Records returns the records in insertion order. The slice is a copy;
// the records are not.
func (d *Directory) Records() []*Record {
	return slices.Clone(d.records)
}

// UpcomingBirthdays lists contacts whose next birthday, counted from ref,
// falls within [ref, ref+horizonDays]. Only the calendar date of ref is
// used. Results follow insertion order.
func (d *Directory) UpcomingBirthdays(ref time.Time, horizonDays int) ([]UpcomingBirthday, error) {
	if horizonDays < 0 {
		return nil, validationError("upcoming birthdays", "Horizon must not be negative.")
	}
	today := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, time.UTC)
	until := today.AddDate(0, 0, horizonDays)

	out := make([]UpcomingBirthday, 0)
	for _, r := range d.records {
		if r.birthday == nil {
			continue
		}
		next := r.birthday.occurrenceIn(today.Year())
		if next.Before(today) {
			next = r.birthday.occurrenceIn(today.Year() + 1)
		}
		if next.After(until) {
			continue
		}
		out = append(out, UpcomingBirthday{Name: r.name, Date: next})
	}
	return out, nil
}
