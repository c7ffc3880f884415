package models

import (
	"slices"
	"strings"
)

const noPhones = "No phones"

// Record is a single contact. It is owned by the Directory entry keyed by
// its name and is only created through Directory.AddRecord.
type Record struct {
	name     string
	phones   []PhoneNumber
	birthday *Birthday
}

func newRecord(name string) *Record {
	return &Record{name: name, phones: make([]PhoneNumber, 0, 1)}
}

func (r *Record) Name() string {
	return r.name
}

// AddPhone validates p and appends it unless an equal number is already
// present.
func (r *Record) AddPhone(p string) error {
	phone, err := NewPhoneNumber(p)
	if err != nil {
		return err
	}
	if r.indexOf(p) >= 0 {
		return nil
	}
	r.phones = append(r.phones, phone)
	return nil
}

// RemovePhone drops every entry equal to p. Missing numbers are ignored.
func (r *Record) RemovePhone(p string) {
	r.phones = slices.DeleteFunc(r.phones, func(ph PhoneNumber) bool {
		return ph.value == p
	})
}

// EditPhone replaces the first entry equal to oldPhone with newPhone,
// keeping its position.
func (r *Record) EditPhone(oldPhone, newPhone string) error {
	idx := r.indexOf(oldPhone)
	if idx < 0 {
		return notFoundError("edit phone", "Old phone not found.")
	}
	phone, err := NewPhoneNumber(newPhone)
	if err != nil {
		return err
	}
	r.phones[idx] = phone
	return nil
}

func (r *Record) FindPhone(p string) (PhoneNumber, bool) {
	idx := r.indexOf(p)
	if idx < 0 {
		return PhoneNumber{}, false
	}
	return r.phones[idx], true
}

// Phones returns a copy of the phone list in insertion order.
func (r *Record) Phones() []string {
	out := make([]string, len(r.phones))
	for i, p := range r.phones {
		out[i] = p.value
	}
	return out
}

func (r *Record) SetBirthday(raw string) error {
	b, err := NewBirthday(raw)
	if err != nil {
		return err
	}
	r.birthday = &b
	return nil
}

func (r *Record) Birthday() (Birthday, bool) {
	if r.birthday == nil {
		return Birthday{}, false
	}
	return *r.birthday, true
}

// Describe renders the record as
// "Name: <name>, Phones: <p1>; <p2>[, Birthday: DD.MM.YYYY]".
func (r *Record) Describe() string {
	var sb strings.Builder
	sb.WriteString("Name: ")
	sb.WriteString(r.name)
	sb.WriteString(", Phones: ")
	if len(r.phones) == 0 {
		sb.WriteString(noPhones)
	} else {
		sb.WriteString(strings.Join(r.Phones(), "; "))
	}
	if r.birthday != nil {
		sb.WriteString(", Birthday: ")
		sb.WriteString(r.birthday.String())
	}
	return sb.String()
}

func (r *Record) String() string {
	return r.Describe()
}

func (r *Record) indexOf(p string) int {
	return slices.IndexFunc(r.phones, func(ph PhoneNumber) bool {
		return ph.value == p
	})
}
