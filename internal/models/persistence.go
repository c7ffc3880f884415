package models

import (
	"fmt"
	"time"
)

const (
	SnapshotFormat  = "addrbook.snapshot"
	SnapshotVersion = 1
)

// ContactData is the persisted form of one Record.
type ContactData struct {
	Name     string   `json:"name"`
	Phones   []string `json:"phones"`
	Birthday string   `json:"birthday,omitempty"`
}

// SnapshotV1 is the on-disk envelope. Format and Version let the loader
// tell a foreign or newer file apart from a damaged one.
type SnapshotV1 struct {
	Format   string         `json:"format"`
	Version  int            `json:"version"`
	SavedAt  time.Time      `json:"saved_at"`
	Contacts []*ContactData `json:"contacts"`
}

// Snapshot copies the directory into its persisted form, preserving record
// and phone order.
func (d *Directory) Snapshot() *SnapshotV1 {
	s := &SnapshotV1{
		Format:   SnapshotFormat,
		Version:  SnapshotVersion,
		SavedAt:  time.Now().UTC(),
		Contacts: make([]*ContactData, 0, len(d.records)),
	}
	for _, r := range d.records {
		cd := &ContactData{Name: r.name, Phones: r.Phones()}
		if r.birthday != nil {
			cd.Birthday = r.birthday.String()
		}
		s.Contacts = append(s.Contacts, cd)
	}
	return s
}

// DirectoryFromSnapshot rebuilds a Directory, re-validating every field.
// Any inconsistency is reported as a plain error; the persistence layer
// classifies it.
func DirectoryFromSnapshot(s *SnapshotV1) (*Directory, error) {
	if s.Format != SnapshotFormat {
		return nil, fmt.Errorf("unexpected snapshot format %q", s.Format)
	}
	if s.Version != SnapshotVersion {
		return nil, fmt.Errorf("unsupported snapshot version %d", s.Version)
	}

	d := NewDirectory()
	for i, cd := range s.Contacts {
		if cd == nil {
			return nil, fmt.Errorf("contact #%d is null", i)
		}
		if _, exists := d.index[cd.Name]; exists {
			return nil, fmt.Errorf("duplicate contact %q", cd.Name)
		}
		r, err := d.AddRecord(cd.Name)
		if err != nil {
			return nil, fmt.Errorf("contact #%d: %w", i, err)
		}
		for _, p := range cd.Phones {
			phone, err := NewPhoneNumber(p)
			if err != nil {
				return nil, fmt.Errorf("contact %q: %w", cd.Name, err)
			}
			// stored as-is: an edit may leave the same number twice
			r.phones = append(r.phones, phone)
		}
		if cd.Birthday != "" {
			if err := r.SetBirthday(cd.Birthday); err != nil {
				return nil, fmt.Errorf("contact %q: %w", cd.Name, err)
			}
		}
	}
	return d, nil
}
