// Package editor implements CRUD over the repeatable sections of the document.
package editor

import (
	"github.com/jonathan/resuexpress/internal/document"
	"github.com/jonathan/resuexpress/internal/types"
)

// Notifier is told about every mutation so the document gets written back.
type Notifier interface {
	Touch()
}

// ListObserver re-renders an editable list. It is called synchronously after every
// structural change so list positions and indices never drift apart.
type ListObserver interface {
	ListChanged(section types.Section, records []types.Record)
}

// Editor edits the experience, education and projects sections of one document.
type Editor struct {
	doc      *types.ResumeDocument
	notify   Notifier
	observer ListObserver
}

// New creates an editor over doc. observer may be nil.
func New(doc *types.ResumeDocument, notify Notifier, observer ListObserver) *Editor {
	return &Editor{doc: doc, notify: notify, observer: observer}
}

// AddRecord appends an empty record and returns its index.
func (e *Editor) AddRecord(section types.Section) (int, error) {
	if !section.Valid() {
		return 0, document.ErrUnknownSection
	}
	records := append(e.doc.Records(section), types.Record{})
	e.doc.SetRecords(section, records)

	e.changed(section)
	return len(records) - 1, nil
}

// RemoveRecord deletes the record at index, preserving the order of the rest. The
// last remaining record is replaced by a fresh empty one instead, so a section is
// never empty.
func (e *Editor) RemoveRecord(section types.Section, index int) error {
	if !section.Valid() {
		return document.ErrUnknownSection
	}
	records := e.doc.Records(section)
	if index < 0 || index >= len(records) {
		return document.Precondition("RemoveRecord", "%s index %d out of bounds [0,%d)", section, index, len(records))
	}

	if len(records) > 1 {
		remaining := make([]types.Record, 0, len(records)-1)
		remaining = append(remaining, records[:index]...)
		remaining = append(remaining, records[index+1:]...)
		e.doc.SetRecords(section, remaining)
	} else {
		e.doc.SetRecords(section, []types.Record{{}})
	}

	e.changed(section)
	return nil
}

// UpdateField writes one field of one record and schedules the write-back.
func (e *Editor) UpdateField(section types.Section, index int, field, value string) error {
	if err := document.SetRecordField(e.doc, section, index, field, value); err != nil {
		return err
	}
	e.notify.Touch()
	return nil
}

func (e *Editor) changed(section types.Section) {
	if e.observer != nil {
		records := e.doc.Records(section)
		snapshot := make([]types.Record, len(records))
		for i, r := range records {
			snapshot[i] = r.Clone()
		}
		e.observer.ListChanged(section, snapshot)
	}
	e.notify.Touch()
}
