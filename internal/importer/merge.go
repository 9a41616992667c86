// Package importer decodes exported JSON transaction files, checks
// records structurally and merges new records into an existing log with
// cumulative duplicate detection.
package importer

import (
	"encoding/json"
	"errors"
	"time"

	"campuscoins/internal/core"
)

var (
	errNotParseable = errors.New("Error: Could not parse JSON file.")
	errNotArray     = errors.New("Error: JSON must be an array.")
)

type (
	// File is one import source: a name for error reporting plus its
	// raw bytes.
	File struct {
		Name string
		Data []byte
	}

	// FileError reports a file that contributed zero records. It never
	// aborts the rest of the batch.
	FileError struct {
		File    string `json:"file"`
		Message string `json:"message"`
	}

	// Result aggregates a whole batch: records to append plus the
	// counts reported once at the end. Invalid records are only
	// counted, never listed.
	Result struct {
		Added          []core.Transaction `json:"-"`
		NewCount       int                `json:"newCount"`
		DuplicateCount int                `json:"duplicateCount"`
		InvalidCount   int                `json:"invalidCount"`
		FileErrors     []FileError        `json:"fileErrors,omitempty"`
	}

	tripleKey struct {
		desc  string
		cents int64
		date  string
	}

	// Merger tracks which IDs and (description, amount, date) triples
	// have been seen, across the existing log and every candidate
	// already merged, so re-imports and cross-file overlaps are
	// rejected.
	Merger struct {
		ids     map[string]struct{}
		triples map[tripleKey]struct{}
	}
)

// NewMerger seeds duplicate detection from the existing log.
func NewMerger(existing []core.Transaction) *Merger {
	m := &Merger{
		ids:     make(map[string]struct{}, len(existing)),
		triples: make(map[tripleKey]struct{}, len(existing)),
	}
	for _, t := range existing {
		m.remember(t)
	}
	return m
}

func (m *Merger) remember(t core.Transaction) {
	m.ids[t.ID] = struct{}{}
	m.triples[tripleKey{t.Description, t.Amount.Cents, t.Date}] = struct{}{}
}

// Admit reports whether the candidate is new and, if so, records it so
// later candidates in the same batch see it. Either a shared ID or a
// shared (description, amount, date) triple marks a duplicate.
func (m *Merger) Admit(t core.Transaction) bool {
	if _, dup := m.ids[t.ID]; dup {
		return false
	}
	if _, dup := m.triples[tripleKey{t.Description, t.Amount.Cents, t.Date}]; dup {
		return false
	}
	m.remember(t)
	return true
}

// MergeFiles applies a batch of files against the existing log,
// committing file by file in the given order so every candidate's
// duplicate check sees merges from earlier files. Running the same
// batch twice yields zero new records.
func MergeFiles(existing []core.Transaction, files []File, now time.Time) Result {
	var res Result
	merger := NewMerger(existing)

	for _, f := range files {
		records, invalid, err := decodeBatch(f.Data, now)
		if err != nil {
			res.FileErrors = append(res.FileErrors, FileError{File: f.Name, Message: err.Error()})
			continue
		}
		res.InvalidCount += invalid
		for _, rec := range records {
			if merger.Admit(rec) {
				res.Added = append(res.Added, rec)
				res.NewCount++
			} else {
				res.DuplicateCount++
			}
		}
	}
	return res
}

// Replace filters structurally valid records out of the batch and
// returns them as the complete replacement log. No duplicate detection:
// replace-import installs the imported set as-is.
func Replace(files []File, now time.Time) ([]core.Transaction, Result) {
	var res Result
	var out []core.Transaction

	for _, f := range files {
		records, invalid, err := decodeBatch(f.Data, now)
		if err != nil {
			res.FileErrors = append(res.FileErrors, FileError{File: f.Name, Message: err.Error()})
			continue
		}
		res.InvalidCount += invalid
		res.NewCount += len(records)
		out = append(out, records...)
	}
	res.Added = out
	return out, res
}

// decodeBatch parses one file. A file that is not parseable JSON or not
// a top-level array is a file-level error; a record failing the
// structural check is counted and skipped.
func decodeBatch(data []byte, now time.Time) ([]core.Transaction, int, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, 0, errNotParseable
	}
	arr, ok := raw.([]any)
	if !ok {
		return nil, 0, errNotArray
	}

	var records []core.Transaction
	invalid := 0
	for _, el := range arr {
		rec, ok := structuralRecord(el, now)
		if !ok {
			invalid++
			continue
		}
		records = append(records, rec)
	}
	return records, invalid, nil
}

// structuralRecord accepts an object with exactly-typed id,
// description, amount, category and date fields. Extra fields are
// ignored; a missing or mistyped field rejects the whole record.
// Timestamps are carried over when present and well-formed, otherwise
// set to the import time.
func structuralRecord(el any, now time.Time) (core.Transaction, bool) {
	obj, ok := el.(map[string]any)
	if !ok {
		return core.Transaction{}, false
	}
	id, ok := obj["id"].(string)
	if !ok {
		return core.Transaction{}, false
	}
	desc, ok := obj["description"].(string)
	if !ok {
		return core.Transaction{}, false
	}
	amount, ok := obj["amount"].(float64)
	if !ok {
		return core.Transaction{}, false
	}
	category, ok := obj["category"].(string)
	if !ok {
		return core.Transaction{}, false
	}
	date, ok := obj["date"].(string)
	if !ok {
		return core.Transaction{}, false
	}

	rec := core.Transaction{
		ID:          id,
		Description: desc,
		Amount:      core.FromFloat(amount),
		Category:    category,
		Date:        date,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if ts, ok := parseTimestamp(obj["createdAt"]); ok {
		rec.CreatedAt = ts
	}
	if ts, ok := parseTimestamp(obj["updatedAt"]); ok {
		rec.UpdatedAt = ts
	}
	return rec, true
}

func parseTimestamp(v any) (time.Time, bool) {
	s, ok := v.(string)
	if !ok {
		return time.Time{}, false
	}
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}
