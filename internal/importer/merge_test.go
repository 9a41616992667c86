package importer

import (
	"testing"
	"time"

	"campuscoins/internal/core"
)

var importNow = time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)

func record(id, desc string, amount float64, category, date string) string {
	return `{"id":"` + id + `","description":"` + desc + `","amount":` +
		core.FromFloat(amount).String() + `,"category":"` + category + `","date":"` + date + `"}`
}

func TestMergeFilesIdempotent(t *testing.T) {
	file := File{Name: "a.json", Data: []byte(`[` +
		record("t1", "Lunch", 12.5, "Food", "2025-01-01") + `,` +
		record("t2", "Bus", 3, "Transport", "2025-01-02") + `]`)}

	first := MergeFiles(nil, []File{file}, importNow)
	if first.NewCount != 2 || first.DuplicateCount != 0 {
		t.Fatalf("first import: %+v", first)
	}

	log := first.Added
	second := MergeFiles(log, []File{file}, importNow)
	if second.NewCount != 0 || second.DuplicateCount != 2 {
		t.Fatalf("second import must add nothing: %+v", second)
	}
}

func TestMergeFilesCrossFileDuplicateByID(t *testing.T) {
	shared := record("t1", "Lunch", 12.5, "Food", "2025-01-01")
	fileA := File{Name: "a.json", Data: []byte(`[` + shared + `]`)}
	fileB := File{Name: "b.json", Data: []byte(`[` + shared + `,` +
		record("t2", "Bus", 3, "Transport", "2025-01-02") + `]`)}

	for _, order := range [][]File{{fileA, fileB}, {fileB, fileA}} {
		res := MergeFiles(nil, order, importNow)
		if res.NewCount != 2 || res.DuplicateCount != 1 {
			t.Fatalf("order %s/%s: %+v", order[0].Name, order[1].Name, res)
		}
	}
}

func TestMergeFilesDuplicateByTriple(t *testing.T) {
	existing := []core.Transaction{{
		ID:          "orig",
		Description: "Lunch",
		Amount:      core.Money{Cents: 1250},
		Category:    "Food",
		Date:        "2025-01-01",
	}}
	// Different id, same (description, amount, date) triple.
	file := File{Name: "a.json", Data: []byte(`[` +
		record("other-id", "Lunch", 12.5, "Food", "2025-01-01") + `]`)}

	res := MergeFiles(existing, []File{file}, importNow)
	if res.NewCount != 0 || res.DuplicateCount != 1 {
		t.Fatalf("triple duplicate not detected: %+v", res)
	}
}

func TestMergeFilesStructuralValidation(t *testing.T) {
	data := []byte(`[
		{"id":"a","description":"ok","amount":5,"category":"Food","date":"2025-01-01"},
		{"id":"b","description":"no category","amount":5,"date":"2025-01-01"},
		{"id":"c","description":"string amount","amount":"5","category":"Food","date":"2025-01-01"},
		{"id":4,"description":"numeric id","amount":5,"category":"Food","date":"2025-01-01"},
		"not an object",
		{"id":"e","description":"extras ok","amount":5,"category":"Books","date":"2025-01-02","note":"ignored"}
	]`)

	res := MergeFiles(nil, []File{{Name: "a.json", Data: data}}, importNow)
	if res.NewCount != 2 {
		t.Fatalf("newCount = %d, want 2", res.NewCount)
	}
	if res.InvalidCount != 4 {
		t.Fatalf("invalidCount = %d, want 4", res.InvalidCount)
	}
}

func TestMergeFilesFileErrors(t *testing.T) {
	files := []File{
		{Name: "broken.json", Data: []byte(`{not json`)},
		{Name: "object.json", Data: []byte(`{"id":"x"}`)},
		{Name: "good.json", Data: []byte(`[` + record("t1", "Lunch", 5, "Food", "2025-01-01") + `]`)},
	}
	res := MergeFiles(nil, files, importNow)

	if len(res.FileErrors) != 2 {
		t.Fatalf("fileErrors = %+v, want 2 entries", res.FileErrors)
	}
	if res.FileErrors[0].File != "broken.json" || res.FileErrors[1].File != "object.json" {
		t.Fatalf("unexpected file error order: %+v", res.FileErrors)
	}
	if res.NewCount != 1 {
		t.Fatalf("a bad file must not abort the batch: %+v", res)
	}
}

func TestMergeCarriesTimestamps(t *testing.T) {
	data := []byte(`[{"id":"a","description":"x","amount":5,"category":"Food","date":"2025-01-01","createdAt":"2024-12-01T08:00:00Z","updatedAt":"2024-12-02T08:00:00Z"}]`)
	res := MergeFiles(nil, []File{{Name: "a.json", Data: data}}, importNow)
	if len(res.Added) != 1 {
		t.Fatalf("expected one record, got %+v", res)
	}
	got := res.Added[0]
	if got.CreatedAt.Format("2006-01-02") != "2024-12-01" {
		t.Fatalf("createdAt not carried over: %v", got.CreatedAt)
	}

	// Records without timestamps get the import time.
	res = MergeFiles(nil, []File{{Name: "b.json", Data: []byte(`[` + record("b", "y", 1, "Food", "2025-01-02") + `]`)}}, importNow)
	if !res.Added[0].CreatedAt.Equal(importNow) {
		t.Fatalf("createdAt should default to import time, got %v", res.Added[0].CreatedAt)
	}
}

func TestReplace(t *testing.T) {
	files := []File{
		{Name: "a.json", Data: []byte(`[` +
			record("t1", "Lunch", 5, "Food", "2025-01-01") + `,` +
			`{"id":"bad","amount":5,"category":"Food","date":"2025-01-01"}]`)},
	}
	log, res := Replace(files, importNow)
	if len(log) != 1 || res.NewCount != 1 || res.InvalidCount != 1 {
		t.Fatalf("replace result: log=%d %+v", len(log), res)
	}

	// Replace installs duplicates verbatim: no dedup in this mode.
	dup := File{Name: "d.json", Data: []byte(`[` +
		record("t1", "Lunch", 5, "Food", "2025-01-01") + `,` +
		record("t1", "Lunch", 5, "Food", "2025-01-01") + `]`)}
	log, _ = Replace([]File{dup}, importNow)
	if len(log) != 2 {
		t.Fatalf("replace must not dedupe, got %d records", len(log))
	}
}
