package http

import (
	"encoding/json"
	"io"
	"net/http"
	"sort"
	"time"

	"campuscoins/internal/importer"
	"campuscoins/internal/log"
)

// handleExport streams the whole log as a pretty-printed JSON array,
// named after the current date so repeated exports don't collide.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	data, err := json.MarshalIndent(s.ledger.Transactions(), "", "  ")
	if err != nil {
		writeError(w, http.StatusInternalServerError, "export failed")
		return
	}

	filename := "campuscoins-export-" + time.Now().Format("2006-01-02") + ".json"
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)

	s.logger.InfoContext(r.Context(), "Export served",
		log.FieldOperation, log.OpExport,
		log.FieldFile, filename)
}

// handleImport accepts one or more uploaded JSON files and merges or
// replaces the log with their records. A file that fails to parse
// contributes an error entry but never aborts the batch.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	mode := r.URL.Query().Get("mode")
	if mode == "" {
		mode = "merge"
	}
	if mode != "merge" && mode != "replace" {
		writeError(w, http.StatusBadRequest, "mode must be merge or replace")
		return
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart request")
		return
	}

	files, err := collectUploads(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(files) == 0 {
		writeError(w, http.StatusBadRequest, "no files uploaded")
		return
	}

	var res importer.Result
	if mode == "replace" {
		res = s.ledger.ReplaceImport(r.Context(), files)
	} else {
		res = s.ledger.MergeImport(r.Context(), files)
	}
	writeJSON(w, http.StatusOK, res)
}

// collectUploads reads every uploaded file, keeping a deterministic
// order: form field names sorted, files within a field as sent.
func collectUploads(r *http.Request) ([]importer.File, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}

	fields := make([]string, 0, len(r.MultipartForm.File))
	for field := range r.MultipartForm.File {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var files []importer.File
	for _, field := range fields {
		for _, header := range r.MultipartForm.File[field] {
			f, err := header.Open()
			if err != nil {
				return nil, err
			}
			data, err := io.ReadAll(f)
			f.Close()
			if err != nil {
				return nil, err
			}
			files = append(files, importer.File{Name: header.Filename, Data: data})
		}
	}
	return files, nil
}
