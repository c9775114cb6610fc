package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/codepadhq/codepad/internal/workspace"
)

// postOnly rejects any method but POST with the protocol's fixed error.
func postOnly(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]any{"error": "Only POST requests are allowed"})
		return false
	}
	return true
}

// writeJSON encodes payload as the response body.
func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// handleList returns the workspace filenames.
func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	if !postOnly(w, r) {
		return
	}

	files, err := s.files.List()
	if err != nil {
		s.log.Error("list: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": fmt.Sprintf("List error: %v", err)})
		return
	}
	if files == nil {
		files = []string{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"files": files})
}

// handleLoad returns the stored content of the requested filename.
func (s *Server) handleLoad(w http.ResponseWriter, r *http.Request) {
	if !postOnly(w, r) {
		return
	}

	var req struct {
		Filename string `json:"filename"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Invalid JSON"})
		return
	}
	if req.Filename == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "No filename provided"})
		return
	}

	content, err := s.files.Read(req.Filename)
	if err != nil {
		if errors.Is(err, workspace.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]any{"error": "File not found"})
			return
		}
		s.log.Error("load %s: %v", req.Filename, err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": fmt.Sprintf("Load error: %v", err)})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"code": content, "filename": req.Filename})
}

// handleSave stores the submitted code under the given filename.
func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	if !postOnly(w, r) {
		return
	}

	var req struct {
		Filename string `json:"filename"`
		Code     string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Invalid JSON"})
		return
	}
	if req.Filename == "" {
		req.Filename = "untitled.py"
	}

	if err := s.files.Write(req.Filename, req.Code); err != nil {
		s.log.Error("save %s: %v", req.Filename, err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": fmt.Sprintf("Save error: %v", err)})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":  fmt.Sprintf("File saved successfully as %s", req.Filename),
		"filename": req.Filename,
	})
}

// handleExecute runs the submitted code and returns its output and error
// text verbatim.
func (s *Server) handleExecute(w http.ResponseWriter, r *http.Request) {
	if !postOnly(w, r) {
		return
	}

	var req struct {
		Code     string `json:"code"`
		Language string `json:"language"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Invalid JSON"})
		return
	}
	if req.Language == "" {
		req.Language = "python"
	}
	if strings.TrimSpace(req.Code) == "" {
		writeJSON(w, http.StatusOK, map[string]any{"output": "", "error": "No code provided"})
		return
	}

	result, err := s.runner.Run(r.Context(), req.Code, req.Language)
	if err != nil {
		s.log.Error("execute (%s): %v", req.Language, err)
		writeJSON(w, http.StatusOK, map[string]any{"output": "", "error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"output": result.Output, "error": result.Error})
}
