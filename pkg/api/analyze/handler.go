// Package analyze exposes the narrative analyst-report endpoint: one
// uploaded document in, a markdown report out.
package analyze

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"research_portal/pkg/core/agent"
	"research_portal/pkg/core/docs"
	"research_portal/pkg/core/report"
)

const (
	maxRequestBytes = 16 << 20
	requestTimeout  = 180 * time.Second
)

var agentManager *agent.Manager

func InitHandler(mgr *agent.Manager) {
	agentManager = mgr
}

type Response struct {
	Report string `json:"report"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	// CORS
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed.")
		return
	}

	requestID := uuid.New().String()
	fmt.Printf("[ANALYZE] Request %s from %s\n", requestID, r.RemoteAddr)

	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBytes)
	if err := r.ParseMultipartForm(maxRequestBytes); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart request.")
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No file uploaded.")
		return
	}
	data, err := io.ReadAll(file)
	file.Close()
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Could not read file %q.", header.Filename))
		return
	}

	doc := docs.Document{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}

	service := report.NewService(agentManager.GetProvider("analysis"))
	if model := agentManager.GetModel("analysis"); model != "" {
		service.SetModel(model)
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	markdown, err := service.Analyze(ctx, doc)
	if err != nil {
		if errors.Is(err, report.ErrUnsupportedDocument) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		fmt.Printf("[ERROR] Request %s analysis failed: %v\n", requestID, err)
		writeError(w, http.StatusInternalServerError, "Failed to analyze document. Please try again.")
		return
	}

	fmt.Printf("[ANALYZE] Request %s succeeded (%d chars)\n", requestID, len(markdown))
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(Response{Report: markdown})
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}
