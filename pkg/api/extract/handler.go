// Package extract exposes the statement-extraction endpoint: multipart
// uploads in, typed line items plus encoded artifacts out.
package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/google/uuid"

	"research_portal/pkg/core/agent"
	"research_portal/pkg/core/docs"
	"research_portal/pkg/core/extraction"
	"research_portal/pkg/models"
)

const (
	maxRequestBytes = 64 << 20 // whole multipart body
	requestTimeout  = 180 * time.Second
)

var agentManager *agent.Manager

func InitHandler(mgr *agent.Manager) {
	agentManager = mgr
}

// Response is the success payload: the typed model plus both encoded
// artifacts so the client never has to re-derive them.
type Response struct {
	Data  *models.ExtractionResult `json:"data"`
	Excel string                   `json:"excel"`
	CSV   string                   `json:"csv"`
}

type ErrorResponse struct {
	Error        string   `json:"error"`
	AnalystNotes []string `json:"analyst_notes,omitempty"`
}

func HandleExtract(w http.ResponseWriter, r *http.Request) {
	// CORS
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed.", nil)
		return
	}

	requestID := uuid.New().String()
	fmt.Printf("[EXTRACT] Request %s from %s\n", requestID, r.RemoteAddr)

	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBytes)
	if err := r.ParseMultipartForm(maxRequestBytes); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart request.", nil)
		return
	}
	defer r.MultipartForm.RemoveAll()

	fileHeaders := r.MultipartForm.File["files"]
	if len(fileHeaders) == 0 {
		writeError(w, http.StatusBadRequest, "No files uploaded.", nil)
		return
	}

	documents, err := readDocuments(fileHeaders)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	orchestrator := extraction.NewOrchestrator(agentManager.GetProvider("extraction"))
	if model := agentManager.GetModel("extraction"); model != "" {
		orchestrator.SetModel(model)
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	result, err := orchestrator.Run(ctx, documents)
	if err != nil {
		if extErr, ok := extraction.AsError(err); ok {
			fmt.Printf("[EXTRACT] Request %s failed (%d): %v\n", requestID, extErr.HTTPStatus(), extErr)
			writeError(w, extErr.HTTPStatus(), extErr.Message, extErr.AnalystNotes)
			return
		}
		fmt.Printf("[ERROR] Request %s failed unexpectedly: %v\n", requestID, err)
		writeError(w, http.StatusInternalServerError, "Failed to extract financial data. Please try again.", nil)
		return
	}

	fmt.Printf("[EXTRACT] Request %s succeeded: %d line items\n", requestID, len(result.Data.LineItems))
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(Response{
		Data:  result.Data,
		Excel: result.ExcelBase64,
		CSV:   result.CSV,
	})
}

// readDocuments drains every uploaded part into memory. Per-file limits are
// enforced downstream; this only guards against unreadable parts.
func readDocuments(headers []*multipart.FileHeader) ([]docs.Document, error) {
	documents := make([]docs.Document, 0, len(headers))
	for _, header := range headers {
		file, err := header.Open()
		if err != nil {
			return nil, fmt.Errorf("could not read file %q", header.Filename)
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			return nil, fmt.Errorf("could not read file %q", header.Filename)
		}
		documents = append(documents, docs.Document{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Data:        data,
		})
	}
	return documents, nil
}

func writeError(w http.ResponseWriter, status int, message string, notes []string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message, AnalystNotes: notes})
}
