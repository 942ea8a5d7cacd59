package extraction

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"testing"

	"research_portal/pkg/core/docs"
	"research_portal/pkg/core/llm"
)

// --- Mocks ---

type MockProvider struct {
	GenerateFunc func(ctx context.Context, parts []llm.Part, opts llm.Options) (string, error)
	LastOpts     llm.Options
	Calls        int
}

func (m *MockProvider) GenerateContent(ctx context.Context, parts []llm.Part, opts llm.Options) (string, error) {
	m.Calls++
	m.LastOpts = opts
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, parts, opts)
	}
	return "{}", nil
}

const oracleSuccess = `{
	"metadata": {
		"company_name": "Acme Industries Ltd",
		"currency": "INR",
		"units": "Lakhs",
		"reporting_periods": ["FY2024"],
		"statement_type": "Standalone"
	},
	"line_items": [
		{"standard_label": "Revenue from Operations", "depth": 1, "values": {"FY2024": 5000.5}},
		{"standard_label": "Total Income", "is_total": true, "values": {"FY2024": 5000.5}}
	],
	"analyst_notes": []
}`

func textDoc(name, content string) docs.Document {
	return docs.Document{Filename: name, ContentType: "text/plain", Data: []byte(content)}
}

// --- Tests ---

func TestRun_Success(t *testing.T) {
	mock := &MockProvider{
		GenerateFunc: func(ctx context.Context, parts []llm.Part, opts llm.Options) (string, error) {
			return oracleSuccess, nil
		},
	}
	orch := NewOrchestrator(mock)
	orch.SetModel("gemini-2.5-flash")

	result, err := orch.Run(context.Background(), []docs.Document{textDoc("statement.txt", "Revenue 5000.5")})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if mock.Calls != 1 {
		t.Errorf("oracle called %d times, want exactly 1", mock.Calls)
	}
	if !mock.LastOpts.JSONMode {
		t.Error("extraction must request JSON mode")
	}
	if mock.LastOpts.Temperature != 0.1 {
		t.Errorf("temperature = %v", mock.LastOpts.Temperature)
	}
	if mock.LastOpts.Model != "gemini-2.5-flash" {
		t.Errorf("model = %q", mock.LastOpts.Model)
	}

	if result.Data.Metadata.CompanyName != "Acme Industries Ltd" {
		t.Errorf("company = %q", result.Data.Metadata.CompanyName)
	}
	if len(result.Data.LineItems) != 2 {
		t.Errorf("line items = %d", len(result.Data.LineItems))
	}
	if _, err := base64.StdEncoding.DecodeString(result.ExcelBase64); err != nil {
		t.Errorf("excel artifact is not valid base64: %v", err)
	}
	if !strings.Contains(result.CSV, "Revenue from Operations") {
		t.Error("csv artifact missing line item")
	}
}

func TestRun_NoDocuments(t *testing.T) {
	orch := NewOrchestrator(&MockProvider{})
	_, err := orch.Run(context.Background(), nil)
	extErr, ok := AsError(err)
	if !ok || extErr.Kind != KindUnsupportedInput {
		t.Fatalf("expected unsupported-input error, got %v", err)
	}
}

func TestRun_InvalidDocument(t *testing.T) {
	mock := &MockProvider{}
	orch := NewOrchestrator(mock)

	_, err := orch.Run(context.Background(), []docs.Document{
		{Filename: "statement.exe", ContentType: "application/octet-stream", Data: []byte("x")},
	})
	extErr, ok := AsError(err)
	if !ok || extErr.Kind != KindUnsupportedInput {
		t.Fatalf("expected unsupported-input error, got %v", err)
	}
	if extErr.HTTPStatus() != 400 {
		t.Errorf("status = %d", extErr.HTTPStatus())
	}
	if mock.Calls != 0 {
		t.Error("oracle must not be called for rejected input")
	}
}

func TestRun_TransportFailure(t *testing.T) {
	mock := &MockProvider{
		GenerateFunc: func(ctx context.Context, parts []llm.Part, opts llm.Options) (string, error) {
			return "", fmt.Errorf("rpc error: deadline exceeded")
		},
	}
	orch := NewOrchestrator(mock)

	_, err := orch.Run(context.Background(), []docs.Document{textDoc("s.txt", "data")})
	extErr, ok := AsError(err)
	if !ok || extErr.Kind != KindOracleTransport {
		t.Fatalf("expected transport error, got %v", err)
	}
	if !extErr.Retryable() {
		t.Error("transport failures are retryable")
	}
	if extErr.HTTPStatus() != 500 {
		t.Errorf("status = %d", extErr.HTTPStatus())
	}
	if strings.Contains(extErr.Message, "deadline") {
		t.Error("internal detail leaked into caller-facing message")
	}
	if !errors.Is(err, errors.Unwrap(extErr)) {
		t.Error("cause should be preserved in the chain")
	}
}

func TestRun_MalformedResponse(t *testing.T) {
	mock := &MockProvider{
		GenerateFunc: func(ctx context.Context, parts []llm.Part, opts llm.Options) (string, error) {
			return "Sorry, I cannot help with that.", nil
		},
	}
	orch := NewOrchestrator(mock)

	_, err := orch.Run(context.Background(), []docs.Document{textDoc("s.txt", "data")})
	extErr, ok := AsError(err)
	if !ok || extErr.Kind != KindMalformedExtraction {
		t.Fatalf("expected malformed-extraction error, got %v", err)
	}
	if !extErr.Retryable() {
		t.Error("malformed responses are retryable")
	}
}

func TestRun_NotAFinancialStatement(t *testing.T) {
	mock := &MockProvider{
		GenerateFunc: func(ctx context.Context, parts []llm.Part, opts llm.Options) (string, error) {
			return `{"error": "Not a financial statement", "analyst_notes": ["Looks like a rental agreement."]}`, nil
		},
	}
	orch := NewOrchestrator(mock)

	_, err := orch.Run(context.Background(), []docs.Document{textDoc("s.txt", "data")})
	extErr, ok := AsError(err)
	if !ok || extErr.Kind != KindNotAFinancialStatement {
		t.Fatalf("expected out-of-domain error, got %v", err)
	}
	if extErr.Retryable() {
		t.Error("the oracle's domain verdict is final")
	}
	if extErr.HTTPStatus() != 422 {
		t.Errorf("status = %d", extErr.HTTPStatus())
	}
	if len(extErr.AnalystNotes) != 1 {
		t.Errorf("notes = %v", extErr.AnalystNotes)
	}
}
