// Command extract runs one extraction from the command line: point it at
// statement files and it writes the workbook and CSV next to them.
package main

import (
	"context"
	"encoding/base64"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	"research_portal/pkg/core/agent"
	"research_portal/pkg/core/docs"
	"research_portal/pkg/core/extraction"
)

func main() {
	outDir := flag.String("out", ".", "directory for the generated artifacts")
	name := flag.String("name", "financial_data", "base name for the generated artifacts")
	timeout := flag.Duration("timeout", 3*time.Minute, "overall extraction timeout")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Println("Usage: extract [-out dir] [-name base] file.pdf [file2.txt ...]")
		os.Exit(1)
	}

	godotenv.Load()

	var agentCfg agent.Config
	if configData, err := os.ReadFile("config/models.yaml"); err == nil {
		yaml.Unmarshal(configData, &agentCfg)
	}
	agentMgr := agent.NewManager(agentCfg)

	documents := make([]docs.Document, 0, flag.NArg())
	for _, path := range flag.Args() {
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Printf("[FATAL] Could not read %s: %v\n", path, err)
			os.Exit(1)
		}
		documents = append(documents, docs.Document{
			Filename:    filepath.Base(path),
			ContentType: contentTypeFor(path),
			Data:        data,
		})
	}

	orchestrator := extraction.NewOrchestrator(agentMgr.GetProvider("extraction"))
	if model := agentMgr.GetModel("extraction"); model != "" {
		orchestrator.SetModel(model)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	result, err := orchestrator.Run(ctx, documents)
	if err != nil {
		fmt.Printf("[FATAL] Extraction failed: %v\n", err)
		if extErr, ok := extraction.AsError(err); ok {
			for _, note := range extErr.AnalystNotes {
				fmt.Printf("  note: %s\n", note)
			}
		}
		os.Exit(1)
	}

	xlsxBytes, err := base64.StdEncoding.DecodeString(result.ExcelBase64)
	if err != nil {
		fmt.Printf("[FATAL] Workbook decode failed: %v\n", err)
		os.Exit(1)
	}

	xlsxPath := filepath.Join(*outDir, *name+".xlsx")
	csvPath := filepath.Join(*outDir, *name+".csv")
	if err := os.WriteFile(xlsxPath, xlsxBytes, 0644); err != nil {
		fmt.Printf("[FATAL] Could not write %s: %v\n", xlsxPath, err)
		os.Exit(1)
	}
	if err := os.WriteFile(csvPath, []byte(result.CSV), 0644); err != nil {
		fmt.Printf("[FATAL] Could not write %s: %v\n", csvPath, err)
		os.Exit(1)
	}

	meta := result.Data.Metadata
	fmt.Printf("Extracted %d line items for %s (%s, %s)\n",
		len(result.Data.LineItems), meta.CompanyName, meta.Currency, meta.Units)
	fmt.Printf("Wrote %s and %s\n", xlsxPath, csvPath)
}

func contentTypeFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return "application/pdf"
	case ".html", ".htm":
		return "text/html"
	default:
		return "text/plain"
	}
}
