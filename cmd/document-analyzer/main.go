package main

import (
	"context"
	"log/slog"
	"net/http"
	"sync"

	"github.com/GoogleCloudPlatform/functions-framework-go/functions"
	"github.com/Lllllllleong/pdfinsight/internal/logging"
	"github.com/Lllllllleong/pdfinsight/internal/services"
)

var (
	analyzerInstance *services.AnalyzerFunction
	once             sync.Once
	initErr          error
)

func init() {
	// --- Set up structured logging ---
	logging.Setup()

	// "HandleAnalyzeDocument" is the entry point name we'll see in GCP.
	functions.HTTP("HandleAnalyzeDocument", handleAnalyzeDocument)
}

// main is required by the Go Functions Framework.
func main() {}

// handleAnalyzeDocument is the HTTP handler.
func handleAnalyzeDocument(w http.ResponseWriter, r *http.Request) {
	// Use sync.Once for one-time initialization of the model clients.
	once.Do(func() {
		analyzerInstance, initErr = services.NewAnalyzer(context.Background())
	})
	if initErr != nil {
		slog.Error("Critical error during function initialization", "error", initErr)
		http.Error(w, "Internal Server Error: failed to initialize service", http.StatusInternalServerError)
		return
	}

	analyzerInstance.ServeHTTP(w, r)
}
