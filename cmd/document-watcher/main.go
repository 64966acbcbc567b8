package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/GoogleCloudPlatform/functions-framework-go/functions"
	"github.com/Lllllllleong/pdfinsight/internal/logging"
	"github.com/Lllllllleong/pdfinsight/internal/services"
	cloudevents "github.com/cloudevents/sdk-go/v2"
)

var (
	analyzerInstance *services.AnalyzerFunction
	once             sync.Once
	initErr          error
)

func init() {
	// --- Set up structured logging ---
	logging.Setup()

	// Register the CloudEvent function. The framework will handle routing the event here.
	functions.CloudEvent("AnalyzeUploadedDocument", analyzeUploadedDocument)
}

// main is required by the Go Functions Framework.
func main() {}

// analyzeUploadedDocument runs on every object-finalized event of the upload
// bucket. The report is written to the log; nothing is stored.
func analyzeUploadedDocument(ctx context.Context, e cloudevents.Event) error {
	once.Do(func() {
		analyzerInstance, initErr = services.NewAnalyzer(context.Background())
	})
	if initErr != nil {
		slog.Error("Critical error during function initialization", "error", initErr)
		return initErr
	}

	var gcsEvent services.GCSEvent
	if err := json.Unmarshal(e.Data(), &gcsEvent); err != nil {
		slog.Error("Failed to unmarshal event data", "error", err, "data", string(e.Data()))
		return fmt.Errorf("json.Unmarshal: %w", err)
	}

	report, err := analyzerInstance.ProcessEvent(ctx, gcsEvent)
	if err != nil {
		// Returning the error marks the invocation as failed.
		return err
	}
	if report == nil {
		return nil
	}

	slog.Info("Document report.",
		"eventId", e.ID(),
		"gcsBucket", gcsEvent.Bucket,
		"gcsObject", gcsEvent.Name,
		"report", report,
	)
	return nil
}
