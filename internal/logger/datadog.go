package logger

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/DataDog/datadog-api-client-go/v2/api/datadog"
	"github.com/DataDog/datadog-api-client-go/v2/api/datadogV2"
)

// DataDogWriter ships log lines to the datadog logs intake.
// Every Write is one SubmitLog call bounded by DataDog.Timeout.
type DataDogWriter struct {
	api      *datadogV2.LogsApi
	ctx      context.Context //nolint:containedctx
	cfg      DataDog
	source   string
	hostname string
}

// NewDataDogWriter creates a writer for the datadog logs api.
func NewDataDogWriter(cfg Log) (*DataDogWriter, error) {
	if cfg.DataDog.APIKey == "" {
		return nil, ErrDataDogAPIKeyIsEmpty
	}

	ctx := context.WithValue(
		context.Background(),
		datadog.ContextAPIKeys,
		map[string]datadog.APIKey{"apiKeyAuth": {Key: cfg.DataDog.APIKey}},
	)

	if cfg.DataDog.Site != "" {
		ctx = context.WithValue(ctx, datadog.ContextServerVariables, map[string]string{"site": cfg.DataDog.Site})
	}

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}

	if cfg.DataDog.ServiceName == "" {
		cfg.DataDog.ServiceName = cfg.ServiceName
	}

	return &DataDogWriter{
		api:      datadogV2.NewLogsApi(datadog.NewAPIClient(datadog.NewConfiguration())),
		ctx:      ctx,
		cfg:      cfg.DataDog,
		source:   cfg.AppName,
		hostname: hostname,
	}, nil
}

// Write implements io.Writer.
func (w *DataDogWriter) Write(p []byte) (int, error) {
	ctx := w.ctx

	if w.cfg.Timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, w.cfg.Timeout)
		defer cancel()
	}

	if _, _, err := w.api.SubmitLog(ctx, []datadogV2.HTTPLogItem{w.item(p)}); err != nil {
		return 0, fmt.Errorf("failed to submit log to datadog: %w", err)
	}

	return len(p), nil
}

func (w *DataDogWriter) item(p []byte) datadogV2.HTTPLogItem {
	item := datadogV2.HTTPLogItem{
		Ddsource: datadog.PtrString(w.source),
		Hostname: datadog.PtrString(w.hostname),
		Message:  strings.TrimRight(string(p), "\n"),
		Service:  datadog.PtrString(w.cfg.ServiceName),
	}

	if w.cfg.Tags != "" {
		item.Ddtags = datadog.PtrString(w.cfg.Tags)
	}

	return item
}
