package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wisnuaga/e-faktur/internal/djp"
	"github.com/wisnuaga/e-faktur/internal/model"
	"github.com/wisnuaga/e-faktur/internal/pipeline"
)

var serveAddr string

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP validation API",
	Long: `Serve exposes the validation pipeline over HTTP:

  GET  /health                    liveness probe
  POST /api/v1/validate-efaktur   multipart upload ("file") returning the report

Example:
  efaktur serve
  efaktur serve --addr :9090`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}

	logger, err := newLogger()
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", healthHandler)
	mux.HandleFunc("POST /api/v1/validate-efaktur", validateHandler(p, cfg.Server.MaxUploadBytes, logger))

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	go func() {
		<-ctx.Done()
		logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("starting server", zap.String("addr", cfg.Server.Addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server listen: %w", err)
	}

	return nil
}

func newLogger() (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// documentValidator is the slice of the pipeline the HTTP layer needs.
type documentValidator interface {
	Validate(ctx context.Context, content []byte) (*model.ValidationReport, error)
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func validateHandler(v documentValidator, maxUploadBytes int64, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

		file, header, err := r.FormFile("file")
		if err != nil {
			writeError(w, http.StatusBadRequest, "multipart field \"file\" is required")
			return
		}
		defer func() { _ = file.Close() }()

		content, err := io.ReadAll(file)
		if err != nil {
			writeError(w, http.StatusBadRequest, "failed to read upload")
			return
		}

		report, err := v.Validate(r.Context(), content)
		if err != nil {
			status := statusForError(err)
			logger.Warn("validation failed",
				zap.String("filename", header.Filename),
				zap.Int("status", status),
				zap.Error(err),
			)
			writeError(w, status, err.Error())
			return
		}

		logger.Info("validation complete",
			zap.String("filename", header.Filename),
			zap.String("status", report.Status),
			zap.Int("deviations", len(report.Deviations)),
		)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(report)
	}
}

// statusForError maps pipeline error classes to HTTP statuses.
func statusForError(err error) int {
	var transportErr *djp.TransportError
	var parseErr *djp.ParseError

	switch {
	case errors.Is(err, pipeline.ErrEmptyDocument):
		return http.StatusBadRequest
	case errors.Is(err, pipeline.ErrUnsupportedDocument):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, pipeline.ErrNoCodeFound):
		return http.StatusUnprocessableEntity
	case errors.As(err, &transportErr), errors.As(err, &parseErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"detail": detail})
}
