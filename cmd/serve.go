package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/planning-cli/internal/model"
	"github.com/sells-group/planning-cli/internal/site"
	"github.com/sells-group/planning-cli/pkg/eplanning"
)

var servePort int

const shutdownTimeout = 10 * time.Second

// buildFunc assembles a site record for one lot identifier.
type buildFunc func(ctx context.Context, lotID string) (*model.SiteRecord, error)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the session-keyed lot lookup HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		assembler := site.NewAssembler(newAPIClient())
		router := newRouter(assembler.Build, site.NewSessions())

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{Handler: router}
		ln, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
		if err != nil {
			return eris.Wrap(err, "server listen")
		}

		zap.L().Info("starting server", zap.Int("port", port))
		return runServer(ctx, srv, ln)
	},
}

// runServer serves on ln until ctx is canceled, then drains in-flight
// requests before returning.
func runServer(ctx context.Context, srv *http.Server, ln net.Listener) error {
	go func() {
		<-ctx.Done()
		zap.L().Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			zap.L().Error("server shutdown", zap.Error(err))
		}
	}()

	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return eris.Wrap(err, "server serve")
	}
	return nil
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}

// newRouter wires the session and table endpoints.
func newRouter(build buildFunc, sessions *site.Sessions) http.Handler {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE"},
		AllowedHeaders: []string{"Content-Type"},
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/api/sessions", func(w http.ResponseWriter, r *http.Request) {
		id, _ := sessions.New()
		writeJSON(w, http.StatusCreated, map[string]string{"session_id": id})
	})

	r.Route("/api/sessions/{id}", func(r chi.Router) {
		r.Post("/lots", func(w http.ResponseWriter, req *http.Request) {
			table := sessions.Get(chi.URLParam(req, "id"))
			if table == nil {
				writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown session"})
				return
			}

			var body struct {
				LotID string `json:"lot_id"`
			}
			if err := json.NewDecoder(req.Body).Decode(&body); err != nil || body.LotID == "" {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": "lot_id is required"})
				return
			}

			if table.Contains(body.LotID) {
				writeJSON(w, http.StatusOK, map[string]string{
					"status": "duplicate",
					"lot_id": body.LotID,
				})
				return
			}

			rec, err := build(req.Context(), body.LotID)
			if err != nil {
				zap.L().Error("serve: lot lookup failed",
					zap.String("lot_id", body.LotID),
					zap.Error(err),
				)
				writeJSON(w, lookupStatus(err), map[string]string{
					"error":  err.Error(),
					"lot_id": body.LotID,
				})
				return
			}

			if !table.Append(*rec) {
				writeJSON(w, http.StatusOK, map[string]string{
					"status": "duplicate",
					"lot_id": body.LotID,
				})
				return
			}
			writeJSON(w, http.StatusCreated, rec)
		})

		r.Get("/table", func(w http.ResponseWriter, req *http.Request) {
			table := sessions.Get(chi.URLParam(req, "id"))
			if table == nil {
				writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown session"})
				return
			}
			writeJSON(w, http.StatusOK, table.Records())
		})

		r.Get("/export.csv", func(w http.ResponseWriter, req *http.Request) {
			table := sessions.Get(chi.URLParam(req, "id"))
			if table == nil {
				writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown session"})
				return
			}
			w.Header().Set("Content-Type", "text/csv; charset=utf-8")
			w.Header().Set("Content-Disposition", `attachment; filename="nsw_planning_sites.csv"`)
			if err := site.WriteCSV(w, table.Records()); err != nil {
				zap.L().Error("serve: csv export failed", zap.Error(err))
			}
		})

		r.Delete("/", func(w http.ResponseWriter, req *http.Request) {
			if !sessions.Reset(chi.URLParam(req, "id")) {
				writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown session"})
				return
			}
			w.WriteHeader(http.StatusNoContent)
		})
	})

	return r
}

// lookupStatus maps a row-build failure to an HTTP status: unknown lots
// are 404, everything upstream-shaped (transport, malformed payloads)
// is 502.
func lookupStatus(err error) int {
	if eris.Is(err, eplanning.ErrNotFound) {
		return http.StatusNotFound
	}
	return http.StatusBadGateway
}

// writeJSON writes a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
