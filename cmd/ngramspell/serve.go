package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	ngramspell "github.com/zchrykng/go-ngramspell"
	"github.com/zchrykng/go-ngramspell/internal/customdict"
	"github.com/zchrykng/go-ngramspell/internal/metrics"
	"github.com/zchrykng/go-ngramspell/internal/watch"
	"github.com/zchrykng/go-ngramspell/lm"
)

const (
	shutdownTimeout = 10 * time.Second
	maxBodyBytes    = 1 << 20
)

type server struct {
	checker *ngramspell.Checker
	custom  *customdict.CustomDict
	logger  *slog.Logger
	timeout time.Duration // per check request; zero means none
}

func runServe(ctx context.Context, args []string) error {
	fs, envFile := newFlagSet("serve")
	if err := fs.Parse(args); err != nil {
		return err
	}
	e, err := setup(*envFile)
	if err != nil {
		return err
	}

	m, err := metrics.New(prometheus.DefaultRegisterer)
	if err != nil {
		return err
	}
	checker, err := e.checker(ctx, ngramspell.WithMetrics(m))
	if err != nil {
		return err
	}

	if e.cfg.WatchModel {
		w := watch.New(e.cfg.ModelPath, func(path string) error {
			model, err := lm.Open(path)
			if err != nil {
				return err
			}
			return checker.SwapModel(model)
		}, e.logger)
		go func() {
			if err := w.Run(ctx); err != nil {
				e.logger.Error("model watcher stopped", slog.String("err", err.Error()))
			}
		}()
	}

	s := &server{checker: checker, custom: e.custom, logger: e.logger, timeout: e.cfg.RequestTimeout}
	srv := &http.Server{
		Addr:              e.cfg.HTTPAddr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		e.logger.Info("listening", slog.String("addr", e.cfg.HTTPAddr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	e.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/check", s.handleCheck)
	mux.HandleFunc("POST /api/v1/custom-word", s.handleAddWord)
	mux.HandleFunc("DELETE /api/v1/custom-word/{word}", s.handleRemoveWord)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	return mux
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// decode reads a JSON body of at most maxBodyBytes into v and writes the
// error response itself when that fails.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v)
	if err == nil {
		return true
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeError(w, http.StatusRequestEntityTooLarge, "request too large")
		return false
	}
	writeError(w, http.StatusBadRequest, "invalid request")
	return false
}

func (s *server) handleCheck(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if !decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	ctx := r.Context()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	records, err := s.checker.Check(ctx, req.Text)
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		s.logger.Warn("check timed out", slog.Duration("timeout", s.timeout), slog.Int("bytes", len(req.Text)))
		writeError(w, http.StatusServiceUnavailable, "check timed out")
		return
	case err != nil:
		s.logger.Warn("check failed", slog.String("err", err.Error()))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"text":  req.Text,
		"typos": ngramspell.CharacterSpans(req.Text, records),
	})
}

func (s *server) handleAddWord(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Word string `json:"word"`
	}
	if !decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Word) == "" {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if err := s.persist(r.Context(), req.Word, true); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	err := s.checker.UpdateDictionary(func(d *ngramspell.Dictionary) *ngramspell.Dictionary {
		return d.With(req.Word)
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"status": "ok"})
}

func (s *server) handleRemoveWord(w http.ResponseWriter, r *http.Request) {
	word := r.PathValue("word")
	if strings.TrimSpace(word) == "" {
		writeError(w, http.StatusBadRequest, "word is required")
		return
	}
	if err := s.persist(r.Context(), word, false); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	err := s.checker.UpdateDictionary(func(d *ngramspell.Dictionary) *ngramspell.Dictionary {
		return d.Without(word)
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// persist records the change in Redis when a store is configured. Without
// one the change lives only as long as the process.
func (s *server) persist(ctx context.Context, word string, add bool) error {
	if s.custom == nil {
		return nil
	}
	if add {
		return s.custom.Add(ctx, word)
	}
	return s.custom.Remove(ctx, word)
}
