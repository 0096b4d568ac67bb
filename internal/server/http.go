package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/pprof"
	"time"

	"github.com/plomlompom/plomrogue2-experiments/internal/engine"
	"github.com/plomlompom/plomrogue2-experiments/internal/version"
	"github.com/plomlompom/plomrogue2-experiments/pkg/logger"
	"github.com/sirupsen/logrus"
)

// HTTPServer - WebSocket-вход в протокол и служебные роуты.
type HTTPServer struct {
	Engine *engine.GameService
	Port   string

	ctx context.Context
	log *logrus.Entry
}

func NewHTTPServer(game *engine.GameService, port string) *HTTPServer {
	return &HTTPServer{
		Engine: game,
		Port:   port,
		ctx:    context.Background(),
		log:    logger.Component("http"),
	}
}

// Handler собирает роуты.
func (s *HTTPServer) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/ws", enableCORS(s.handleWS))
	mux.HandleFunc("/health", enableCORS(s.handleHealth))
	mux.HandleFunc("/version", enableCORS(s.handleVersion))

	debugHandler := NewDebugHandler(s.Engine)
	debugHandler.RegisterRoutes(mux)

	// Profiling
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)

	return mux
}

// Run слушает до отмены ctx.
func (s *HTTPServer) Run(ctx context.Context) error {
	s.ctx = ctx
	srv := &http.Server{
		Addr:              ":" + s.Port,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.WithError(err).Warn("HTTP shutdown failed")
		}
	}()

	s.log.WithField("port", s.Port).Info("HTTP server listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func enableCORS(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		next(w, r)
	}
}

// handleWS подключает клиента протокола по WebSocket
func (s *HTTPServer) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.WithError(err).Warn("Upgrade error")
		return
	}

	sess := NewSession(s.Engine.Inbox, newWSConn(conn), r.RemoteAddr)
	go sess.Serve(s.ctx)
}

func (s *HTTPServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"status":      "ok",
		"connections": s.Engine.Hub.SubscriberCount(),
	})
}

func (s *HTTPServer) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, version.Info())
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")

	// nil - пустой массив, а не null
	if data == nil {
		w.Write([]byte("[]"))
		return
	}

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Log.WithError(err).Debug("write json failed")
	}
}
