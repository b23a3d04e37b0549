// Package server provides the HTTP REST API for specification synthesis and review.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonathan/spec-customizer/internal/config"
	"github.com/jonathan/spec-customizer/internal/db"
	"github.com/jonathan/spec-customizer/internal/llm"
	"github.com/jonathan/spec-customizer/internal/review"
	"github.com/jonathan/spec-customizer/internal/server/middleware"
	"github.com/jonathan/spec-customizer/internal/server/ratelimit"
	"github.com/jonathan/spec-customizer/internal/synthesis"
)

// Server represents the HTTP server
type Server struct {
	httpServer     *http.Server
	db             *db.DB // nil keeps all state in memory
	llmClient      llm.Client
	synthesizer    *synthesis.Synthesizer
	analyzer       *review.Analyzer
	advisor        *llm.Advisor
	advisorReviews *review.AdvisorAnalyzer
	rateLimiter    *ratelimit.Limiter
	jwtService     *JWTService
	store          *memoryStore
}

// Config holds server configuration
type Config struct {
	Port        int
	DatabaseURL string
	Provider    string
	APIKey      string
	JWT         *config.JWTConfig // nil leaves mutating routes open
	RateLimit   *ratelimit.Config // nil loads RATE_LIMIT_* from the environment
	Advisor     llm.AdvisorOptions
	Synthesis   synthesis.Options
	Review      review.Options
}

// New creates a server, connecting to the database and the advisory service
// when they are configured. Missing advisory credentials are not an error:
// advisor routes then answer 503 with a configuration remediation.
func New(ctx context.Context, cfg Config) (*Server, error) {
	var database *db.DB
	if cfg.DatabaseURL != "" {
		var err error
		database, err = db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := database.Migrate(ctx); err != nil {
			database.Close()
			return nil, err
		}
	}

	provider, err := llm.ParseProvider(cfg.Provider)
	if err != nil {
		return nil, err
	}
	var client llm.Client
	if cfg.APIKey != "" {
		client, err = llm.NewClient(ctx, llm.ConfigForProvider(provider), cfg.APIKey)
		if err != nil {
			log.Printf("Advisory service unavailable: %v", err)
			client = nil
		}
	} else {
		log.Printf("No API key for %s; advisory routes will report configuration required", provider)
	}

	s := newServer(cfg, database, client, provider)
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 2 * time.Minute, // advisor calls retry with backoff
		IdleTimeout:  60 * time.Second,
	}
	return s, nil
}

// newServer wires handlers around already-constructed dependencies.
func newServer(cfg Config, database *db.DB, client llm.Client, provider llm.Provider) *Server {
	opts := cfg.Advisor
	opts.Provider = provider
	advisor := llm.NewAdvisor(client, opts)
	s := &Server{
		db:             database,
		llmClient:      client,
		synthesizer:    synthesis.New(cfg.Synthesis),
		analyzer:       review.NewAnalyzer(cfg.Review),
		advisor:        advisor,
		advisorReviews: review.NewAdvisorAnalyzer(advisor),
		store:          newMemoryStore(),
	}

	rl := cfg.RateLimit
	if rl == nil {
		rl = ratelimit.LoadConfig()
	}
	s.rateLimiter = ratelimit.NewLimiter(rl)

	if cfg.JWT != nil {
		s.jwtService = NewJWTService(cfg.JWT)
	}
	return s
}

// Handler returns the routed handler with all middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /formats", s.handleFormats)

	// Template synthesis
	mux.Handle("POST /specifications", s.protect(s.handleCreateSpecification))
	mux.HandleFunc("GET /specifications/{id}", s.handleGetSpecification)
	mux.Handle("PUT /specifications/{id}/articles/{section}/{article}", s.protect(s.handleEditArticle))
	mux.HandleFunc("GET /specifications/{id}/export", s.handleExportSpecification)

	// Document review
	mux.Handle("POST /reviews", s.protect(s.handleCreateReview))
	mux.HandleFunc("GET /reviews/{id}", s.handleGetReview)
	mux.Handle("POST /reviews/{id}/suggestions/{sid}/approve", s.protect(s.handleApprove))
	mux.Handle("POST /reviews/{id}/suggestions/{sid}/reject", s.protect(s.handleReject))
	mux.Handle("POST /reviews/{id}/approve-all", s.protect(s.handleApproveAll))
	mux.HandleFunc("GET /reviews/{id}/render", s.handleRender)
	mux.HandleFunc("GET /reviews/{id}/revised", s.handleRevised)

	// Advisory text service
	mux.Handle("POST /advisor", s.protect(s.handleAdvisor))

	return s.withRateLimit(s.withLogging(s.withCORS(mux)))
}

// protect requires a bearer token on h when authentication is configured.
func (s *Server) protect(h http.HandlerFunc) http.Handler {
	if s.jwtService == nil {
		return h
	}
	return middleware.AuthMiddleware(s.jwtService.AsTokenValidator())(h)
}

// Start begins listening for requests
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.Close()
	log.Println("Server stopped")
	return nil
}

// Close releases the rate limiter, advisory client and database pool.
func (s *Server) Close() {
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	if s.llmClient != nil {
		if err := s.llmClient.Close(); err != nil {
			log.Printf("Error closing advisory client: %v", err)
		}
	}
	if s.db != nil {
		s.db.Close()
	}
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(clientID(r), r.URL.Path, r.Method)
		setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Printf("[%s] %s %d %v", r.Method, r.URL.Path, rec.status, time.Since(start))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"database": s.db != nil,
		"advisor":  s.advisor.Configured(),
	})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// clientID returns the caller IP from RemoteAddr.
func clientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

func setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
	}
	if !info.ResetTime.IsZero() {
		response["reset_at"] = info.ResetTime.Format(time.RFC3339)
	}
	if info.RetryAfter > 0 {
		seconds := int(info.RetryAfter.Seconds()) + 1
		response["retry_after"] = seconds
		w.Header().Set("Retry-After", fmt.Sprintf("%d", seconds))
	}

	log.Printf("[rate-limit] Rate limit exceeded: Limit=%d Remaining=%d", info.Limit, info.Remaining)
	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
