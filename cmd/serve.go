package cmd

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"
	"time"

	"github.com/etnz/pricedash"
	"github.com/etnz/pricedash/renderer"
	"github.com/google/subcommands"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

type serveCmd struct {
	listen string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "start the web dashboard" }
func (*serveCmd) Usage() string {
	return `pdash serve [-listen <address>]

  Starts the web dashboard. Prices are loaded once, and shared by every page.
  See 'pdash topic serve'.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.listen, "listen", "", "Address to listen on. Defaults to the configuration, or "+defaultListen+".")
}

func (c *serveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := currentConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.listen != "" {
		cfg.Listen = c.listen
	}
	loader, err := newLoader(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	srv := &http.Server{
		Addr:         cfg.Listen,
		Handler:      newServer(cfg, loader).routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		log.Println("server shutting down")
		shutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdown); err != nil {
			log.Printf("server forced to shutdown: %v", err)
		}
	}()

	log.Printf("serving dashboard on http://%s/", cfg.Listen)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

//go:embed web/*.html
var webFS embed.FS

var page = template.Must(template.New("dashboard.html").Funcs(template.FuncMap{
	"selected": func(list []string, s string) bool { return slices.Contains(list, s) },
	"trend":    func(t pricedash.Trend) string { return strings.ToLower(t.String()) },
}).ParseFS(webFS, "web/dashboard.html"))

// server is the web dashboard. Every request runs its own Dashboard over a
// shared Loader.
type server struct {
	cfg    *Config
	loader *pricedash.Loader
	md     goldmark.Markdown
}

func newServer(cfg *Config, loader *pricedash.Loader) *server {
	return &server{
		cfg:    cfg,
		loader: loader,
		md:     goldmark.New(goldmark.WithExtensions(extension.Table)),
	}
}

func (s *server) routes() *mux.Router {
	router := mux.NewRouter()
	router.Use(recovery)
	router.Use(logging)

	router.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	router.HandleFunc("/chart.{format:png|svg}", s.handleChart).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()
	api.Use(cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet},
	}).Handler)
	api.HandleFunc("/view", s.handleView).Methods(http.MethodGet)
	return router
}

// view runs the dashboard on the selection of the request query.
// It writes the error response and returns nil on failure.
func (s *server) view(w http.ResponseWriter, r *http.Request) *pricedash.View {
	sel, err := parseQuery(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil
	}
	v, err := newDashboard(s.cfg, s.loader).Apply(r.Context(), sel)
	if err != nil {
		log.Printf("dashboard failed: %v", err)
		http.Error(w, "could not load prices: "+err.Error(), http.StatusBadGateway)
		return nil
	}
	return v
}

// parseQuery reads the selection from the tickers, from and to query parameters.
// Tickers can be repeated or comma separated.
func parseQuery(q url.Values) (pricedash.Selection, error) {
	var tickers []string
	for _, t := range q["tickers"] {
		tickers = append(tickers, splitTickers(t)...)
	}
	r, err := parseRange(q.Get("from"), q.Get("to"))
	if err != nil {
		return pricedash.Selection{}, err
	}
	return pricedash.Selection{Tickers: tickers, Range: r}, nil
}

// query encodes s as query parameters.
func query(s pricedash.Selection) string {
	q := url.Values{"tickers": s.Tickers}
	if !s.Range.IsZero() {
		q.Set("from", s.Range.From.String())
		q.Set("to", s.Range.To.String())
	}
	return q.Encode()
}

func (s *server) handleIndex(w http.ResponseWriter, r *http.Request) {
	v := s.view(w, r)
	if v == nil {
		return
	}
	instruments, err := s.html(renderer.RenderInstruments(v.Report))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	portfolio, err := s.html(renderer.RenderPortfolio(v.Report))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	err = page.Execute(&buf, map[string]any{
		"View":        v,
		"ChartURL":    template.URL("/chart.svg?" + query(v.Selection)),
		"HasPrices":   v.Table.Len() > 0,
		"Instruments": instruments,
		"Portfolio":   portfolio,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

// html converts markdown to HTML.
func (s *server) html(md string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := s.md.Convert([]byte(md), &buf); err != nil {
		return "", fmt.Errorf("could not render markdown: %w", err)
	}
	return template.HTML(buf.String()), nil
}

func (s *server) handleChart(w http.ResponseWriter, r *http.Request) {
	format := renderer.PNG
	if mux.Vars(r)["format"] == "svg" {
		format = renderer.SVG
	}
	v := s.view(w, r)
	if v == nil {
		return
	}
	var buf bytes.Buffer
	if err := renderer.Chart(&buf, v.Table, format); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, renderer.ErrNoData) {
			status = http.StatusNotFound
		}
		http.Error(w, err.Error(), status)
		return
	}
	w.Header().Set("Content-Type", format.ContentType())
	w.Write(buf.Bytes())
}

func (s *server) handleView(w http.ResponseWriter, r *http.Request) {
	v := s.view(w, r)
	if v == nil {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("could not encode view: %v", err)
	}
}

// logging logs every request.
func logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %v", r.Method, r.URL.RequestURI(), time.Since(start))
	})
}

// recovery turns panics into internal server errors.
func recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				log.Printf("panic serving %s: %v", r.URL.Path, err)
				http.Error(w, "Internal server error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
