package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"log"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/Bano733-code/gc-content-analyzer/internal/config"
	"github.com/Bano733-code/gc-content-analyzer/internal/fasta"
	"github.com/Bano733-code/gc-content-analyzer/internal/gc"
	"github.com/Bano733-code/gc-content-analyzer/internal/report"
)

// RecordResult mirrors the batch CLI's per-record output structure.
type RecordResult struct {
	Identifier string           `json:"identifier"`
	Sequence   string           `json:"sequence"`
	Stats      gc.SummaryStats  `json:"stats"`
	Profile    []gc.WindowPoint `json:"profile"`
	WindowSize int              `json:"window_size"`
	StepSize   int              `json:"step_size"`
}

// IndexPage renders the landing form plus the run history.
type IndexPage struct {
	Runs          []AnalysisRun
	DefaultWindow int
	DefaultStep   int
	Error         string
}

// ResultView pairs one record's results with its rendered profile plot.
type ResultView struct {
	Result RecordResult
	SVG    template.HTML
}

// RunPage renders the results of one analysis run.
type RunPage struct {
	Run   *AnalysisRun
	Views []ResultView
}

var templates *template.Template

func loadTemplates(dir string) error {
	t := template.New("")
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasSuffix(path, ".html") {
			if _, err := t.ParseFiles(path); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	templates = t
	return nil
}

// statusResponseWriter captures status and bytes written for logging
type statusResponseWriter struct {
	http.ResponseWriter
	status  int
	written int64
}

func (w *statusResponseWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusResponseWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(b)
	w.written += int64(n)
	return n, err
}

// loggingMiddleware logs each request with method, path, status, size and duration
func loggingMiddleware(logger *log.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		srw := &statusResponseWriter{ResponseWriter: w}
		next.ServeHTTP(srw, r)
		if srw.status == 0 {
			srw.status = http.StatusOK
		}
		duration := time.Since(start)
		logger.Printf("%s - %s %s %d %dB %s %q",
			r.RemoteAddr, r.Method, r.URL.RequestURI(), srw.status, srw.written, duration, r.UserAgent())
	})
}

// clampParam parses a positive integer form value, falling back to def.
// The engine still guards against bad parameters; clamping here keeps
// user mistakes from surfacing as errors.
func clampParam(raw string, def int) int {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || v < 1 {
		return def
	}
	return v
}

// profileSVG renders a sliding-window GC profile as an inline SVG line
// plot (x = window start position, y = GC%). Returns an empty string
// for profiles with no windows.
func profileSVG(profile []gc.WindowPoint, width, height int) template.HTML {
	if len(profile) == 0 {
		return ""
	}
	const pad = 30
	maxPos := profile[len(profile)-1].Position
	xscale := func(pos int) float64 {
		if maxPos == 0 {
			return pad
		}
		return pad + float64(pos)/float64(maxPos)*float64(width-2*pad)
	}
	yscale := func(pct float64) float64 {
		return float64(height-pad) - pct/100.0*float64(height-2*pad)
	}
	var b strings.Builder
	fmt.Fprintf(&b, `<svg viewBox="0 0 %d %d" width="%d" height="%d" xmlns="http://www.w3.org/2000/svg">`, width, height, width, height)
	fmt.Fprintf(&b, `<rect width="%d" height="%d" fill="#ffffff"/>`, width, height)
	// axes
	fmt.Fprintf(&b, `<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="#9ca3af"/>`, pad, height-pad, width-pad, height-pad)
	fmt.Fprintf(&b, `<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="#9ca3af"/>`, pad, pad, pad, height-pad)
	fmt.Fprintf(&b, `<text x="%d" y="%d" font-size="10" fill="#6b7280">0</text>`, pad-10, height-pad+12)
	fmt.Fprintf(&b, `<text x="%d" y="%d" font-size="10" fill="#6b7280">100%%</text>`, 2, pad)
	fmt.Fprintf(&b, `<text x="%d" y="%d" font-size="10" fill="#6b7280">%d</text>`, width-pad-10, height-pad+12, maxPos)
	var points []string
	for _, p := range profile {
		points = append(points, fmt.Sprintf("%.1f,%.1f", xscale(p.Position), yscale(p.GCPercent)))
	}
	fmt.Fprintf(&b, `<polyline fill="none" stroke="#7c3aed" stroke-width="1.5" points="%s"/>`, strings.Join(points, " "))
	b.WriteString(`</svg>`)
	return template.HTML(b.String())
}

// analyze runs the engine over raw FASTA text. One record failing the
// window precondition does not stop the others.
func analyze(parser fasta.Parser, raw string, window, step int) []RecordResult {
	records := parser.Parse(raw)
	results := make([]RecordResult, 0, len(records))
	for _, rec := range records {
		profile, err := gc.WindowedGC(rec, window, step)
		if err != nil {
			profile = nil
		}
		results = append(results, RecordResult{
			Identifier: rec.Identifier,
			Sequence:   rec.Sequence,
			Stats:      gc.Summarize(rec),
			Profile:    profile,
			WindowSize: window,
			StepSize:   step,
		})
	}
	return results
}

func runViews(run *AnalysisRun) []ResultView {
	views := make([]ResultView, 0, len(run.Results))
	for _, r := range run.Results {
		views = append(views, ResultView{Result: r, SVG: profileSVG(r.Profile, 640, 200)})
	}
	return views
}

func indexHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		runs, err := loadRuns(runsPath)
		if err != nil {
			log.Printf("warning: failed to load runs for index: %v", err)
			runs = nil
		}
		page := IndexPage{Runs: runs, DefaultWindow: config.DefaultWindowSize, DefaultStep: config.DefaultStepSize, Error: r.URL.Query().Get("error")}
		if err := templates.ExecuteTemplate(w, "base.html", page); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}
}

func analyzeHandler(parser fasta.Parser) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			http.Error(w, "failed to parse form", http.StatusBadRequest)
			return
		}
		window := clampParam(r.FormValue("window"), config.DefaultWindowSize)
		step := clampParam(r.FormValue("step"), config.DefaultStepSize)

		var raw, source string
		if file, hdr, err := r.FormFile("fasta_file"); err == nil {
			data, rerr := io.ReadAll(file)
			file.Close()
			if rerr != nil {
				http.Error(w, "failed to read uploaded file", http.StatusBadRequest)
				return
			}
			raw = string(data)
			source = "upload:" + hdr.Filename
		}
		if strings.TrimSpace(raw) == "" {
			raw = r.FormValue("fasta_text")
			source = "paste"
		}
		if strings.TrimSpace(raw) == "" {
			http.Redirect(w, r, "/?error="+url.QueryEscape("no sequences provided"), http.StatusSeeOther)
			return
		}

		results := analyze(parser, raw, window, step)
		if len(results) == 0 {
			http.Redirect(w, r, "/?error="+url.QueryEscape("no sequences found in input"), http.StatusSeeOther)
			return
		}

		now := time.Now()
		run := AnalysisRun{
			ID:         newRunID(now),
			Source:     source,
			WindowSize: window,
			StepSize:   step,
			CreatedAt:  now,
			Results:    results,
		}
		if err := appendRun(runsPath, run); err != nil {
			log.Printf("warning: failed to persist run %s: %v", run.ID, err)
		}
		http.Redirect(w, r, "/run/"+run.ID, http.StatusSeeOther)
	}
}

func runHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		parts := strings.Split(r.URL.Path, "/")
		if len(parts) < 3 || parts[2] == "" {
			http.Error(w, "missing run id", http.StatusBadRequest)
			return
		}
		run, err := findRun(runsPath, parts[2])
		if err != nil {
			http.Error(w, "failed to load runs", http.StatusInternalServerError)
			return
		}
		if run == nil {
			http.Error(w, "run not found", http.StatusNotFound)
			return
		}
		page := RunPage{Run: run, Views: runViews(run)}
		if err := templates.ExecuteTemplate(w, "run.html", page); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}
}

// csvHandler serves the summary table of a stored run as a CSV download.
func csvHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		parts := strings.Split(r.URL.Path, "/")
		if len(parts) < 3 || parts[2] == "" {
			http.Error(w, "missing run id", http.StatusBadRequest)
			return
		}
		run, err := findRun(runsPath, parts[2])
		if err != nil {
			http.Error(w, "failed to load runs", http.StatusInternalServerError)
			return
		}
		if run == nil {
			http.Error(w, "run not found", http.StatusNotFound)
			return
		}
		rows := make([]gc.SummaryStats, 0, len(run.Results))
		for _, res := range run.Results {
			rows = append(rows, res.Stats)
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="gc_results.csv"`)
		if err := report.WriteSummaryCSV(w, rows); err != nil {
			log.Printf("warning: failed to write csv for run %s: %v", run.ID, err)
		}
	}
}

// apiRunHandler returns the full run as JSON for SPA-like interactions.
func apiRunHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		parts := strings.Split(r.URL.Path, "/")
		if len(parts) < 4 || parts[3] == "" {
			http.Error(w, "missing run id", http.StatusBadRequest)
			return
		}
		run, err := findRun(runsPath, parts[3])
		if err != nil {
			http.Error(w, "failed to load runs", http.StatusInternalServerError)
			return
		}
		if run == nil {
			http.Error(w, "run not found", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_ = json.NewEncoder(w).Encode(run)
	}
}

func apiRunsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		runs, err := loadRuns(runsPath)
		if err != nil {
			http.Error(w, "failed to load runs", http.StatusInternalServerError)
			return
		}
		// history listing omits per-record payloads
		type runMeta struct {
			ID         string    `json:"id"`
			Source     string    `json:"source"`
			WindowSize int       `json:"window_size"`
			StepSize   int       `json:"step_size"`
			CreatedAt  time.Time `json:"created_at"`
			Records    int       `json:"records"`
		}
		metas := make([]runMeta, 0, len(runs))
		for _, r := range runs {
			metas = append(metas, runMeta{ID: r.ID, Source: r.Source, WindowSize: r.WindowSize, StepSize: r.StepSize, CreatedAt: r.CreatedAt, Records: len(r.Results)})
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_ = json.NewEncoder(w).Encode(metas)
	}
}

// resolveRunsStore picks the run store kind and path from config with
// flags overriding when provided, falling back to the json file store.
func resolveRunsStore(cfg *config.Config, storeFlag, runsFlag string) (store, path string) {
	store = cfg.RunsStore
	if storeFlag != "" {
		store = storeFlag
	}
	if store == "" {
		store = "json"
	}
	path = cfg.RunsPath
	if runsFlag != "" {
		path = runsFlag
	}
	if path == "" {
		path = "runs.json"
	}
	return store, path
}

func main() {
	addr := flag.String("addr", ":8080", "HTTP listen address")
	templatesDir := flag.String("templates", "web/templates", "directory with HTML templates")
	configFlag := flag.String("config", "", "path to config.json (optional)")
	store := flag.String("store", "", "run history store: json or sqlite (overrides config)")
	runsFile := flag.String("runs", "", "path to the run history (overrides config)")
	parserKind := flag.String("parser", "", "fasta parser: auto, biogo or builtin (overrides config)")
	logFile := flag.String("log", "", "path to write access logs (optional). If empty, logs go to stdout only")
	flag.Parse()

	cfg, err := config.LoadConfig(*configFlag)
	if err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	if err := loadTemplates(*templatesDir); err != nil {
		log.Fatalf("failed to load templates: %v", err)
	}

	runsStore, runsPath = resolveRunsStore(cfg, *store, *runsFile)
	if runsStore == "sqlite" {
		db, err := openSQLite(runsPath)
		if err != nil {
			log.Fatalf("failed to open sqlite runs store: %v", err)
		}
		runsDB = db
		defer runsDB.Close()
	}

	parserChoice := cfg.Parser
	if *parserKind != "" {
		parserChoice = *parserKind
	}
	parser, err := fasta.New(parserChoice)
	if err != nil {
		log.Fatalf("invalid parser kind %q: %v", parserChoice, err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", indexHandler())
	mux.HandleFunc("/analyze", analyzeHandler(parser))
	mux.HandleFunc("/run/", runHandler())
	mux.HandleFunc("/csv/", csvHandler())
	mux.HandleFunc("/api/run/", apiRunHandler())
	mux.HandleFunc("/api/runs", apiRunsHandler())

	// configure logger
	var out io.Writer = os.Stdout
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			log.Fatalf("failed to open log file: %v", err)
		}
		out = io.MultiWriter(os.Stdout, f)
	}
	logger := log.New(out, "gcweb: ", log.LstdFlags)

	handler := loggingMiddleware(logger, mux)

	srv := &http.Server{Addr: *addr, Handler: handler, ReadTimeout: 5 * time.Second, WriteTimeout: 10 * time.Second}
	fmt.Printf("serving GC analyzer UI at http://%s/ (store=%s path=%s)\n", *addr, runsStore, runsPath)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}
