// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package browse

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/pdiddy/partcatalog/pkg/types"
)

// Server renders store tables as HTML.
type Server struct {
	store *Store
	cfg   types.BrowseConfig
	log   *zap.Logger
	mux   *http.ServeMux
}

// NewServer wires the routes:
//
//	GET /                 table index
//	GET /tables/{name...} one table page (?q=&sort=&desc=&page=)
//	GET /metrics          Prometheus metrics
//	GET /healthz          liveness
func NewServer(store *Store, cfg types.BrowseConfig, log *zap.Logger) *Server {
	if cfg.PageSize <= 0 {
		cfg.PageSize = 50
	}
	s := &Server{store: store, cfg: cfg, log: log, mux: http.NewServeMux()}
	s.mux.HandleFunc("GET /{$}", s.handleIndex)
	s.mux.HandleFunc("GET /tables/{name...}", s.handleTable)
	s.mux.Handle("GET /metrics", promhttp.Handler())
	s.mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "ok")
	})
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

type indexView struct {
	Tables []TableInfo
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	tables, err := s.store.Tables(r.Context())
	if err != nil {
		s.serverError(w, err)
		return
	}
	PageViews.WithLabelValues("index").Inc()
	s.render(w, "index", indexView{Tables: tables})
}

type headerCell struct {
	Name   string
	Link   string
	Sorted bool
	Desc   bool
}

type tableView struct {
	Page    Page
	Q       string
	Headers []headerCell
	Prev    string
	Next    string
}

func (s *Server) handleTable(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	opts := parseQuery(r.URL.Query(), s.cfg.PageSize)

	page, err := s.store.Query(r.Context(), name, opts)
	if errors.Is(err, ErrUnknownTable) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		s.serverError(w, err)
		return
	}
	PageViews.WithLabelValues("table").Inc()
	RowsServed.WithLabelValues(name).Add(float64(len(page.Rows)))

	view := tableView{Page: page, Q: opts.Q}
	for _, col := range page.Table.Columns {
		sorted := col == opts.Sort
		next := opts
		next.Sort, next.Desc, next.Page = col, sorted && !opts.Desc, 1
		view.Headers = append(view.Headers, headerCell{
			Name:   col,
			Link:   encodeQuery(next),
			Sorted: sorted,
			Desc:   sorted && opts.Desc,
		})
	}
	if page.Page > 1 {
		prev := opts
		prev.Page = page.Page - 1
		view.Prev = encodeQuery(prev)
	}
	if page.Page < page.Pages {
		next := opts
		next.Page = page.Page + 1
		view.Next = encodeQuery(next)
	}
	s.render(w, "table", view)
}

func parseQuery(v url.Values, pageSize int) QueryOptions {
	page, _ := strconv.Atoi(v.Get("page"))
	desc, _ := strconv.ParseBool(v.Get("desc"))
	return QueryOptions{
		Q:        strings.TrimSpace(v.Get("q")),
		Sort:     v.Get("sort"),
		Desc:     desc,
		Page:     max(1, page),
		PageSize: pageSize,
	}
}

func encodeQuery(o QueryOptions) string {
	v := url.Values{}
	if o.Q != "" {
		v.Set("q", o.Q)
	}
	if o.Sort != "" {
		v.Set("sort", o.Sort)
	}
	if o.Desc {
		v.Set("desc", "true")
	}
	if o.Page > 1 {
		v.Set("page", strconv.Itoa(o.Page))
	}
	if len(v) == 0 {
		return "?"
	}
	return "?" + v.Encode()
}

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pages.ExecuteTemplate(w, name, data); err != nil {
		s.log.Error("rendering page", zap.String("page", name), zap.Error(err))
	}
}

func (s *Server) serverError(w http.ResponseWriter, err error) {
	s.log.Error("request failed", zap.Error(err))
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "https://") || strings.HasPrefix(s, "http://")
}

var pages = template.Must(template.New("pages").Funcs(template.FuncMap{
	"isURL": isURL,
}).Parse(pageText))

const pageText = `
{{define "head"}}<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.}}</title>
<style>
body { font-family: sans-serif; margin: 1.5em; }
table { border-collapse: collapse; font-size: 0.9em; }
th, td { border: 1px solid #ccc; padding: 0.25em 0.5em; text-align: left; }
th a { text-decoration: none; }
.pager { margin: 1em 0; }
</style>
</head>
<body>
{{end}}

{{define "index"}}{{template "head" "Part catalog"}}
<h1>Part catalog</h1>
{{if .Tables}}
<table>
<tr><th>Table</th><th>Rows</th><th>Columns</th></tr>
{{range .Tables}}<tr><td><a href="/tables/{{.Name}}">{{.Name}}</a></td><td>{{.Rows}}</td><td>{{len .Columns}}</td></tr>
{{end}}</table>
{{else}}
<p>No catalog files loaded.</p>
{{end}}
</body>
</html>
{{end}}

{{define "table"}}{{template "head" .Page.Table.Name}}
<p><a href="/">All tables</a></p>
<h1>{{.Page.Table.Name}}</h1>
<form method="get">
<input type="text" name="q" value="{{.Q}}" placeholder="filter">
<button type="submit">Filter</button>
</form>
<p>{{.Page.Matched}} of {{.Page.Table.Rows}} rows</p>
<table>
<tr>{{range .Headers}}<th><a href="{{.Link}}">{{.Name}}</a>{{if .Sorted}}{{if .Desc}} &#9660;{{else}} &#9650;{{end}}{{end}}</th>{{end}}</tr>
{{range .Page.Rows}}<tr>{{range .}}<td>{{if isURL .}}<a href="{{.}}">{{.}}</a>{{else}}{{.}}{{end}}</td>{{end}}</tr>
{{end}}</table>
<div class="pager">
{{if .Prev}}<a href="{{.Prev}}">&laquo; prev</a>{{end}}
page {{.Page.Page}} of {{.Page.Pages}}
{{if .Next}}<a href="{{.Next}}">next &raquo;</a>{{end}}
</div>
</body>
</html>
{{end}}
`

// Serve loads every matching CSV under root, optionally watches for
// changes, and serves until ctx is done.
func Serve(ctx context.Context, root string, cfg types.BrowseConfig, log *zap.Logger) error {
	store, err := NewStore(root)
	if err != nil {
		return err
	}
	defer store.Close()

	n, err := LoadAll(ctx, store, root, cfg.Pattern, log)
	if err != nil {
		return err
	}
	log.Info("catalog loaded", zap.String("root", root), zap.Int("tables", n))

	if cfg.Watch {
		w, err := NewWatcher(store, root, cfg.Pattern, log)
		if err != nil {
			return fmt.Errorf("starting watcher: %w", err)
		}
		defer w.Close()
		go w.Run(ctx)
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           NewServer(store, cfg, log),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		log.Info("serving catalog", zap.String("addr", cfg.Addr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
