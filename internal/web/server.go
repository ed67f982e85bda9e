// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package web

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/apex/log"

	"github.com/staranto/mealctl/internal/browse"
	"github.com/staranto/mealctl/internal/mealdb"
)

// DefaultPrefix is the route basename.
const DefaultPrefix = "/mp2"

//go:embed templates/*.html
var templateFS embed.FS

// Server is the HTTP surface over the browse workflows.
type Server struct {
	svc    browse.Service
	prefix string
	mux    *http.ServeMux
	pages  map[string]*template.Template
}

// NewServer returns a Server with routes mounted under prefix. An empty
// prefix mounts at the root.
func NewServer(svc browse.Service, prefix string) (*Server, error) {
	s := &Server{
		svc:    svc,
		prefix: strings.TrimRight(prefix, "/"),
		mux:    http.NewServeMux(),
		pages:  make(map[string]*template.Template),
	}

	for _, page := range []string{"search", "gallery", "meal"} {
		t, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+page+".html")
		if err != nil {
			return nil, err
		}
		s.pages[page] = t
	}

	p := s.prefix
	s.mux.HandleFunc("GET "+p+"/{$}", s.handleSearch)
	s.mux.HandleFunc("GET "+p+"/gallery", s.handleGallery)
	s.mux.HandleFunc("GET "+p+"/meal/{id}", s.handleMeal)
	if p != "" {
		s.mux.Handle("GET "+p, http.RedirectHandler(p+"/", http.StatusMovedPermanently))
	}
	return s, nil
}

// Prefix is the route basename without a trailing slash.
func (s *Server) Prefix() string {
	return s.prefix
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	s.mux.ServeHTTP(rec, r)
	log.WithFields(log.Fields{
		"method":   r.Method,
		"path":     r.URL.Path,
		"status":   rec.status,
		"duration": time.Since(start),
	}).Debug("request")
}

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", addr).Infof("serving %s/", s.prefix)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutCtx)
	case err := <-errCh:
		return err
	}
}

type page struct {
	Title  string
	Prefix string
	Error  string
}

type column struct {
	Title  string
	Href   string
	Active bool
	Arrow  string
}

type searchPage struct {
	page
	Query   string
	Sort    browse.SortField
	Order   browse.SortOrder
	Message string
	Columns []column
	Meals   []mealdb.Meal
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	field := browse.SortByName
	if v := q.Get("sort"); v != "" {
		f, err := browse.ParseSortField(v)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		field = f
	}
	order, err := browse.ParseSortOrder(q.Get("order"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	search := browse.NewSearch(s.svc)
	search.SetSort(field, order)
	data := searchPage{
		page:  page{Title: "Search", Prefix: s.prefix},
		Query: q.Get("q"),
		Sort:  field,
		Order: order,
	}

	status := http.StatusOK
	if _, err := search.Run(r.Context(), data.Query); err != nil {
		log.WithError(err).WithField("query", data.Query).Warn("search failed")
		data.Error = err.Error()
		status = http.StatusBadGateway
	}
	data.Message = search.Message()
	data.Meals = search.Sorted()
	data.Columns = s.columns(data.Query, field, order)

	s.render(w, "search", status, data)
}

// columns builds the sortable headers. Following the active column's link
// flips its order, any other starts ascending.
func (s *Server) columns(query string, field browse.SortField, order browse.SortOrder) []column {
	titles := map[browse.SortField]string{
		browse.SortByName:     "Name",
		browse.SortByCategory: "Category",
		browse.SortByArea:     "Area",
	}

	cols := make([]column, 0, len(browse.SortFields))
	for _, f := range browse.SortFields {
		next := browse.Ascending
		if f == field && order == browse.Ascending {
			next = browse.Descending
		}
		v := url.Values{}
		v.Set("q", query)
		v.Set("sort", string(f))
		v.Set("order", string(next))

		arrow := "▲"
		if order == browse.Descending {
			arrow = "▼"
		}
		cols = append(cols, column{
			Title:  titles[f],
			Href:   s.prefix + "/?" + v.Encode(),
			Active: f == field,
			Arrow:  arrow,
		})
	}
	return cols
}

type option struct {
	Name    string
	Checked bool
}

type galleryPage struct {
	page
	Categories []option
	Areas      []option
	Filtered   bool
	Meals      []mealdb.Meal
}

func (s *Server) handleGallery(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	g := browse.NewGallery(s.svc)
	data := galleryPage{page: page{Title: "Gallery", Prefix: s.prefix}}

	status := http.StatusOK
	if err := s.loadGallery(r.Context(), g, q["c"], q["a"]); err != nil {
		log.WithError(err).Warn("gallery failed")
		data.Error = err.Error()
		status = http.StatusBadGateway
		if errors.Is(err, browse.ErrNoMatch) {
			status = http.StatusBadRequest
		}
	}

	for _, name := range g.CategoryNames() {
		data.Categories = append(data.Categories, option{Name: name, Checked: slices.Contains(g.SelectedCategories(), name)})
	}
	for _, name := range g.Areas() {
		data.Areas = append(data.Areas, option{Name: name, Checked: slices.Contains(g.SelectedAreas(), name)})
	}
	data.Filtered = g.Filtered()
	data.Meals = g.Meals()

	s.render(w, "gallery", status, data)
}

func (s *Server) loadGallery(ctx context.Context, g *browse.Gallery, cats, areas []string) error {
	if len(cats) == 0 && len(areas) == 0 {
		return g.Load(ctx)
	}
	if err := g.LoadVocabulary(ctx); err != nil {
		return err
	}

	resolvedCats, err := browse.ResolveAll(cats, g.CategoryNames())
	if err != nil {
		return err
	}
	resolvedAreas, err := browse.ResolveAll(areas, g.Areas())
	if err != nil {
		return err
	}
	for _, c := range resolvedCats {
		if !slices.Contains(g.SelectedCategories(), c) {
			g.ToggleCategory(c)
		}
	}
	for _, a := range resolvedAreas {
		if !slices.Contains(g.SelectedAreas(), a) {
			g.ToggleArea(a)
		}
	}
	return g.Refresh(ctx)
}

type mealPage struct {
	page
	Meal      *mealdb.Meal
	Navigable bool
	PrevID    string
	NextID    string
	Position  int
	Total     int
}

func (s *Server) handleMeal(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	d := browse.NewDetail(s.svc)
	data := mealPage{page: page{Title: "Recipe", Prefix: s.prefix}}

	if err := d.Load(r.Context(), id); err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, browse.ErrMealNotFound) {
			status = http.StatusNotFound
		}
		log.WithError(err).WithField("id", id).Warn("detail failed")
		data.Error = err.Error()
		s.render(w, "meal", status, data)
		return
	}

	meal := d.Meal()
	data.Title = meal.Name
	data.Meal = meal
	data.Navigable = d.Navigable()
	data.PrevID, _ = d.Prev()
	data.NextID, _ = d.Next()
	idx, total := d.Position()
	data.Position, data.Total = idx+1, total

	s.render(w, "meal", http.StatusOK, data)
}

func (s *Server) render(w http.ResponseWriter, name string, status int, data any) {
	var buf bytes.Buffer
	if err := s.pages[name].ExecuteTemplate(&buf, "layout", data); err != nil {
		log.WithError(err).WithField("page", name).Error("template failed")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
