// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package browse

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/apex/log"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/staranto/mealctl/internal/mealdb"
)

// Debounce is how long interactive surfaces wait for input to settle before
// running a search.
const Debounce = 300 * time.Millisecond

// SortField is a sortable result column.
type SortField string

const (
	SortByName     SortField = "name"
	SortByCategory SortField = "category"
	SortByArea     SortField = "area"
)

// SortFields lists the accepted fields in display order.
var SortFields = []SortField{SortByName, SortByCategory, SortByArea}

// ParseSortField accepts a field name in any case.
func ParseSortField(s string) (SortField, error) {
	f := SortField(strings.ToLower(strings.TrimSpace(s)))
	for _, ok := range SortFields {
		if f == ok {
			return f, nil
		}
	}
	return "", fmt.Errorf("invalid sort field %q (want name, category or area)", s)
}

// SortOrder is ascending or descending.
type SortOrder string

const (
	Ascending  SortOrder = "asc"
	Descending SortOrder = "desc"
)

// ParseSortOrder accepts asc/desc, defaulting to ascending for "".
func ParseSortOrder(s string) (SortOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "asc":
		return Ascending, nil
	case "desc":
		return Descending, nil
	}
	return "", fmt.Errorf("invalid sort order %q (want asc or desc)", s)
}

// Ticket identifies one issued search. Only the newest ticket may complete.
type Ticket struct {
	Seq   uint64
	Query string
}

// Search is the name search workflow. It is safe for concurrent use so that
// fetches may complete on other goroutines.
type Search struct {
	svc Service

	mu       sync.Mutex
	query    string
	results  []mealdb.Meal
	err      error
	field    SortField
	order    SortOrder
	issued   uint64
	resolved uint64
}

func NewSearch(svc Service) *Search {
	return &Search{
		svc:     svc,
		results: []mealdb.Meal{},
		field:   SortByName,
		order:   Ascending,
	}
}

// Run searches for query and records the outcome. A blank query clears the
// results without calling the service.
func (s *Search) Run(ctx context.Context, query string) ([]mealdb.Meal, error) {
	t := s.Begin(query)
	meals, err := s.Fetch(ctx, t.Query)
	s.Complete(t, meals, err)
	return meals, err
}

// Begin issues a ticket for query and makes it the current query.
func (s *Search) Begin(query string) Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issued++
	s.query = query
	return Ticket{Seq: s.issued, Query: query}
}

// Fetch performs the lookup for query without touching any state.
func (s *Search) Fetch(ctx context.Context, query string) ([]mealdb.Meal, error) {
	if strings.TrimSpace(query) == "" {
		return []mealdb.Meal{}, nil
	}
	meals, err := s.svc.SearchByName(ctx, query)
	if err != nil {
		return []mealdb.Meal{}, wrap(ErrSearchFailed, err)
	}
	return meals, nil
}

// Complete records the outcome of t. Completions for anything but the newest
// ticket are dropped and Complete returns false.
func (s *Search) Complete(t Ticket, meals []mealdb.Meal, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t.Seq != s.issued {
		log.WithFields(log.Fields{"ticket": t.Seq, "newest": s.issued, "query": t.Query}).
			Debug("dropping superseded search")
		return false
	}
	if meals == nil || err != nil {
		meals = []mealdb.Meal{}
	}
	s.results = meals
	s.err = err
	s.resolved = t.Seq
	return true
}

// Query returns the current query text.
func (s *Search) Query() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

// Pending reports whether the newest ticket has yet to complete.
func (s *Search) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resolved != s.issued
}

// Err is the failure from the last completed search, if any.
func (s *Search) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Results returns the last completed results in service order.
func (s *Search) Results() []mealdb.Meal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]mealdb.Meal(nil), s.results...)
}

// Message is the empty state text: "no meals found for <query>" when a
// settled, successful, non-blank search returned nothing.
func (s *Search) Message() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.resolved != s.issued || s.err != nil || len(s.results) > 0 {
		return ""
	}
	if strings.TrimSpace(s.query) == "" {
		return ""
	}
	return fmt.Sprintf("no meals found for %q", s.query)
}

// ToggleSort selects field. Selecting the current field flips the order, a
// new field starts ascending.
func (s *Search) ToggleSort(field SortField) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if field == s.field {
		if s.order == Ascending {
			s.order = Descending
		} else {
			s.order = Ascending
		}
		return
	}
	s.field = field
	s.order = Ascending
}

// SetSort sets field and order directly.
func (s *Search) SetSort(field SortField, order SortOrder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.field = field
	s.order = order
}

// Sort returns the active field and order.
func (s *Search) Sort() (SortField, SortOrder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.field, s.order
}

// Sorted returns the current results ordered by the active field and order.
func (s *Search) Sorted() []mealdb.Meal {
	s.mu.Lock()
	field, order := s.field, s.order
	results := s.results
	s.mu.Unlock()
	return SortMeals(results, field, order)
}

// SortMeals returns a stably sorted copy of meals using English collation.
// Missing values sort as "".
func SortMeals(meals []mealdb.Meal, field SortField, order SortOrder) []mealdb.Meal {
	out := append([]mealdb.Meal{}, meals...)
	col := collate.New(language.English)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].SortKey(string(field)), out[j].SortKey(string(field))
		if order == Descending {
			return col.CompareString(b, a) < 0
		}
		return col.CompareString(a, b) < 0
	})
	return out
}
