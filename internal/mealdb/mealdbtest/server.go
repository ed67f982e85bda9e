// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package mealdbtest serves canned recipe API responses for tests.
package mealdbtest

import (
	"net/http"
	"net/http/httptest"
	"sync"
)

// Server is a fake recipe API. Routes are keyed by path plus raw query, e.g.
// "/search.php?s=chicken". Unknown routes answer {"meals":null}.
type Server struct {
	*httptest.Server

	mu     sync.Mutex
	routes map[string]Response
	hits   map[string]int
}

// Response is a canned reply.
type Response struct {
	Status int
	Body   string
}

func NewServer() *Server {
	s := &Server{
		routes: make(map[string]Response),
		hits:   make(map[string]int),
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	return s
}

// Handle registers a 200 response.
func (s *Server) Handle(route, body string) {
	s.HandleStatus(route, http.StatusOK, body)
}

// HandleStatus registers a response with an explicit status.
func (s *Server) HandleStatus(route string, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.routes[route] = Response{Status: status, Body: body}
}

// Hits returns how many requests route has received.
func (s *Server) Hits(route string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[route]
}

// TotalHits returns the number of requests served.
func (s *Server) TotalHits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, h := range s.hits {
		n += h
	}
	return n
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	route := r.URL.Path
	if r.URL.RawQuery != "" {
		route += "?" + r.URL.RawQuery
	}

	s.mu.Lock()
	s.hits[route]++
	resp, ok := s.routes[route]
	s.mu.Unlock()

	if !ok {
		resp = Response{Status: http.StatusOK, Body: `{"meals":null}`}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.Status)
	_, _ = w.Write([]byte(resp.Body))
}
