// Package fakeapi serves a deterministic in-process copy of the Pokémon REST API for tests.
package fakeapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"
)

var names = []string{
	"bulbasaur", "ivysaur", "venusaur",
	"charmander", "charmeleon", "charizard",
	"squirtle", "wartortle", "blastoise",
	"caterpie", "metapod", "butterfree",
	"weedle", "kakuna", "beedrill",
	"pidgey", "pidgeotto", "pidgeot",
	"rattata", "raticate", "spearow",
	"fearow", "ekans", "arbok",
	"pikachu", "raichu", "sandshrew",
	"sandslash", "nidoran-f", "nidorina",
	"nidoqueen", "nidoran-m", "nidorino",
	"nidoking", "clefairy", "clefable",
}

// French names served by the species endpoint for the first three ids.
var french = map[int]string{
	1: "Bulbizarre",
	2: "Herbizarre",
	3: "Florizarre",
}

// Name returns the name served for id.
func Name(id int) string {
	if id >= 1 && id <= len(names) {
		return names[id-1]
	}
	return fmt.Sprintf("pokemon-%d", id)
}

// Server is an httptest server with per-path hit counters and failure switches.
type Server struct {
	*httptest.Server

	total int

	mu        sync.Mutex
	hits      map[string]int
	failing   map[string]int
	malformed map[string]bool
	delays    map[string]time.Duration
}

// New starts a server exposing total Pokémon.
func New(total int) *Server {
	s := &Server{
		total:     total,
		hits:      make(map[string]int),
		failing:   make(map[string]int),
		malformed: make(map[string]bool),
		delays:    make(map[string]time.Duration),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /pokemon", s.list)
	mux.HandleFunc("GET /pokemon/{id}/", s.detail)
	mux.HandleFunc("GET /pokemon-species/{id}/", s.species)
	s.Server = httptest.NewServer(s.intercept(mux))
	return s
}

// DetailPath returns the request path of the detail record for id.
func DetailPath(id int) string {
	return fmt.Sprintf("/pokemon/%d/", id)
}

// SpeciesPath returns the request path of the species record for id.
func SpeciesPath(id int) string {
	return fmt.Sprintf("/pokemon-species/%d/", id)
}

// Hits returns how many requests reached path.
func (s *Server) Hits(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[path]
}

// ListHits returns how many list pages were requested.
func (s *Server) ListHits() int {
	return s.Hits("/pokemon")
}

// Fail makes path answer with status.
func (s *Server) Fail(path string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failing[path] = status
}

// Malform makes path answer with a body that is not JSON.
func (s *Server) Malform(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.malformed[path] = true
}

// Delay holds responses for path for d.
func (s *Server) Delay(path string, d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delays[path] = d
}

// Heal removes every failure, malformation and delay.
func (s *Server) Heal() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.failing)
	clear(s.malformed)
	clear(s.delays)
}

func (s *Server) intercept(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path

		s.mu.Lock()
		s.hits[path]++
		status, failing := s.failing[path]
		malformed := s.malformed[path]
		delay := s.delays[path]
		s.mu.Unlock()

		if delay > 0 {
			select {
			case <-time.After(delay):
			case <-r.Context().Done():
				return
			}
		}

		switch {
		case failing:
			http.Error(w, http.StatusText(status), status)
		case malformed:
			_, _ = w.Write([]byte("{not json"))
		default:
			next.ServeHTTP(w, r)
		}
	})
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	if limit <= 0 {
		limit = 20
	}

	var results []map[string]string
	for id := offset + 1; id <= min(offset+limit, s.total); id++ {
		results = append(results, map[string]string{
			"name": Name(id),
			"url":  s.URL + DetailPath(id),
		})
	}

	var next, previous any
	if offset+limit < s.total {
		next = fmt.Sprintf("%s/pokemon?limit=%d&offset=%d", s.URL, limit, offset+limit)
	}
	if offset > 0 {
		previous = fmt.Sprintf("%s/pokemon?limit=%d&offset=%d", s.URL, limit, max(0, offset-limit))
	}

	writeJSON(w, map[string]any{
		"count":    s.total,
		"next":     next,
		"previous": previous,
		"results":  results,
	})
}

func (s *Server) detail(w http.ResponseWriter, r *http.Request) {
	id, ok := s.id(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	writeJSON(w, map[string]any{
		"id":     id,
		"name":   Name(id),
		"height": 7 + id,
		"weight": 69 + id*10,
		"types":  typesOf(id),
		"abilities": []map[string]any{
			{"ability": ref("overgrow", ""), "is_hidden": false, "slot": 1},
			{"ability": ref("chlorophyll", ""), "is_hidden": true, "slot": 3},
		},
		"stats": []map[string]any{
			{"base_stat": 45, "effort": 0, "stat": ref("hp", "")},
			{"base_stat": 49, "effort": 0, "stat": ref("attack", "")},
			{"base_stat": 49, "effort": 0, "stat": ref("defense", "")},
			{"base_stat": 65 + id*15, "effort": 1, "stat": ref("special-attack", "")},
			{"base_stat": 65, "effort": 0, "stat": ref("special-defense", "")},
			{"base_stat": 45, "effort": 0, "stat": ref("speed", "")},
		},
		"sprites": map[string]any{"front_default": fmt.Sprintf("%s/sprites/%d.png", s.URL, id)},
		"species": ref(Name(id), s.URL+SpeciesPath(id)),
	})
}

func (s *Server) species(w http.ResponseWriter, r *http.Request) {
	id, ok := s.id(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	name := Name(id)
	localized := []map[string]any{
		{"name": strings.ToUpper(name[:1]) + name[1:], "language": ref("en", "")},
	}
	if fr, ok := french[id]; ok {
		localized = append(localized, map[string]any{"name": fr, "language": ref("fr", "")})
	}

	writeJSON(w, map[string]any{
		"id":    id,
		"name":  name,
		"names": localized,
	})
}

func (s *Server) id(r *http.Request) (int, bool) {
	value := r.PathValue("id")
	id, err := strconv.Atoi(value)
	if err != nil {
		id = slices.Index(names, value) + 1
	}
	if id < 1 || id > s.total {
		return 0, false
	}
	return id, true
}

func typesOf(id int) []map[string]any {
	slot := func(n int, name string) map[string]any {
		return map[string]any{"slot": n, "type": ref(name, "")}
	}
	switch {
	case id <= 3:
		return []map[string]any{slot(1, "grass"), slot(2, "poison")}
	case id <= 5:
		return []map[string]any{slot(1, "fire")}
	case id == 6:
		return []map[string]any{slot(1, "fire"), slot(2, "flying")}
	case id <= 9:
		return []map[string]any{slot(1, "water")}
	default:
		return []map[string]any{slot(1, "normal")}
	}
}

func ref(name, url string) map[string]string {
	return map[string]string{"name": name, "url": url}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
