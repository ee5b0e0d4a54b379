// Package service serves expression evaluation over HTTP.
package service

import (
	"bytes"
	"encoding/json"
	"errors"
	"log"
	"math"
	"net/http"
	"sort"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/zephyrtronium/formulas"
)

// Server evaluates expressions and keeps the results in memory. It is safe
// for concurrent use.
type Server struct {
	loc formulas.Locale

	mu       sync.RWMutex
	formulas map[string]*record
	seq      int
}

type record struct {
	id  string
	seq int
	f   *formulas.Formula
}

// New creates a server which reads numbers with loc unless a request names
// another locale.
func New(loc formulas.Locale) *Server {
	return &Server{
		loc:      loc,
		formulas: make(map[string]*record),
	}
}

// Routes returns the server's HTTP handler.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Post("/api/v1/evaluate", s.HandleEvaluate)
	r.Get("/api/v1/formulas", s.HandleList)
	r.Get("/api/v1/formulas/{id}", s.HandleGet)
	r.Get("/api/v1/formulas/{id}/tree.xml", s.HandleTree)
	return r
}

// Token is the JSON form of a formulas.Token.
type Token struct {
	Kind  string `json:"kind"`
	Text  string `json:"text"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// Formula is the JSON form of an evaluated expression.
type Formula struct {
	ID         string  `json:"id"`
	Expression string  `json:"expression"`
	Locale     string  `json:"locale"`
	Infix      []Token `json:"infix"`
	Postfix    []Token `json:"postfix"`
	Result     float64 `json:"result"`
}

// Error is the JSON form of an evaluation error.
type Error struct {
	Error  string `json:"error"`
	Kind   string `json:"kind,omitempty"`
	Start  *int   `json:"start,omitempty"`
	Length *int   `json:"length,omitempty"`
}

// HandleEvaluate evaluates the expression in the request body and stores the
// result.
func (s *Server) HandleEvaluate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Expression string `json:"expression"`
		Locale     string `json:"locale"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, Error{Error: "invalid JSON: " + err.Error()})
		return
	}
	loc := s.loc
	if req.Locale != "" {
		l, err := formulas.LocaleNamed(req.Locale)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, Error{Error: "unknown locale " + req.Locale})
			return
		}
		loc = l
	}
	f, err := formulas.Evaluate(req.Expression, formulas.UseLocale(loc))
	if err != nil {
		log.Printf("evaluating %q: %v", req.Expression, err)
		writeJSON(w, http.StatusUnprocessableEntity, errorJSON(err))
		return
	}
	if r := f.Result(); math.IsInf(r, 0) || math.IsNaN(r) {
		// JSON has no representation for the result.
		log.Printf("evaluating %q: result %g is not finite", req.Expression, r)
		writeJSON(w, http.StatusUnprocessableEntity, Error{Error: "result is not a finite number"})
		return
	}
	rec := &record{id: uuid.New().String(), f: f}
	s.mu.Lock()
	s.seq++
	rec.seq = s.seq
	s.formulas[rec.id] = rec
	s.mu.Unlock()
	log.Printf("evaluated %q = %g as %s", req.Expression, f.Result(), rec.id)
	writeJSON(w, http.StatusCreated, rec.json())
}

// HandleList lists all stored formulas, oldest first.
func (s *Server) HandleList(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	recs := make([]*record, 0, len(s.formulas))
	for _, rec := range s.formulas {
		recs = append(recs, rec)
	}
	s.mu.RUnlock()
	sort.Slice(recs, func(i, j int) bool { return recs[i].seq < recs[j].seq })
	resp := struct {
		Formulas []Formula `json:"formulas"`
	}{Formulas: make([]Formula, len(recs))}
	for i, rec := range recs {
		resp.Formulas[i] = rec.json()
	}
	writeJSON(w, http.StatusOK, resp)
}

// HandleGet returns one stored formula.
func (s *Server) HandleGet(w http.ResponseWriter, r *http.Request) {
	rec := s.lookup(w, r)
	if rec == nil {
		return
	}
	writeJSON(w, http.StatusOK, rec.json())
}

// HandleTree returns the evaluation tree of a stored formula as XML.
func (s *Server) HandleTree(w http.ResponseWriter, r *http.Request) {
	rec := s.lookup(w, r)
	if rec == nil {
		return
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	if _, err := rec.f.WriteXML(w); err != nil {
		log.Printf("writing tree of %s: %v", rec.id, err)
	}
}

// lookup finds the formula named in the request's URL. If there is none, it
// writes a 404 response and returns nil.
func (s *Server) lookup(w http.ResponseWriter, r *http.Request) *record {
	id := chi.URLParam(r, "id")
	s.mu.RLock()
	rec := s.formulas[id]
	s.mu.RUnlock()
	if rec == nil {
		writeJSON(w, http.StatusNotFound, Error{Error: "formula not found"})
	}
	return rec
}

func (rec *record) json() Formula {
	f := rec.f
	loc := f.Locale()
	return Formula{
		ID:         rec.id,
		Expression: f.Expression(),
		Locale:     loc.Tag.String(),
		Infix:      tokensJSON(f.Infix(), loc),
		Postfix:    tokensJSON(f.Postfix(), loc),
		Result:     f.Result(),
	}
}

func tokensJSON(toks []formulas.Token, loc formulas.Locale) []Token {
	r := make([]Token, len(toks))
	for i, tok := range toks {
		text := tok.String()
		if tok.Kind() == formulas.Operand {
			text = loc.FormatFloat(tok.Value())
		}
		r[i] = Token{Kind: tok.Kind().String(), Text: text, Start: tok.Start(), End: tok.End()}
	}
	return r
}

func errorJSON(err error) Error {
	r := Error{Error: err.Error()}
	var e *formulas.Error
	if errors.As(err, &e) {
		r.Kind = e.Kind.String()
		if start, n, ok := e.Span(); ok {
			r.Start, r.Length = &start, &n
		}
	}
	return r
}

// writeJSON encodes v before writing anything, so that an encoding failure
// becomes a 500 response instead of a truncated one.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	var b bytes.Buffer
	if err := json.NewEncoder(&b).Encode(v); err != nil {
		log.Printf("encoding response: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(b.Bytes()); err != nil {
		log.Printf("writing response: %v", err)
	}
}
