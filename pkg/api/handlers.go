package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/familytower/pkg/errors"
	"github.com/matzehuels/familytower/pkg/family"
	"github.com/matzehuels/familytower/pkg/layout"
	"github.com/matzehuels/familytower/pkg/render"
	"github.com/matzehuels/familytower/pkg/render/nodelink"
)

// AddRequest is the body of POST /api/members. TargetID is empty for the
// root member.
type AddRequest struct {
	Relation string       `json:"relation"`
	TargetID string       `json:"targetId"`
	Member   family.Draft `json:"member"`
}

// MemberResponse is returned by GET /api/members/{id}.
type MemberResponse struct {
	Member           family.Member     `json:"member"`
	Children         []family.Member   `json:"children"`
	AllowedRelations []family.Relation `json:"allowedRelations"`
	CanAddParent     bool              `json:"canAddParent"`
	Age              *int              `json:"age,omitempty"`
}

// SearchMatch is one search hit with the point a view should scroll to.
type SearchMatch struct {
	Member family.Member `json:"member"`
	Focus  *layout.Point `json:"focus,omitempty"`
}

// SearchResponse is returned by GET /api/search.
type SearchResponse struct {
	Query   string        `json:"query"`
	Matches []SearchMatch `json:"matches"`
}

// LayoutResponse is returned by the layout routes.
type LayoutResponse struct {
	Nodes []layout.Positioned `json:"nodes"`
	Min   layout.Point        `json:"min"`
	Max   layout.Point        `json:"max"`
}

func (s *Server) listMembers(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.runner.Tree.Snapshot())
}

func (s *Server) getMember(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	t := s.runner.Tree
	m, err := t.Member(id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	children, _ := t.Children(id)
	allowed, _ := t.AllowedRelations(id)
	canParent, _ := t.CanAddParent(id)

	resp := MemberResponse{
		Member:           m,
		Children:         children,
		AllowedRelations: allowed,
		CanAddParent:     canParent,
	}
	if age, ok := m.Age(s.runner.CurrentYear()); ok {
		resp.Age = &age
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) addMember(w http.ResponseWriter, r *http.Request) {
	var req AddRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	rel, err := family.ParseRelation(req.Relation)
	if err != nil {
		writeError(w, r, err)
		return
	}
	res, err := s.runner.Add(r.Context(), req.Member, rel, req.TargetID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

func (s *Server) editMember(w http.ResponseWriter, r *http.Request) {
	var p family.Patch
	if err := decode(w, r, &p); err != nil {
		writeError(w, r, err)
		return
	}
	res, err := s.runner.Edit(r.Context(), chi.URLParam(r, "id"), p)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) describeEdge(w http.ResponseWriter, r *http.Request) {
	rel, err := s.runner.Tree.Describe(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rel)
}

func (s *Server) getGraph(w http.ResponseWriter, r *http.Request) {
	g, _ := s.runner.Diagram(r.Context(), r.URL.Query().Get("highlight"))
	writeJSON(w, http.StatusOK, g)
}

func (s *Server) getLayout(w http.ResponseWriter, r *http.Request) {
	_, nodes := s.runner.Diagram(r.Context(), r.URL.Query().Get("highlight"))
	writeJSON(w, http.StatusOK, s.layoutResponse(nodes))
}

func (s *Server) resetLayout(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.layoutResponse(s.runner.Reset(r.Context())))
}

func (s *Server) search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	resp := SearchResponse{Query: q, Matches: []SearchMatch{}}
	for _, m := range s.runner.Tree.Search(q) {
		match := SearchMatch{Member: m}
		if p, err := s.runner.Focus(m.ID); err == nil {
			match.Focus = &p
		}
		resp.Matches = append(resp.Matches, match)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) render(w http.ResponseWriter, r *http.Request) {
	f, err := render.ParseFormat(chi.URLParam(r, "format"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	var opts nodelink.Options
	if v := r.URL.Query().Get("detailed"); v != "" {
		detailed, err := strconv.ParseBool(v)
		if err != nil {
			writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "detailed must be a boolean, got %q", v))
			return
		}
		opts.Detailed = detailed
	}

	out, hit, err := s.runner.Render(r.Context(), r.URL.Query().Get("highlight"), f, opts)
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", f.ContentType())
	if hit {
		w.Header().Set("X-Cache", "hit")
	} else {
		w.Header().Set("X-Cache", "miss")
	}
	_, _ = w.Write(out)
}

func (s *Server) layoutResponse(nodes []layout.Positioned) LayoutResponse {
	resp := LayoutResponse{Nodes: nodes}
	if len(nodes) > 0 {
		resp.Min, resp.Max = s.runner.Tree.Engine().Bounds(nodes)
	}
	return resp
}

func decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.New(errors.ErrCodeInvalidInput, "invalid request body: %v", err)
	}
	return nil
}
