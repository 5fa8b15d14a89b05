package api

import (
	"net/http"

	"github.com/matzehuels/familytower/pkg/family"
	famio "github.com/matzehuels/familytower/pkg/io"
)

// ImportResponse is returned by POST /api/import.
type ImportResponse struct {
	Root    family.Member  `json:"root"`
	Members int            `json:"members"`
	Layout  LayoutResponse `json:"layout"`
}

func (s *Server) exportTree(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="family.json"`)
	if err := famio.WriteJSON(s.runner.Tree.Registry(), w); err != nil {
		s.logger.Warn("export failed", "err", err)
	}
}

func (s *Server) importTree(w http.ResponseWriter, r *http.Request) {
	reg, err := famio.ReadJSON(http.MaxBytesReader(w, r.Body, maxImportBytes))
	if err != nil {
		writeError(w, r, err)
		return
	}
	res, err := s.runner.Import(r.Context(), reg)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ImportResponse{
		Root:    res.Member,
		Members: len(res.Graph.Nodes),
		Layout:  s.layoutResponse(res.Positions),
	})
}
