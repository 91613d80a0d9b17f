// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sources

import (
	"context"
	"log/slog"
	"strings"

	"github.com/pdiddy/code-rag/internal/applog"
	"github.com/pdiddy/code-rag/pkg/types"
)

// DocSites maps lower-cased library names to their documentation root.
var DocSites = map[string]string{
	"python":     "https://docs.python.org/3/",
	"numpy":      "https://numpy.org/doc/stable/",
	"pandas":     "https://pandas.pydata.org/docs/",
	"tensorflow": "https://www.tensorflow.org/api_docs/python/",
	"pytorch":    "https://pytorch.org/docs/stable/",
	"django":     "https://docs.djangoproject.com/en/stable/",
	"flask":      "https://flask.palletsprojects.com/en/latest/",
	"requests":   "https://requests.readthedocs.io/en/latest/",
	"react":      "https://react.dev/reference/",
	"vue":        "https://vuejs.org/guide/",
	"angular":    "https://angular.io/docs",
	"node":       "https://nodejs.org/api/",
	"express":    "https://expressjs.com/en/4x/api.html",
	"jquery":     "https://api.jquery.com/",
	"java":       "https://docs.oracle.com/en/java/javase/",
	"spring":     "https://docs.spring.io/spring-framework/reference/",
	"go":         "https://golang.org/doc/",
	"rust":       "https://doc.rust-lang.org/std/",
}

// OfficialDocs restricts searches to a library's documentation site when the
// library is known, and otherwise searches the open web.
type OfficialDocs struct {
	Web    Source
	Sites  map[string]string
	Logger *slog.Logger
}

// NewOfficialDocs returns an OfficialDocs over web using DocSites.
func NewOfficialDocs(web Source, logger *slog.Logger) *OfficialDocs {
	return &OfficialDocs{Web: web, Sites: DocSites, Logger: logger}
}

// Name returns the channel identifier.
func (s *OfficialDocs) Name() string { return NameOfficialDocs }

// Query needs either a query or both a library and a function.
func (s *OfficialDocs) Query(ctx context.Context, qc types.QueryContext) ([]types.Candidate, error) {
	if qc.Query == "" && (qc.Library == "" || qc.Function == "") {
		applog.OrDefault(s.Logger).Warn("official docs skipped: no query and no library/function")
		return nil, nil
	}

	site, ok := s.Sites[strings.ToLower(qc.Library)]
	if !ok {
		return s.Web.Query(ctx, qc)
	}

	q := qc.Library + " " + qc.Query
	if qc.Query == "" {
		q = qc.Library + " " + qc.Function + " documentation"
	}
	return s.Web.Query(ctx, qc.WithQuery("site:"+siteFilter(site)+" "+q))
}

// siteFilter drops the scheme and trailing slash from a documentation root so
// it reads as a search engine site: operand.
func siteFilter(root string) string {
	root = strings.TrimPrefix(root, "https://")
	root = strings.TrimPrefix(root, "http://")
	return strings.TrimSuffix(root, "/")
}
