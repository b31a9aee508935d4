package testutil

import (
	"net/http"
	"net/http/httptest"
	"path"
	"testing"
)

// SitePath is where every page of an election lives on the results site.
const SitePath = "/pls/ps2017nss/"

// Pages maps a page name plus the query parameter that identifies it to the
// html served for it, e.g. "ps361?xokrsek=3". A page with no identifying
// parameter is keyed by its name alone.
type Pages map[string]string

var identifyingParams = []string{"xokrsek", "xobec", "xnumnuts"}

func (p Pages) Lookup(r *http.Request) (string, bool) {
	key := path.Base(r.URL.Path)
	query := r.URL.Query()
	for _, param := range identifyingParams {
		if v := query.Get(param); v != "" {
			key += "?" + param + "=" + v
			break
		}
	}
	body, ok := p[key]
	return body, ok
}

// NewSite serves pages until the test ends and returns the base url of the
// election. Unknown pages are 404.
func NewSite(t testing.TB, pages Pages) string {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := pages.Lookup(r)
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server.URL + SitePath
}
