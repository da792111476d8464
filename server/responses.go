package server

import (
	"encoding/json"
	"net/http"
	"strconv"
)

// Content types of mock responses.
const (
	ContentTypeJSON = "application/json"
	ContentTypeHTML = "text/html; charset=utf-8"
	ContentTypeXML  = "application/xml; charset=utf-8"
	ContentTypeText = "text/plain"
)

// Mock response bodies.
const (
	BodyHealthOK   = `{"status":"ok"}`
	BodyHealthFail = `{"status":"fail"}`

	BodyHTMLOK   = "<html><head><title>Example</title></head><body>OK</body></html>"
	BodyHTMLFail = "<html><head><title>Error</title></head><body>FAIL</body></html>"

	BodySitemapOK   = `<?xml version="1.0" encoding="UTF-8"?><urlset><url><loc>https://example.com/</loc></url></urlset>`
	BodySitemapFail = `<?xml version="1.0" encoding="UTF-8"?><error>unavailable</error>`

	BodyMissingHealthy = "missing healthy query param"
)

// page is a pair of bodies selected by a health flag.
type page struct {
	contentType string
	ok          string
	fail        string
}

var (
	healthPage  = page{contentType: ContentTypeJSON, ok: BodyHealthOK, fail: BodyHealthFail}
	htmlPage    = page{contentType: ContentTypeHTML, ok: BodyHTMLOK, fail: BodyHTMLFail}
	sitemapPage = page{contentType: ContentTypeXML, ok: BodySitemapOK, fail: BodySitemapFail}
)

func (p page) write(w http.ResponseWriter, healthy bool) {
	if healthy {
		writeBody(w, http.StatusOK, p.contentType, p.ok)
		return
	}
	writeBody(w, http.StatusInternalServerError, p.contentType, p.fail)
}

func writeBody(w http.ResponseWriter, status int, contentType, body string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

// toggleBody renders the toggle confirmation. The component is JSON-escaped.
func toggleBody(component string, healthy bool) string {
	name, err := json.Marshal(component)
	if err != nil {
		name = []byte(`""`)
	}
	return `{"component":` + string(name) + `,"healthy": ` + strconv.FormatBool(healthy) + `}`
}

// singleToggleBody renders the toggle confirmation of the single profile.
func singleToggleBody(healthy bool) string {
	return `{"healthy": ` + strconv.FormatBool(healthy) + `}`
}

func notFound(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Length", "0")
	w.WriteHeader(http.StatusNotFound)
}
