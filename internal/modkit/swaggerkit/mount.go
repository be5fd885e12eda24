package swaggerkit

import (
	"net/http"

	phttp "paydash/internal/platform/net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

// DocsPath is where the UI is served, the document lives at DocsPath/doc.json
const DocsPath = "/api/docs"

// Mount serves the UI and the assembled document when enabled
func Mount(r phttp.Router, enabled bool) {
	if !enabled {
		return
	}
	doc := DocsPath + "/doc.json"
	r.Get(DocsPath, func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, DocsPath+"/", http.StatusPermanentRedirect)
	})
	r.Get(doc, serveDocJSON())
	r.Handle(DocsPath+"/*", httpSwagger.Handler(httpSwagger.URL(doc)))
}
