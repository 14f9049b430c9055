package controllers

import (
	"net/http"
	"path"
	"strings"
)

const notFoundPage = `<html>
<head><title>404 Not Found</title></head>
<body>
<center><h1>404 Not Found</h1></center>
<hr><center>nginx</center>
</body>
</html>
`

const welcomePage = `<!DOCTYPE html>
<html>
<head>
<title>Welcome to nginx!</title>
</head>
<body>
<h1>Welcome to nginx!</h1>
<p>If you see this page, the nginx web server is successfully installed and
working. Further configuration is required.</p>
<p><em>Thank you for using nginx.</em></p>
</body>
</html>
`

// DecoyController serves the static decoy site
type DecoyController struct {
	root  http.FileSystem
	files http.Handler
}

// NewDecoyController serves files below dir
func NewDecoyController(dir string) *DecoyController {
	root := http.Dir(dir)
	return &DecoyController{
		root:  root,
		files: http.FileServer(root),
	}
}

// Serve answers with the decoy file, a stock welcome page for an empty root,
// or an nginx-style 404. Directory listings are never exposed.
func (c *DecoyController) Serve(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Server", "nginx")

	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		c.notFound(w)
		return
	}

	name := path.Clean("/" + r.URL.Path)
	if c.exists(name) {
		c.files.ServeHTTP(w, r)
		return
	}

	if name == "/" {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(welcomePage))
		return
	}

	c.notFound(w)
}

func (c *DecoyController) notFound(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	w.Write([]byte(notFoundPage))
}

// exists reports whether name is a file, or a directory with an index.html
func (c *DecoyController) exists(name string) bool {
	f, err := c.root.Open(name)
	if err != nil {
		return false
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return false
	}
	if !info.IsDir() {
		return true
	}

	index, err := c.root.Open(strings.TrimSuffix(name, "/") + "/index.html")
	if err != nil {
		return false
	}
	index.Close()
	return true
}

// Health handles GET /_ops/health
func (c *DecoyController) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}
