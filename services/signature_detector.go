package services

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/goccy/go-json"

	"github.com/blogem/honeypot-telemetry/models"
)

var (
	probeFragments = []string{"admin", "login"}

	traversalFragments = []string{"..", "//"}

	injectionKeyFragments = []string{"sql", "script", "union"}

	scannerAgents = []string{
		"sqlmap", "nikto", "nmap", "masscan", "zgrab",
		"nuclei", "dirbuster", "gobuster", "wpscan", "acunetix",
		"nessus", "openvas", "w3af", "havij", "zmeu",
	}

	sqlInjectionPatterns = []*regexp.Regexp{
		// quote followed by a comment: ' --, ' #, ' /*
		regexp.MustCompile(`(?i)'\s*(--|#|/\*)`),
		// statement terminator followed by a comment
		regexp.MustCompile(`(?i);\s*(--|#)`),
		// tautologies: OR 1=1, AND '1'='1
		regexp.MustCompile(`(?i)\b(or|and)\s+['"]?\w+['"]?\s*=\s*['"]?\w+`),
		regexp.MustCompile(`(?i)\bunion\b(\s+all)?\s+select\b`),
		regexp.MustCompile(`(?i)\bselect\b.+\bfrom\b`),
		regexp.MustCompile(`(?i)\binsert\s+into\b`),
		regexp.MustCompile(`(?i)\bupdate\b.+\bset\b`),
		regexp.MustCompile(`(?i)\bdelete\s+from\b`),
		regexp.MustCompile(`(?i)\bdrop\s+table\b`),
		regexp.MustCompile(`(?i)\bexec(ute)?(\s+|\s*\()\w`),
	}
)

// SignatureDetector classifies a request against fixed attack heuristics.
// Implementations are stateless and safe for concurrent use.
type SignatureDetector interface {
	Detect(snapshot *models.RequestSnapshot) []models.ThreatLabel
}

type signatureDetector struct{}

// NewSignatureDetector creates the default detector
func NewSignatureDetector() SignatureDetector {
	return signatureDetector{}
}

// Detect returns distinct labels in their fixed order; nil means benign
func (signatureDetector) Detect(snapshot *models.RequestSnapshot) []models.ThreatLabel {
	if snapshot == nil {
		return nil
	}

	var labels []models.ThreatLabel

	if containsAny(snapshot.Path, probeFragments) {
		labels = append(labels, models.LabelAdminProbe)
	}
	if containsAny(snapshot.Path, traversalFragments) {
		labels = append(labels, models.LabelPathTraversal)
	}
	if hasInjectionKey(snapshot) {
		labels = append(labels, models.LabelQueryInjection)
	}
	if containsAny(strings.ToLower(snapshot.Headers.Get("User-Agent")), scannerAgents) {
		labels = append(labels, models.LabelScanner)
	}
	if hasSQLInjectionBody(snapshot) {
		labels = append(labels, models.LabelSQLInjection)
	}

	return labels
}

func hasInjectionKey(snapshot *models.RequestSnapshot) bool {
	for key := range snapshot.Query {
		if containsAny(strings.ToLower(key), injectionKeyFragments) {
			return true
		}
	}
	return false
}

func hasSQLInjectionBody(snapshot *models.RequestSnapshot) bool {
	if !isWriteMethod(snapshot.Method) || !snapshot.HasBody() {
		return false
	}

	text := bodyText(snapshot)
	for _, pattern := range sqlInjectionPatterns {
		if pattern.MatchString(text) {
			return true
		}
	}
	return false
}

// bodyText serializes a parsed body to JSON; unparsed bodies are matched as received
func bodyText(snapshot *models.RequestSnapshot) string {
	if snapshot.Body == nil {
		return snapshot.RawBody
	}
	encoded, err := json.Marshal(snapshot.Body)
	if err != nil {
		return snapshot.RawBody
	}
	return string(encoded)
}

func isWriteMethod(method string) bool {
	switch strings.ToUpper(method) {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return true
	}
	return false
}

func containsAny(s string, fragments []string) bool {
	for _, f := range fragments {
		if strings.Contains(s, f) {
			return true
		}
	}
	return false
}
