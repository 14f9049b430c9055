package models

import (
	"sort"
	"strings"
	"time"
)

// ThreatLabel is one annotation produced by signature detection
type ThreatLabel string

// Labels in evaluation order, which is also their join order
const (
	LabelAdminProbe     ThreatLabel = "Admin/Login access attempt"
	LabelPathTraversal  ThreatLabel = "Path traversal attempt"
	LabelQueryInjection ThreatLabel = "Potential injection attempt"
	LabelScanner        ThreatLabel = "Security scanner detected"
	LabelSQLInjection   ThreatLabel = "SQL injection attempt"
)

// NoteSeparator joins labels in the notes column
const NoteSeparator = "; "

// JoinLabels renders labels for storage, nil when there are none
func JoinLabels(labels []ThreatLabel) *string {
	if len(labels) == 0 {
		return nil
	}
	parts := make([]string, len(labels))
	for i, l := range labels {
		parts[i] = string(l)
	}
	joined := strings.Join(parts, NoteSeparator)
	return &joined
}

// SplitNotes is the inverse of JoinLabels
func SplitNotes(notes string) []string {
	var out []string
	for _, part := range strings.Split(notes, NoteSeparator) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Stats summarizes the whole log
type Stats struct {
	Total       int `json:"total"`
	UniqueIPs   int `json:"uniqueIPs"`
	Last24Hours int `json:"last24Hours"`
}

// IPRollup aggregates one client address over the rollup window
type IPRollup struct {
	Address       string    `json:"address"`
	Count         int       `json:"count"`
	DistinctPaths []string  `json:"distinct_paths"`
	DistinctNotes []string  `json:"distinct_notes"`
	LastSeen      time.Time `json:"last_seen"`
}

// SortedKeys returns the keys of set in ascending order
func SortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
