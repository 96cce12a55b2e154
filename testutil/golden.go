// Package testutil provides small diagnostic helpers shared by this
// module's test suites.
package testutil

import (
	"encoding/json"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// DiffJSON renders a unified diff between two values' indented JSON
// encodings, for use in failure messages on structural-equality checks
// (e.g. the Simplifier's idempotence property) where the default
// testify diff is harder to read than a line-oriented diff.
func DiffJSON(expected, actual interface{}) string {
	expJSON, _ := json.MarshalIndent(expected, "", "  ")
	actJSON, _ := json.MarshalIndent(actual, "", "  ")

	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(expJSON)),
		B:        difflib.SplitLines(string(actJSON)),
		FromFile: "before",
		ToFile:   "after",
		Context:  2,
	}
	text, _ := difflib.GetUnifiedDiffString(diff)
	if strings.TrimSpace(text) == "" {
		return "(no diff)"
	}
	return text
}
