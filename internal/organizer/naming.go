package organizer

import (
	"fmt"
	"strings"

	"tidydocs/pkg/fileops"
)

// genericStems are base names too vague to say what a document contains.
var genericStems = []string{"doc", "file", "guide"}

// minCompoundLen is the stem length above which a feature document name is
// expected to contain a word separator.
const minCompoundLen = 12

// CheckNaming flags documents with convention problems. This pass is
// independent of the classification pipeline and never relocates anything.
func CheckNaming(docs []fileops.DocInfo) []NamingFinding {
	var findings []NamingFinding

	for _, doc := range docs {
		stem := strings.TrimSuffix(doc.Name, extOf(doc.Name))

		for _, generic := range genericStems {
			if strings.EqualFold(stem, generic) {
				findings = append(findings, NamingFinding{
					Path:  doc.Path,
					Issue: fmt.Sprintf("name %q is too generic to describe its content", doc.Name),
				})
			}
		}

		if inFeaturesDir(doc.Dir) && len(stem) > minCompoundLen && !strings.ContainsAny(stem, "-_") {
			findings = append(findings, NamingFinding{
				Path:  doc.Path,
				Issue: fmt.Sprintf("feature document %q should use word separators (e.g. feature-name.md)", doc.Name),
			})
		}
	}

	return findings
}

func inFeaturesDir(dir string) bool {
	for _, segment := range strings.Split(dir, "/") {
		if segment == "features" || segment == "feature" {
			return true
		}
	}
	return false
}

func extOf(name string) string {
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[i:]
	}
	return ""
}
