package labels

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/Vasyka/open-images-downloader/internal/dataset"
)

// ErrLabelNotFound is returned in strict mode when a requested object
// has no exact match in the vocabulary.
var ErrLabelNotFound = errors.New("labels: label not found")

// Set maps lowercased vocabulary names to their label codes.
type Set map[string]string

// Normalize canonicalizes an object name for matching: NFKC form,
// lowercased, inner whitespace collapsed.
func Normalize(name string) string {
	name = strings.Join(strings.Fields(name), " ")
	return strings.ToLower(norm.NFKC.String(name))
}

// Resolve maps the requested object names onto the vocabulary.
//
// In strict mode every requested name must equal a vocabulary name
// (case-insensitive); a miss yields an error wrapping ErrLabelNotFound
// that names the missing object. In permissive mode a vocabulary entry
// is included when any requested name equals one of its
// whitespace-delimited tokens, and unmatched requests are not an
// error.
func Resolve(vocab []dataset.LabelEntry, objects []string, permissive bool) (Set, error) {
	requested := make([]string, 0, len(objects))
	for _, obj := range objects {
		if n := Normalize(obj); n != "" {
			requested = append(requested, n)
		}
	}

	resolved := make(Set)

	if permissive {
		for _, entry := range vocab {
			name := Normalize(entry.Name)
			tokens := strings.Fields(name)
			for _, req := range requested {
				if containsToken(tokens, req) {
					resolved[name] = entry.Code
					break
				}
			}
		}
		return resolved, nil
	}

	byName := make(map[string]string, len(vocab))
	for _, entry := range vocab {
		byName[Normalize(entry.Name)] = entry.Code
	}
	for _, req := range requested {
		code, ok := byName[req]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrLabelNotFound, req)
		}
		resolved[req] = code
	}
	return resolved, nil
}

// Codes returns the deduplicated set of label codes in s.
func (s Set) Codes() map[string]struct{} {
	codes := make(map[string]struct{}, len(s))
	for _, code := range s {
		codes[code] = struct{}{}
	}
	return codes
}

// Names returns the resolved vocabulary names, sorted for stable
// display.
func (s Set) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func containsToken(tokens []string, want string) bool {
	for _, tok := range tokens {
		if tok == want {
			return true
		}
	}
	return false
}
