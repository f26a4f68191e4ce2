package rpmspec

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Keyword that introduces a build dependency declaration in a spec file.
const buildRequiresKeyword = "buildrequires"

// Extracts the declared build-time dependencies from an RPM spec file.
//
// Package names are returned in file order. Duplicates are not removed and
// names are not validated; malformed tokens pass through verbatim. The
// returned list is empty when the spec declares no build requirements.
func BuildRequirements(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read spec file: %w", err)
	}
	defer f.Close()

	return scanBuildRequirements(f)
}

// Scans spec file content line by line for BuildRequires declarations.
//
// Each line is trimmed and lower-cased before matching, so the keyword is
// case-insensitive and extracted names come out lower-cased. Lines are read
// byte-oriented; there is no upper bound on line length. A keyword line
// without a colon carries no value and is ignored.
func scanBuildRequirements(r io.Reader) ([]string, error) {
	var reqs []string

	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')

		trimmed := strings.ToLower(strings.TrimSpace(line))
		if strings.HasPrefix(trimmed, buildRequiresKeyword) {
			if _, value, ok := strings.Cut(trimmed, ":"); ok {
				reqs = append(reqs, splitRequirements(value)...)
			}
		}

		if err == io.EOF {
			return reqs, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read spec file: %w", err)
		}
	}
}

// Splits a raw BuildRequires value into package names.
//
// The value is comma-separated; each token is trimmed and truncated at the
// first space, dropping version comparators ("foo >= 1.2" becomes "foo").
func splitRequirements(raw string) []string {
	tokens := strings.Split(raw, ",")
	names := make([]string, 0, len(tokens))
	for _, token := range tokens {
		token = strings.TrimSpace(token)
		name, _, _ := strings.Cut(token, " ")
		if name != "" {
			names = append(names, name)
		}
	}
	return names
}
