package main

import (
	"github.com/pmezard/go-difflib/difflib"
)

// unifiedDiff returns the changes formatting would make to text, or "" when
// there are none.
func unifiedDiff(name, before, after string) (string, error) {
	if before == after {
		return "", nil
	}
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: name,
		ToFile:   name + " (formatted)",
		Context:  3,
	})
}
