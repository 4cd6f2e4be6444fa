package analyzer

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// neutralComplexity is the score used when complexity cannot be measured:
// non-Python repositories, trees without functions, or read failures.
const neutralComplexity = 50

// decisionKeywords are the Python tokens counted as decision points, the
// same set radon's cyclomatic visitor charges for.
var decisionKeywords = map[string]bool{
	"if":     true,
	"elif":   true,
	"for":    true,
	"while":  true,
	"except": true,
	"and":    true,
	"or":     true,
}

// scoreComplexity walks every .py file in the tree, estimates the
// cyclomatic complexity of each function, and maps the average complexity
// onto a score: avg <= 5 scores 100, avg >= 20 scores 0, linear between.
func scoreComplexity(path string) int {
	totalCC := 0
	funcCount := 0

	_ = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !strings.HasSuffix(d.Name(), ".py") {
			return nil
		}
		content, err := os.ReadFile(p)
		if err != nil {
			return nil
		}
		for _, cc := range functionComplexities(string(content)) {
			totalCC += cc
			funcCount++
		}
		return nil
	})

	if funcCount == 0 {
		return neutralComplexity
	}

	avg := float64(totalCC) / float64(funcCount)
	score := 100 - (avg-5)*(100.0/15.0)
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return int(score)
}

// functionComplexities tokenizes Python source and returns one complexity
// value per function definition: 1 plus the number of decision keywords
// seen until the next def. Comment lines are skipped; tokens before the
// first def belong to module scope and are ignored.
func functionComplexities(source string) []int {
	var complexities []int
	current := -1

	for _, line := range strings.Split(source, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") {
			continue
		}
		for _, tok := range tokenizeIdentifiers(trimmed) {
			if tok == "def" {
				if current >= 0 {
					complexities = append(complexities, current)
				}
				current = 1
				continue
			}
			if current >= 0 && decisionKeywords[tok] {
				current++
			}
		}
	}
	if current >= 0 {
		complexities = append(complexities, current)
	}
	return complexities
}

// tokenizeIdentifiers splits a line into identifier-shaped tokens.
func tokenizeIdentifiers(line string) []string {
	return strings.FieldsFunc(line, func(r rune) bool {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			return false
		}
		return true
	})
}
