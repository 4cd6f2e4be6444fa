package analyzer

import (
	"strings"
	"testing"
)

func TestFunctionComplexities(t *testing.T) {
	source := strings.Join([]string{
		"import os",
		"",
		"VALUE = 1 if os.name else 2",
		"",
		"def simple():",
		"    return VALUE",
		"",
		"def branchy(x):",
		"    if x and x > 1:",
		"        return 1",
		"    elif x:",
		"        return 2",
		"",
	}, "\n")

	got := functionComplexities(source)
	// Module-level tokens before the first def are ignored. simple() is 1,
	// branchy() is 1 + if + and + elif = 4.
	want := []int{1, 4}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("complexity[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestFunctionComplexities_SkipsComments(t *testing.T) {
	source := strings.Join([]string{
		"def f():",
		"    # if and or while for except",
		"    return 1",
	}, "\n")

	got := functionComplexities(source)
	if len(got) != 1 || got[0] != 1 {
		t.Errorf("got %v, want [1]", got)
	}
}

func TestFunctionComplexities_KeywordInsideIdentifier(t *testing.T) {
	source := strings.Join([]string{
		"def f():",
		"    modifier = undefined",
		"    return modifier",
	}, "\n")

	// "modifier" and "undefined" contain keyword substrings but are single
	// identifier tokens.
	got := functionComplexities(source)
	if len(got) != 1 || got[0] != 1 {
		t.Errorf("got %v, want [1]", got)
	}
}

func TestScoreComplexity_SimpleFunctions(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "main.py", "def a():\n    return 1\n\ndef b():\n    return 2\n")

	// Average complexity 1, well under the threshold of 5.
	if got := scoreComplexity(dir); got != 100 {
		t.Errorf("score = %d, want 100", got)
	}
}

func TestScoreComplexity_DeeplyBranchedFunction(t *testing.T) {
	lines := []string{"def f(x):"}
	for i := 0; i < 25; i++ {
		lines = append(lines, "    if x:", "        x = x - 1")
	}
	dir := t.TempDir()
	writeFile(t, dir, "main.py", strings.Join(lines, "\n"))

	// Complexity 26 maps past the avg >= 20 floor.
	if got := scoreComplexity(dir); got != 0 {
		t.Errorf("score = %d, want 0", got)
	}
}

func TestScoreComplexity_NoFunctions(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "main.py", "print('hello')\n")

	if got := scoreComplexity(dir); got != neutralComplexity {
		t.Errorf("score = %d, want %d", got, neutralComplexity)
	}
}

func TestScoreComplexity_IgnoresNonPython(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "main.go", "func main() {}\n")

	if got := scoreComplexity(dir); got != neutralComplexity {
		t.Errorf("score = %d, want %d", got, neutralComplexity)
	}
}
