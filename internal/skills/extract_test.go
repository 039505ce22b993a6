package skills

import (
	"reflect"
	"testing"
)

func TestExtract_SingleWordSkillsMatchWholeTokens(t *testing.T) {
	e := NewExtractor()

	got := e.Extract("Senior Backend Engineer working with Python and Django")
	want := []string{"django", "python"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestExtract_MultiWordAndSpecialCharSkills(t *testing.T) {
	e := NewExtractor()

	got := e.Extract("Experience with machine learning, CI/CD pipelines and C++")
	for _, want := range []string{"machine learning", "ci/cd", "c++"} {
		if !contains(got, want) {
			t.Fatalf("expected %q in %v", want, got)
		}
	}
}

func TestExtract_NoSubstringFalsePositives(t *testing.T) {
	e := NewExtractor()

	// "java" must not fire inside "javascript".
	got := e.Extract("We use JavaScript everywhere")
	if contains(got, "java") {
		t.Fatalf("java matched inside javascript: %v", got)
	}
	if !contains(got, "javascript") {
		t.Fatalf("javascript missing: %v", got)
	}
}

func TestExtract_EmptyAndNoMatches(t *testing.T) {
	e := NewExtractor()

	if got := e.Extract(""); len(got) != 0 {
		t.Fatalf("empty input: %v", got)
	}
	if got := e.Extract("Friendly team, great snacks"); len(got) != 0 {
		t.Fatalf("no skills expected: %v", got)
	}
}

func TestExtract_CustomDictionary(t *testing.T) {
	e := NewExtractor("cobol", "fortran")

	got := e.Extract("Maintaining COBOL and Fortran systems")
	want := []string{"cobol", "fortran"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func contains(xs []string, s string) bool {
	for _, x := range xs {
		if x == s {
			return true
		}
	}
	return false
}
