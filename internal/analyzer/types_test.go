package analyzer

import (
	"reflect"
	"testing"
)

func TestLanguages_FirstEncounteredOrder(t *testing.T) {
	p := &ProfileData{Repositories: []RepositoryAnalysis{
		{Language: "Go"},
		{Language: "Python"},
		{Language: ""},
		{Language: "Go"},
		{Language: "Rust"},
	}}

	got := p.Languages()
	want := []string{"Go", "Python", "Rust"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Languages() = %v, want %v", got, want)
	}
}

func TestLanguages_Empty(t *testing.T) {
	p := &ProfileData{}
	if got := p.Languages(); len(got) != 0 {
		t.Errorf("expected no languages, got %v", got)
	}
}

func TestPrimaryLanguageOf(t *testing.T) {
	cases := []struct {
		name  string
		langs []string
		want  string
	}{
		{"majority wins", []string{"Go", "Python", "Python"}, "Python"},
		{"tie breaks to first seen", []string{"Go", "Python", "Go", "Python"}, "Go"},
		{"single", []string{"Rust"}, "Rust"},
		{"empty languages ignored", []string{"", "", "Go"}, "Go"},
		{"none", []string{"", ""}, "Unknown"},
		{"no repos", nil, "Unknown"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var repos []RepositoryAnalysis
			for _, l := range c.langs {
				repos = append(repos, RepositoryAnalysis{Language: l})
			}
			if got := PrimaryLanguageOf(repos); got != c.want {
				t.Errorf("PrimaryLanguageOf(%v) = %q, want %q", c.langs, got, c.want)
			}
		})
	}
}
