package metrics

import (
	"math"
	"sync"
	"testing"
)

const epsilon = 1e-9

var samplePairs = [][2]string{
	{"", ""},
	{"", "abc"},
	{"kitten", "sitting"},
	{"flaw", "lawn"},
	{"The quick brown fox", "the quick brown dog"},
	{"café", "cafe"},
	{"日本語のテキスト", "日本語テキスト"},
	{"the cat sat on the mat", "the mat sat on the cat"},
	{"Hello, World!\nSecond line.", "hello world\nsecond line"},
	{"a b c", "d e f"},
}

func TestEditDistance(t *testing.T) {
	tests := []struct {
		a, b     string
		expected int
	}{
		{"", "", 0},
		{"a", "", 1},
		{"", "a", 1},
		{"abc", "abc", 0},
		{"kitten", "sitting", 3},
		{"flaw", "lawn", 2},
		{"abc", "xyz", 3},
		{"café", "cafe", 1},
		{"", "abc", 3},
		{"日本語のテキスト", "日本語テキスト", 1},
		{"über", "uber", 1},
		{"naïve café", "naive cafe", 2},
		{"🙂🙃", "🙃", 1},
	}

	for _, tc := range tests {
		if got := EditDistance(tc.a, tc.b); got != tc.expected {
			t.Errorf("EditDistance(%q, %q) = %d; want %d", tc.a, tc.b, got, tc.expected)
		}
	}
}

func TestEditDistanceSymmetric(t *testing.T) {
	for _, p := range samplePairs {
		if ab, ba := EditDistance(p[0], p[1]), EditDistance(p[1], p[0]); ab != ba {
			t.Errorf("EditDistance(%q, %q) = %d but reversed gives %d", p[0], p[1], ab, ba)
		}
	}
}

func TestEditDistanceSimilarity(t *testing.T) {
	tests := []struct {
		name     string
		a, b     string
		expected float64
	}{
		{"kitten sitting", "kitten", "sitting", 1 - 3.0/7.0},
		{"identical", "hello world", "hello world", 1},
		{"disjoint", "abc", "xyz", 0},
		{"both empty", "", "", EmptyEditDistanceSimilarity},
		{"one empty", "", "abc", 0},
		{"other empty", "abc", "", 0},
		{"multibyte counts runes", "日本語のテキスト", "日本語テキスト", 1 - 1.0/8.0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := EditDistanceSimilarity(tc.a, tc.b)
			if math.Abs(got-tc.expected) > epsilon {
				t.Errorf("EditDistanceSimilarity(%q, %q) = %v; want %v", tc.a, tc.b, got, tc.expected)
			}
		})
	}
}

func TestLineSimilarity(t *testing.T) {
	if got := LineSimilarity("", ""); got != EmptyLineSimilarity {
		t.Errorf("two empty lines = %v; want %v", got, EmptyLineSimilarity)
	}
	if got := LineSimilarity("", "text"); got != 0 {
		t.Errorf("empty vs text = %v; want 0", got)
	}
	if got := LineSimilarity("same line", "same line"); got != 1 {
		t.Errorf("identical lines = %v; want 1", got)
	}
}

func TestEditDistanceConcurrentUse(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				if d := EditDistance("kitten", "sitting"); d != 3 {
					t.Errorf("concurrent EditDistance = %d; want 3", d)
					return
				}
			}
		}()
	}
	wg.Wait()
}
