package normalizer

import (
	"testing"
)

var normalizationCases = []struct {
	name     string
	input    string
	expected string
}{
	{"empty", "", ""},
	{"ascii sentence", "The Quick, Brown Fox!", "the quick brown fox"},
	{"collapse whitespace", "  many\t\tspaces\n\nand lines  ", "many spaces and lines"},
	{"apostrophe", "Don't panic.", "dont panic"},
	{"symbols kept", "a+b = c", "a+b = c"},
	{"unicode", "ÉCOLE « Française »", "école française"},
	{"decomposed", "Cafe\u0301 au lait", "caf\u00e9 au lait"},
	{"non-ascii space", "a\u00a0\u00a0b", "a b"},
	{"cjk", "日本語、テキスト。", "日本語テキスト"},
}

func TestNormalizersAgree(t *testing.T) {
	factory := NewNormalizerFactory()
	normalizers := map[string]NormalizerType{
		"default":   DefaultNormalizerType,
		"optimized": OptimizedNormalizerType,
	}

	for name, typ := range normalizers {
		norm := factory.CreateNormalizer(typ)
		for _, tc := range normalizationCases {
			t.Run(name+"/"+tc.name, func(t *testing.T) {
				if got := norm.Normalize(tc.input); got != tc.expected {
					t.Errorf("Normalize(%q) = %q; want %q", tc.input, got, tc.expected)
				}
			})
		}
	}
}

func TestOptimizedNormalizerReusesBuffers(t *testing.T) {
	norm := NewOptimizedNormalizer()
	first := norm.Normalize("First TEXT, longer than the second one")
	second := norm.Normalize("Second")

	if first != "first text longer than the second one" {
		t.Errorf("unexpected first result %q", first)
	}
	if second != "second" {
		t.Errorf("pooled buffer leaked into second result: %q", second)
	}
}
