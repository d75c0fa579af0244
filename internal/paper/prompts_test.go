package paper

import (
	"strings"
	"testing"
)

func TestNewPromptsLoadsAllStyles(t *testing.T) {
	prompts, err := NewPrompts()
	if err != nil {
		t.Fatalf("NewPrompts: %v", err)
	}
	for _, style := range Styles() {
		if _, err := prompts.Generate(style, "test topic", 1500); err != nil {
			t.Errorf("Generate(%s): %v", style, err)
		}
	}
}

func TestGenerateSubstitutesValues(t *testing.T) {
	prompts, err := NewPrompts()
	if err != nil {
		t.Fatalf("NewPrompts: %v", err)
	}

	got, err := prompts.Generate(StyleIEEE, "neural architecture search", 2000)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for _, want := range []string{"neural architecture search", "2000", "IEEE"} {
		if !strings.Contains(got, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
	if strings.Contains(got, "{topic}") || strings.Contains(got, "{word_count}") {
		t.Errorf("unsubstituted placeholder remains:\n%s", got)
	}
	// 중괄호 이스케이프는 JSON 골격의 리터럴 중괄호로 복원되어야 한다.
	if !strings.Contains(got, `"title"`) {
		t.Errorf("json skeleton missing from prompt")
	}
}

func TestGenerateStylesDiffer(t *testing.T) {
	prompts, err := NewPrompts()
	if err != nil {
		t.Fatalf("NewPrompts: %v", err)
	}
	ieee, err := prompts.Generate(StyleIEEE, "topic", 1500)
	if err != nil {
		t.Fatalf("Generate(ieee): %v", err)
	}
	apa, err := prompts.Generate(StyleAPA, "topic", 1500)
	if err != nil {
		t.Fatalf("Generate(apa): %v", err)
	}
	if ieee == apa {
		t.Error("ieee and apa prompts should differ")
	}
}
