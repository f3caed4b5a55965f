package lesson

import (
	"strings"
	"testing"
)

func TestCatalogGet(t *testing.T) {
	c := DefaultCatalog()

	l, ok := c.Get("Area_Circle")
	if !ok {
		t.Fatal("expected Area_Circle in default catalog")
	}
	if l.Topic != "Geometry" || l.Difficulty != "beginner" {
		t.Errorf("unexpected lesson: %+v", l)
	}

	if _, ok := c.Get("NoSuchLesson"); ok {
		t.Error("unknown id should miss")
	}
}

func TestCatalogListOrdered(t *testing.T) {
	c := DefaultCatalog()
	list := c.List()
	if len(list) != 3 {
		t.Fatalf("expected 3 lessons, got %d", len(list))
	}
	for i := 1; i < len(list); i++ {
		if list[i-1].ID >= list[i].ID {
			t.Errorf("list not ordered: %s before %s", list[i-1].ID, list[i].ID)
		}
	}
}

func TestCatalogSearch(t *testing.T) {
	c := DefaultCatalog()

	tests := []struct {
		query string
		want  int
	}{
		{"circle", 1},
		{"geometry", 2},
		{"quadratic", 1},
		{"HYPOTENUSE", 1},
		{"chemistry", 0},
		{"", 0},
	}
	for _, tt := range tests {
		if got := len(c.Search(tt.query)); got != tt.want {
			t.Errorf("Search(%q) returned %d lessons, want %d", tt.query, got, tt.want)
		}
	}
}

func TestCatalogContext(t *testing.T) {
	c := DefaultCatalog()

	ctx := c.Context("Area_Circle")
	for _, want := range []string{"Area of a Circle", "Geometry", "beginner", "pi"} {
		if !strings.Contains(ctx, want) {
			t.Errorf("context missing %q:\n%s", want, ctx)
		}
	}

	if got := c.Context("NoSuchLesson"); got != "General math tutoring context" {
		t.Errorf("unknown lesson context = %q", got)
	}
}

func TestLanguageFallbacks(t *testing.T) {
	if NormalizeLanguage("xx") != DefaultLanguage {
		t.Error("unsupported code should normalize to default")
	}
	if NormalizeLanguage("hi") != "hi" {
		t.Error("supported code should pass through")
	}
	if !IsSupportedLanguage("vi") || IsSupportedLanguage("xx") {
		t.Error("IsSupportedLanguage table mismatch")
	}
	if LanguageInfo("xx").Name != "English" {
		t.Error("unknown language info should fall back to English")
	}
	if !strings.Contains(SystemPrompt("es"), "español") {
		t.Error("Spanish prompt should be in Spanish")
	}
	if SystemPrompt("xx") != SystemPrompt("en") {
		t.Error("unknown language prompt should fall back to English")
	}
}

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"empty", "", "en"},
		{"english", "what is the area of a circle", "en"},
		{"hindi", "वृत्त का क्षेत्रफल क्या है", "hi"},
		{"spanish", "cuál es el área de un círculo en la clase", "es"},
		{"telugu", "వృత్తం యొక్క వైశాల్యం ఏమి గణిత", "te"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectLanguage(tt.text); got != tt.want {
				t.Errorf("DetectLanguage(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}
