package lesson

import (
	"fmt"
	"sort"
	"strings"
)

// Catalog holds the video lesson metadata. The catalog is read-only after
// construction, so lookups need no locking.
type Catalog struct {
	byID map[string]Lesson
}

// NewCatalog builds a catalog from the given lessons.
func NewCatalog(lessons []Lesson) *Catalog {
	byID := make(map[string]Lesson, len(lessons))
	for _, l := range lessons {
		byID[l.ID] = l
	}
	return &Catalog{byID: byID}
}

// DefaultCatalog returns the built-in lesson set.
func DefaultCatalog() *Catalog {
	return NewCatalog([]Lesson{
		{
			ID:         "Area_Circle",
			Title:      "Area of a Circle (Introduction to Pi)",
			Topic:      "Geometry",
			Difficulty: "beginner",
			Duration:   180,
			Keywords:   []string{"circle", "area", "pi", "radius", "diameter"},
		},
		{
			ID:         "PythagoreanTheorem",
			Title:      "Derivation and Proof of the Pythagorean Theorem",
			Topic:      "Geometry",
			Difficulty: "intermediate",
			Duration:   240,
			Keywords:   []string{"triangle", "hypotenuse", "right angle", "proof"},
		},
		{
			ID:         "QuadraticFormula",
			Title:      "Solving Quadratic Equations using the Formula",
			Topic:      "Algebra",
			Difficulty: "intermediate",
			Duration:   300,
			Keywords:   []string{"quadratic", "equation", "discriminant", "roots"},
		},
	})
}

// Get returns the lesson behind id.
func (c *Catalog) Get(id string) (Lesson, bool) {
	l, ok := c.byID[id]
	return l, ok
}

// List returns every lesson ordered by id.
func (c *Catalog) List() []Lesson {
	out := make([]Lesson, 0, len(c.byID))
	for _, l := range c.byID {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Search returns lessons whose title, topic or keywords contain the query,
// case-insensitively.
func (c *Catalog) Search(query string) []Lesson {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	var out []Lesson
	for _, l := range c.List() {
		if strings.Contains(strings.ToLower(l.Title), q) ||
			strings.Contains(strings.ToLower(l.Topic), q) ||
			keywordMatch(l.Keywords, q) {
			out = append(out, l)
		}
	}
	return out
}

func keywordMatch(keywords []string, q string) bool {
	for _, k := range keywords {
		if strings.Contains(strings.ToLower(k), q) {
			return true
		}
	}
	return false
}

// Context renders the lesson as prompt context. Unknown lessons get a
// generic line so a stale lesson id never blocks an answer.
func (c *Catalog) Context(id string) string {
	l, ok := c.byID[id]
	if !ok {
		return "General math tutoring context"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Current Video Topic: %s\n", l.Title)
	fmt.Fprintf(&b, "Subject Area: %s\n", l.Topic)
	fmt.Fprintf(&b, "Difficulty Level: %s\n", l.Difficulty)
	if len(l.Keywords) > 0 {
		fmt.Fprintf(&b, "Key Concepts: %s\n", strings.Join(l.Keywords, ", "))
	}
	return b.String()
}

// Title returns the lesson title, or a generic placeholder for unknown ids.
func (c *Catalog) Title(id string) string {
	if l, ok := c.byID[id]; ok {
		return l.Title
	}
	return "the current math topic"
}
