package lesson

// Lesson describes one video lesson in the catalog.
type Lesson struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Topic      string   `json:"topic"`
	Difficulty string   `json:"difficulty"`
	Duration   int      `json:"duration_seconds"`
	Keywords   []string `json:"keywords,omitempty"`
	VideoPath  string   `json:"video_path,omitempty"`
}
