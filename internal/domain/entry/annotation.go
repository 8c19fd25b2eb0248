package entry

import (
	"encoding/json"
	"math"

	"github.com/google/uuid"
)

// RawAnnotation is the loosely typed wire form accepted at the
// reconciliation boundary. Editing surfaces hand over whatever the drawing
// layer produced; ParseAnnotation turns it into a fully typed Annotation or
// rejects it outright, so a partially coerced record never crosses the
// boundary untyped.
type RawAnnotation struct {
	ID   any `json:"id"`
	X    any `json:"x"`
	Y    any `json:"y"`
	Text any `json:"text"`
	Size any `json:"size"`
}

// ParseAnnotation parses one annotation from raw JSON. The input must be a
// JSON object; anything else fails with ErrMalformedAnnotation. Field
// coercion: a missing or non-string text becomes "", non-numeric
// coordinates become 0, coordinates are clamped to [0,100], a missing id is
// generated, and size is kept only when it is a positive integer.
func ParseAnnotation(raw json.RawMessage) (Annotation, error) {
	var loose RawAnnotation
	if err := json.Unmarshal(raw, &loose); err != nil {
		return Annotation{}, ErrMalformedAnnotation
	}
	return loose.Annotation(), nil
}

// Annotation converts the loose form into a typed Annotation, applying the
// coercion rules documented on ParseAnnotation.
func (r RawAnnotation) Annotation() Annotation {
	a := Annotation{
		ID:   coerceID(r.ID),
		X:    coerceCoord(r.X),
		Y:    coerceCoord(r.Y),
		Text: coerceText(r.Text),
	}
	if size, ok := coerceSize(r.Size); ok {
		a.Size = &size
	}
	return a
}

// Sanitize enforces the boundary rules on an already typed annotation:
// a missing id is generated and coordinates are normalized. Every
// annotation written to the store passes through here regardless of which
// surface produced it.
func Sanitize(a Annotation) Annotation {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	a.X = clampCoord(a.X)
	a.Y = clampCoord(a.Y)
	if a.Size != nil && *a.Size <= 0 {
		a.Size = nil
	}
	return a
}

// SanitizeAll sanitizes a whole annotation list, always returning a
// non-nil slice so the stored value round-trips as [] rather than null.
func SanitizeAll(annotations []Annotation) []Annotation {
	out := make([]Annotation, 0, len(annotations))
	for _, a := range annotations {
		out = append(out, Sanitize(a))
	}
	return out
}

func coerceID(v any) string {
	if id, ok := v.(string); ok && id != "" {
		return id
	}
	return uuid.NewString()
}

func coerceText(v any) string {
	if text, ok := v.(string); ok {
		return text
	}
	return ""
}

func coerceCoord(v any) float64 {
	f, ok := v.(float64)
	if !ok {
		return 0
	}
	return clampCoord(f)
}

func clampCoord(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	if f < 0 {
		return 0
	}
	if f > 100 {
		return 100
	}
	return f
}

func coerceSize(v any) (int, bool) {
	f, ok := v.(float64)
	if !ok {
		return 0, false
	}
	size := int(f)
	if size <= 0 || float64(size) != f {
		return 0, false
	}
	return size, true
}
