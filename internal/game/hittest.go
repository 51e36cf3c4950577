// internal/game/hittest.go
//
// Drop-target resolution for the sorting game: which category bin, if any,
// contains the point where a drag was released.

package game

// Point is a position in the presentation layer's coordinate space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is an axis-aligned rectangle. Edges count as inside.
type Rect struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
}

// Contains reports whether p lies inside r or on its border.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Left && p.X <= r.Right && p.Y >= r.Top && p.Y <= r.Bottom
}

// Bin is a category drop zone as laid out on screen.
type Bin struct {
	Category string `json:"category"`
	Rect
}

// HitTest returns the category whose bin contains p. Categories are tried in
// the given order and the first containing bin wins, so overlapping bins
// resolve to the earlier category. Bins naming a category outside order are
// ignored; categories without a bin are skipped. ok is false when no bin
// contains p.
func HitTest(p Point, order []string, bins []Bin) (category string, ok bool) {
	byCategory := make(map[string][]Rect, len(bins))
	for _, b := range bins {
		byCategory[b.Category] = append(byCategory[b.Category], b.Rect)
	}
	for _, c := range order {
		for _, r := range byCategory[c] {
			if r.Contains(p) {
				return c, true
			}
		}
	}
	return "", false
}
