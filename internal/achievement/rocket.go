package achievement

// Level is the rocket shown for the current streak.
type Level string

const (
	LevelBase Level = "base"
	Level2    Level = "level2"
	Level3    Level = "level3"
	Level4    Level = "level4"
)

// RocketLevel maps a streak to its rocket tier: 0-7 base, 8-14 level2,
// 15-21 level3, 22 and up level4.
func RocketLevel(streak int) Level {
	switch {
	case streak >= 22:
		return Level4
	case streak >= 15:
		return Level3
	case streak >= 8:
		return Level2
	default:
		return LevelBase
	}
}

// MaxStars is the number of star slots along the arc.
const MaxStars = 30

// Point is a position in layout space: X is a fraction of the width, Y is in
// the arc's own units (50 at the ends, 30 at the apex).
type Point struct {
	X float64
	Y float64
}

// StarPosition places the nth star on a quadratic Bézier arc with control
// points (0,50), (0.5,10), (1,50).
func StarPosition(n int) Point {
	t := float64(n) / MaxStars
	u := 1 - t
	return Point{
		X: t,
		Y: u*u*50 + 2*u*t*10 + t*t*50,
	}
}

// Stars returns the positions of the stars for a streak, at most MaxStars.
func Stars(streak int) []Point {
	n := min(streak, MaxStars)
	if n <= 0 {
		return nil
	}
	out := make([]Point, n)
	for i := range out {
		out[i] = StarPosition(i)
	}
	return out
}
