package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/forcebox/internal/dynamo"
)

type Point struct{ X, Y float64 }

// Track is the path of one body.
type Track struct {
	Points []Point
	Color  string
}

const defaultStroke = "#00ff00"

// TracksFromFrames splits frames into one track per body. Missing colors
// fall back to green.
func TracksFromFrames(frames []dynamo.Frame, colors []string) []Track {
	if len(frames) == 0 {
		return nil
	}
	tracks := make([]Track, frames[0].Len())
	for i := range tracks {
		tracks[i].Color = defaultStroke
		if i < len(colors) && colors[i] != "" {
			tracks[i].Color = colors[i]
		}
		tracks[i].Points = make([]Point, len(frames))
		for j, f := range frames {
			tracks[i].Points[j] = Point{f.X[i], f.Y[i]}
		}
	}
	return tracks
}

func header(sb *strings.Builder, width, height int) {
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))
}

// TrajectoryToSVG fits every track into a width x height image, y growing
// downward as on screen.
func TrajectoryToSVG(tracks []Track, width, height int) string {
	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	total := 0
	for _, tr := range tracks {
		for _, p := range tr.Points {
			minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
			minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
			total++
		}
	}
	if total < 2 {
		return ""
	}

	// Add padding
	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	minY -= rangeY * 0.1
	rangeX *= 1.2
	rangeY *= 1.2

	var sb strings.Builder
	header(&sb, width, height)

	for _, tr := range tracks {
		if len(tr.Points) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="`, tr.Color))
		for i, p := range tr.Points {
			x := (p.X - minX) / rangeX * float64(width)
			y := (p.Y - minY) / rangeY * float64(height)
			if i == 0 {
				sb.WriteString(fmt.Sprintf("M%.1f,%.1f", x, y))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
			}
		}
		sb.WriteString("\"/>\n")
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// ScreenToSVG draws tracks on the wrapped screen, scaled by scale. A track
// that leaves one edge continues from the opposite edge as a new subpath.
func ScreenToSVG(tracks []Track, screenW, screenH int, scale float64) string {
	width := int(float64(screenW) * scale)
	height := int(float64(screenH) * scale)

	var sb strings.Builder
	header(&sb, width, height)

	for _, tr := range tracks {
		if len(tr.Points) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1" d="`, tr.Color))
		var prevX, prevY float64
		for i, p := range tr.Points {
			x := Wrap(p.X, float64(screenW))
			y := Wrap(p.Y, float64(screenH))
			cmd := " L"
			if i == 0 {
				cmd = "M"
			} else if wrapped(p, tr.Points[i-1], x-prevX, y-prevY) {
				cmd = " M"
			}
			sb.WriteString(fmt.Sprintf("%s%.1f,%.1f", cmd, x*scale, y*scale))
			prevX, prevY = x, y
		}
		sb.WriteString("\"/>\n")
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// Wrap maps v into [0, size).
func Wrap(v, size float64) float64 {
	w := math.Mod(v, size)
	if w < 0 {
		w += size
	}
	return w
}

func wrapped(p, prev Point, dx, dy float64) bool {
	const eps = 1e-9
	return math.Abs(dx-(p.X-prev.X)) > eps || math.Abs(dy-(p.Y-prev.Y)) > eps
}
