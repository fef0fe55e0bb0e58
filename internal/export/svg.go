package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/billiards/internal/dynamo"
)

// DefaultFelt is the table color used when none is given.
const DefaultFelt = "green"

// SnapshotsToSVG renders one frame of the table: the felt, then one disk per
// snapshot in store order. trails, when non-nil, holds a path per body drawn
// beneath the disks in the body's color.
func SnapshotsToSVG(width, height float64, snaps []dynamo.Snapshot, trails [][]dynamo.Vec2, felt string) string {
	if felt == "" {
		felt = DefaultFelt
	}

	var sb strings.Builder

	// SVG header
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, felt))

	for i, path := range trails {
		if len(path) < 2 || i >= len(snaps) {
			continue
		}
		sb.WriteString(TrailToSVG(path, snaps[i].Color))
	}

	for _, s := range snaps {
		sb.WriteString(fmt.Sprintf(`<circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s"/>
`, s.X, s.Y, s.Radius, s.Color))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// TrailToSVG returns a polyline element for path in surface coordinates.
func TrailToSVG(path []dynamo.Vec2, strokeColor string) string {
	if len(path) < 2 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(`<polyline fill="none" stroke-opacity="0.5" stroke-width="1.5" stroke="`)
	sb.WriteString(strokeColor)
	sb.WriteString(`" points="`)
	for i, p := range path {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(fmt.Sprintf("%.1f,%.1f", p.X, p.Y))
	}
	sb.WriteString("\"/>\n")
	return sb.String()
}
