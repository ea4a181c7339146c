package mapexport

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"sort"

	svg "github.com/ajstarks/svgo"

	"grue/pkg/world"
)

// Options configures the room-graph render.
type Options struct {
	Width      int    // canvas width in pixels
	Height     int    // canvas height in pixels
	ShowLabels bool   // draw a room id label under each node
	NodeRadius int    // radius of room nodes
	EdgeWidth  int    // width of exit lines
	Margin     int    // canvas margin in pixels
	Title      string // optional title drawn at the top
}

// DefaultOptions returns sensible defaults for a quick debug render.
func DefaultOptions() Options {
	return Options{
		Width:      1200,
		Height:     900,
		ShowLabels: true,
		NodeRadius: 18,
		EdgeWidth:  2,
		Margin:     60,
		Title:      "Room Graph",
	}
}

// Render draws every room in store as a node, with one edge per exit that
// names a destination room (blocked exits, which carry no To, draw
// nothing). Rooms are laid out on a circle in sorted-id order, the same
// placeholder layout the teacher used before a force-directed pass — a
// debug tool has no need for anything fancier.
func Render(store *world.Store, opts Options) ([]byte, error) {
	if store == nil {
		return nil, fmt.Errorf("mapexport: store cannot be nil")
	}
	if opts.Width <= 0 {
		opts.Width = 1200
	}
	if opts.Height <= 0 {
		opts.Height = 900
	}
	if opts.NodeRadius <= 0 {
		opts.NodeRadius = 18
	}
	if opts.EdgeWidth <= 0 {
		opts.EdgeWidth = 2
	}
	if opts.Margin <= 0 {
		opts.Margin = 60
	}

	buf := new(bytes.Buffer)
	canvas := svg.New(buf)
	canvas.Start(opts.Width, opts.Height)
	canvas.Rect(0, 0, opts.Width, opts.Height, "fill:#1a1a2e")

	positions := layout(store, opts)
	drawExits(canvas, store, positions, opts)
	drawRooms(canvas, store, positions, opts)
	if opts.ShowLabels {
		drawLabels(canvas, store, positions, opts)
	}
	if opts.Title != "" {
		canvas.Text(opts.Width/2, 25, opts.Title,
			"text-anchor:middle;font-size:20px;font-weight:bold;fill:#e2e8f0;font-family:sans-serif")
	}

	canvas.End()
	return buf.Bytes(), nil
}

// SaveToFile renders store and writes the SVG to path.
func SaveToFile(store *world.Store, path string, opts Options) error {
	data, err := Render(store, opts)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

type point struct{ X, Y float64 }

func sortedRoomIDs(store *world.Store) []string {
	ids := make([]string, 0, len(store.Rooms))
	for id := range store.Rooms {
		ids = append(ids, string(id))
	}
	sort.Strings(ids)
	return ids
}

func layout(store *world.Store, opts Options) map[string]point {
	positions := make(map[string]point)
	ids := sortedRoomIDs(store)
	if len(ids) == 0 {
		return positions
	}

	drawWidth := float64(opts.Width - 2*opts.Margin - 2*opts.NodeRadius)
	drawHeight := float64(opts.Height - 2*opts.Margin - 2*opts.NodeRadius - 60)
	centerX := float64(opts.Width) / 2
	centerY := float64(opts.Height-60) / 2
	radius := math.Min(drawWidth, drawHeight) / 2.5

	angleStep := 2 * math.Pi / float64(len(ids))
	for i, id := range ids {
		angle := float64(i) * angleStep
		positions[id] = point{
			X: centerX + radius*math.Cos(angle),
			Y: centerY + radius*math.Sin(angle),
		}
	}
	return positions
}

func exitColor(kind world.ExitKind) (string, string) {
	switch kind {
	case world.ExitDoor:
		return "#48bb78", "opacity:0.9"
	case world.ExitConditional:
		return "#f59e0b", "opacity:0.8"
	case world.ExitFunctional:
		return "#9f7aea", "opacity:0.8"
	case world.ExitBlocked:
		return "#718096", "opacity:0.3;stroke-dasharray:4,4"
	default:
		return "#4299e1", "opacity:0.8"
	}
}

func drawExits(canvas *svg.SVG, store *world.Store, positions map[string]point, opts Options) {
	for _, id := range sortedRoomIDs(store) {
		room := store.Rooms[world.EntityId(id)]
		dirs := make([]string, 0, len(room.Exits))
		for dir := range room.Exits {
			dirs = append(dirs, dir)
		}
		sort.Strings(dirs)
		for _, dir := range dirs {
			exit := room.Exits[dir]
			if exit.To == "" {
				continue
			}
			from, ok := positions[id]
			if !ok {
				continue
			}
			to, ok := positions[string(exit.To)]
			if !ok {
				continue
			}
			color, style := exitColor(exit.Kind)
			canvas.Line(
				int(from.X), int(from.Y), int(to.X), int(to.Y),
				fmt.Sprintf("stroke:%s;stroke-width:%d;%s", color, opts.EdgeWidth, style),
			)
		}
	}
}

func drawRooms(canvas *svg.SVG, store *world.Store, positions map[string]point, opts Options) {
	for _, id := range sortedRoomIDs(store) {
		pos, ok := positions[id]
		if !ok {
			continue
		}
		room := store.Rooms[world.EntityId(id)]
		color := "#4a5568"
		if room.Flags.Has(world.FlagLit) {
			color = "#ecc94b"
		}
		canvas.Circle(int(pos.X), int(pos.Y), opts.NodeRadius,
			fmt.Sprintf("fill:%s;stroke:#fff;stroke-width:2;opacity:0.9", color))
	}
}

func drawLabels(canvas *svg.SVG, store *world.Store, positions map[string]point, opts Options) {
	for _, id := range sortedRoomIDs(store) {
		pos, ok := positions[id]
		if !ok {
			continue
		}
		canvas.Text(int(pos.X), int(pos.Y)+opts.NodeRadius+15, id,
			"text-anchor:middle;font-size:11px;font-family:monospace;fill:#e2e8f0;font-weight:500")
	}
}
