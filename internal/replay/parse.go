package replay

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/vovakirdan/bs-replay/internal/core"
)

// Load errors.
var (
	ErrTooShort      = errors.New("replay: need a header and at least one frame line")
	ErrBadHeader     = errors.New("replay: invalid header")
	ErrNoFrames      = errors.New("replay: no valid frames")
	ErrSnakeMismatch = errors.New("replay: first frame does not describe every snake")
)

// maxLineSize bounds a single frame line. Large boards produce long lines.
const maxLineSize = 16 * 1024 * 1024

// Parse builds a Game from the lines of a replay.
// Malformed frame lines are skipped and counted in Game.Dropped; a missing or
// malformed header aborts the load.
func Parse(lines []string) (*Game, error) {
	if len(lines) < 2 {
		return nil, ErrTooShort
	}

	header, err := ParseHeader(lines[0])
	if err != nil {
		return nil, err
	}

	frames, dropped := ParseFrames(lines[1:])
	if len(frames) == 0 {
		return nil, ErrNoFrames
	}

	return newGame(header, frames, dropped)
}

// ParseHeader decodes and validates the header line.
func ParseHeader(line string) (Header, error) {
	var h Header
	if err := decodeObject(line, &h); err != nil {
		return Header{}, fmt.Errorf("%w: %v", ErrBadHeader, err)
	}
	if h.Width <= 0 || h.Height <= 0 {
		return Header{}, fmt.Errorf("%w: board size %dx%d", ErrBadHeader, h.Width, h.Height)
	}
	return h, nil
}

// ParseFrames decodes frame lines, discarding any that fail to parse.
// Returns the frames in order and the number of lines discarded.
func ParseFrames(lines []string) ([]Frame, int) {
	frames := make([]Frame, 0, len(lines))
	dropped := 0
	for _, line := range lines {
		var f Frame
		if err := decodeObject(line, &f); err != nil {
			dropped++
			continue
		}
		frames = append(frames, f)
	}
	return frames, dropped
}

// decodeObject unmarshals a line that must hold a single JSON object.
func decodeObject(line string, v any) error {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, "{") {
		return errors.New("not a JSON object")
	}
	return json.Unmarshal([]byte(line), v)
}

// newGame seeds each header snake with its body from the first frame.
func newGame(h Header, frames []Frame, dropped int) (*Game, error) {
	first := frames[0]
	if len(first.Snakes) < len(h.Snakes) {
		return nil, fmt.Errorf("%w: header has %d snakes, frame has %d",
			ErrSnakeMismatch, len(h.Snakes), len(first.Snakes))
	}

	snakes := make([]Snake, len(h.Snakes))
	for i, info := range h.Snakes {
		body := make([]core.Point, len(first.Snakes[i].Body))
		copy(body, first.Snakes[i].Body)
		snakes[i] = Snake{
			Color: core.ParseColor(info.Color),
			Body:  body,
		}
	}

	return &Game{
		Board:   Board{Width: h.Width, Height: h.Height},
		Snakes:  snakes,
		Frames:  frames,
		Dropped: dropped,
	}, nil
}

// Load reads a replay from r.
func Load(r io.Reader) (*Game, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, err
	}
	return Parse(lines)
}

// LoadFile reads a replay from a file on disk.
func LoadFile(path string) (*Game, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("replay: cannot read %s: %w", path, err)
	}
	game, err := Load(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return game, nil
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("replay: read error: %w", err)
	}
	return lines, nil
}
