package savefile

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Read parses every non-blank, non-comment line; comments start with //
func Read(r io.Reader) ([]Line, error) {
	var lines []Line
	sc := bufio.NewScanner(r)
	n := 0
	for sc.Scan() {
		n++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "//") {
			continue
		}
		l, err := Parse(text)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n, err)
		}
		lines = append(lines, l)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read save: %w", err)
	}
	return lines, nil
}

// Write encodes lines, one per row
func Write(w io.Writer, lines []Line) error {
	bw := bufio.NewWriter(w)
	for _, l := range lines {
		if _, err := bw.WriteString(l.String()); err != nil {
			return fmt.Errorf("write save: %w", err)
		}
		if err := bw.WriteByte('\n'); err != nil {
			return fmt.Errorf("write save: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write save: %w", err)
	}
	return nil
}
