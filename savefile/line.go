// Package savefile reads and writes the line-oriented scene format:
//
//	CreateObject type=Wheeled pos=1;0;2 motor=0;0;0 land=1
//
// Each line is a command followed by key=value parameters. Values holding
// spaces are double-quoted. Vectors are ';'-separated, booleans 1/0.
package savefile

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrMalformed is returned for lines or values that cannot be parsed
var ErrMalformed = errors.New("malformed save line")

type param struct {
	key   string
	value string
}

// Line is one parsed command with ordered parameters
type Line struct {
	Command string
	params  []param
}

// NewLine creates an empty line for a command
func NewLine(command string) Line {
	return Line{Command: command}
}

// Parse decodes one text line
func Parse(s string) (Line, error) {
	tokens, err := tokenize(s)
	if err != nil {
		return Line{}, err
	}
	if len(tokens) == 0 {
		return Line{}, fmt.Errorf("%w: empty line", ErrMalformed)
	}
	if strings.ContainsRune(tokens[0], '=') {
		return Line{}, fmt.Errorf("%w: missing command before %q", ErrMalformed, tokens[0])
	}

	l := Line{Command: tokens[0]}
	for _, tok := range tokens[1:] {
		key, value, ok := strings.Cut(tok, "=")
		if !ok || key == "" {
			return Line{}, fmt.Errorf("%w: parameter %q has no key=value form", ErrMalformed, tok)
		}
		l.params = append(l.params, param{key: key, value: unquote(value)})
	}
	return l, nil
}

// tokenize splits on spaces outside double quotes, keeping quotes in tokens
func tokenize(s string) ([]string, error) {
	var tokens []string
	var cur strings.Builder
	quoted := false
	for _, r := range s {
		switch {
		case r == '"':
			quoted = !quoted
			cur.WriteRune(r)
		case (r == ' ' || r == '\t') && !quoted:
			if cur.Len() > 0 {
				tokens = append(tokens, cur.String())
				cur.Reset()
			}
		default:
			cur.WriteRune(r)
		}
	}
	if quoted {
		return nil, fmt.Errorf("%w: unterminated quote", ErrMalformed)
	}
	if cur.Len() > 0 {
		tokens = append(tokens, cur.String())
	}
	return tokens, nil
}

func unquote(v string) string {
	if len(v) >= 2 && v[0] == '"' && v[len(v)-1] == '"' {
		return v[1 : len(v)-1]
	}
	return v
}

// String encodes the line, quoting values that contain blanks
func (l Line) String() string {
	var b strings.Builder
	b.WriteString(l.Command)
	for _, p := range l.params {
		b.WriteByte(' ')
		b.WriteString(p.key)
		b.WriteByte('=')
		if p.value == "" || strings.ContainsAny(p.value, " \t") {
			b.WriteByte('"')
			b.WriteString(p.value)
			b.WriteByte('"')
		} else {
			b.WriteString(p.value)
		}
	}
	return b.String()
}

// Keys returns parameter keys in line order
func (l Line) Keys() []string {
	keys := make([]string, len(l.params))
	for i, p := range l.params {
		keys[i] = p.key
	}
	return keys
}

// Get returns the raw value of a parameter
func (l Line) Get(key string) (string, bool) {
	for _, p := range l.params {
		if p.key == key {
			return p.value, true
		}
	}
	return "", false
}

// Set stores a raw value, replacing an existing key in place
func (l *Line) Set(key, value string) {
	for i := range l.params {
		if l.params[i].key == key {
			l.params[i].value = value
			return
		}
	}
	l.params = append(l.params, param{key: key, value: value})
}

// Delete removes a parameter if present
func (l *Line) Delete(key string) {
	for i := range l.params {
		if l.params[i].key == key {
			l.params = append(l.params[:i], l.params[i+1:]...)
			return
		}
	}
}

// Float returns a float parameter, or def when absent
func (l Line) Float(key string, def float64) (float64, error) {
	raw, ok := l.Get(key)
	if !ok {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return def, fmt.Errorf("%w: %s=%q: %v", ErrMalformed, key, raw, err)
	}
	return v, nil
}

// SetFloat stores a float with the shortest exact representation
func (l *Line) SetFloat(key string, v float64) {
	l.Set(key, formatFloat(v))
}

// Vec3 returns a ';'-separated vector parameter, or def when absent
func (l Line) Vec3(key string, def mgl64.Vec3) (mgl64.Vec3, error) {
	raw, ok := l.Get(key)
	if !ok {
		return def, nil
	}
	parts := strings.Split(raw, ";")
	if len(parts) != 3 {
		return def, fmt.Errorf("%w: %s=%q: want 3 components", ErrMalformed, key, raw)
	}
	var v mgl64.Vec3
	for i, part := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return def, fmt.Errorf("%w: %s=%q: %v", ErrMalformed, key, raw, err)
		}
		v[i] = f
	}
	return v, nil
}

// SetVec3 stores a vector as x;y;z
func (l *Line) SetVec3(key string, v mgl64.Vec3) {
	l.Set(key, formatFloat(v[0])+";"+formatFloat(v[1])+";"+formatFloat(v[2]))
}

// Bool returns a boolean parameter, or def when absent. Accepts 1/0 and true/false.
func (l Line) Bool(key string, def bool) (bool, error) {
	raw, ok := l.Get(key)
	if !ok {
		return def, nil
	}
	switch strings.ToLower(raw) {
	case "1", "true":
		return true, nil
	case "0", "false":
		return false, nil
	}
	return def, fmt.Errorf("%w: %s=%q: not a boolean", ErrMalformed, key, raw)
}

// SetBool stores a boolean as 1/0
func (l *Line) SetBool(key string, v bool) {
	if v {
		l.Set(key, "1")
	} else {
		l.Set(key, "0")
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
