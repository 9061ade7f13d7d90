package logtail

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"
)

// Read returns at most maxLines from the end of the file at path. A
// non-positive maxLines returns every line. A missing file yields no lines.
func Read(path string, maxLines int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if maxLines <= 0 {
		var lines []string
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read log: %w", err)
		}
		return lines, nil
	}

	ring := make([]string, maxLines)
	count := 0
	idx := 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// Entry is one decoded JSON log line.
type Entry struct {
	Time      time.Time
	Level     string
	Message   string
	Component string
	// Fields holds every other key, rendered as text.
	Fields map[string]string
}

// Parse decodes a line written by the bloom logger. Lines that are not JSON
// objects report false.
func Parse(line string) (Entry, bool) {
	var raw map[string]any
	if err := json.Unmarshal([]byte(line), &raw); err != nil {
		return Entry{}, false
	}

	e := Entry{Fields: make(map[string]string)}
	for k, v := range raw {
		s := fmt.Sprint(v)
		switch k {
		case "ts":
			if ts, err := time.Parse(time.RFC3339Nano, s); err == nil {
				e.Time = ts
			}
		case "level":
			e.Level = s
		case "message":
			e.Message = s
		case "component":
			e.Component = s
		default:
			e.Fields[k] = s
		}
	}
	return e, true
}

var (
	timeColor      = color.New(color.FgHiBlack)
	componentColor = color.New(color.FgBlue)
	fieldColor     = color.New(color.FgHiBlack)
	levelColors    = map[string]*color.Color{
		"debug":   color.New(color.FgCyan, color.Bold),
		"info":    color.New(color.FgGreen, color.Bold),
		"warning": color.New(color.FgYellow, color.Bold),
		"error":   color.New(color.FgRed, color.Bold),
		"fatal":   color.New(color.FgRed, color.Bold),
		"panic":   color.New(color.FgRed, color.Bold),
	}
)

// FormatLine renders a raw log line for the terminal. Lines that are not
// JSON are returned unchanged.
func FormatLine(line string) string {
	e, ok := Parse(line)
	if !ok {
		return line
	}
	return Format(e)
}

// Format renders e on one line: time, level, component, message, then the
// remaining fields sorted by key.
func Format(e Entry) string {
	var b strings.Builder
	if !e.Time.IsZero() {
		b.WriteString(timeColor.Sprint(e.Time.Local().Format("2006-01-02 15:04:05")))
		b.WriteByte(' ')
	}
	level := strings.ToUpper(e.Level)
	if c, ok := levelColors[e.Level]; ok {
		level = c.Sprint(level)
	}
	b.WriteString(level)
	if e.Component != "" {
		b.WriteByte(' ')
		b.WriteString(componentColor.Sprintf("[%s]", e.Component))
	}
	b.WriteString(" ")
	b.WriteString(e.Message)

	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteByte(' ')
		b.WriteString(fieldColor.Sprintf("%s=%s", k, e.Fields[k]))
	}
	return b.String()
}

// FormatLines applies FormatLine to every line.
func FormatLines(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = FormatLine(line)
	}
	return out
}
