// Package logtail reads the tail of the guide log for the System screen.
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
)

// Read returns at most maxLines from the end of the file at path.
// A missing file yields no lines and no error.
func Read(path string, maxLines int) ([]string, error) {
	if maxLines <= 0 {
		return nil, nil
	}
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	lines := make([]string, 0, maxLines)
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if len(lines) == maxLines {
			copy(lines, lines[1:])
			lines = lines[:maxLines-1]
		}
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}
	return lines, nil
}

// Format renders a zap JSON entry as a kernel-style console line:
//
//	[15:04:05] INFO scan complete dir=films items=3
//
// Lines that are not JSON objects are returned unchanged.
func Format(line string) string {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "{") {
		return line
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(trimmed), &entry); err != nil {
		return line
	}

	var b strings.Builder
	b.WriteString("[")
	b.WriteString(formatStamp(entry["ts"]))
	b.WriteString("] ")
	if lvl, ok := entry["level"].(string); ok {
		b.WriteString(strings.ToUpper(lvl))
		b.WriteString(" ")
	}
	if msg, ok := entry["msg"].(string); ok {
		b.WriteString(msg)
	}

	keys := make([]string, 0, len(entry))
	for k := range entry {
		switch k {
		case "ts", "level", "msg", "caller", "stacktrace", "logger":
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, entry[k])
	}
	return b.String()
}

// Lines reads the tail of path and formats every line.
func Lines(path string, maxLines int) ([]string, error) {
	raw, err := Read(path, maxLines)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(raw))
	for i, line := range raw {
		out[i] = Format(line)
	}
	return out, nil
}

func formatStamp(v any) string {
	switch ts := v.(type) {
	case string:
		if t, err := time.Parse("2006-01-02T15:04:05.000Z0700", ts); err == nil {
			return t.Format("15:04:05")
		}
		return ts
	case float64:
		sec := int64(ts)
		nsec := int64((ts - float64(sec)) * float64(time.Second))
		return time.Unix(sec, nsec).Format("15:04:05")
	default:
		return "--:--:--"
	}
}
