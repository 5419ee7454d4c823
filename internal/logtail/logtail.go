package logtail

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"
	"time"
)

// Entry is one log record.
type Entry struct {
	Time    time.Time      `json:"time" yaml:"time"`
	Level   string         `json:"level" yaml:"level"`
	Message string         `json:"msg" yaml:"msg"`
	Attrs   map[string]any `json:"attrs,omitempty" yaml:"attrs,omitempty"`
}

// Read returns at most maxLines entries from the end of the log at path
// whose level is at least minLevel. maxLines <= 0 returns every entry.
func Read(path string, maxLines int, minLevel slog.Level) ([]Entry, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer func() { _ = file.Close() }()

	var ring []Entry
	idx := 0
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		entry, level := parseLine(line)
		if level < minLevel {
			continue
		}
		if maxLines <= 0 || len(ring) < maxLines {
			ring = append(ring, entry)
			continue
		}
		ring[idx] = entry
		idx = (idx + 1) % maxLines
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	if idx == 0 {
		return ring, nil
	}
	// The ring wrapped: idx points at the oldest entry.
	return append(ring[idx:len(ring):len(ring)], ring[:idx]...), nil
}

func parseLine(line string) (Entry, slog.Level) {
	var record map[string]any
	if err := json.Unmarshal([]byte(line), &record); err != nil {
		return Entry{Level: slog.LevelInfo.String(), Message: line}, slog.LevelInfo
	}

	var entry Entry
	if s, ok := record[slog.TimeKey].(string); ok {
		entry.Time, _ = time.Parse(time.RFC3339Nano, s)
	}
	level := slog.LevelInfo
	if s, ok := record[slog.LevelKey].(string); ok {
		if err := level.UnmarshalText([]byte(s)); err != nil {
			level = slog.LevelInfo
		}
	}
	entry.Level = level.String()
	entry.Message, _ = record[slog.MessageKey].(string)

	delete(record, slog.TimeKey)
	delete(record, slog.LevelKey)
	delete(record, slog.MessageKey)
	if len(record) > 0 {
		entry.Attrs = record
	}
	return entry, level
}

// Format renders e as a single line with attributes sorted by key.
func Format(e Entry) string {
	var b strings.Builder
	if !e.Time.IsZero() {
		b.WriteString(e.Time.Local().Format("2006-01-02 15:04:05"))
		b.WriteByte(' ')
	}
	fmt.Fprintf(&b, "%-5s %s", e.Level, e.Message)

	keys := make([]string, 0, len(e.Attrs))
	for k := range e.Attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, e.Attrs[k])
	}
	return b.String()
}
