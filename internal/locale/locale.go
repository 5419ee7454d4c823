// Package locale holds the French and English message tables and the
// locale-aware formatting the views need.
package locale

import (
	"embed"
	"fmt"
	"path"
	"sort"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"golang.org/x/text/number"
	"gopkg.in/yaml.v3"
)

//go:embed messages/*.yaml
var files embed.FS

type table struct {
	name       string
	tag        language.Tag
	dateLayout string
}

// Ordered for Next; the first entry is the default.
var tables = []table{
	{name: "fr", tag: language.French, dateLayout: "02/01/2006"},
	{name: "en", tag: language.English, dateLayout: "1/2/2006"},
}

var (
	builder = catalog.NewBuilder(catalog.Fallback(language.French))
	keys    = map[string][]string{}
	matcher language.Matcher
)

func init() {
	supported := make([]language.Tag, 0, len(tables))
	for _, t := range tables {
		messages, err := load(t.name)
		if err != nil {
			panic(err)
		}
		names := make([]string, 0, len(messages))
		for key, msg := range messages {
			if err := builder.SetString(t.tag, key, msg); err != nil {
				panic(fmt.Errorf("locale %s key %s: %w", t.name, key, err))
			}
			names = append(names, key)
		}
		sort.Strings(names)
		keys[t.name] = names
		supported = append(supported, t.tag)
	}
	matcher = language.NewMatcher(supported)
}

func load(name string) (map[string]string, error) {
	data, err := files.ReadFile(path.Join("messages", name+".yaml"))
	if err != nil {
		return nil, fmt.Errorf("read %s messages: %w", name, err)
	}
	var messages map[string]string
	if err := yaml.Unmarshal(data, &messages); err != nil {
		return nil, fmt.Errorf("parse %s messages: %w", name, err)
	}
	return messages, nil
}

// Locale renders messages, numbers and dates for one table.
type Locale struct {
	index   int
	printer *message.Printer
}

// Default returns the French locale.
func Default() Locale {
	return at(0)
}

// New picks the closest supported locale for name ("fr", "en-CA", ...).
// Unknown or empty names fall back to French.
func New(name string) Locale {
	tag, err := language.Parse(name)
	if err != nil {
		return Default()
	}
	_, index, confidence := matcher.Match(tag)
	if confidence == language.No {
		return Default()
	}
	return at(index)
}

func at(index int) Locale {
	return Locale{
		index:   index,
		printer: message.NewPrinter(tables[index].tag, message.Catalog(builder)),
	}
}

// Name returns the short locale code.
func (l Locale) Name() string {
	return tables[l.index].name
}

// Next cycles to the other table.
func (l Locale) Next() Locale {
	return at((l.index + 1) % len(tables))
}

// T looks up key and formats args into it. Missing keys render as the key.
func (l Locale) T(key string, args ...any) string {
	if l.printer == nil {
		return Default().T(key, args...)
	}
	return l.printer.Sprintf(key, args...)
}

// Number formats n with the locale's decimal conventions.
func (l Locale) Number(n float64) string {
	return l.T("%v", number.Decimal(n))
}

// FormatDate renders the calendar date of t (in UTC) the way the locale writes
// short dates.
func (l Locale) FormatDate(t time.Time) string {
	return t.UTC().Format(tables[l.index].dateLayout)
}

// Names lists the supported locale codes.
func Names() []string {
	out := make([]string, 0, len(tables))
	for _, t := range tables {
		out = append(out, t.name)
	}
	return out
}

// Keys lists the message keys defined for locale code name.
func Keys(name string) []string {
	return append([]string(nil), keys[name]...)
}
