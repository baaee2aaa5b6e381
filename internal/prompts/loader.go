// Package prompts holds the embedded backend prompt templates.
// Each JSON file maps a prompt key to a template with {{.Name}} placeholders.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"
)

//go:embed *.json
var files embed.FS

var placeholderPattern = regexp.MustCompile(`\{\{\.([A-Za-z0-9_]+)\}\}`)

// sets caches parsed prompt files by name
var (
	sets   = make(map[string]map[string]string)
	setsMu sync.RWMutex
)

// Get returns the template stored under key in file (e.g. "recommend.json").
func Get(file, key string) (string, error) {
	set, err := load(file)
	if err != nil {
		return "", err
	}

	template, ok := set[key]
	if !ok {
		return "", fmt.Errorf("prompt key %q not found in %s", key, file)
	}
	return template, nil
}

// Render looks up a template and fills it from data. Every placeholder the
// template names must have a value; values are inserted verbatim and never
// expanded again.
func Render(file, key string, data map[string]string) (string, error) {
	template, err := Get(file, key)
	if err != nil {
		return "", err
	}
	if missing := Missing(template, data); len(missing) > 0 {
		return "", fmt.Errorf("prompt %s/%s: no value for %s", file, key, strings.Join(missing, ", "))
	}
	return Format(template, data), nil
}

// Format replaces {{.Key}} placeholders in a single pass. Placeholders
// without a value are left in place.
func Format(template string, data map[string]string) string {
	if len(data) == 0 {
		return template
	}
	pairs := make([]string, 0, 2*len(data))
	for key, value := range data {
		pairs = append(pairs, "{{."+key+"}}", value)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

// Missing lists the placeholders in template that data has no value for, sorted and deduplicated.
func Missing(template string, data map[string]string) []string {
	seen := make(map[string]bool)
	var missing []string
	for _, match := range placeholderPattern.FindAllStringSubmatch(template, -1) {
		name := match[1]
		if _, ok := data[name]; ok || seen[name] {
			continue
		}
		seen[name] = true
		missing = append(missing, name)
	}
	sort.Strings(missing)
	return missing
}

// Keys returns the prompt keys defined in file, sorted.
func Keys(file string) ([]string, error) {
	set, err := load(file)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}

// Reset drops every cached prompt file.
func Reset() {
	setsMu.Lock()
	sets = make(map[string]map[string]string)
	setsMu.Unlock()
}

func load(file string) (map[string]string, error) {
	setsMu.RLock()
	set, ok := sets[file]
	setsMu.RUnlock()
	if ok {
		return set, nil
	}

	raw, err := files.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt file %s: %w", file, err)
	}
	if err := json.Unmarshal(raw, &set); err != nil {
		return nil, fmt.Errorf("failed to parse prompt file %s: %w", file, err)
	}

	setsMu.Lock()
	sets[file] = set
	setsMu.Unlock()
	return set, nil
}
