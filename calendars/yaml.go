/*
yaml.go - File-backed calendar definitions

PURPOSE:
  Loads List calendars from YAML files, one calendar per file:

    name: us-federal
    dates:
      - date: 2022-05-30
        name: Memorial Day
    rules:
      - month: 7
        day: 4
        name: Independence Day

  LoadDir reads a whole directory of definitions, which is what the
  server preloads and the background refresher re-reads.

SEE ALSO:
  - registry.go: where loaded calendars are registered
*/
package calendars

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/warp/frequency-engine/moments"
)

type yamlCalendar struct {
	Name  string     `yaml:"name"`
	Dates []yamlDate `yaml:"dates"`
	Rules []yamlRule `yaml:"rules"`
}

type yamlDate struct {
	Date string `yaml:"date"`
	Name string `yaml:"name"`
}

type yamlRule struct {
	Month int    `yaml:"month"`
	Day   int    `yaml:"day"`
	Name  string `yaml:"name"`
}

// ParseYAML builds a List from a YAML definition.
func ParseYAML(data []byte) (*List, error) {
	var def yamlCalendar
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("parse calendar: %w", err)
	}
	return fromDefinition(def)
}

func fromDefinition(def yamlCalendar) (*List, error) {
	if def.Name == "" {
		return nil, fmt.Errorf("parse calendar: missing name")
	}
	l := NewList(def.Name)
	for _, e := range def.Dates {
		d, err := moments.ParseDate(e.Date)
		if err != nil {
			return nil, fmt.Errorf("parse calendar %s: date %q: %w", def.Name, e.Date, err)
		}
		l.AddDate(d, e.Name)
	}
	for _, r := range def.Rules {
		if r.Month < 1 || r.Month > 12 || r.Day < 1 || r.Day > 31 {
			return nil, fmt.Errorf("parse calendar %s: rule month %d day %d out of range", def.Name, r.Month, r.Day)
		}
		l.AddRule(time.Month(r.Month), r.Day, r.Name)
	}
	return l, nil
}

// LoadFile reads one YAML calendar. A definition without a name takes
// the file's base name.
func LoadFile(path string) (*List, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load calendar: %w", err)
	}
	var def yamlCalendar
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("load calendar %s: %w", path, err)
	}
	if def.Name == "" {
		base := filepath.Base(path)
		def.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return fromDefinition(def)
}

// LoadDir reads every .yaml/.yml file in dir, in file-name order.
func LoadDir(dir string) ([]*List, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("load calendars: %w", err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".yaml", ".yml":
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	lists := make([]*List, 0, len(files))
	for _, name := range files {
		l, err := LoadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		lists = append(lists, l)
	}
	return lists, nil
}
