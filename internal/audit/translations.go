package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Translations is a flattened translation file: dotted key to text.
type Translations map[string]string

// LoadTranslations reads <dir>/<lang>.json and flattens nested objects into
// dotted keys.
func LoadTranslations(dir, lang string) (Translations, error) {
	filename := filepath.Join(dir, lang+".json")
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}

	var nested map[string]any
	if err := json.Unmarshal(data, &nested); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}

	out := make(Translations)
	flatten("", nested, out)
	return out, nil
}

func flatten(prefix string, m map[string]any, out Translations) {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case map[string]any:
			flatten(key, val, out)
		case string:
			out[key] = val
		default:
			out[key] = fmt.Sprint(val)
		}
	}
}

// KeyReport compares the keys templates use with one translation file.
type KeyReport struct {
	Language string   `json:"language"`
	Missing  []string `json:"missing"`
	Unused   []string `json:"unused"`
}

// Clean reports whether nothing is missing.
func (r KeyReport) Clean() bool {
	return len(r.Missing) == 0
}

// CompareKeys lists used keys absent from translations and translation keys
// no template uses. Both lists are sorted.
func CompareKeys(lang string, used []KeyUse, translations Translations) KeyReport {
	report := KeyReport{Language: lang, Missing: []string{}, Unused: []string{}}
	usedSet := make(map[string]bool, len(used))
	for _, u := range used {
		usedSet[u.Key] = true
		if _, ok := translations[u.Key]; !ok {
			report.Missing = append(report.Missing, u.Key)
		}
	}
	for key := range translations {
		if !usedSet[key] {
			report.Unused = append(report.Unused, key)
		}
	}
	sort.Strings(report.Missing)
	sort.Strings(report.Unused)
	return report
}
