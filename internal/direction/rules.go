package direction

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gotrs-io/gotrs-rtl/internal/i18n"
)

// MatchKind selects how a Rule's pattern is compared against a class token.
type MatchKind string

const (
	// MatchExact matches the whole token.
	MatchExact MatchKind = "exact"
	// MatchPrefix matches any token starting with the pattern.
	MatchPrefix MatchKind = "prefix"
	// MatchStem matches the pattern alone or followed by "-", so that
	// "border-l" covers "border-l-2" but not "border-lime-500".
	MatchStem MatchKind = "stem"
)

// Rule rewrites the matched pattern of a utility class into its logical
// replacement for each direction. The rest of the token is kept.
type Rule struct {
	Pattern string    `yaml:"pattern" json:"pattern"`
	Match   MatchKind `yaml:"match" json:"match"`
	LTR     string    `yaml:"ltr" json:"ltr"`
	RTL     string    `yaml:"rtl" json:"rtl"`
}

// Matches reports whether the rule applies to the utility token.
func (r Rule) Matches(token string) bool {
	switch r.Match {
	case MatchExact:
		return token == r.Pattern
	case MatchPrefix:
		return strings.HasPrefix(token, r.Pattern)
	case MatchStem:
		return token == r.Pattern || strings.HasPrefix(token, r.Pattern+"-")
	default:
		return false
	}
}

// Apply rewrites token for the given direction. The caller must have checked Matches.
func (r Rule) Apply(token string, rtl bool) string {
	replacement := r.LTR
	if rtl {
		replacement = r.RTL
	}
	return replacement + strings.TrimPrefix(token, r.Pattern)
}

func (r Rule) validate() error {
	if r.Pattern == "" {
		return fmt.Errorf("rule has empty pattern")
	}
	switch r.Match {
	case MatchExact, MatchPrefix, MatchStem:
	default:
		return fmt.Errorf("rule %q: unknown match kind %q", r.Pattern, r.Match)
	}
	if r.LTR == "" || r.RTL == "" {
		return fmt.Errorf("rule %q: ltr and rtl replacements are required", r.Pattern)
	}
	return nil
}

// DefaultRules is the built-in table of directional utility classes.
var DefaultRules = []Rule{
	{Pattern: "ml-", Match: MatchPrefix, LTR: "ms-", RTL: "me-"},
	{Pattern: "mr-", Match: MatchPrefix, LTR: "me-", RTL: "ms-"},
	{Pattern: "pl-", Match: MatchPrefix, LTR: "ps-", RTL: "pe-"},
	{Pattern: "pr-", Match: MatchPrefix, LTR: "pe-", RTL: "ps-"},
	{Pattern: "border-l", Match: MatchStem, LTR: "border-s", RTL: "border-e"},
	{Pattern: "border-r", Match: MatchStem, LTR: "border-e", RTL: "border-s"},
	{Pattern: "left-", Match: MatchPrefix, LTR: "start-", RTL: "end-"},
	{Pattern: "right-", Match: MatchPrefix, LTR: "end-", RTL: "start-"},
	{Pattern: "text-left", Match: MatchExact, LTR: "text-start", RTL: "text-end"},
	{Pattern: "text-right", Match: MatchExact, LTR: "text-end", RTL: "text-start"},
	{Pattern: "justify-start", Match: MatchExact, LTR: "justify-start", RTL: "justify-end"},
	{Pattern: "justify-end", Match: MatchExact, LTR: "justify-end", RTL: "justify-start"},
	{Pattern: "rounded-l", Match: MatchStem, LTR: "rounded-s", RTL: "rounded-e"},
	{Pattern: "rounded-r", Match: MatchStem, LTR: "rounded-e", RTL: "rounded-s"},
}

// RuleSet is an ordered rule table. Lookup picks the matching rule with the
// longest pattern; ties go to the earlier rule.
type RuleSet []Rule

// Lookup returns the rule that applies to token.
func (rs RuleSet) Lookup(token string) (Rule, bool) {
	var (
		best  Rule
		found bool
	)
	for _, r := range rs {
		if !r.Matches(token) {
			continue
		}
		if !found || len(r.Pattern) > len(best.Pattern) {
			best, found = r, true
		}
	}
	return best, found
}

type rulesFile struct {
	Rules []Rule `yaml:"rules"`
}

// LoadRules reads additional rules from YAML of the form:
//
//	rules:
//	  - pattern: float-left
//	    match: exact
//	    ltr: float-start
//	    rtl: float-end
func LoadRules(r io.Reader) ([]Rule, error) {
	var f rulesFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to decode rules: %w", err)
	}
	for i, rule := range f.Rules {
		if err := rule.validate(); err != nil {
			return nil, fmt.Errorf("rule %d: %w", i, err)
		}
	}
	return f.Rules, nil
}

// PhysicalClasses lists the tokens of classes that the built-in rules rewrite.
func PhysicalClasses(classes string) []string {
	return NewAdapter(i18n.DefaultLanguage, i18n.LTR).PhysicalClasses(classes)
}

// LoadRulesFile reads rules from a YAML file. An empty path yields no rules.
func LoadRulesFile(path string) ([]Rule, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open rules file: %w", err)
	}
	defer f.Close()

	rules, err := LoadRules(f)
	if err != nil {
		return nil, fmt.Errorf("failed to load rules from %s: %w", path, err)
	}
	return rules, nil
}
