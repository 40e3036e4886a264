// Package direction adapts physical (left/right) layout vocabulary to the
// logical, direction-aware equivalents for a language.
//
// An Adapter is immutable after construction and every method except
// ApplyDocumentDirection is a pure function of the adapter's direction and
// its arguments. Unrecognized input is passed through or mapped to a default;
// nothing here returns an error.
package direction

import (
	"strings"

	"github.com/gotrs-io/gotrs-rtl/internal/i18n"
)

// Adapter rewrites layout classes and configuration for one direction.
type Adapter struct {
	language  string
	direction i18n.LanguageDirection
	isRTL     bool
	rules     RuleSet
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithRules adds rules on top of DefaultRules.
func WithRules(rules ...Rule) Option {
	return func(a *Adapter) {
		a.rules = append(a.rules, rules...)
	}
}

// NewAdapter creates an adapter for language rendered in dir. Any value
// other than RTL is treated as LTR.
func NewAdapter(language string, dir i18n.LanguageDirection, opts ...Option) *Adapter {
	isRTL := dir == i18n.RTL
	if !isRTL {
		dir = i18n.LTR
	}
	a := &Adapter{
		language:  language,
		direction: dir,
		isRTL:     isRTL,
		rules:     append(RuleSet(nil), DefaultRules...),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// ForLanguage creates an adapter whose direction is derived from language.
func ForLanguage(language string, opts ...Option) *Adapter {
	return NewAdapter(language, i18n.GetDirection(language), opts...)
}

// Language returns the language the adapter was built for.
func (a *Adapter) Language() string { return a.language }

// Direction returns "ltr" or "rtl".
func (a *Adapter) Direction() i18n.LanguageDirection { return a.direction }

// IsRTL reports whether the adapter mirrors layouts.
func (a *Adapter) IsRTL() bool { return a.isRTL }

// LayoutClasses adapts every whitespace-separated class in base and appends
// the direction marker class. Callers should not feed the result back in:
// the marker would be kept and a second one appended.
func (a *Adapter) LayoutClasses(base string) string {
	tokens := strings.Fields(base)
	out := make([]string, 0, len(tokens)+1)
	for _, token := range tokens {
		out = append(out, a.AdaptClass(token))
	}
	out = append(out, string(a.direction))
	return strings.Join(out, " ")
}

// AdaptClass rewrites a single utility class. Variant prefixes such as
// "md:" or "hover:" are kept and the utility after the last colon is adapted.
func (a *Adapter) AdaptClass(class string) string {
	variants, utility := splitVariants(class)
	rule, ok := a.rules.Lookup(utility)
	if !ok {
		return class
	}
	return variants + rule.Apply(utility, a.isRTL)
}

// PhysicalClasses returns the tokens of classes that a rule rewrites for
// left-to-right layouts, in order of appearance.
func (a *Adapter) PhysicalClasses(classes string) []string {
	var found []string
	for _, token := range strings.Fields(classes) {
		_, utility := splitVariants(token)
		rule, ok := a.rules.Lookup(utility)
		if !ok {
			continue
		}
		if rule.Apply(utility, false) != utility {
			found = append(found, token)
		}
	}
	return found
}

func splitVariants(class string) (variants, utility string) {
	if i := strings.LastIndex(class, ":"); i >= 0 {
		return class[:i+1], class[i+1:]
	}
	return "", class
}

// FlexDirection returns the flex class for "row" or "column". Anything that
// is not "column" is laid out as a row.
func (a *Adapter) FlexDirection(dir string) string {
	if dir == "column" {
		return "flex-col"
	}
	if a.isRTL {
		return "flex-row-reverse"
	}
	return "flex-row"
}

// TextAlign maps a physical alignment to a text alignment class.
func (a *Adapter) TextAlign(align string) string {
	switch align {
	case "center":
		return "text-center"
	case "right":
		if a.isRTL {
			return "text-start"
		}
		return "text-end"
	case "left":
		if a.isRTL {
			return "text-end"
		}
		return "text-start"
	default:
		return "text-start"
	}
}

// MarginPadding converts a physical property such as "margin-left" into
// its inline-start/inline-end pair. The logical side replaces the physical
// one where it appears, so "border-left-width" becomes
// "border-inline-start-width" and a bare "left" becomes "inset-inline-start".
// The side that receives value is the start edge for "left" in LTR and the
// end edge for "left" in RTL; the other side is set to "0". Properties
// that do not mention "left" or "right" are returned as is.
func (a *Adapter) MarginPadding(property, value string) map[string]string {
	parts := strings.Split(property, "-")
	at := -1
	for i, part := range parts {
		if part == "left" || part == "right" {
			at = i
			break
		}
	}
	if at < 0 {
		return a.marginPaddingJoined(property, value)
	}

	prefix := parts[:at]
	if len(prefix) == 0 {
		prefix = []string{"inset"}
	}
	logical := func(edge string) string {
		out := append(append([]string{}, prefix...), "inline", edge)
		return strings.Join(append(out, parts[at+1:]...), "-")
	}

	return a.logicalPair(logical("start"), logical("end"), parts[at] == "left", value)
}

// marginPaddingJoined handles a side written without a separator, such as
// "paddingleft": the side is removed and the logical edge appended.
func (a *Adapter) marginPaddingJoined(property, value string) map[string]string {
	var side string
	switch {
	case strings.Contains(property, "left"):
		side = "left"
	case strings.Contains(property, "right"):
		side = "right"
	default:
		return map[string]string{property: value}
	}

	base := strings.Trim(strings.Replace(property, side, "", 1), "-")
	if base == "" {
		base = "inset"
	}
	return a.logicalPair(base+"-inline-start", base+"-inline-end", side == "left", value)
}

func (a *Adapter) logicalPair(start, end string, left bool, value string) map[string]string {
	if left != a.isRTL {
		return map[string]string{start: value, end: "0"}
	}
	return map[string]string{start: "0", end: value}
}

// AdaptAlignment maps a chart alignment value to "start", "end" or "center".
// Unknown or empty values default to "start".
func (a *Adapter) AdaptAlignment(align string) string {
	switch align {
	case "left", "start":
		if a.isRTL {
			return "end"
		}
		return "start"
	case "right", "end":
		if a.isRTL {
			return "start"
		}
		return "end"
	case "center":
		return "center"
	default:
		return "start"
	}
}

// AdaptScalePosition flips "left" and "right" axis positions in RTL.
func (a *Adapter) AdaptScalePosition(position string) string {
	if !a.isRTL {
		return position
	}
	switch position {
	case "left":
		return "right"
	case "right":
		return "left"
	default:
		return position
	}
}

// DirectionalClasses returns the direction-suffixed class for a component
// plus anchoring classes for the components that need them. The sidebar
// anchors to start-0 in RTL while the dropdown anchors to end-0.
func (a *Adapter) DirectionalClasses(componentType string) string {
	base := componentType + "-" + string(a.direction)
	switch componentType {
	case "sidebar":
		if a.isRTL {
			return base + " start-0"
		}
		return base + " end-0"
	case "dropdown":
		if a.isRTL {
			return base + " end-0"
		}
		return base + " start-0"
	case "modal":
		if a.isRTL {
			return base + " text-end"
		}
		return base + " text-start"
	default:
		return base
	}
}

// IconClasses returns the button icon class for position ("start" when empty).
// The position itself is never flipped.
func (a *Adapter) IconClasses(position string) string {
	if position == "" {
		position = "start"
	}
	return "btn-icon-" + position + "-" + string(a.direction)
}

// HTMLAttributes returns the lang and dir attributes for the root element.
func (a *Adapter) HTMLAttributes() map[string]string {
	return map[string]string{
		"lang": documentLanguage(a.language),
		"dir":  string(a.direction),
	}
}
