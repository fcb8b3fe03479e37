package region

import "strings"

// Group labels.
const (
	GroupEurope   = "Europe"
	GroupAmericas = "Americas"
	GroupAsia     = "Asia"
	GroupOceania  = "Oceania"
	GroupChina    = "China"
	GroupOther    = "Other"
)

// groupRule maps identifiers to a group. Rules are tried in order, so the
// Oceania rule must precede the generic "Asia Pacific" one.
type groupRule struct {
	group    string
	contains []string
	prefixes []string
}

var groupRules = []groupRule{
	{group: GroupChina, contains: []string{"China"}},
	{group: GroupOceania, contains: []string{"Sydney", "Melbourne", "Auckland"}},
	{group: GroupEurope, prefixes: []string{"Europe"}},
	{group: GroupAmericas, prefixes: []string{"US ", "Canada", "South America", "Mexico"}},
	{group: GroupAsia, prefixes: []string{"Asia Pacific", "Middle East"}},
}

// GroupOf derives the group label of a region from its identifier.
func GroupOf(id string) string {
	for _, rule := range groupRules {
		for _, s := range rule.contains {
			if strings.Contains(id, s) {
				return rule.group
			}
		}
		for _, p := range rule.prefixes {
			if strings.HasPrefix(id, p) {
				return rule.group
			}
		}
	}
	return GroupOther
}

// GroupOrder is the display order of groups, with their long labels.
var GroupOrder = []struct {
	Key   string
	Label string
}{
	{GroupEurope, "Europe"},
	{GroupAmericas, "The Americas"},
	{GroupAsia, "Asia (Excl. Cn)"},
	{GroupOceania, "Oceania"},
	{GroupChina, "Mainland China"},
	{GroupOther, "Other"},
}

// GroupLabel returns the long display label for a group key.
func GroupLabel(group string) string {
	for _, g := range GroupOrder {
		if g.Key == group {
			return g.Label
		}
	}
	return group
}
