package extraction

import (
	"regexp"

	"github.com/samber/lo"
)

// rule pairs an output label with the phrase pattern that triggers it.
type rule struct {
	label   string
	pattern *regexp.Regexp
}

func newRule(label, expr string) rule {
	return rule{label: label, pattern: regexp.MustCompile("(?i)" + expr)}
}

// matchAll returns the labels of every rule found in text, in rule order.
func matchAll(rules []rule, text string) []string {
	labels := lo.FilterMap(rules, func(r rule, _ int) (string, bool) {
		return r.label, r.pattern.MatchString(text)
	})
	if labels == nil {
		return []string{}
	}
	return labels
}

// matchFirst returns the label of the first rule found in text, or fallback.
func matchFirst(rules []rule, text, fallback string) string {
	r, ok := lo.Find(rules, func(r rule) bool {
		return r.pattern.MatchString(text)
	})
	if !ok {
		return fallback
	}
	return r.label
}

var symptomRules = []rule{
	newRule("Neck pain", `neck pain|pain in my neck`),
	newRule("Back pain", `back pain|pain in my back`),
	newRule("Head impact", `head (impact|hit my head)`),
	newRule("Trouble sleeping", `trouble sleeping`),
	newRule("Discomfort", `discomfort`),
	newRule("Occasional backache", `occasional backaches?|backaches?`),
}

var diagnosisRules = []rule{
	newRule("Whiplash injury", `whiplash injury`),
}

var treatmentRules = []rule{
	newRule("10 physiotherapy sessions", `ten sessions|10 sessions|physiotherapy`),
	newRule("Painkillers", `painkillers`),
	newRule("Advice", `advice`),
	newRule("Follow-up", `follow[- ]?up`),
}

var prognosisRules = []rule{
	newRule("Full recovery expected within six months", `full recovery`),
}

// statusRules are checked in order; the first hit wins.
var statusRules = []rule{
	newRule("Occasional backache", `occasional backaches?|occasional backache`),
	newRule("Doing better", `doing better`),
}

var keywordRules = []rule{
	newRule("Whiplash injury", `whiplash injury`),
	newRule("10 physiotherapy sessions", `ten sessions|10 sessions|physiotherapy`),
	newRule("Painkillers", `painkillers`),
	newRule("Back pain", `back pain`),
	newRule("Neck pain", `neck pain`),
	newRule("Head impact", `head (impact|hit my head)`),
	newRule("Trouble sleeping", `trouble sleeping`),
	newRule("Discomfort", `discomfort`),
	newRule("Full recovery", `full recovery`),
	newRule("Stiffness", `stiffness`),
	newRule("Backache", `backache`),
}

// patientNamePattern is case sensitive: honorific plus surname as written by the clinician.
var patientNamePattern = regexp.MustCompile(`Ms\. Jones|Mrs\. Jones|Mr\. Jones|Janet Jones`)

const patientName = "Janet Jones"
