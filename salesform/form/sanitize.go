package form

import (
	"html/template"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	descPolicyOnce sync.Once
	descPolicy     *bluemonday.Policy
)

// DescriptionHTML returns the element description with only simple inline
// markup kept.
func (e Element) DescriptionHTML() template.HTML {
	return sanitizeDescription(e.Description)
}

// DescriptionHTML returns the section description with only simple inline
// markup kept.
func (s Section) DescriptionHTML() template.HTML {
	return sanitizeDescription(s.Description)
}

// DescriptionHTML returns the form description with only simple inline
// markup kept.
func (f Form) DescriptionHTML() template.HTML {
	return sanitizeDescription(f.Description)
}

func sanitizeDescription(raw string) template.HTML {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return template.HTML(strings.TrimSpace(descriptionSanitizer().Sanitize(trimmed)))
}

func descriptionSanitizer() *bluemonday.Policy {
	descPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("b", "strong", "i", "em", "code", "br", "small")
		policy.AllowAttrs("href").OnElements("a")
		policy.AllowURLSchemes("http", "https", "mailto")
		policy.RequireNoFollowOnLinks(true)
		descPolicy = policy
	})
	return descPolicy
}
