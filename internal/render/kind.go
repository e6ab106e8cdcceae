package render

import "strings"

// Kind is the closed set of presentational component types. The content
// documents address components by string; ParseKind maps those strings onto
// the enum so an unregistered type is caught at one place.
type Kind int

const (
	KindUnknown Kind = iota
	KindHero
	KindServiceCards
	KindPageHeader
	KindContent
	KindContactForm
	KindCtaBanner
	KindTestimonials
	KindWhyChooseUs
	KindPartners
	KindFaq
	KindValueProposition
	KindProcessSteps
	KindFreeDiagnostics
	KindAccessoriesGrid
	KindPrivacyPolicy
)

var kindNames = map[Kind]string{
	KindHero:             "Hero",
	KindServiceCards:     "ServiceCards",
	KindPageHeader:       "PageHeader",
	KindContent:          "Content",
	KindContactForm:      "ContactForm",
	KindCtaBanner:        "CtaBanner",
	KindTestimonials:     "Testimonials",
	KindWhyChooseUs:      "WhyChooseUs",
	KindPartners:         "Partners",
	KindFaq:              "Faq",
	KindValueProposition: "ValueProposition",
	KindProcessSteps:     "ProcessSteps",
	KindFreeDiagnostics:  "FreeDiagnostics",
	KindAccessoriesGrid:  "AccessoriesGrid",
	KindPrivacyPolicy:    "PrivacyPolicy",
}

var kindsByKey = func() map[string]Kind {
	m := make(map[string]Kind, len(kindNames))
	for k, name := range kindNames {
		m[kindKey(name)] = k
	}
	return m
}()

// kindKey normalizes a type string: matching is case-insensitive and
// tolerates the hyphenated spellings used by older content ("page-header",
// "contact-form").
func kindKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "")
}

// ParseKind resolves a content type string to its Kind.
func ParseKind(s string) (Kind, bool) {
	k, ok := kindsByKey[kindKey(s)]
	return k, ok
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// TemplateName is the template each kind renders through.
func (k Kind) TemplateName() string {
	return "component/" + strings.ToLower(k.String())
}

// Kinds returns every registered kind, for startup validation.
func Kinds() []Kind {
	out := make([]Kind, 0, len(kindNames))
	for k := KindHero; k <= KindPrivacyPolicy; k++ {
		out = append(out, k)
	}
	return out
}
