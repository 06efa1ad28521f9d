package models

// LocalizedText holds a default string plus per-locale variants. Resolution
// takes an explicit locale parameter; there is no ambient locale state.
type LocalizedText struct {
	Default  string            `json:"default"`
	Variants map[string]string `json:"variants,omitempty"`
}

// Resolve returns the variant for the given locale, falling back to the
// default when the locale has no variant.
func (t LocalizedText) Resolve(locale string) string {
	if v, ok := t.Variants[locale]; ok && v != "" {
		return v
	}
	return t.Default
}
