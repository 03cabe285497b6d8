package html

import (
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

const tokenPrefix = "--contact-"

type themeView struct {
	name    string
	variant string
	style   string
}

func buildThemeView(selection *theme.Selection) themeView {
	if selection == nil {
		return themeView{}
	}
	view := themeView{name: selection.Theme, variant: selection.Variant}
	if selection.Manifest != nil {
		view.style = cssVarsStyle(selection.Manifest.Tokens)
	}
	return view
}

// cssVarsStyle renders theme tokens as custom properties on :root. Tokens whose
// name or value could escape the declaration are skipped.
func cssVarsStyle(tokens map[string]string) string {
	if len(tokens) == 0 {
		return ""
	}
	keys := make([]string, 0, len(tokens))
	for key, value := range tokens {
		if !safeToken(key) || !safeToken(value) {
			continue
		}
		keys = append(keys, key)
	}
	if len(keys) == 0 {
		return ""
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(":root {\n")
	for _, key := range keys {
		b.WriteString(tokenPrefix)
		b.WriteString(strings.TrimPrefix(strings.TrimSpace(key), "--"))
		b.WriteString(": ")
		b.WriteString(strings.TrimSpace(tokens[key]))
		b.WriteString(";\n")
	}
	b.WriteString("}")
	return b.String()
}

func safeToken(s string) bool {
	s = strings.TrimSpace(s)
	return s != "" && !strings.ContainsAny(s, "<>{};")
}
