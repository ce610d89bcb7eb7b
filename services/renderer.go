// services/renderer.go
package services

import "strings"

// RenderTemplate substitutes every {key} occurrence in template with its
// value from variables. Placeholders with no matching variable are left
// verbatim. The replacer walks the template in a single pass, so values
// that themselves contain {...} sequences are never re-substituted.
func RenderTemplate(template string, variables map[string]string) string {
	if len(variables) == 0 {
		return template
	}
	pairs := make([]string, 0, len(variables)*2)
	for key, value := range variables {
		pairs = append(pairs, "{"+key+"}", value)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}
