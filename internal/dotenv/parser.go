package dotenv

import "strings"

// Parse converts file contents into a flat map. Each line is split on its
// first '='; lines without '=' or with an empty key are skipped and later
// duplicates overwrite earlier ones. Nothing is trimmed or unquoted.
func Parse(contents string) map[string]string {
	vars := make(map[string]string)
	for _, line := range strings.Split(contents, "\n") {
		key, value, ok := strings.Cut(line, "=")
		if !ok || key == "" {
			continue
		}
		vars[key] = value
	}
	return vars
}
