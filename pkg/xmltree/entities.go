package xmltree

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// MaxEntitySize bounds the replacement text of a single declared entity once
// references to earlier entities are expanded.
const MaxEntitySize = 64 << 10

var (
	internalSubsetRe = regexp.MustCompile(`(?s)<!DOCTYPE\s[^\[>]*\[(.*?)\]\s*>`)
	// Parameter entities and SYSTEM/PUBLIC entities do not match.
	entityDeclRe = regexp.MustCompile(`<!ENTITY\s+([^\s%"'<>&;]+)\s+(?:"([^"]*)"|'([^']*)')\s*>`)
	referenceRe  = regexp.MustCompile(`&(#x[0-9A-Fa-f]+|#[0-9]+|[^\s&;]+);`)

	predefinedEntities = map[string]string{
		"lt": "<", "gt": ">", "amp": "&", "apos": "'", "quot": `"`,
	}
)

// internalEntities collects the general entities declared with a literal value
// in the internal DTD subset of data. The returned values are already
// expanded, since encoding/xml inserts them as text. A declaration whose value
// references something unknown is left out, so a later use still fails.
func internalEntities(data []byte) (map[string]string, error) {
	entities := map[string]string{}

	subset := internalSubsetRe.FindSubmatch(data)
	if subset == nil {
		return entities, nil
	}

	for _, decl := range entityDeclRe.FindAllSubmatch(subset[1], -1) {
		name := string(decl[1])

		// The first declaration is binding.
		if _, ok := entities[name]; ok {
			continue
		}

		raw := string(decl[2])
		if decl[3] != nil {
			raw = string(decl[3])
		}

		value, ok := expandEntityValue(raw, entities)
		if !ok {
			continue
		}

		if len(value) > MaxEntitySize {
			return nil, fmt.Errorf("entity %q expands beyond %d bytes", name, MaxEntitySize)
		}

		entities[name] = value
	}

	return entities, nil
}

func expandEntityValue(raw string, known map[string]string) (string, bool) {
	var sb strings.Builder

	last := 0

	for _, m := range referenceRe.FindAllStringSubmatchIndex(raw, -1) {
		// A bare ampersand is not well-formed.
		if strings.Contains(raw[last:m[0]], "&") {
			return "", false
		}

		sb.WriteString(raw[last:m[0]])
		last = m[1]

		ref := raw[m[2]:m[3]]

		switch {
		case strings.HasPrefix(ref, "#"):
			r, ok := charRef(ref[1:])
			if !ok {
				return "", false
			}

			sb.WriteRune(r)
		default:
			value, ok := predefinedEntities[ref]
			if !ok {
				value, ok = known[ref]
			}

			if !ok {
				return "", false
			}

			sb.WriteString(value)
		}

		if sb.Len() > MaxEntitySize {
			return sb.String(), true
		}
	}

	rest := raw[last:]
	if strings.Contains(rest, "&") {
		return "", false
	}

	sb.WriteString(rest)

	return sb.String(), true
}

func charRef(ref string) (rune, bool) {
	base := 10
	if strings.HasPrefix(ref, "x") {
		base, ref = 16, ref[1:]
	}

	code, err := strconv.ParseUint(ref, base, 32)
	if err != nil || code == 0 {
		return 0, false
	}

	r := rune(code)

	return r, utf8.ValidRune(r)
}
