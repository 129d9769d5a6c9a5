package ui

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

type field struct {
	key   string
	value string
}

// Render formats an encoded envelope for humans: a header with the
// extractor and status, then one line per leaf of the result.
func Render(extractor string, envelope []byte) string {
	env := gjson.ParseBytes(envelope)
	var b strings.Builder

	b.WriteString(titleStyle.Render(extractor))
	b.WriteString("  ")
	if env.Get("status").Int() == 200 {
		b.WriteString(okStyle.Render("✓ ok"))
	} else {
		b.WriteString(failStyle.Render("✗ failed"))
	}
	if creator := env.Get("creator").String(); creator != "" {
		b.WriteString("  ")
		b.WriteString(dimStyle.Render("by " + creator))
	}
	b.WriteString("\n")

	if msg := env.Get("msg").String(); msg != "" {
		b.WriteString("  ")
		b.WriteString(msg)
		b.WriteString("\n")
		return b.String()
	}

	fields := flatten("", env.Get("result"), nil)
	width := 0
	for _, f := range fields {
		width = max(width, len(f.key))
	}
	for _, f := range fields {
		b.WriteString("  ")
		b.WriteString(keyStyle.Render(fmt.Sprintf("%-*s", width, f.key)))
		b.WriteString("  ")
		b.WriteString(f.value)
		b.WriteString("\n")
	}
	return b.String()
}

// flatten walks r depth first and returns its non-empty leaves keyed by
// dotted path, e.g. "mediaItems.0.url".
func flatten(prefix string, r gjson.Result, out []field) []field {
	join := func(k string) string {
		if prefix == "" {
			return k
		}
		return prefix + "." + k
	}

	switch {
	case r.IsObject():
		r.ForEach(func(k, v gjson.Result) bool {
			out = flatten(join(k.String()), v, out)
			return true
		})
	case r.IsArray():
		i := 0
		r.ForEach(func(_, v gjson.Result) bool {
			out = flatten(join(fmt.Sprint(i)), v, out)
			i++
			return true
		})
	case r.Type == gjson.Null || !r.Exists():
	default:
		if v := r.String(); v != "" {
			out = append(out, field{key: prefix, value: v})
		}
	}
	return out
}
