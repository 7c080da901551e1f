package difficulty

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// EncodeValues renders the profile as a flat JSON object mapping variable
// name to value, in schema order. This is the representation exchanged
// with the language model and stored alongside adjustments.
func (p *Profile) EncodeValues() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, v := range p.vars {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%q: %s", v.Name, strconv.FormatFloat(v.Value, 'g', -1, 64))
	}
	b.WriteByte('}')
	return b.String()
}

// DescribeBounds renders one line per variable in schema order, stating
// current value and allowed range. Used in outbound prompts so the model
// sees every knob with its bounds.
func (p *Profile) DescribeBounds() string {
	var b strings.Builder
	for _, v := range p.vars {
		fmt.Fprintf(&b, "- %s: current %.3g, allowed range [%.3g, %.3g]\n", v.Name, v.Value, v.Min, v.Max)
	}
	return b.String()
}

// ApplyResult reports the outcome of ApplyValues.
type ApplyResult struct {
	Applied []string // variables overwritten from the document
	Unknown []string // names present in the document but not in the schema
	Skipped []string // known names whose values were not numeric
}

// ApplyValues decodes a flat JSON object of variable name to numeric
// value and overwrites matching variables on the profile, clamping each
// to its bounds. The parse is best-effort per field: unknown names and
// non-numeric values are collected, not fatal; variables absent from the
// document keep their prior value. A document that is not a JSON object
// at all is an error and leaves the profile untouched.
func (p *Profile) ApplyValues(text string) (ApplyResult, error) {
	var res ApplyResult

	var doc map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &doc); err != nil {
		return res, fmt.Errorf("difficulty: decode values: %w", err)
	}

	for name, raw := range doc {
		if _, known := p.index[name]; !known {
			res.Unknown = append(res.Unknown, name)
			continue
		}
		val, ok := asFloat(raw)
		if !ok {
			res.Skipped = append(res.Skipped, name)
			continue
		}
		p.Set(name, val)
		res.Applied = append(res.Applied, name)
	}

	// Map iteration order is random; keep reports stable for logs and tests.
	sort.Strings(res.Applied)
	sort.Strings(res.Unknown)
	sort.Strings(res.Skipped)
	return res, nil
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		// Some models quote numbers; tolerate it.
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}
