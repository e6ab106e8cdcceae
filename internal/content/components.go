package content

import "sort"

// FinalComponents computes the effective ordered component list for a
// document. The declared components array is the base; overrides keyed by
// component type then apply in place:
//
//   - disabled removes every slot of that type
//   - contentKey / customContent replace those fields, keeping type and
//     position
//   - override types absent from the base list introduce new slots, appended
//     after the base slots in lexicographic type order (the not-found page is
//     a synthetic page with an empty base list and relies on this)
func FinalComponents(doc Document) []ComponentConfig {
	base := doc.BaseComponents()
	overrides := doc.Overrides()
	if len(overrides) == 0 {
		out := make([]ComponentConfig, len(base))
		copy(out, base)
		return out
	}

	seen := make(map[string]bool, len(base))
	out := make([]ComponentConfig, 0, len(base)+len(overrides))
	for _, comp := range base {
		seen[comp.Type] = true
		ov, ok := overrides[comp.Type]
		if !ok {
			out = append(out, comp)
			continue
		}
		if ov.Disabled {
			continue
		}
		out = append(out, applyOverride(comp, ov))
	}

	introduced := make([]string, 0, len(overrides))
	for typ, ov := range overrides {
		if !seen[typ] && !ov.Disabled {
			introduced = append(introduced, typ)
		}
	}
	sort.Strings(introduced)
	for _, typ := range introduced {
		ov := overrides[typ]
		out = append(out, applyOverride(ComponentConfig{Type: typ}, ov))
	}
	return out
}

func applyOverride(comp ComponentConfig, ov Override) ComponentConfig {
	if ov.ContentKey != "" {
		comp.ContentKey = ov.ContentKey
	}
	if ov.CustomContent != nil {
		comp.CustomContent = ov.CustomContent
	}
	return comp
}
