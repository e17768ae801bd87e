package font

// Match selects the best single font within family for the requested
// attributes, following CSS-Fonts-4 matching: stretch, then style
// (conditioned on the matched stretch), then weight (conditioned on both).
func (r *Registry) Match(fam *FontFamily, want Attributes) (FontId, bool) {
	if len(fam.Members) == 0 {
		return 0, false
	}
	members := make([]Font, len(fam.Members))
	for i, id := range fam.Members {
		members[i] = r.fonts[id]
	}

	stretch := want.Stretch
	if !fam.HasStretch {
		stretch = StretchNormal
	} else {
		stretch = bestStretch(members, stretch)
	}
	atStretch := filterStretch(members, stretch)

	style := bestStyle(atStretch, want.Style)
	atStyle := filterStyle(atStretch, style)
	if len(atStyle) == 0 {
		atStyle = atStretch
	}

	best := bestWeight(atStyle, want.Weight)
	return best.ID, true
}

// bestStretch picks the minimum-distance stretch value present among
// members, using the CSS-Fonts-4 directional reflection so that, on ties,
// condensed values win requests at or below normal and expanded values win
// requests above normal.
func bestStretch(members []Font, want Stretch) Stretch {
	best := members[0].Attributes.Stretch
	bestDist := stretchDistance(want, best)
	for _, f := range members[1:] {
		d := stretchDistance(want, f.Attributes.Stretch)
		if d < bestDist {
			bestDist = d
			best = f.Attributes.Stretch
		}
	}
	return best
}

func stretchDistance(want, candidate Stretch) float32 {
	if want <= StretchNormal {
		if candidate <= want {
			return float32(want - candidate)
		}
		return float32(candidate-want) + float32(StretchUltraExpanded-StretchNormal) + 1
	}
	if candidate >= want {
		return float32(candidate - want)
	}
	return float32(want-candidate) + float32(StretchNormal-StretchUltraCondensed) + 1
}

func filterStretch(members []Font, stretch Stretch) []Font {
	out := make([]Font, 0, len(members))
	for _, f := range members {
		if f.Attributes.Stretch == stretch {
			out = append(out, f)
		}
	}
	return out
}

// bestStyle returns the first style present in the preference order
// dictated by the requested style, falling back through the remaining
// members if the first choice is unavailable.
func bestStyle(members []Font, want Style) StyleKind {
	present := func(k StyleKind) bool {
		for _, f := range members {
			if f.Attributes.Style.Kind == k {
				return true
			}
		}
		return false
	}
	var order []StyleKind
	switch want.Kind {
	case StyleNormal:
		order = []StyleKind{StyleNormal, StyleOblique, StyleItalic}
	case StyleOblique:
		order = []StyleKind{StyleOblique, StyleItalic, StyleNormal}
	case StyleItalic:
		order = []StyleKind{StyleItalic, StyleOblique, StyleNormal}
	}
	for _, k := range order {
		if present(k) {
			return k
		}
	}
	if len(members) > 0 {
		return members[0].Attributes.Style.Kind
	}
	return StyleNormal
}

func filterStyle(members []Font, kind StyleKind) []Font {
	out := make([]Font, 0, len(members))
	for _, f := range members {
		if f.Attributes.Style.Kind == kind {
			out = append(out, f)
		}
	}
	return out
}

// bestWeight implements the three weight-matching branches of CSS-Fonts-4.
// Ties (equal weight distance under the branch's ordering) are resolved by
// registration order, i.e. the first matching candidate encountered.
func bestWeight(members []Font, want Weight) Font {
	rank := func(w Weight) int {
		switch {
		case want >= 400 && want <= 500:
			switch {
			case w >= want && w <= 500:
				return int(w - want) // ascending within [w,500]
			case w < want:
				return 1000 + int(want-w) // descending below w
			default:
				return 2000 + int(w-500) // ascending above 500
			}
		case want < 400:
			switch {
			case w <= want:
				return int(want - w) // descending from want
			default:
				return 1000 + int(w-want) // ascending above want
			}
		default: // want > 500
			switch {
			case w >= want:
				return int(w - want) // ascending from want
			default:
				return 1000 + int(want-w) // descending below want
			}
		}
	}
	best := members[0]
	bestRank := rank(best.Attributes.Weight)
	for _, f := range members[1:] {
		r := rank(f.Attributes.Weight)
		if r < bestRank {
			bestRank = r
			best = f
		}
	}
	return best
}
