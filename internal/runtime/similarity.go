package runtime

// Similarity scores two strings by the Jaccard index of their character sets:
// |A ∩ B| / |A ∪ B|, where A and B hold the distinct runes of each string.
// Two empty strings score 0.
//
// The formula is part of the engine's contract; intent selection and its
// tie-breaks depend on these exact values.
func Similarity(a, b string) float64 {
	setA := runeSet(a)
	setB := runeSet(b)

	intersection := 0
	for r := range setA {
		if _, ok := setB[r]; ok {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

func runeSet(s string) map[rune]struct{} {
	set := make(map[rune]struct{}, len(s))
	for _, r := range s {
		set[r] = struct{}{}
	}
	return set
}
