package runtime

import "github.com/aretw0/tendril/pkg/scenario"

// Extract searches the utterance with each required slot's pattern, in order,
// and returns the first full match of every pattern that matched. Slots that
// do not match are absent from the result; callers merge it into the session
// so earlier values survive.
func Extract(utterance string, requiredSlots []string, registry *scenario.Registry) (map[string]string, error) {
	values := make(map[string]string)
	for _, name := range requiredSlots {
		pattern, err := registry.Pattern(name)
		if err != nil {
			return nil, err
		}
		if loc := pattern.FindStringIndex(utterance); loc != nil {
			values[name] = utterance[loc[0]:loc[1]]
		}
	}
	return values, nil
}
