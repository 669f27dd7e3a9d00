package domain

// SlotDefinition describes how to ask for a slot and how to recognize its value.
// Rows of the slot table map to it as slot -> Name, query -> Prompt, values -> Pattern.
type SlotDefinition struct {
	Name    string `json:"slot" yaml:"slot" mapstructure:"slot"`
	Prompt  string `json:"query" yaml:"query" mapstructure:"query"`
	Pattern string `json:"values" yaml:"values" mapstructure:"values"`
}
