package labor

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ruleFile is the on-disk shape of a normalization rule override file.
// Both sections are optional; entries merge over the defaults.
type ruleFile struct {
	Abbreviations map[string]string `yaml:"abbreviations"`
	Sizes         map[string]string `yaml:"sizes"`
}

// WithRules merges normalization rules from a YAML file over the default
// rule set. The file may override or add abbreviations and size aliases
// without any code change.
func (n *Normalizer) WithRules(path string) (*Normalizer, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from user config
	if err != nil {
		return nil, fmt.Errorf("failed to read normalization rules: %w", err)
	}

	var rules ruleFile
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("failed to parse normalization rules: %w", err)
	}

	merged := &Normalizer{
		abbreviations: make(map[string]string, len(n.abbreviations)+len(rules.Abbreviations)),
		sizes:         make(map[string]string, len(n.sizes)+len(rules.Sizes)),
	}
	for k, v := range n.abbreviations {
		merged.abbreviations[k] = v
	}
	for k, v := range rules.Abbreviations {
		merged.abbreviations[k] = v
	}
	for k, v := range n.sizes {
		merged.sizes[k] = v
	}
	for k, v := range rules.Sizes {
		merged.sizes[k] = v
	}
	return merged, nil
}

// defaultAbbreviations maps trade shorthand to the vocabulary the reference
// table uses. Expansions must not themselves contain a key, so that
// normalization stays idempotent.
func defaultAbbreviations() map[string]string {
	return map[string]string{
		"emt":   "electrical metallic tubing",
		"ent":   "electrical nonmetallic tubing",
		"imc":   "intermediate metal conduit",
		"romex": "nonmetallic sheathed cable",
		"nm":    "nonmetallic sheathed cable",
		"in":    "inch",
		"ft":    "feet",
		"gfci":  "ground fault interrupter",
		"gfi":   "ground fault interrupter",
		"wp":    "weatherproof",
		"recep": "receptacle",
		"conn":  "connector",
		"coupl": "coupling",
		"galv":  "galvanized",
	}
}

// defaultSizeAliases folds decimal trade sizes onto the fractional form
// the reference table prints.
func defaultSizeAliases() map[string]string {
	return map[string]string{
		".5":   "1/2",
		"0.5":  "1/2",
		".75":  "3/4",
		"0.75": "3/4",
		"1.25": "1 1/4",
		"1.5":  "1 1/2",
		"2.5":  "2 1/2",
		"3.5":  "3 1/2",
	}
}
