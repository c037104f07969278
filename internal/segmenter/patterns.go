package segmenter

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// patternConfig is one user-supplied heading pattern in the YAML file.
type patternConfig struct {
	Name    string `yaml:"name"`
	Pattern string `yaml:"pattern"`
	Spec    bool   `yaml:"spec"`
}

// patternsFile is the structure of the section-patterns YAML file.
type patternsFile struct {
	Patterns []patternConfig `yaml:"patterns"`
}

// LoadPatterns reads extra heading patterns from a YAML file and appends
// them to the defaults. Matching order follows file order after the
// defaults, so built-in section names keep precedence.
func LoadPatterns(path string) ([]Pattern, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read patterns file: %w", err)
	}

	var file patternsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("could not parse patterns file: %w", err)
	}

	patterns := DefaultPatterns()
	for _, pc := range file.Patterns {
		if pc.Name == "" || pc.Pattern == "" {
			return nil, fmt.Errorf("pattern entries need both name and pattern")
		}
		re, err := regexp.Compile(pc.Pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern for section '%s': %w", pc.Name, err)
		}
		patterns = append(patterns, Pattern{Name: pc.Name, Matcher: re, Spec: pc.Spec})
	}

	log.WithField("count", len(file.Patterns)).Debug("Loaded extra section patterns")
	return patterns, nil
}
