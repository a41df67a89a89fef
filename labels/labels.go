// Package labels holds the ordered doodle vocabulary. The position of a name
// is the classifier's output index for it.
package labels

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v2"
)

var defaultLabels = []string{
	"airplane", "alarm clock", "angel", "ant", "anvil", "apple", "arm", "axe", "banana", "basketball",
	"bat", "bathtub", "beach", "bear", "bed", "bicycle", "bird", "birthday cake", "book", "bowtie",
	"bread", "broom", "bus", "butterfly", "cactus", "car", "carrot", "castle", "cat", "circle",
	"clock", "cloud", "cookie", "crab", "crown", "diamond", "dog", "donut", "door", "dragon",
	"drums", "duck", "ear", "eye", "fish", "flower", "fork", "grapes", "grass", "guitar",
	"hamburger", "hat", "headphones", "hot dog", "house", "ice cream", "key", "knife", "ladder", "lantern", "light bulb",
	"lollipop", "mermaid", "monkey", "moon", "mouse", "mug", "mushroom", "nose", "ocean", "octopus",
	"owl", "paintbrush", "palm tree", "panda", "pear", "pizza", "rabbit", "rain", "rainbow", "sandwich",
	"saw", "scissors", "sea turtle", "sheep", "shovel", "skateboard", "skull", "skyscraper", "snowman", "spider",
	"square", "star", "strawberry", "submarine", "sun", "tree", "triangle", "umbrella", "whale",
}

// Default returns a copy of the built-in vocabulary.
func Default() []string {
	return append([]string(nil), defaultLabels...)
}

// Load reads a vocabulary file. YAML files (.yaml, .yml) hold a sequence of
// names; anything else is read as one name per line, blank lines and lines
// starting with # skipped.
func Load(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var names []string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &names); err != nil {
			return nil, fmt.Errorf("can't parse labels %s: %w", path, err)
		}
	default:
		sc := bufio.NewScanner(bytes.NewReader(data))
		for sc.Scan() {
			line := strings.TrimSpace(sc.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			names = append(names, line)
		}
		if err := sc.Err(); err != nil {
			return nil, err
		}
	}

	if err := validate(names); err != nil {
		return nil, fmt.Errorf("labels %s: %w", path, err)
	}
	return names, nil
}

func validate(names []string) error {
	if len(names) == 0 {
		return fmt.Errorf("empty vocabulary")
	}
	seen := make(map[string]int, len(names))
	for i, n := range names {
		if n == "" {
			return fmt.Errorf("empty name at index %d", i)
		}
		if j, ok := seen[n]; ok {
			return fmt.Errorf("%q listed at %d and %d", n, j, i)
		}
		seen[n] = i
	}
	return nil
}
