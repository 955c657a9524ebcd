// internal/algorithms/configurations.go
package algorithms

import (
	"fmt"
	"sort"
)

// Configurations is a set of algorithm configurations kept sorted by
// configuration name. Names are unique within the set.
type Configurations struct {
	configurations []Configuration
}

// NewConfigurations builds a set from the given configurations.
func NewConfigurations(configurations ...Configuration) (*Configurations, error) {
	set := &Configurations{}
	for _, configuration := range configurations {
		if err := set.Add(configuration); err != nil {
			return nil, err
		}
	}
	return set, nil
}

// Add inserts a configuration, keeping the set sorted by name.
func (c *Configurations) Add(configuration Configuration) error {
	index := sort.Search(len(c.configurations), func(i int) bool {
		return c.configurations[i].Name >= configuration.Name
	})
	if index < len(c.configurations) && c.configurations[index].Name == configuration.Name {
		return fmt.Errorf("the set already contains an algorithm configuration named %q", configuration.Name)
	}
	c.configurations = append(c.configurations, Configuration{})
	copy(c.configurations[index+1:], c.configurations[index:])
	c.configurations[index] = configuration
	return nil
}

// Remove deletes the configuration with the given name, if present.
func (c *Configurations) Remove(name string) {
	for i, configuration := range c.configurations {
		if configuration.Name == name {
			c.configurations = append(c.configurations[:i], c.configurations[i+1:]...)
			return
		}
	}
}

// Len returns the number of configurations in the set.
func (c *Configurations) Len() int {
	return len(c.configurations)
}

// Names returns the configuration names in alphabetical order.
func (c *Configurations) Names() []string {
	names := make([]string, len(c.configurations))
	for i, configuration := range c.configurations {
		names[i] = configuration.Name
	}
	return names
}

// Algorithms returns the distinct algorithm names in alphabetical order.
func (c *Configurations) Algorithms() []string {
	seen := make(map[string]bool)
	var names []string
	for _, configuration := range c.configurations {
		if !seen[configuration.AlgorithmName] {
			seen[configuration.AlgorithmName] = true
			names = append(names, configuration.AlgorithmName)
		}
	}
	sort.Strings(names)
	return names
}

// Configurations returns the configurations in name order.
func (c *Configurations) Configurations() []Configuration {
	out := make([]Configuration, len(c.configurations))
	copy(out, c.configurations)
	return out
}
