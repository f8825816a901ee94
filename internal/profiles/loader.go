package profiles

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/d2inventory/motioncore/internal/motion"
)

// ProfileLoader resolves machine profiles by name against the
// configured search paths. YAML profiles are converted to JSON before
// schema validation so one schema covers both formats.
type ProfileLoader struct {
	cache       sync.Map
	validator   *Validator
	searchPaths []string
}

var profileExtensions = []string{".yaml", ".yml", ".json"}

func NewProfileLoader(searchPaths []string) (*ProfileLoader, error) {
	validator, err := NewValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create validator: %w", err)
	}

	return &ProfileLoader{
		validator:   validator,
		searchPaths: searchPaths,
	}, nil
}

func (l *ProfileLoader) Load(name string) (*MachineProfile, error) {
	// Cache-Check
	if cached, ok := l.cache.Load(name); ok {
		return cached.(*MachineProfile), nil
	}

	data, foundPath, err := l.find(name)
	if err != nil {
		return nil, err
	}

	jsonData := data
	if ext := filepath.Ext(foundPath); ext == ".yaml" || ext == ".yml" {
		jsonData, err = yamlToJSON(data)
		if err != nil {
			return nil, fmt.Errorf("failed to convert %s: %w", foundPath, err)
		}
	}

	if err := l.validator.ValidateProfile(jsonData); err != nil {
		return nil, fmt.Errorf("validation failed for %s: %w", foundPath, err)
	}

	var profile MachineProfile
	if err := json.Unmarshal(jsonData, &profile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
	}

	l.cache.Store(name, &profile)

	return &profile, nil
}

func (l *ProfileLoader) find(name string) ([]byte, string, error) {
	for _, searchPath := range l.searchPaths {
		for _, ext := range profileExtensions {
			fullPath := filepath.Join(searchPath, name+ext)
			data, err := os.ReadFile(fullPath)
			if err == nil {
				return data, fullPath, nil
			}
		}
	}
	return nil, "", fmt.Errorf("profile not found: %s (searched in: %v)", name, l.searchPaths)
}

func (l *ProfileLoader) ClearCache() {
	l.cache.Range(func(key, value interface{}) bool {
		l.cache.Delete(key)
		return true
	})
}

func yamlToJSON(data []byte) ([]byte, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}
	return json.Marshal(doc)
}

// Apply writes a validated profile into the live motion configuration.
// Axes beyond the profile's count keep their defaults but are inactive.
func Apply(p *MachineProfile, cfg *motion.Config) error {
	if len(p.Axes) > motion.MaxAxis {
		return fmt.Errorf("profile %s has %d axes, limit is %d", p.Name, len(p.Axes), motion.MaxAxis)
	}

	cfg.NumAxes = len(p.Axes)
	cfg.LimitVel = p.VelLimit
	for i, ax := range p.Axes {
		cfg.MinLimit[i] = ax.MinLimit
		cfg.MaxLimit[i] = ax.MaxLimit
		cfg.AxisLimitVel[i] = ax.MaxVel
		cfg.MaxFerror[i] = ax.MaxFerror
		cfg.MinFerror[i] = ax.MinFerror
		cfg.HomingVel[i] = ax.HomingVel
		cfg.HomeOffset[i] = ax.HomeOffset
	}

	return nil
}
