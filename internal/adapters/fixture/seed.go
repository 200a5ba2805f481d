package fixture

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed default_seed.yaml
var defaultSeed []byte

type Seed struct {
	// AmbientUser is the identity given to requests that carry no forms
	// session cookie. Empty means such requests are rejected.
	AmbientUser       string                `yaml:"ambient_user"`
	Users             []SeedUser            `yaml:"users"`
	TemplateLibraries []SeedTemplateLibrary `yaml:"template_libraries"`
	ContentLibraries  []SeedContentLibrary  `yaml:"content_libraries"`
}

type SeedUser struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

type SeedTemplateLibrary struct {
	Name   string              `yaml:"name"`
	Groups []SeedTemplateGroup `yaml:"groups"`
}

type SeedTemplateGroup struct {
	Name      string         `yaml:"name"`
	Templates []SeedTemplate `yaml:"templates"`
}

type SeedTemplate struct {
	Name          string `yaml:"name"`
	Content       string `yaml:"content"`
	FailureReason string `yaml:"failure_reason"`
	PendingPolls  int    `yaml:"pending_polls"`
}

type SeedContentLibrary struct {
	Name    string       `yaml:"name"`
	Folders []SeedFolder `yaml:"folders"`
}

type SeedFolder struct {
	Name  string     `yaml:"name"`
	Files []SeedFile `yaml:"files"`
}

type SeedFile struct {
	Name         string `yaml:"name"`
	Content      string `yaml:"content"`
	CheckedOutBy string `yaml:"checked_out_by"`
}

func DefaultSeed() Seed {
	seed, err := ParseSeed(defaultSeed)
	if err != nil {
		panic(err)
	}
	return seed
}

func ParseSeed(data []byte) (Seed, error) {
	var seed Seed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return Seed{}, fmt.Errorf("decode fixture seed: %w", err)
	}
	return seed, nil
}

func LoadSeed(path string) (Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Seed{}, fmt.Errorf("read fixture seed: %w", err)
	}
	return ParseSeed(data)
}
