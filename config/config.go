package config

import (
	"os"
	"path"
	"runtime"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type SkipEntry struct {
	Name   string `yaml:"name"`
	Reason string `yaml:"reason"`
}

type Config struct {
	Listen              string      `yaml:"listen"`
	Encoding            string      `yaml:"encoding"`
	Workers             int         `yaml:"workers"`
	StrictMissingChunks bool        `yaml:"strict_missing_chunks"`
	TextureDirs         []string    `yaml:"texture_dirs"`
	Skip                []SkipEntry `yaml:"skip"`
}

const uiSaboteurReason = "animation file, unused by the game and reported corrupt"

func Default() *Config {
	return &Config{
		Listen:   ":8000",
		Encoding: GetEncoding().String(),
		Workers:  runtime.NumCPU(),
		TextureDirs: []string{
			"Art/Textures",
			"Data/English/Art/Textures",
		},
		Skip: []SkipEntry{
			{Name: "UISabotr_idel.w3d", Reason: uiSaboteurReason},
			{Name: "UISabotr_Jump.w3d", Reason: uiSaboteurReason},
			{Name: "UISabotr_Left.w3d", Reason: uiSaboteurReason},
			{Name: "UISabotr_Right.w3d", Reason: uiSaboteurReason},
			{Name: "UISabotr_Up.w3d", Reason: uiSaboteurReason},
		},
	}
}

// Load reads a yaml config on top of Default().
// Keys missing in the file keep their default values.
func Load(fpath string) (*Config, error) {
	c := Default()
	data, err := os.ReadFile(fpath)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to read config %q", fpath)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, errors.Wrapf(err, "Failed to parse config %q", fpath)
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	return c, nil
}

// Apply pushes process wide settings (string encoding) from the config.
func (c *Config) Apply() error {
	if c.Encoding == "" {
		return nil
	}
	return SetEncoding(c.Encoding)
}

// SkipReason matches file base names case insensitively,
// archives store paths with either slash kind.
func (c *Config) SkipReason(name string) (string, bool) {
	base := path.Base(strings.Replace(name, "\\", "/", -1))
	for _, s := range c.Skip {
		if strings.EqualFold(s.Name, base) {
			return s.Reason, true
		}
	}
	return "", false
}
