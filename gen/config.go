package gen

import (
	"bytes"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"

	"github.com/Revolution1/bitfield"
)

// Config is a descriptor list file:
//
//	[[type]]
//	name = "Something"
//	field = "bits"
//
//	[[type.flag]]
//	mode = "rw"
//	name = "P"
//	setter = "SetP"
//	alias = "Present"
//	alias_setter = "SetPresent"
//	pos = 0
// Keys the file does not define are rejected.
type Config struct {
	Types []TypeConfig `toml:"type"`
}

type TypeConfig struct {
	Name   string                `toml:"name"`
	Field  string                `toml:"field,omitempty"`
	Output string                `toml:"output,omitempty"`
	Flags  []bitfield.Descriptor `toml:"flag"`

	// AllowEmbedded is Job.AllowEmbedded.
	AllowEmbedded bool `toml:"allow_embedded,omitempty"`
}

var ErrUnknownKey = errors.New("unknown key in descriptor file")

func ParseConfig(data []byte) (*Config, error) {
	cfg := &Config{}
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var missing *toml.StrictMissingError
		if errors.As(err, &missing) {
			keys := make([]string, 0, len(missing.Errors))
			for _, e := range missing.Errors {
				keys = append(keys, strings.Join(e.Key(), "."))
			}
			return nil, errors.Wrapf(ErrUnknownKey, "%s", strings.Join(keys, ", "))
		}
		return nil, errors.Wrap(err, "decode descriptor file")
	}
	for i, t := range cfg.Types {
		if t.Name == "" {
			return nil, errors.Errorf("type #%d has no name", i)
		}
		for _, d := range t.Flags {
			if err := d.Validate(); err != nil {
				return nil, errors.Wrapf(err, "type %s", t.Name)
			}
		}
	}
	return cfg, nil
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read descriptor file %s", path)
	}
	return ParseConfig(data)
}

// Jobs turns every configured type into a Job rooted at dir.
func (cfg *Config) Jobs(dir string) []Job {
	jobs := make([]Job, 0, len(cfg.Types))
	for _, t := range cfg.Types {
		jobs = append(jobs, Job{Dir: dir, Type: t.Name, Field: t.Field, Output: t.Output, Flags: t.Flags, AllowEmbedded: t.AllowEmbedded})
	}
	return jobs
}
