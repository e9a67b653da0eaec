package gen

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/Revolution1/bitfield"
)

// Job generates the accessors of one type. Flags are added to whatever the
// type declares with directives.
type Job struct {
	Dir    string
	Type   string
	Field  string
	Output string
	Flags  []bitfield.Descriptor

	// AllowEmbedded generates even when the type embeds types from other
	// packages, whose promoted members are then not checked.
	AllowEmbedded bool
}

// Run writes the generated file and returns its path.
func (j Job) Run() (string, error) {
	output := j.Output
	if output == "" {
		output = OutputName(j.Type)
	}
	dir := j.Dir
	if dir == "" {
		dir = "."
	}
	h, err := Load(dir, j.Type, j.Field, filepath.Base(output))
	if err != nil {
		return "", err
	}
	h.AllowEmbedded = j.AllowEmbedded
	descs := append(h.Flags[:len(h.Flags):len(h.Flags)], j.Flags...)
	src, err := Generate(h, descs)
	if err != nil {
		return "", err
	}
	path := output
	if !filepath.IsAbs(path) {
		path = filepath.Join(dir, output)
	}
	if err := os.WriteFile(path, src, 0644); err != nil {
		return "", errors.Wrapf(err, "write %s", path)
	}
	log.WithFields(log.Fields{"type": j.Type, "file": path}).Info("wrote accessors")
	return path, nil
}
