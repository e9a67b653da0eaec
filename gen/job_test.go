package gen

import (
	"os"
	"path/filepath"
	"testing"

	assertion "github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Revolution1/bitfield"
)

func TestJobRun(t *testing.T) {
	assert := assertion.New(t)
	dir := writePackage(t, map[string]string{"host.go": hostSrc})

	job := Job{Dir: dir, Type: "Something", Flags: []bitfield.Descriptor{bitfield.RW("Locked", "SetLocked", 5)}}
	path, err := job.Run()
	require.NoError(t, err)
	assert.Equal(filepath.Join(dir, "something_bitfield.go"), path)

	src, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(string(src), "func (sm Something) P() bool")
	assert.Contains(string(src), "func (sm *Something) SetLocked(v bool)")

	// running again must not trip over the accessors written last time
	_, err = job.Run()
	assert.NoError(err)
}

func TestJobRunFromConfig(t *testing.T) {
	assert := assertion.New(t)
	dir := writePackage(t, map[string]string{
		"host.go":    hostSrc,
		"flags.toml": configSrc,
	})
	cfg, err := LoadConfig(filepath.Join(dir, "flags.toml"))
	require.NoError(t, err)

	for _, job := range cfg.Jobs(dir) {
		_, err := job.Run()
		require.NoError(t, err, job.Type)
	}
	src, err := os.ReadFile(filepath.Join(dir, "flags_gen.go"))
	require.NoError(t, err)
	assert.Contains(string(src), "func (sm Something) Extended() bool")
	src, err = os.ReadFile(filepath.Join(dir, "pair_bitfield.go"))
	require.NoError(t, err)
	assert.Contains(string(src), "func (p *Pair) SetOpen(v bool) {\n\tp.a = bitfield.Assign(p.a, 31, v)\n}")
}

func TestJobRunFailsWithoutWriting(t *testing.T) {
	assert := assertion.New(t)
	dir := writePackage(t, map[string]string{"host.go": hostSrc})

	_, err := Job{Dir: dir, Type: "Something", Flags: []bitfield.Descriptor{bitfield.RO("Name", 1)}}.Run()
	assert.Error(err)
	_, err = os.Stat(filepath.Join(dir, "something_bitfield.go"))
	assert.True(os.IsNotExist(err))
}
