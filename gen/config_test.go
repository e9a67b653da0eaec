package gen

import (
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	assertion "github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Revolution1/bitfield"
)

const configSrc = `
[[type]]
name = "Something"
output = "flags_gen.go"

[[type.flag]]
mode = "rw"
name = "Locked"
setter = "SetLocked"
pos = 5

[[type.flag]]
mode = "ro"
name = "E"
alias = "Extended"
pos = 2

[[type]]
name = "Pair"
field = "a"
allow_embedded = true

[[type.flag]]
mode = "rw"
name = "Open"
setter = "SetOpen"
pos = 31
`

func TestParseConfig(t *testing.T) {
	assert := assertion.New(t)
	cfg, err := ParseConfig([]byte(configSrc))
	require.NoError(t, err)
	require.Len(t, cfg.Types, 2)

	assert.Equal("Something", cfg.Types[0].Name)
	assert.Equal("flags_gen.go", cfg.Types[0].Output)
	assert.Equal([]bitfield.Descriptor{
		bitfield.RW("Locked", "SetLocked", 5),
		bitfield.ROAlias("E", "Extended", 2),
	}, cfg.Types[0].Flags)
	assert.Equal("a", cfg.Types[1].Field)
	assert.True(cfg.Types[1].AllowEmbedded)

	jobs := cfg.Jobs("pkg")
	assert.Equal([]Job{
		{Dir: "pkg", Type: "Something", Output: "flags_gen.go", Flags: cfg.Types[0].Flags},
		{Dir: "pkg", Type: "Pair", Field: "a", Flags: cfg.Types[1].Flags, AllowEmbedded: true},
	}, jobs)
}

func TestParseConfigErrors(t *testing.T) {
	assert := assertion.New(t)
	_, err := ParseConfig([]byte("[[type]]\nfield = \"x\"\n"))
	assert.Error(err)

	_, err = ParseConfig([]byte("[[type]]\nname = \"T\"\n[[type.flag]]\nmode = \"wo\"\nname = \"A\"\npos = 1\n"))
	assert.Error(err, "unknown mode")

	_, err = ParseConfig([]byte("[[type]]\nname = \"T\"\n[[type.flag]]\nmode = \"rw\"\nname = \"A\"\npos = 1\n"))
	assert.True(errors.Is(err, bitfield.ErrInvalidName), "rw without setter: %v", err)

	// a misspelled key must not silently drop the alias
	_, err = ParseConfig([]byte("[[type]]\nname = \"T\"\n[[type.flag]]\nmode = \"ro\"\nname = \"E\"\nalais = \"Extended\"\npos = 2\n"))
	require.True(t, errors.Is(err, ErrUnknownKey), "%v", err)
	assert.Contains(err.Error(), "alais")

	_, err = ParseConfig([]byte("[[type]]\nname = \"T\"\nfeild = \"bits\"\n"))
	assert.True(errors.Is(err, ErrUnknownKey), "%v", err)

	_, err = ParseConfig([]byte("[[type"))
	assert.Error(err)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(err)
}
