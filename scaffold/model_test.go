package scaffold

import (
	"encoding/json"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadModel(t *testing.T) {
	mem := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(mem, "model.yaml", []byte(`
project:
  name: demo
modules:
  - agents
  - docs
`), 0o644))

	model, err := LoadModel(mem, "model.yaml")
	require.NoError(t, err)

	project, ok := model["project"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "demo", project["name"])
	assert.Len(t, model["modules"], 2)
}

func TestLoadModelMissingFile(t *testing.T) {
	_, err := LoadModel(afero.NewMemMapFs(), "nope.yaml")
	assert.Error(t, err)
}

func TestLoadModelBadYAML(t *testing.T) {
	mem := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(mem, "model.yaml", []byte("- not a mapping"), 0o644))

	_, err := LoadModel(mem, "model.yaml")
	assert.Error(t, err)
}

func TestWriteSettings(t *testing.T) {
	mem := afero.NewMemMapFs()
	values := map[string]any{
		"project": map[string]any{"name": "demo"},
		"modules": []string{"agents"},
	}

	require.NoError(t, WriteSettings(mem, "out/settings.json", values))

	data, err := afero.ReadFile(mem, "out/settings.json")
	require.NoError(t, err)

	var back map[string]any
	require.NoError(t, json.Unmarshal(data, &back))
	project := back["project"].(map[string]any)
	assert.Equal(t, "demo", project["name"])
}
