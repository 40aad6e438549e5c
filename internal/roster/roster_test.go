package roster

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRoster(t *testing.T) {
	offerings := Default()

	require.Len(t, offerings, 6)
	require.NoError(t, Validate(offerings))

	// Every entry carries enough material to build both prompts
	for _, o := range offerings {
		assert.NotEmpty(t, o.Key, "offering key")
		assert.NotEmpty(t, o.Name, "offering name")
		assert.NotEmpty(t, o.FullName)
		assert.NotEmpty(t, o.AssetClass)
		assert.NotEmpty(t, o.Differentiator)
		assert.NotEmpty(t, o.IdealAllocators)
		assert.NotEmpty(t, o.HighFitSignals)
		assert.NotEmpty(t, o.Disqualifiers)
		assert.NotEmpty(t, o.HookThemes)
		assert.NotEmpty(t, o.FitRules.Strong)
		assert.NotEmpty(t, o.FitRules.Moderate)
		assert.NotEmpty(t, o.FitRules.Weak)
		assert.NotEmpty(t, o.FitRules.NA)
	}

	assert.Equal(t, []string{"StoneRiver", "Ashton Gray", "Willow Crest", "ICW", "Highmount", "Co-Invests"}, Names(offerings))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		offerings []Offering
		wantError bool
	}{
		{
			name:      "empty roster",
			offerings: nil,
			wantError: true,
		},
		{
			name: "missing key",
			offerings: []Offering{
				{Name: "StoneRiver"},
			},
			wantError: true,
		},
		{
			name: "duplicate key",
			offerings: []Offering{
				{Key: "stoneriver", Name: "StoneRiver"},
				{Key: "stoneriver", Name: "StoneRiver II"},
			},
			wantError: true,
		},
		{
			name: "valid",
			offerings: []Offering{
				{Key: "stoneriver", Name: "StoneRiver"},
				{Key: "icw", Name: "ICW"},
			},
			wantError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.offerings)
			if tt.wantError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestByName(t *testing.T) {
	offerings := Default()

	assert.Equal(t, "stoneriver", ByName(offerings, "StoneRiver").Key)
	assert.Equal(t, "icw", ByName(offerings, "icw").Key)
	assert.Equal(t, "ashtongray", ByName(offerings, "  Ashton Gray ").Key)
	assert.Nil(t, ByName(offerings, "Unknown Client"))
}

func TestLoad(t *testing.T) {
	t.Run("empty path returns default", func(t *testing.T) {
		offerings, err := Load("")
		require.NoError(t, err)
		assert.Len(t, offerings, 6)
	})

	t.Run("yaml override", func(t *testing.T) {
		content := `
offerings:
  - key: stoneriver
    name: StoneRiver
    full_name: StoneRiver Investment Fund IV
    asset_class: Multifamily Real Estate
    fit_rules:
      strong: explicit multifamily interest
      moderate: has real estate allocation
      weak: core-only mandate
      na: no real estate allocation
`
		path := filepath.Join(t.TempDir(), "roster.yaml")
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))

		offerings, err := Load(path)
		require.NoError(t, err)
		require.Len(t, offerings, 1)
		assert.Equal(t, "StoneRiver Investment Fund IV", offerings[0].FullName)
		assert.Equal(t, "explicit multifamily interest", offerings[0].FitRules.Strong)
	})

	t.Run("bad yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "roster.yaml")
		require.NoError(t, os.WriteFile(path, []byte("offerings: [unclosed"), 0644))

		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load("/nope/roster.yaml")
		assert.Error(t, err)
	})
}
