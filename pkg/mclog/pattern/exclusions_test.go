package pattern_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mclog/mclog-go/pkg/mclog"
	"github.com/mclog/mclog-go/pkg/mclog/pattern"
)

func TestExclusionSet(t *testing.T) {
	rf, err := pattern.Load("testdata/valid.yaml")
	require.NoError(t, err)

	set, err := pattern.NewExclusionSet(rf)
	require.NoError(t, err)
	assert.Equal(t, 2, set.Len())

	id, ok := set.Match("tried to break a block at spawn")
	assert.True(t, ok)
	assert.Equal(t, "spawn_protection", id)

	assert.True(t, set.Excludes("is now away"))
	assert.False(t, set.Excludes("was slain by Zombie"))
}

func TestExclusionSet_Nil(t *testing.T) {
	var set *pattern.ExclusionSet
	assert.False(t, set.Excludes("anything"))
	assert.Equal(t, 0, set.Len())
}

func TestNewExclusionSet_InvalidRegex(t *testing.T) {
	_, err := pattern.NewExclusionSet(&pattern.RuleFile{
		Version:    1,
		Exclusions: []pattern.Exclusion{{ID: "bad", Regex: "("}},
	})
	var patErr *pattern.PatternError
	require.True(t, errors.As(err, &patErr))
	assert.Equal(t, "exclusions", patErr.Section)
}

func TestDefaultExclusions(t *testing.T) {
	defaults := pattern.DefaultExclusions()
	require.Len(t, defaults, len(mclog.DefaultExclusionPatterns))

	rf := &pattern.RuleFile{Version: 1, Exclusions: defaults}
	require.NoError(t, rf.Validate())

	set, err := pattern.NewExclusionSet(rf)
	require.NoError(t, err)
	for _, msg := range []string{
		"is now AFK",
		"moved too quickly! 4.2,0.0,1.0",
		"was kicked for floating too long",
		"forced -12",
		"(123 blocks)",
	} {
		assert.True(t, set.Excludes(msg), msg)
		assert.True(t, mclog.DefaultExclusions().Excludes(msg), msg)
	}
	assert.False(t, set.Excludes("drowned"))
}

func TestIngestOptions(t *testing.T) {
	rf, err := pattern.Load("testdata/valid.yaml")
	require.NoError(t, err)

	opts, err := pattern.IngestOptions(rf)
	require.NoError(t, err)
	assert.Len(t, opts, 2)

	_, err = pattern.IngestOptions(nil)
	assert.Error(t, err)
}
