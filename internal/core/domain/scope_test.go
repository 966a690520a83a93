package domain_test

import (
	"testing"

	"github.com/chorehq/chore/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestScope_LookupLayerPrecedence(t *testing.T) {
	t.Parallel()
	s := domain.NewScope(
		map[string]string{"__DATE__": "20260203", "STAGE": "builtin"},
		map[string]string{"STAGE": "dev", "REGION": "eu"},
		map[string]string{"REGION": "us"},
	)
	s.PushPlugin("aws", map[string]string{"STAGE": "plugin"})

	v, ok := s.Lookup("REGION")
	assert.True(t, ok)
	assert.Equal(t, "us", v, "command-line overrides win")

	v, ok = s.Lookup("STAGE")
	assert.True(t, ok)
	assert.Equal(t, "plugin", v, "plugin layer beats global and builtins")

	v, ok = s.Lookup("__DATE__")
	assert.True(t, ok)
	assert.Equal(t, "20260203", v)

	_, ok = s.Lookup("MISSING")
	assert.False(t, ok)
}

func TestScope_DropPluginRemovesLayer(t *testing.T) {
	t.Parallel()
	s := domain.NewScope(nil, map[string]string{"STAGE": "dev"}, nil)
	s.PushPlugin("aws", map[string]string{"STAGE": "plugin", "TOKEN": "x"})

	s.DropPlugin("aws")

	v, ok := s.Lookup("STAGE")
	assert.True(t, ok)
	assert.Equal(t, "dev", v)
	_, ok = s.Lookup("TOKEN")
	assert.False(t, ok)
}

func TestScope_FlattenExcludesBuiltins(t *testing.T) {
	t.Parallel()
	s := domain.NewScope(
		map[string]string{"__DATE__": "20260203"},
		map[string]string{"STAGE": "dev"},
		nil,
	)

	flat := s.Flatten(map[string]string{"TAG": "v1"})
	assert.Equal(t, map[string]string{"STAGE": "dev", "TAG": "v1"}, flat)
}

func TestScope_FlattenJobOverlayBelowOverrides(t *testing.T) {
	t.Parallel()
	s := domain.NewScope(nil, map[string]string{"STAGE": "dev"}, map[string]string{"STAGE": "forced"})

	flat := s.Flatten(map[string]string{"STAGE": "job"})
	assert.Equal(t, "forced", flat["STAGE"])
}

func TestScope_EnvironSorted(t *testing.T) {
	t.Parallel()
	s := domain.NewScope(nil, map[string]string{"B": "2", "A": "1", "C": "3"}, nil)

	assert.Equal(t, []string{"A=1", "B=2", "C=3"}, s.Environ(nil))
}

func TestScope_SetPromotesIntoGlobal(t *testing.T) {
	t.Parallel()
	s := domain.NewScope(nil, nil, nil)
	s.Set("HOST", "dev.example.com")

	v, ok := s.Lookup("HOST")
	assert.True(t, ok)
	assert.Equal(t, "dev.example.com", v)
}
