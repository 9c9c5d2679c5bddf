//go:build !fixtures_noyaml

package fixtures

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadYAML(t *testing.T) {
	fx, dir := newTempFixtures(t)
	writeFixture(t, dir, "service.yml", "name: api\nports:\n  - 80\n  - 443\n")
	writeFixture(t, dir, "empty.yaml", "")

	doc, err := fx.ReadYAML("service.yml")
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"name": "api", "ports": []interface{}{80, 443}}, doc)

	empty, err := fx.ReadYAML("empty.yaml")
	require.NoError(t, err)
	assert.Nil(t, empty)

	var svc struct {
		Name  string `json:"name"`
		Ports []int  `json:"ports"`
	}
	require.NoError(t, fx.ReadYAMLInto(&svc, "service.yml"))
	assert.Equal(t, "api", svc.Name)
	assert.Equal(t, []int{80, 443}, svc.Ports)
}

func TestLoadYAML(t *testing.T) {
	fx, dir := newTempFixtures(t)
	writeFixture(t, dir, "a.yaml", "k: v\n")

	got, err := fx.Load("a.yaml")
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"k": "v"}, got)
}

func TestParametrizeYAML(t *testing.T) {
	t.Setenv(EnvFixturesPath, "")

	cs, err := LoadCases("math/multiply.yaml")
	require.NoError(t, err)
	assert.Equal(t, []string{"small", "zero"}, cs.IDs)
	assert.Equal(t, "x,y,product", cs.ArgNames())

	ParametrizeFromFixture(t, "math/multiply.yaml", func(t *testing.T, c Case) {
		x, err := c.Int("x")
		require.NoError(t, err)
		y, err := c.Int("y")
		require.NoError(t, err)
		product, err := c.Int("product")
		require.NoError(t, err)
		assert.Equal(t, product, x*y)
	})
}

func TestParametrizeYAMLMergeKeys(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "merge.yaml", "- &base {id: first, a: 1, b: 2}\n- <<: *base\n  id: second\n  b: 3\n")

	cs, err := LoadCases("merge.yaml", FixturesDir(dir))
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, cs.IDs)
	assert.Equal(t, "a,b", cs.ArgNames())
	assert.Equal(t, [][]interface{}{{1, 2}, {1, 3}}, cs.Values)
}
