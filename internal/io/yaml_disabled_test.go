//go:build fixtures_noyaml

package io

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestYAMLDisabled(t *testing.T) {
	assert.False(t, YAMLSupported)

	_, err := DecodeYAML([]byte("a: 1"))
	assert.ErrorIs(t, err, ErrMissingDependency)
	assert.Contains(t, err.Error(), "fixtures_noyaml")

	_, err = (&YAMLRecordReader{}).Read("ignored.yaml")
	assert.ErrorIs(t, err, ErrMissingDependency)
}
