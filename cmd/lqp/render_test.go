package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lucene-ql/lqp/lqpconfig"
)

func TestIncludeDir_FlagTakesPriorityOverConfig(t *testing.T) {
	renderIncludeDir = "./from-flag"
	defer func() { renderIncludeDir = "" }()

	got := includeDir(lqpconfig.Config{IncludeRoots: []string{"./from-config"}})
	assert.Equal(t, "./from-flag", got)
}

func TestIncludeDir_FallsBackToConfig(t *testing.T) {
	renderIncludeDir = ""
	got := includeDir(lqpconfig.Config{IncludeRoots: []string{"./from-config"}})
	assert.Equal(t, "./from-config", got)
}

func TestIncludeDir_EmptyWhenNeitherSet(t *testing.T) {
	renderIncludeDir = ""
	assert.Equal(t, "", includeDir(lqpconfig.Config{}))
}
