package cmd

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	assert.Equal(t, "reviewlens", rootCmd.Use)
	assert.True(t, rootCmd.SilenceErrors)
	assert.True(t, rootCmd.SilenceUsage)
}

func TestSubcommandsRegistered(t *testing.T) {
	expected := []string{"split", "load", "report", "setup", "version"}

	registered := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		registered[c.Name()] = true
	}

	for _, name := range expected {
		assert.True(t, registered[name], "command %s not registered", name)
	}
}

func TestSplitCommandFlags(t *testing.T) {
	defined := make(map[string]bool)
	splitCmd.Flags().VisitAll(func(f *pflag.Flag) {
		defined[f.Name] = true
	})

	for _, name := range []string{"chunks", "lines-per-chunk", "out", "prefix"} {
		require.True(t, defined[name], "flag %s missing", name)
	}
}

func TestReportCommandFlags(t *testing.T) {
	for _, name := range []string{"report", "limit", "refresh-udf"} {
		require.NotNil(t, reportCmd.Flags().Lookup(name), "flag %s missing", name)
	}
}
