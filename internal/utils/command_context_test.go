package utils_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/gareth/internal/utils"
)

func TestCommandContextAccessorRoundTrip(t *testing.T) {
	accessor := utils.NewCommandContextAccessor()

	_, available := accessor.ConfigurationSource(context.Background())
	require.False(t, available)

	source := utils.ConfigurationSource{FilePath: "/home/dev/.gareth/config.yaml", EmbeddedDefaults: true}
	executionContext := accessor.WithConfigurationSource(context.Background(), source)

	recorded, available := accessor.ConfigurationSource(executionContext)
	require.True(t, available)
	require.Equal(t, source, recorded)
}

func TestConfigurationSourceDescribe(t *testing.T) {
	testCases := []struct {
		name     string
		source   utils.ConfigurationSource
		expected string
	}{
		{name: "file", source: utils.ConfigurationSource{FilePath: " config.yaml ", EmbeddedDefaults: true}, expected: "config.yaml"},
		{name: "embedded", source: utils.ConfigurationSource{EmbeddedDefaults: true}, expected: "(embedded defaults)"},
		{name: "none", source: utils.ConfigurationSource{}, expected: ""},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			require.Equal(t, testCase.expected, testCase.source.Describe())
		})
	}
}
