package cli

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
)

func TestCompleteSSLModes(t *testing.T) {
	matches, directive := completeSSLModes(nil, nil, "verify")
	assert.Equal(t, []string{"verify-ca", "verify-full"}, matches)
	assert.Equal(t, cobra.ShellCompDirectiveNoFileComp, directive)
}

func TestCompleteLogFormats(t *testing.T) {
	matches, _ := completeLogFormats(nil, nil, "")
	assert.Equal(t, []string{"console", "json"}, matches)

	matches, _ = completeLogFormats(nil, nil, "j")
	assert.Equal(t, []string{"json"}, matches)
}

func TestCompleteDirectories(t *testing.T) {
	matches, directive := completeDirectories(nil, nil, "")
	assert.Nil(t, matches)
	assert.Equal(t, cobra.ShellCompDirectiveFilterDirs, directive)
}
