package phishnet

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFindChromeBinaryPrefersConfigured(t *testing.T) {
	t.Setenv("CHROME_BIN", "/from/env")
	require.Equal(t, "/opt/chrome", findChromeBinary("/opt/chrome"))
	require.Equal(t, "/from/env", findChromeBinary(""))
}

func TestBrowserFetcherCloseWithoutFetch(t *testing.T) {
	f := NewBrowserFetcher(DefaultBaseURL, "/nonexistent/chrome", DefaultTimeout)
	require.NoError(t, f.Close())
}
