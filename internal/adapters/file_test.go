package adapters_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"emberwallet/internal/adapters"
	"emberwallet/internal/domain"
)

func TestPathToSlateRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tx1.slate")
	drop := adapters.PathToSlate{Path: path}

	require.NoError(t, drop.PutTx(domain.Slate(testSlate)))

	back, err := drop.GetTx()
	require.NoError(t, err)
	require.Equal(t, testSlate, string(back), "file drop must be byte-identical")
}

func TestPathToSlateMissingFile(t *testing.T) {
	drop := adapters.PathToSlate{Path: filepath.Join(t.TempDir(), "absent.slate")}
	_, err := drop.GetTx()
	require.ErrorIs(t, err, domain.ErrIO)
}

func TestPathToSlateInvalidContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.slate")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o600))

	drop := adapters.PathToSlate{Path: path}
	_, err := drop.GetTx()
	require.ErrorIs(t, err, domain.ErrEncoding)
}
