package secretshare_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oarkflow/secretshare"
)

func TestSplitReconstructText(t *testing.T) {
	e := secretshare.New()
	secret := "pässwörd — 秘密 🔑"

	shares, err := e.SplitText(secret, 5, 3)
	require.NoError(t, err)

	got, err := e.ReconstructText(shares[1:4])
	require.NoError(t, err)
	require.Equal(t, secret, got)
}

func TestReconstructTextRejectsInvalidUTF8(t *testing.T) {
	e := secretshare.New()

	// 0xff alone is never valid UTF-8; the byte engine recovers it fine,
	// the text wrapper must refuse it.
	shares, err := e.Split([]byte{0xff, 0xfe}, 2, 2)
	require.NoError(t, err)

	raw, err := e.Reconstruct(shares)
	require.NoError(t, err)
	require.Equal(t, []byte{0xff, 0xfe}, raw)

	_, err = e.ReconstructText(shares)
	require.ErrorIs(t, err, secretshare.ErrInvalidEncoding)
}
