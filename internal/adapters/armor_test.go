package adapters_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"emberwallet/internal/adapters"
	"emberwallet/internal/domain"
)

func TestArmorRoundTrip(t *testing.T) {
	text, err := adapters.Armor(domain.Slate(testSlate))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(text, "BEGINSLATE."))
	require.True(t, strings.HasSuffix(text, ".ENDSLATE."))

	back, err := adapters.Unarmor(text)
	require.NoError(t, err)
	require.Equal(t, testSlate, string(back), "armor must round-trip byte-exactly")
}

func TestArmorSurvivesReflow(t *testing.T) {
	// Manual relay reflows whitespace: extra spaces and line breaks must
	// not affect decoding.
	text, err := adapters.Armor(domain.Slate(testSlate))
	require.NoError(t, err)

	reflowed := strings.ReplaceAll(text, " ", "\n  ")
	back, err := adapters.Unarmor(reflowed)
	require.NoError(t, err)
	require.Equal(t, testSlate, string(back))
}

func TestArmorInvalidSymbol(t *testing.T) {
	text, err := adapters.Armor(domain.Slate(testSlate))
	require.NoError(t, err)

	// '0' is deliberately absent from the alphabet.
	body := strings.TrimSuffix(strings.TrimPrefix(text, "BEGINSLATE."), ".ENDSLATE.")
	mangled := "BEGINSLATE." + "0" + body[1:] + ".ENDSLATE."

	_, err = adapters.Unarmor(mangled)
	require.ErrorIs(t, err, domain.ErrEncoding)
}

func TestArmorChecksumMismatch(t *testing.T) {
	text, err := adapters.Armor(domain.Slate(testSlate))
	require.NoError(t, err)

	// Replace the first symbol with a different alphabet symbol so the
	// payload decodes but no longer matches its checksum.
	body := strings.TrimSuffix(strings.TrimPrefix(text, "BEGINSLATE."), ".ENDSLATE.")
	repl := byte('a')
	if body[0] == 'a' {
		repl = 'b'
	}
	_, err = adapters.Unarmor("BEGINSLATE." + string(repl) + body[1:] + ".ENDSLATE.")
	require.ErrorIs(t, err, domain.ErrEncoding)
}

func TestArmorMissingFrame(t *testing.T) {
	_, err := adapters.Unarmor("just some text")
	require.ErrorIs(t, err, domain.ErrEncoding)
}

func TestArmoredSlatePutGet(t *testing.T) {
	var buf bytes.Buffer
	put := adapters.ArmoredSlate{Out: &buf}
	require.NoError(t, put.PutTx(domain.Slate(testSlate)))

	get := adapters.ArmoredSlate{In: &buf}
	back, err := get.GetTx()
	require.NoError(t, err)
	require.Equal(t, testSlate, string(back))
}
