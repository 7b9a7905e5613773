package adapters

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOnionURL(t *testing.T) {
	onion := strings.Repeat("a", 56)

	cases := []struct {
		in   string
		want string
	}{
		{onion, "http://" + onion + ".onion"},
		{onion + ".onion", "http://" + onion + ".onion"},
		{onion + ":3415", "http://" + onion + ".onion:3415"},
		{onion + ".onion:3415", "http://" + onion + ".onion:3415"},
		{"http://" + onion + ".onion", "http://" + onion + ".onion"},
		{"https://" + onion + ":3415", "https://" + onion + ".onion:3415"},
		{onion + "/v2/foreign", "http://" + onion + ".onion/v2/foreign"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, onionURL(tc.in), "onionURL(%q)", tc.in)
	}
}

func TestIsOnion(t *testing.T) {
	onion := strings.Repeat("a", 56)

	require.True(t, isOnion(onion))
	require.True(t, isOnion(onion+".onion"))
	require.True(t, isOnion(onion+":3415"))
	require.True(t, isOnion("http://"+onion+".onion"))

	require.False(t, isOnion("example.com"))
	require.False(t, isOnion(strings.Repeat("a", 55)))
	require.False(t, isOnion(strings.Repeat("A", 56)))
}
