package utils

import (
	"testing"

	"github.com/mogaika/gltf_scene_browser/config"
)

func TestDecodeLegacyName(t *testing.T) {
	if err := config.SetEncoding("Windows 1251"); err != nil {
		t.Fatalf("Failed to set encoding: %v", err)
	}
	defer config.SetEncoding("Windows 1252")

	cases := []struct {
		in   string
		want string
	}{
		{in: "plain", want: "plain"},
		{in: "уже юникод", want: "уже юникод"},
		// cp1251 "шлем" with a trailing NUL from a fixed size field
		{in: "\xf8\xeb\xe5\xec\x00junk", want: "шлем"},
		{in: "", want: ""},
	}

	for _, c := range cases {
		if got := DecodeLegacyName(c.in); got != c.want {
			t.Errorf("DecodeLegacyName(%q) = %q, expected %q", c.in, got, c.want)
		}
	}
}
