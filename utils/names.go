package utils

import (
	"bytes"
	"unicode/utf8"

	"golang.org/x/text/transform"

	"github.com/mogaika/gltf_scene_browser/config"
)

// DecodeLegacyName repairs node/animation names written by exporters that
// stuffed a single byte encoding into the glTF name field instead of UTF-8.
// Valid UTF-8 passes through untouched.
func DecodeLegacyName(name string) string {
	if utf8.ValidString(name) {
		return name
	}

	bs := []byte(name)
	if n := bytes.IndexByte(bs, 0); n >= 0 {
		bs = bs[:n]
	}

	s, _, err := transform.Bytes(config.GetEncoding().NewDecoder(), bs)
	if err != nil {
		return string(bs)
	}
	return string(s)
}
