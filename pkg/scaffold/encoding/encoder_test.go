package encoding_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"github.com/stackvity/pagegen/pkg/scaffold/encoding"
)

const placeholder = "<template>\n  <div>Strona w budowie – dokumenty/pz.vue</div>\n</template>\n"

func TestNewEncoder_UTF8Passthrough(t *testing.T) {
	for _, label := range []string{"", "utf-8", "UTF-8", " utf8 ", "unicode-1-1-utf-8"} {
		enc, err := encoding.NewEncoder(label)
		require.NoError(t, err, "label %q", label)
		assert.Equal(t, encoding.UTF8, enc.Name())

		out, err := enc.Encode([]byte(placeholder))
		require.NoError(t, err)
		assert.Equal(t, placeholder, string(out))
	}
}

func TestNewEncoder_Unknown(t *testing.T) {
	_, err := encoding.NewEncoder("klingon-8")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown encoding")
}

func TestEncode_Windows1250(t *testing.T) {
	enc, err := encoding.NewEncoder("windows-1250")
	require.NoError(t, err)
	assert.Equal(t, "windows-1250", enc.Name())

	out, err := enc.Encode([]byte(placeholder))
	require.NoError(t, err)
	assert.NotEqual(t, placeholder, string(out), "en dash must be re-encoded")

	decoded, err := charmap.Windows1250.NewDecoder().Bytes(out)
	require.NoError(t, err)
	assert.Equal(t, placeholder, string(decoded))
}

func TestEncode_UTF16LE(t *testing.T) {
	enc, err := encoding.NewEncoder("utf-16le")
	require.NoError(t, err)

	out, err := enc.Encode([]byte("abc"))
	require.NoError(t, err)

	decoded, err := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder().Bytes(out)
	require.NoError(t, err)
	assert.Equal(t, "abc", string(decoded))
}

func TestEncode_UnsupportedRune(t *testing.T) {
	enc, err := encoding.NewEncoder("iso-8859-2")
	require.NoError(t, err)

	_, err = enc.Encode([]byte("日本"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot encode content as")
}
