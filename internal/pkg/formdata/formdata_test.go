package formdata

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testPart struct {
	name     string
	filename string
	isFile   bool
	content  []byte
}

func buildBody(boundary, eol string, parts []testPart) []byte {
	var b bytes.Buffer
	for _, p := range parts {
		b.WriteString("--" + boundary + eol)
		if p.isFile {
			b.WriteString(`Content-Disposition: form-data; name="` + p.name + `"; filename="` + p.filename + `"` + eol)
			b.WriteString("Content-Type: application/octet-stream" + eol)
		} else {
			b.WriteString(`Content-Disposition: form-data; name="` + p.name + `"` + eol)
		}
		b.WriteString(eol)
		b.Write(p.content)
		b.WriteString(eol)
	}
	b.WriteString("--" + boundary + "--" + eol)
	return b.Bytes()
}

func TestDecode_RecoversAllParts(t *testing.T) {
	binary := []byte{0x00, 0xff, '\r', '\n', 0x10, '\n', '\n', 0x7f, 0x80}
	parts := []testPart{
		{name: "file", filename: "march expenses 2026.csv", isFile: true, content: []byte("date,amount\r\n2026-03-01,100\r\n")},
		{name: "notes", content: []byte("  rent, electricity  ")},
		{name: "image", filename: "logo.png", isFile: true, content: binary},
		{name: "outlet", content: []byte("outlet-1")},
	}
	body := buildBody("XyZ123", "\r\n", parts)

	form := Decode(body, "XyZ123")
	require.Len(t, form, len(parts))

	f, ok := form.File("file")
	require.True(t, ok)
	assert.Equal(t, "march expenses 2026.csv", f.Filename)
	assert.Equal(t, parts[0].content, f.Content)

	assert.Equal(t, "rent, electricity", form.Value("notes"))

	img, ok := form.File("image")
	require.True(t, ok)
	assert.Equal(t, binary, img.Content)

	assert.Equal(t, "outlet-1", form.Value("outlet"))
	_, ok = form.File("outlet")
	assert.False(t, ok, "text field is not a file")
}

func TestDecode_BareLF(t *testing.T) {
	parts := []testPart{
		{name: "file", filename: "a.csv", isFile: true, content: []byte("x,y\n1,2")},
		{name: "kind", content: []byte("sales")},
	}
	form := Decode(buildBody("b", "\n", parts), "b")

	require.Len(t, form, 2)
	f, _ := form.File("file")
	assert.Equal(t, []byte("x,y\n1,2"), f.Content)
	assert.Equal(t, "sales", form.Value("kind"))
}

func TestDecode_SkipsMalformedSections(t *testing.T) {
	body := []byte("--bnd\r\n" +
		"Content-Disposition: form-data; name=\"first\"\r\n\r\n" +
		"one\r\n" +
		"--bnd\r\n" +
		"Content-Disposition: form-data\r\n\r\n" +
		"nameless\r\n" +
		"--bnd\r\n" +
		"no separator here\r\n" +
		"--bnd\r\n" +
		"Content-Disposition: form-data; name=\"second\"\r\n\r\n" +
		"two\r\n" +
		"--bnd--\r\n")

	form := Decode(body, "bnd")
	require.Len(t, form, 2)
	assert.Equal(t, "one", form.Value("first"))
	assert.Equal(t, "two", form.Value("second"))
}

func TestDecode_LastOccurrenceWins(t *testing.T) {
	parts := []testPart{
		{name: "tag", content: []byte("first")},
		{name: "tag", content: []byte("second")},
	}
	form := Decode(buildBody("q", "\r\n", parts), "q")
	assert.Equal(t, "second", form.Value("tag"))
}

func TestDecode_TrailingMarkerOnly(t *testing.T) {
	form := Decode([]byte("--q--\r\n"), "q")
	assert.Empty(t, form)

	assert.Empty(t, Decode([]byte("anything"), ""))
}

func TestDecode_EmptyFilenameIsStillFile(t *testing.T) {
	body := []byte("--q\r\nContent-Disposition: form-data; name=\"file\"; filename=\"\"\r\n\r\n\r\n--q--")
	form := Decode(body, "q")
	f, ok := form.File("file")
	require.True(t, ok)
	assert.Empty(t, f.Content)
}

func TestBoundaryFromContentType(t *testing.T) {
	b, ok := BoundaryFromContentType(`multipart/form-data; boundary="----WebKitFormBoundary7MA4YWxk"`)
	require.True(t, ok)
	assert.Equal(t, "----WebKitFormBoundary7MA4YWxk", b)

	b, ok = BoundaryFromContentType("Multipart/Form-Data;charset=utf-8; boundary=abc")
	require.True(t, ok)
	assert.Equal(t, "abc", b)

	_, ok = BoundaryFromContentType("application/json")
	assert.False(t, ok)

	_, ok = BoundaryFromContentType("multipart/form-data")
	assert.False(t, ok)
}
