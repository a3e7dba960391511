// Package formdata decodes multipart/form-data bodies that are already held in
// memory.
//
// The decoder scans for literal boundary markers instead of streaming, which
// keeps binary file content byte-exact and tolerates bare-LF line endings sent
// by some spreadsheet export tools.
package formdata

import (
	"bytes"
	"strings"
)

// Part is one decoded form field.
type Part struct {
	Name     string
	Filename string
	// HasFilename distinguishes file parts from text fields even when the
	// client sent an empty filename.
	HasFilename bool
	Content     []byte
	Value       string
}

// IsFile reports whether the part carried a filename.
func (p Part) IsFile() bool { return p.HasFilename }

// Form maps field names to parts. When a name repeats the last part wins.
type Form map[string]Part

// File returns the named part if it is a file part.
func (f Form) File(name string) (Part, bool) {
	p, ok := f[name]
	if !ok || !p.IsFile() {
		return Part{}, false
	}
	return p, true
}

// Value returns the trimmed text of the named field, or "" when absent.
func (f Form) Value(name string) string {
	return f[name].Value
}

// BoundaryFromContentType extracts the boundary parameter from a
// multipart/form-data Content-Type header value.
func BoundaryFromContentType(contentType string) (string, bool) {
	mediaType, params, _ := strings.Cut(contentType, ";")
	if !strings.EqualFold(strings.TrimSpace(mediaType), "multipart/form-data") {
		return "", false
	}
	for _, param := range strings.Split(params, ";") {
		key, value, found := strings.Cut(strings.TrimSpace(param), "=")
		if !found || !strings.EqualFold(strings.TrimSpace(key), "boundary") {
			continue
		}
		value = strings.Trim(strings.TrimSpace(value), `"`)
		if value == "" {
			return "", false
		}
		return value, true
	}
	return "", false
}

// Decode splits body on "--boundary" markers and returns every well-formed
// part. Sections without a header/body separator or without a name are
// skipped.
func Decode(body []byte, boundary string) Form {
	form := Form{}
	if boundary == "" {
		return form
	}

	marker := []byte("--" + boundary)
	offsets := indexAll(body, marker)
	for i := 0; i+1 < len(offsets); i++ {
		section := body[offsets[i]+len(marker) : offsets[i+1]]
		part, ok := parseSection(section)
		if !ok {
			continue
		}
		form[part.Name] = part
	}
	return form
}

func indexAll(body, marker []byte) []int {
	var offsets []int
	pos := 0
	for {
		idx := bytes.Index(body[pos:], marker)
		if idx < 0 {
			return offsets
		}
		offsets = append(offsets, pos+idx)
		pos += idx + len(marker)
	}
}

func parseSection(section []byte) (Part, bool) {
	// The closing marker is "--boundary--"; anything after it is epilogue.
	if bytes.HasPrefix(section, []byte("--")) {
		return Part{}, false
	}
	section = trimLeadingNewline(section)

	headerEnd, sepLen := headerSeparator(section)
	if headerEnd < 0 {
		return Part{}, false
	}
	headers := string(section[:headerEnd])
	content := trimTrailingNewline(section[headerEnd+sepLen:])

	name, filename, hasFilename := disposition(headers)
	if name == "" {
		return Part{}, false
	}

	if hasFilename {
		raw := make([]byte, len(content))
		copy(raw, content)
		return Part{Name: name, Filename: filename, HasFilename: true, Content: raw}, true
	}
	return Part{Name: name, Value: strings.TrimSpace(string(content))}, true
}

// headerSeparator finds the first blank line, accepting CRLF or bare LF.
func headerSeparator(section []byte) (int, int) {
	crlf := bytes.Index(section, []byte("\r\n\r\n"))
	lf := bytes.Index(section, []byte("\n\n"))
	switch {
	case crlf < 0 && lf < 0:
		return -1, 0
	case crlf < 0:
		return lf, 2
	case lf < 0 || crlf < lf:
		return crlf, 4
	default:
		return lf, 2
	}
}

func trimLeadingNewline(b []byte) []byte {
	if bytes.HasPrefix(b, []byte("\r\n")) {
		return b[2:]
	}
	if bytes.HasPrefix(b, []byte("\n")) {
		return b[1:]
	}
	return b
}

func trimTrailingNewline(b []byte) []byte {
	if bytes.HasSuffix(b, []byte("\r\n")) {
		return b[:len(b)-2]
	}
	if bytes.HasSuffix(b, []byte("\n")) {
		return b[:len(b)-1]
	}
	return b
}

// disposition reads name and filename from the Content-Disposition header.
func disposition(headers string) (name, filename string, hasFilename bool) {
	for _, line := range strings.Split(headers, "\n") {
		line = strings.TrimRight(line, "\r")
		key, value, found := strings.Cut(line, ":")
		if !found || !strings.EqualFold(strings.TrimSpace(key), "content-disposition") {
			continue
		}
		for _, param := range splitParams(value) {
			k, v, ok := strings.Cut(param, "=")
			if !ok {
				continue
			}
			v = unquote(strings.TrimSpace(v))
			switch strings.ToLower(strings.TrimSpace(k)) {
			case "name":
				name = v
			case "filename":
				filename, hasFilename = v, true
			}
		}
	}
	return name, filename, hasFilename
}

// splitParams splits on semicolons outside double quotes so filenames may
// contain ';'.
func splitParams(s string) []string {
	var (
		out     []string
		cur     strings.Builder
		inQuote bool
	)
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case ch == '\\' && inQuote && i+1 < len(s):
			cur.WriteByte(ch)
			cur.WriteByte(s[i+1])
			i++
		case ch == '"':
			inQuote = !inQuote
			cur.WriteByte(ch)
		case ch == ';' && !inQuote:
			out = append(out, strings.TrimSpace(cur.String()))
			cur.Reset()
		default:
			cur.WriteByte(ch)
		}
	}
	if rest := strings.TrimSpace(cur.String()); rest != "" {
		out = append(out, rest)
	}
	return out
}

func unquote(v string) string {
	if len(v) >= 2 && v[0] == '"' && v[len(v)-1] == '"' {
		v = v[1 : len(v)-1]
		v = strings.ReplaceAll(v, `\"`, `"`)
		v = strings.ReplaceAll(v, `\\`, `\`)
	}
	return v
}
