package layout

import (
	"io"
	"os"

	jsoniter "github.com/json-iterator/go"

	"git.home.luguber.info/inful/appshell/internal/foundation/errors"
)

// json keeps number literals intact so widths like 120.0 render exactly as captured.
var json = jsoniter.Config{
	EscapeHTML: true,
	UseNumber:  true,
}.Froze()

// Decode reads one layout document. The root must be a JSON object.
func Decode(r io.Reader) (Node, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Node{}, errors.WrapError(err, errors.CategoryFileSystem, "read layout document").Build()
	}
	// Unmarshal, unlike a streaming Decoder, rejects trailing data after the document.
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return Node{}, errors.WrapError(err, errors.CategoryParse, "decode layout document").Build()
	}
	doc := Wrap(v)
	if !doc.IsObject() {
		return Node{}, errors.ParseError("layout document must be a JSON object").Build()
	}
	return doc, nil
}

// Load opens and decodes the layout document at path.
func Load(path string) (Node, error) {
	// #nosec G304 -- path comes from a directory listing the user pointed us at
	f, err := os.Open(path)
	if err != nil {
		return Node{}, errors.WrapError(err, errors.CategoryFileSystem, "open layout document").
			WithContext("path", path).
			Build()
	}
	defer func() { _ = f.Close() }()

	doc, err := Decode(f)
	if err != nil {
		return Node{}, err
	}
	return doc, nil
}
