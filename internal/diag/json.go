package diag

import (
	"fmt"

	"github.com/orbitlang/orbitc/internal/semantic"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

// ToJSON renders diagnostics as a pretty-printed JSON array, one object
// per diagnostic with kind/severity/message/line/column fields, for the
// driver's --json mode. Built with sjson for assembly and pretty for
// formatting, the same tidwall family go-snaps carries transitively.
func ToJSON(diags []semantic.Diagnostic) ([]byte, error) {
	doc := "[]"
	var err error
	for i, d := range diags {
		path := func(field string) string { return fmt.Sprintf("%d.%s", i, field) }
		if doc, err = sjson.Set(doc, path("kind"), string(d.Kind)); err != nil {
			return nil, err
		}
		if doc, err = sjson.Set(doc, path("severity"), d.Severity.String()); err != nil {
			return nil, err
		}
		if doc, err = sjson.Set(doc, path("message"), d.Message); err != nil {
			return nil, err
		}
		if doc, err = sjson.Set(doc, path("line"), d.Pos.Line); err != nil {
			return nil, err
		}
		if doc, err = sjson.Set(doc, path("column"), d.Pos.Column); err != nil {
			return nil, err
		}
	}
	return pretty.Pretty([]byte(doc)), nil
}
