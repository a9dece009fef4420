package driver

import (
	"errors"
	"fmt"

	"shoumei/internal/diag"
	"shoumei/internal/source"
)

// Read loads the lines of a module. Open and decode failures are fatal and
// reported against the whole file.
func (d *Driver) Read(path source.ModulePath) diag.Result[*source.Text] {
	text, err := source.ReadText(d.opts.FileFor(path))
	if err == nil {
		return diag.Ok(text)
	}
	ctx := diag.InFile(path)
	var bad *source.InvalidUTF8Error
	switch {
	case errors.As(err, &bad):
		return diag.Fail[*source.Text](diag.NewError(diag.IOInvalidUTF8, ctx,
			fmt.Sprintf("file contained invalid UTF-8 on line %d", bad.Line)))
	case errors.Is(err, source.ErrCannotOpen):
		return diag.Fail[*source.Text](diag.NewError(diag.IOCannotOpen, ctx, "cannot open file"))
	default:
		return diag.Fail[*source.Text](diag.NewError(diag.IOReadFailed, ctx,
			fmt.Sprintf("cannot read file: %v", err)))
	}
}
