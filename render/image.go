package render

import (
	"context"

	"github.com/ansigraph/ansigraph/errors"
	"github.com/goccy/go-graphviz"
)

// ImageFormats maps CLI format names to Graphviz output formats.
var ImageFormats = map[string]graphviz.Format{
	"png": graphviz.PNG,
	"svg": graphviz.SVG,
	"jpg": graphviz.JPG,
}

// RenderImage lays out the DOT document and writes an image file. The heavy
// lifting happens inside the graphviz C core go-graphviz embeds; this is the
// only place the tool touches it.
func RenderImage(ctx context.Context, dot []byte, format string, path string) error {
	gvFormat, ok := ImageFormats[format]
	if !ok {
		return errors.Newf("unsupported image format %q", format)
	}

	parsed, err := graphviz.ParseBytes(dot)
	if err != nil {
		return errors.Wrap(err, "failed to parse DOT document")
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to initialize graphviz")
	}
	defer gv.Close()

	if err := gv.RenderFilename(ctx, parsed, gvFormat, path); err != nil {
		return errors.Wrapf(err, "failed to render %s", path)
	}
	return nil
}
