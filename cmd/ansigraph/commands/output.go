package commands

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/ansigraph/ansigraph/config"
	"github.com/ansigraph/ansigraph/gitinfo"
	"github.com/ansigraph/ansigraph/graph"
	"github.com/ansigraph/ansigraph/logger"
	"github.com/ansigraph/ansigraph/render"
)

// writeOutputs writes the DOT file and any configured image renderings,
// announcing each generated file on stdout.
func writeOutputs(ctx context.Context, g *graph.Graph, out *config.OutputConfig, baseName string) error {
	dotPath := filepath.Join(out.Dir, baseName+".dot")
	if err := render.WriteDOT(g, dotPath); err != nil {
		return err
	}
	fmt.Printf("Generated: %s\n", dotPath)

	dot := render.ToDOT(g)
	for _, format := range out.Formats {
		imagePath := filepath.Join(out.Dir, baseName+"."+format)
		if err := render.RenderImage(ctx, dot, format, imagePath); err != nil {
			return err
		}
		fmt.Printf("Generated: %s\n", imagePath)
	}
	return nil
}

// checkoutLabel resolves the git checkout identifier for the diagram title,
// falling back to today's date when the tree is not a git checkout.
func checkoutLabel(dir string) string {
	label, err := gitinfo.CheckoutLabel(dir)
	if err != nil {
		logger.Warnw("no git metadata for title", "dir", dir, "error", err)
		return time.Now().Format("2006-01-02")
	}
	return label
}
