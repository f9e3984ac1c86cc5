package pipeline

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/collage/pkg/errors"
	"github.com/matzehuels/collage/pkg/observability"
	"github.com/matzehuels/collage/pkg/render"
	"github.com/matzehuels/collage/pkg/render/sink"
)

// Render writes the scene in every requested format. Formats render
// concurrently; the scene is only read.
func (r *Runner) Render(ctx context.Context, scene *render.Scene, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	start := time.Now()
	observability.Render().OnRenderStart(ctx, opts.Formats)

	outputs := make([][]byte, len(opts.Formats))
	g, gctx := errgroup.WithContext(ctx)
	for i, format := range opts.Formats {
		g.Go(func() (err error) {
			defer func() {
				if p := recover(); p != nil {
					err = errors.New(errors.ErrCodeInternal, "render %s: %v", format, p)
				}
			}()
			if err := gctx.Err(); err != nil {
				return err
			}
			data, err := RenderFormat(scene, format, opts)
			if err != nil {
				return err
			}
			outputs[i] = data
			opts.Logger.Debug("rendered format", "format", format, "bytes", len(data))
			return nil
		})
	}
	err := g.Wait()
	observability.Render().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for i, format := range opts.Formats {
		artifacts[format] = outputs[i]
	}
	return artifacts, nil
}

// RenderFormat writes the scene in a single format.
func RenderFormat(scene *render.Scene, format string, opts Options) ([]byte, error) {
	switch format {
	case render.FormatSVG:
		svgOpts := []sink.SVGOption{sink.WithTitle(scene.Config.Name)}
		if opts.Images {
			svgOpts = append(svgOpts, sink.WithImageLinks())
		}
		return sink.RenderSVG(scene, svgOpts...), nil
	case render.FormatPNG:
		scale := opts.Scale
		if scale == 0 {
			scale = DefaultScale
		}
		return sink.RenderPNG(scene, sink.WithScale(scale))
	case render.FormatJSON:
		data, err := sink.RenderJSON(scene)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "render json")
		}
		return data, nil
	case render.FormatTerminal:
		return []byte(sink.RenderTerminal(scene, opts.TermWidth)), nil
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q", format)
}
