package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/matzehuels/arborheat/pkg/errors"
	"github.com/matzehuels/arborheat/pkg/pipeline"
	"github.com/matzehuels/arborheat/pkg/scene"
)

// writeArtifacts writes each rendered format to base.<format>.
func writeArtifacts(ctx context.Context, artifacts map[string][]byte, formats []string, base string) ([]string, error) {
	logger := loggerFromContext(ctx)
	var paths []string
	for _, format := range formats {
		data, ok := artifacts[format]
		if !ok {
			continue
		}
		path := base + "." + format
		if err := writeFile(path, data); err != nil {
			return paths, err
		}
		logger.Debugf("Wrote %s: %d bytes", path, len(data))
		paths = append(paths, path)
	}
	return paths, nil
}

// writeFile validates path and writes data to it.
func writeFile(path string, data []byte) error {
	if err := errors.ValidateOutputPath(path); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// requireFile fails with FILE_NOT_FOUND unless path names an existing file.
func requireFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Wrap(errors.ErrCodeFileNotFound, err, "%s", path)
		}
		return err
	}
	if info.IsDir() {
		return errors.New(errors.ErrCodeInvalidPath, "%s is a directory", path)
	}
	return nil
}

// animate rotates s into output with a spinner showing frame progress.
func (c *CLI) animate(ctx context.Context, runner *pipeline.Runner, s *scene.Scene, output string, opts pipeline.Options) error {
	if err := errors.ValidateOutputPath(output); err != nil {
		return err
	}

	spinner := newSpinnerWithContext(ctx, "Rendering frames...")
	restore := trackEncoding(spinner)
	defer restore()
	spinner.Start()

	prog := newProgress(c.Logger)
	if err := runner.Animate(ctx, s, output, opts); err != nil {
		spinner.StopWithError("Movie failed")
		if errors.Is(err, errors.ErrCodeExternalTool) {
			dir := opts.Movie.Dir
			if dir == "" {
				dir = filepath.Dir(output)
			}
			printDetail("frames kept in %s", dir)
		}
		return fmt.Errorf("movie: %w", err)
	}
	spinner.StopWithSuccess(fmt.Sprintf("Encoded %d frames", opts.Movie.Angles))
	prog.done("Encoded", "output", output, "frames", opts.Movie.Angles)
	printFile(output)
	return nil
}
