package convert

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"reflow/notation"
	"reflow/state"
)

// Repair is the action of the repair command: it runs notation repair over
// marked text outside of page processing, which is handy when tuning
// transforms on translator output.
func Repair(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("repair")

	pipeline, err := repairPipeline(cmd.StringSlice("skip"), env.Cfg.Reconcile.RepairPasses)
	if err != nil {
		return err
	}
	if n := cmd.Int("passes"); n > 0 {
		pipeline.WithPasses(n)
	}

	src, dst := cmd.Args().Get(0), cmd.Args().Get(1)
	if cmd.Args().Len() > 2 {
		log.Warn("Mailformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	in := io.Reader(os.Stdin)
	if len(src) > 0 && src != "-" {
		f, err := os.Open(src)
		if err != nil {
			return fmt.Errorf("unable to open source: %w", err)
		}
		defer f.Close()
		in = f
	} else {
		src = "STDIN"
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("unable to read source: %w", err)
	}

	repaired := pipeline.Repair(string(data))

	if len(dst) == 0 || dst == "-" {
		_, err = io.WriteString(cmd.Root().Writer, repaired)
		dst = "STDOUT"
	} else {
		err = writeOutput(dst, []byte(repaired), env.Overwrite || cmd.Bool("overwrite"), log)
	}
	if err != nil {
		return fmt.Errorf("unable to write result: %w", err)
	}
	log.Info("Notation repaired", zap.String("from", src), zap.String("to", dst), zap.Bool("changed", repaired != string(data)))
	return nil
}

// repairPipeline returns default pipeline without skipped transforms.
func repairPipeline(skip []string, passes int) (*notation.Pipeline, error) {
	defaults := notation.DefaultTransforms()
	for _, name := range skip {
		if !slices.ContainsFunc(defaults, func(t notation.Transform) bool { return t.Name == name }) {
			return nil, fmt.Errorf("unknown transform %q", name)
		}
	}
	transforms := slices.DeleteFunc(defaults, func(t notation.Transform) bool {
		return slices.Contains(skip, t.Name)
	})
	if len(transforms) == 0 {
		return nil, fmt.Errorf("all transforms were skipped")
	}
	return notation.NewPipeline(transforms...).WithPasses(passes), nil
}

// TransformNames lists names accepted by repair command.
func TransformNames() []string {
	var names []string
	for _, t := range notation.DefaultTransforms() {
		names = append(names, t.Name)
	}
	return names
}
