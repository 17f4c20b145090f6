package convert

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"
	"sort"
	"strings"
	"time"

	"github.com/maruel/natural"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/ianaindex"

	"reflow/archive"
	"reflow/layout"
	"reflow/model"
	"reflow/state"
)

// errPagesFailed is returned when some pages were not processed, details are
// logged per page.
var errPagesFailed = errors.New("some pages were not processed")

// Run is the action of the layout command.
func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("convert")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input source has been specified")
	}
	src, err = filepath.Abs(src)
	if err != nil {
		return err
	}

	dst := cmd.Args().Get(1)
	if len(dst) == 0 {
		if dst, err = os.Getwd(); err != nil {
			return fmt.Errorf("unable to get working directory: %w", err)
		}
	}
	if dst, err = filepath.Abs(dst); err != nil {
		return err
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Mailformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	env.Overwrite, env.NoPreview = cmd.Bool("overwrite"), cmd.Bool("no-preview")
	if cmd.IsSet("engine") {
		if err := env.Cfg.Translator.Engine.UnmarshalText([]byte(cmd.String("engine"))); err != nil {
			return fmt.Errorf("unable to select translation engine: %w", err)
		}
	}

	// Since zip "standard" does not define file name encoding we may need to
	// force archaic code page for old archives
	if cp := cmd.String("force-zip-cp"); len(cp) > 0 {
		enc, cerr := ianaindex.IANA.Encoding(cp)
		if cerr != nil || enc == nil {
			log.Warn("Unknown character set specification. Ignoring...", zap.String("charset", cp), zap.Error(cerr))
		} else {
			env.CodePage = enc
			n, _ := ianaindex.IANA.Name(env.CodePage)
			log.Debug("Forcefully converting all non UTF-8 file names in archives", zap.String("charset", n))
		}
	}

	p, err := NewProcessor(ctx, env)
	if err != nil {
		return fmt.Errorf("unable to prepare processing: %w", err)
	}
	defer func() {
		err = multierr.Append(err, p.Close())
	}()

	log.Info("Processing starting", zap.String("source", src), zap.String("destination", dst), zap.String("run", env.RunID))
	defer func(start time.Time) {
		for _, c := range env.Diag.Summary() {
			log.Info("Diagnostics", zap.Stringer("kind", c.Kind), zap.Int("count", c.N))
		}
		if env.Rpt != nil {
			env.Rpt.StoreData("diagnostics.txt", env.Diag.Dump())
		}
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	return process(ctx, src, dst, p, log)
}

// process determines the input type (directory, archive, path inside of an
// archive or single file) and processes accordingly.
func process(ctx context.Context, src, dst string, p *Processor, log *zap.Logger) error {
	var head, tail string
	for head = src; len(head) != 0; head, tail = filepath.Split(head) {
		if err := ctx.Err(); err != nil {
			return err
		}

		head = strings.TrimSuffix(head, string(filepath.Separator))

		fi, err := os.Stat(head)
		if err != nil {
			// does not exists - probably path in archive
			continue
		}

		if fi.Mode().IsDir() {
			if len(tail) != 0 {
				// directory cannot have tail - it would be simple file
				return fmt.Errorf("input source was not found (%s) => (%s)", head, strings.TrimPrefix(src, head))
			}
			return processDir(ctx, head, dst, p, log)
		}

		if !fi.Mode().IsRegular() {
			return fmt.Errorf("unexpected path mode for (%s) => (%s)", head, strings.TrimPrefix(src, head))
		}

		isArchive, err := isArchiveFile(head)
		if err != nil {
			return fmt.Errorf("unable to check archive type: %w", err)
		}
		if isArchive {
			// we need to look inside to see if path makes sense
			tail = strings.TrimPrefix(strings.TrimPrefix(src, head), string(filepath.Separator))
			return processArchive(ctx, head, filepath.ToSlash(tail), dst, p, log)
		}

		page, err := isPageFile(head)
		if err != nil {
			return fmt.Errorf("unable to check file type: %w", err)
		}
		if page && len(tail) == 0 {
			// single document goes directly to destination
			return processPageFile(ctx, head, filepath.Base(head), dst, p, log)
		}
		return fmt.Errorf("input was not recognized as page document (%s)", head)
	}
	return fmt.Errorf("input source was not found (%s)", src)
}

func processPageFile(ctx context.Context, path, src, dst string, p *Processor, log *zap.Logger) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return processPage(ctx, f, src, dst, p, log)
}

// processDir walks directory tree finding page documents and processes them
// in natural order. Failed pages do not stop processing.
func processDir(ctx context.Context, dir, dst string, p *Processor, log *zap.Logger) error {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err != nil {
			log.Warn("Skipping path", zap.String("path", path), zap.Error(err))
			return nil
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		page, err := isPageFile(path)
		if err != nil {
			log.Warn("Skipping file", zap.String("file", path), zap.Error(err))
			return nil
		}
		if !page {
			log.Debug("Skipping file, not recognized as page document", zap.String("file", path))
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return err
	}
	if len(files) == 0 {
		log.Debug("Nothing to process", zap.String("dir", dir))
		return nil
	}
	sort.Sort(natural.StringSlice(files))

	var failed int
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		src := strings.TrimPrefix(strings.TrimPrefix(path, dir), string(filepath.Separator))
		if err := processPageFile(ctx, path, src, dst, p, log); err != nil {
			log.Error("Unable to process page", zap.String("file", path), zap.Error(err))
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", errPagesFailed, failed, len(files))
	}
	return nil
}

// processArchive processes page documents inside archive under "pathIn".
func processArchive(ctx context.Context, path, pathIn, dst string, p *Processor, log *zap.Logger) error {
	var count, failed int
	err := archive.Walk(path, func(name string) bool {
		return strings.HasPrefix(name, pathIn) && archive.PageDocuments(name)
	}, func(arc string, f *zip.File) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		page, err := isPageInArchive(f)
		if err != nil {
			log.Warn("Skipping file in archive", zap.String("archive", arc), zap.String("path", f.Name), zap.Error(err))
			return nil
		}
		if !page {
			log.Debug("Skipping file, not recognized as page document", zap.String("archive", arc), zap.String("file", f.Name))
			return nil
		}
		count++

		r, err := f.Open()
		if err != nil {
			log.Error("Unable to process page in archive", zap.String("archive", arc), zap.String("file", f.Name), zap.Error(err))
			failed++
			return nil
		}
		defer r.Close()

		if err := processPage(ctx, r, filepath.FromSlash(archiveName(ctx, f, log)), dst, p, log); err != nil {
			log.Error("Unable to process page in archive", zap.String("archive", arc), zap.String("file", f.Name), zap.Error(err))
			failed++
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("unable to process archive: %w", err)
	}
	if count == 0 {
		log.Debug("Nothing to process", zap.String("archive", path))
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", errPagesFailed, failed, count)
	}
	return nil
}

// archiveName returns name of the archive entry, decoding it from forced code
// page when entry is not marked as UTF-8.
func archiveName(ctx context.Context, f *zip.File, log *zap.Logger) string {
	cp := state.EnvFromContext(ctx).CodePage
	if cp == nil || !f.NonUTF8 {
		return f.Name
	}
	n, err := cp.NewDecoder().String(f.Name)
	if err != nil {
		name, _ := ianaindex.IANA.Name(cp)
		log.Warn("Unable to convert archive name from specified encoding",
			zap.String("charset", name), zap.String("path", f.Name), zap.Error(err))
		return f.Name
	}
	return n
}

// processPage processes single page document. "src" is the source path
// relative to the original input (base file name for a single file), "dst" is
// the destination directory.
func processPage(ctx context.Context, r io.Reader, src, dst string, p *Processor, log *zap.Logger) (rerr error) {
	env := state.EnvFromContext(ctx)

	var outputName string
	defer func(start time.Time) {
		// one broken page should not stop the whole book
		if r := recover(); r != nil {
			log.Error("Page processing ended with panic",
				zap.Any("panic", r), zap.Duration("elapsed", time.Since(start)), zap.String("from", src), zap.ByteString("stack", debug.Stack()))
			rerr = fmt.Errorf("page processing panic: %v", r)
		}
		env.Diag.Flush(log)
	}(time.Now())

	page, err := model.ReadPage(r)
	if err != nil {
		return fmt.Errorf("unable to read page document (%s): %w", src, err)
	}

	if timeout := env.Cfg.Output.Timeout; timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	start := time.Now()
	p.Process(ctx, page)

	base := buildOutputPath(page, src, dst, env)
	outputName = base + env.Cfg.Output.Format.Ext()

	var buf bytes.Buffer
	if err := model.WritePage(&buf, page, env.Cfg.Output.Format.String()); err != nil {
		return err
	}
	if err := writeOutput(outputName, buf.Bytes(), env.Overwrite, log); err != nil {
		return err
	}

	if data, err := p.Preview(page); err != nil {
		log.Warn("Unable to render page preview", zap.Int("page", page.Number), zap.Error(err))
	} else if data != nil {
		if err := writeOutput(base+env.Cfg.Output.Preview.Ext(), data, env.Overwrite, log); err != nil {
			return err
		}
	}

	if env.Rpt != nil {
		env.Rpt.StoreData(fmt.Sprintf("pages/%04d-layout.txt", page.Number), layout.Dump(page))
		env.Rpt.StoreData(fmt.Sprintf("pages/%04d%s", page.Number, env.Cfg.Output.Format.Ext()), buf.Bytes())
	}

	log.Info("Page processed",
		zap.Int("page", page.Number),
		zap.Int("blocks", len(page.Blocks)),
		zap.Duration("elapsed", time.Since(start)),
		zap.String("to", outputName))
	return nil
}

func writeOutput(name string, data []byte, overwrite bool, log *zap.Logger) error {
	if _, err := os.Stat(name); err == nil {
		if !overwrite {
			return fmt.Errorf("output file already exists: %s", name)
		}
		log.Warn("Overwriting existing file", zap.String("file", name))
	} else if !os.IsNotExist(err) {
		return err
	} else if err := os.MkdirAll(filepath.Dir(name), 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}
	if err := os.WriteFile(name, data, 0644); err != nil {
		return fmt.Errorf("unable to write %s: %w", name, err)
	}
	return nil
}
