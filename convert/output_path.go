package convert

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"reflow/config"
	"reflow/model"
	"reflow/state"
)

// buildOutputPath returns constructed output file path/name (without
// extension) for a processed page. "src" is path of the page document relative
// to the source, its directory structure is kept on the output. Name comes
// from user-defined template or, when template is empty or fails, from source
// name and page number.
func buildOutputPath(page *model.Page, src, dst string, env *state.LocalEnv) string {
	outDir := filepath.Join(dst, filepath.Dir(src))
	values := templateValues(page, src, env)
	defaultFile := config.CleanFileName(values.Name + "-" + values.Page)

	if env.Cfg.Output.NameTemplate == "" {
		return filepath.Join(outDir, defaultFile)
	}
	expanded, err := expandTemplate(config.OutputNameTemplateFieldName, env.Cfg.Output.NameTemplate, values)
	if err != nil {
		env.Log.Warn("Unable to prepare output filename", zap.Error(err))
		return filepath.Join(outDir, defaultFile)
	}
	expanded = strings.TrimSpace(filepath.FromSlash(expanded))
	if expanded == "" {
		return filepath.Join(outDir, defaultFile)
	}
	return assemblePathWithSubdirs(outDir, expanded)
}

func templateValues(page *model.Page, src string, env *state.LocalEnv) Values {
	base := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
	name := slug.Make(base)
	if name == "" {
		name = "page"
	}
	return Values{
		Name:   name,
		Page:   fmt.Sprintf("%04d", page.Number),
		Number: page.Number,
		Source: base,
		RunID:  env.RunID,
		Format: env.Cfg.Output.Format.String(),
	}
}

// assemblePathWithSubdirs takes an expanded template name (which may contain
// path separators for subdirectories) and assembles it into a full output path,
// cleaning every segment.
func assemblePathWithSubdirs(outDir, expandedName string) string {
	pathSegments := splitAndCleanPath(expandedName)
	if len(pathSegments) == 0 {
		return outDir
	}

	dirParts := make([]string, 0, len(pathSegments)+1)
	dirParts = append(dirParts, outDir)
	for _, segment := range pathSegments {
		if segment == "." || segment == ".." {
			continue
		}
		dirParts = append(dirParts, config.CleanFileName(segment))
	}
	return filepath.Join(dirParts...)
}

func splitAndCleanPath(path string) []string {
	path = strings.TrimSuffix(path, string(os.PathSeparator))
	segments := make([]string, 0, 8)

	for head, tail := filepath.Split(path); tail != ""; head, tail = filepath.Split(head) {
		segments = slices.Insert(segments, 0, tail)
		head = strings.TrimSuffix(head, string(os.PathSeparator))
		if head == "" {
			break
		}
	}
	return segments
}
