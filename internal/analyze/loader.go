package analyze

import (
	"errors"
	"fmt"
	"go/token"
	"go/types"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/tools/go/packages"

	"type-duplicate/internal/common"
	"type-duplicate/internal/diagnostic"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports |
	packages.NeedDeps

// listMode is enough to find the files of a package without type-checking it.
const listMode = packages.NeedName | packages.NeedFiles

// Loader loads Go packages and collects their annotated type definitions.
type Loader struct {
	// OutputFile is the base name of generated files. Existing copies are
	// replaced by an empty package clause while loading, so stale output never
	// takes part in analysis.
	OutputFile string
	// Dir is the directory patterns are resolved in. Empty means the current one.
	Dir string
}

// NewLoader creates a new Loader that masks generated files named outputFile.
func NewLoader(outputFile string) *Loader {
	return &Loader{OutputFile: outputFile}
}

// Load loads the specified packages and classifies every annotated type.
// Patterns are standard Go package patterns (e.g., "./store", "type-duplicate/warehouse").
//
// Type-check errors are reported as warnings: code referring to not yet
// generated names must not prevent generation. Listing and parse errors are
// returned as an error.
func (l *Loader) Load(patterns ...string) ([]*PackageInfo, diagnostic.Diagnostics, error) {
	var diags diagnostic.Diagnostics

	overlay, err := l.maskGenerated(patterns)
	if err != nil {
		return nil, diags, err
	}

	cfg := &packages.Config{
		Mode:    LoadMode,
		Dir:     l.Dir,
		Overlay: overlay,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, diags, fmt.Errorf("failed to load packages: %w", err)
	}

	errs := packageErrors(pkgs, &diags)
	if len(errs) > 0 {
		return nil, diags, fmt.Errorf("package errors: %v", errs)
	}

	infos := make([]*PackageInfo, 0, len(pkgs))

	// Process each package
	for _, pkg := range pkgs {
		info, d := l.processPackage(pkg)
		diags.Merge(d)

		if info != nil {
			infos = append(infos, info)
		}
	}

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Path < infos[j].Path
	})

	return infos, diags, nil
}

// maskGenerated lists the packages and returns an overlay blanking out
// previously generated files.
func (l *Loader) maskGenerated(patterns []string) (map[string][]byte, error) {
	if l.OutputFile == "" {
		return nil, nil
	}

	pkgs, err := packages.Load(&packages.Config{Mode: listMode, Dir: l.Dir}, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to list packages: %w", err)
	}

	overlay := make(map[string][]byte)

	for _, pkg := range pkgs {
		for _, f := range pkg.GoFiles {
			if filepath.Base(f) != l.OutputFile {
				continue
			}

			common.Logger().Debug("masking generated file", zap.String("file", f))
			overlay[f] = []byte("package " + pkg.Name + "\n")
		}
	}

	return overlay, nil
}

// processPackage extracts annotated types from a loaded package.
func (l *Loader) processPackage(pkg *packages.Package) (*PackageInfo, diagnostic.Diagnostics) {
	var diags diagnostic.Diagnostics

	if pkg.Types == nil || len(pkg.GoFiles) == 0 {
		return nil, diags
	}

	info := &PackageInfo{
		Path:  pkg.PkgPath,
		Name:  pkg.Name,
		Dir:   filepath.Dir(pkg.GoFiles[0]),
		Types: pkg.Types,
		Fset:  pkg.Fset,
	}

	for _, file := range pkg.Syntax {
		diags.Merge(CheckDirectives(pkg.Fset, file))

		for _, spec := range FindAnnotated(file) {
			obj, ok := pkg.TypesInfo.Defs[spec.Name].(*types.TypeName)
			if !ok {
				continue
			}

			def, err := Classify(pkg.Fset, spec, obj)
			if err != nil {
				var se *ShapeError
				if !errors.As(err, &se) {
					se = &ShapeError{Type: obj.Name(), Pos: pkg.Fset.Position(obj.Pos()), Reason: err.Error()}
				}

				diags.AddError(se.Pos, diagnostic.CodeUnsupportedShape, se.Reason, se.Type, "")

				continue
			}

			for _, blank := range def.Skipped {
				diags.AddInfo(blank.Span, diagnostic.CodeBlankField,
					"blank field cannot be addressed and is not measured",
					def.ID.Name, FieldPath(def.ID.Name, blank.Accessor))
			}

			common.Logger().Debug("classified type",
				zap.Stringer("type", def.ID),
				zap.Stringer("shape", def.Shape.Kind),
				zap.Int("fields", def.Shape.Len()))

			info.Defs = append(info.Defs, def)
		}
	}

	return info, diags
}

// parsePosition parses the "file:line:col" form used by packages.Error.
func parsePosition(s string) token.Position {
	var pos token.Position

	parts := strings.Split(s, ":")
	// Walk back over up to two numeric components; the rest is the filename.
	nums := 0
	for nums < 2 && len(parts)-nums > 1 {
		if _, err := strconv.Atoi(parts[len(parts)-1-nums]); err != nil {
			break
		}
		nums++
	}

	pos.Filename = strings.Join(parts[:len(parts)-nums], ":")

	switch nums {
	case 2:
		pos.Line, _ = strconv.Atoi(parts[len(parts)-2])
		pos.Column, _ = strconv.Atoi(parts[len(parts)-1])
	case 1:
		pos.Line, _ = strconv.Atoi(parts[len(parts)-1])
	}

	return pos
}

// packageErrors returns the load errors that stop generation. Type errors
// become warnings since the generated names are missing before the first run.
func packageErrors(pkgs []*packages.Package, diags *diagnostic.Diagnostics) []error {
	var errs []error
	for _, pkg := range pkgs {
		typeErrs := hasTypeErrors(pkg)
		for _, e := range pkg.Errors {
			// go list repeats compile failures that type-checking already reported.
			if e.Kind == packages.ListError && typeErrs && strings.HasPrefix(e.Msg, "# ") {
				common.Logger().Debug("dropping compile error",
					zap.String("package", pkg.PkgPath),
					zap.String("error", e.Msg))

				continue
			}
			if e.Kind == packages.TypeError {
				common.Logger().Debug("tolerating type error",
					zap.String("package", pkg.PkgPath),
					zap.String("error", e.Msg))
				diags.AddWarning(parsePosition(e.Pos), diagnostic.CodeTypeCheck, e.Msg, "", "")

				continue
			}

			errs = append(errs, e)
		}
	}

	return errs
}

func hasTypeErrors(pkg *packages.Package) bool {
	for _, e := range pkg.Errors {
		if e.Kind == packages.TypeError {
			return true
		}
	}

	return false
}
