package analyze

import (
	"fmt"
	"go/ast"
	"go/token"
	"strings"

	"type-duplicate/internal/diagnostic"
	"type-duplicate/internal/match"
)

// Directive marks a type definition for generation. It must appear in the
// doc comment of the type spec, or of its declaration group.
const Directive = "//dupgen:derive"

// FindAnnotated returns the type specs in file that carry the directive, in
// declaration order.
func FindAnnotated(file *ast.File) []*ast.TypeSpec {
	var specs []*ast.TypeSpec

	for _, decl := range file.Decls {
		gd, ok := decl.(*ast.GenDecl)
		if !ok || gd.Tok != token.TYPE {
			continue
		}

		groupMarked := hasDirective(gd.Doc)

		for _, s := range gd.Specs {
			ts, ok := s.(*ast.TypeSpec)
			if !ok {
				continue
			}

			if groupMarked || hasDirective(ts.Doc) {
				specs = append(specs, ts)
			}
		}
	}

	return specs
}

func hasDirective(cg *ast.CommentGroup) bool {
	if cg == nil {
		return false
	}

	for _, c := range cg.List {
		if isDirective(c.Text) {
			return true
		}
	}

	return false
}

func isDirective(text string) bool {
	text = strings.TrimRight(text, " \t")

	return text == Directive || strings.HasPrefix(text, Directive+" ")
}

// maxDirectiveTypo is the largest edit distance reported as a misspelling.
const maxDirectiveTypo = 2

// CheckDirectives reports comments that are meant as the directive but are
// ignored by FindAnnotated: misspellings, a space after the slashes, and
// directives on anything but a type declaration.
func CheckDirectives(fset *token.FileSet, file *ast.File) diagnostic.Diagnostics {
	var diags diagnostic.Diagnostics

	attached := make(map[*ast.CommentGroup]bool)

	for _, decl := range file.Decls {
		gd, ok := decl.(*ast.GenDecl)
		if !ok || gd.Tok != token.TYPE {
			continue
		}

		attached[gd.Doc] = true

		for _, s := range gd.Specs {
			if ts, ok := s.(*ast.TypeSpec); ok {
				attached[ts.Doc] = true
			}
		}
	}

	for _, cg := range file.Comments {
		for _, c := range cg.List {
			pos := fset.Position(c.Pos())

			if isDirective(c.Text) {
				if !attached[cg] {
					diags.AddWarning(pos, diagnostic.CodeMisplacedDirective,
						Directive+" is only honored in the doc comment of a type declaration", "", "")
				}

				continue
			}

			word, spaced := directiveWord(c.Text)

			switch {
			case word == Directive && spaced:
				diags.AddWarning(pos, diagnostic.CodeUnknownDirective,
					"directives must not have a space after //", "", "")
				diags.Warnings[len(diags.Warnings)-1].Suggestions = []string{Directive}

			case match.Near(word, Directive, maxDirectiveTypo):
				diags.AddWarning(pos, diagnostic.CodeUnknownDirective,
					fmt.Sprintf("unknown directive %s", word), "", "")
				diags.Warnings[len(diags.Warnings)-1].Suggestions = []string{"did you mean " + Directive + "?"}
			}
		}
	}

	return diags
}

// directiveWord returns the first word of a line comment with the slashes
// attached, and whether blanks separated them.
func directiveWord(text string) (string, bool) {
	rest, ok := strings.CutPrefix(text, "//")
	if !ok {
		return "", false
	}

	trimmed := strings.TrimLeft(rest, " \t")

	fields := strings.Fields(trimmed)
	if len(fields) == 0 {
		return "", false
	}

	return "//" + fields[0], len(trimmed) != len(rest)
}
