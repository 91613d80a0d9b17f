// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"

	"github.com/pdiddy/code-rag/pkg/types"
)

// pythonGrammar returns the tree-sitter grammar; tests replace it to force
// the fallback path.
var pythonGrammar = python.GetLanguage

// parsePythonImports walks a tree-sitter syntax tree for import statements.
// Any failure, including a panic inside the parser binding, is returned as an
// error so the caller can switch to the pattern path.
func parsePythonImports(ctx context.Context, src []byte) (records []types.ImportRecord, err error) {
	defer func() {
		if r := recover(); r != nil {
			records, err = nil, fmt.Errorf("tree-sitter panic: %v", r)
		}
	}()

	lang := pythonGrammar()
	if lang == nil {
		return nil, errors.New("python grammar unavailable")
	}

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(lang)

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("parsing python: %w", err)
	}
	defer tree.Close()

	w := importWalker{src: src}
	w.walk(tree.RootNode())
	return w.records, nil
}

type importWalker struct {
	src     []byte
	records []types.ImportRecord
}

func (w *importWalker) text(n *sitter.Node) string {
	return string(w.src[n.StartByte():n.EndByte()])
}

func (w *importWalker) walk(node *sitter.Node) {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		switch child.Type() {
		case "import_statement":
			w.plainImport(child)
		case "import_from_statement":
			w.fromImport(child)
		case "future_import_statement":
			w.futureImport(child)
		default:
			w.walk(child)
		}
	}
}

// plainImport records the first name of "import a [as b][, c]".
func (w *importWalker) plainImport(node *sitter.Node) {
	if node.NamedChildCount() == 0 {
		return
	}
	rec := types.ImportRecord{
		Kind:         types.ImportPlain,
		OriginalText: strings.TrimSpace(w.text(node)),
	}
	first := node.NamedChild(0)
	if first.Type() == "aliased_import" {
		rec.Module, rec.Alias = w.aliased(first)
	} else {
		rec.Module = w.text(first)
	}
	w.records = append(w.records, rec)
}

func (w *importWalker) fromImport(node *sitter.Node) {
	module := node.ChildByFieldName("module_name")
	if module == nil {
		return
	}
	w.appendFrom(node, w.text(module), module)
}

// futureImport records "from __future__ import a" like any other from-import.
// The grammar gives the statement its own node without a module_name field.
func (w *importWalker) futureImport(node *sitter.Node) {
	w.appendFrom(node, "__future__", nil)
}

func (w *importWalker) appendFrom(node *sitter.Node, module string, moduleNode *sitter.Node) {
	rec := types.ImportRecord{
		Kind:         types.ImportFrom,
		Module:       module,
		OriginalText: strings.TrimSpace(w.text(node)),
	}
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if moduleNode != nil && child.StartByte() == moduleNode.StartByte() {
			continue
		}
		switch child.Type() {
		case "dotted_name":
			rec.Members = append(rec.Members, types.ImportMember{Name: w.text(child)})
		case "aliased_import":
			name, alias := w.aliased(child)
			rec.Members = append(rec.Members, types.ImportMember{Name: name, Alias: alias})
		case "wildcard_import":
			rec.Members = append(rec.Members, types.ImportMember{Name: "*"})
		}
	}
	w.records = append(w.records, rec)
}

func (w *importWalker) aliased(node *sitter.Node) (name, alias string) {
	if n := node.ChildByFieldName("name"); n != nil {
		name = w.text(n)
	}
	if a := node.ChildByFieldName("alias"); a != nil {
		alias = w.text(a)
	}
	return name, alias
}
