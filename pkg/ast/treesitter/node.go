package treesitter

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/halcyonlabs/prism/pkg/ast"
)

// node adapts a tree-sitter node to ast.Node. The wrapped tree and source
// belong to the owning file and must outlive the node.
type node struct {
	n *sitter.Node
	f *file
}

func wrap(n *sitter.Node, f *file) ast.Node {
	if n == nil {
		return nil
	}
	return &node{n: n, f: f}
}

// text extracts the source text for a raw tree-sitter node.
func text(n *sitter.Node, src []byte) string {
	if n == nil {
		return ""
	}
	start, end := n.StartByte(), n.EndByte()
	if start > end || end > uint32(len(src)) {
		return ""
	}
	return string(src[start:end])
}

func (nd *node) Kind() string {
	return nd.n.Type()
}

func (nd *node) Text() string {
	return text(nd.n, nd.f.src)
}

func (nd *node) Range() (uint32, uint32) {
	return nd.n.StartByte(), nd.n.EndByte()
}

func (nd *node) Parent() ast.Node {
	p := nd.n.Parent()
	if p == nil {
		return nil
	}
	return wrap(p, nd.f)
}

func (nd *node) ChildCount() int {
	return int(nd.n.NamedChildCount())
}

func (nd *node) Child(i int) ast.Node {
	return wrap(nd.n.NamedChild(i), nd.f)
}

func (nd *node) IsIdentifier() bool {
	switch nd.n.Type() {
	case "identifier", "type_identifier", "shorthand_property_identifier":
		return true
	}
	return false
}

func (nd *node) IsPropertyAccess() bool {
	t := nd.n.Type()
	return t == "member_expression" || t == "subscript_expression"
}

func (nd *node) IsPropertyPosition() bool {
	if nd.n.Type() == "property_identifier" {
		return true
	}
	parent := nd.n.Parent()
	if parent == nil {
		return false
	}
	switch parent.Type() {
	case "member_expression":
		prop := parent.ChildByFieldName("property")
		return prop != nil && prop.StartByte() == nd.n.StartByte() && prop.EndByte() == nd.n.EndByte()
	case "nested_type_identifier", "nested_identifier":
		// The rightmost segment of ns.Foo is a member, the left is the base.
		first := parent.NamedChild(0)
		return first != nil && first.StartByte() != nd.n.StartByte()
	}
	return false
}

// typeContextKinds are ancestor kinds that put a node in type position.
var typeContextKinds = map[string]bool{
	"type_annotation":     true,
	"type_arguments":      true,
	"type_parameters":     true,
	"extends_type_clause": true,
	"implements_clause":   true,
	"class_heritage":      true,
	"extends_clause":      true,
	"object_type":         true,
	"interface_body":      true,
	"index_signature":     true,
	"type_predicate":      true,
	"type_query":          true,
	"index_type_query":    true,
	"constraint":          true,
	"default_type":        true,
	"asserts":             true,
}

// typeBoundaryKinds stop the upward search; reaching one of these without a
// type context means the node is a value position.
var typeBoundaryKinds = map[string]bool{
	"statement_block":       true,
	"program":               true,
	"expression_statement":  true,
	"variable_declarator":   true,
	"arguments":             true,
	"return_statement":      true,
	"call_expression":       true,
	"new_expression":        true,
	"binary_expression":     true,
	"assignment_expression": true,
}

func (nd *node) IsTypePosition() bool {
	for p := nd.n.Parent(); p != nil; p = p.Parent() {
		t := p.Type()
		if typeContextKinds[t] {
			return true
		}
		if t == "type_alias_declaration" {
			// Everything under the alias value is a type expression; the
			// alias's own name identifier is not.
			name := p.ChildByFieldName("name")
			if name == nil || name.StartByte() != nd.n.StartByte() {
				return true
			}
			return false
		}
		if typeBoundaryKinds[t] {
			return false
		}
	}
	return false
}

// functionLikeKinds introduce a parameter scope.
var functionLikeKinds = map[string]bool{
	"function_declaration":           true,
	"generator_function_declaration": true,
	"function":                       true,
	"function_expression":            true,
	"generator_function":             true,
	"arrow_function":                 true,
	"method_definition":              true,
	"function_signature":             true,
}

func (nd *node) IsFunctionLike() bool {
	return functionLikeKinds[nd.n.Type()]
}

func (nd *node) IsVariableDeclaration() bool {
	t := nd.n.Type()
	return t == "lexical_declaration" || t == "variable_declaration"
}

func (nd *node) FunctionParameters() []string {
	if !nd.IsFunctionLike() {
		return nil
	}
	return parameterNames(nd.n, nd.f.src)
}

// parameterNames collects the binding identifiers of a function-like node.
func parameterNames(fn *sitter.Node, src []byte) []string {
	var names []string

	// Arrow functions with a single bare parameter.
	if param := fn.ChildByFieldName("parameter"); param != nil {
		collectBindingNames(param, src, &names)
		return names
	}

	params := fn.ChildByFieldName("parameters")
	if params == nil {
		return nil
	}
	for i := 0; i < int(params.NamedChildCount()); i++ {
		p := params.NamedChild(i)
		if pattern := p.ChildByFieldName("pattern"); pattern != nil {
			collectBindingNames(pattern, src, &names)
			continue
		}
		collectBindingNames(p, src, &names)
	}
	return names
}

// collectBindingNames gathers identifiers bound by a parameter or
// destructuring pattern, skipping type annotations and default values.
func collectBindingNames(n *sitter.Node, src []byte, out *[]string) {
	switch n.Type() {
	case "identifier", "shorthand_property_identifier_pattern":
		*out = append(*out, text(n, src))
		return
	case "type_annotation":
		return
	}
	// Inside pair_pattern {key: binding} only the value side binds.
	if n.Type() == "pair_pattern" {
		if v := n.ChildByFieldName("value"); v != nil {
			collectBindingNames(v, src, out)
		}
		return
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		collectBindingNames(n.NamedChild(i), src, out)
	}
}

// bindingIdentifiers returns the identifier nodes bound by a pattern.
func bindingIdentifiers(n *sitter.Node) []*sitter.Node {
	var out []*sitter.Node
	var visit func(n *sitter.Node)
	visit = func(n *sitter.Node) {
		switch n.Type() {
		case "identifier", "shorthand_property_identifier_pattern":
			out = append(out, n)
			return
		case "type_annotation":
			return
		case "pair_pattern":
			if v := n.ChildByFieldName("value"); v != nil {
				visit(v)
			}
			return
		}
		for i := 0; i < int(n.NamedChildCount()); i++ {
			visit(n.NamedChild(i))
		}
	}
	visit(n)
	return out
}

func (nd *node) DeclaredNames() []string {
	if !nd.IsVariableDeclaration() {
		return nil
	}
	var names []string
	for i := 0; i < int(nd.n.NamedChildCount()); i++ {
		c := nd.n.NamedChild(i)
		if c.Type() != "variable_declarator" {
			continue
		}
		if name := c.ChildByFieldName("name"); name != nil {
			collectBindingNames(name, nd.f.src, &names)
		}
	}
	return names
}

func (nd *node) InnerFunctionName() string {
	switch nd.n.Type() {
	case "function_declaration", "generator_function_declaration":
		return text(nd.n.ChildByFieldName("name"), nd.f.src)
	}
	return ""
}
