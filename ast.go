package main

import "strings"

// NodeKind represents different types of AST nodes
type NodeKind string

const (
	// Expressions
	NodeLiteral  NodeKind = "NodeLiteral"
	NodeGrouping NodeKind = "NodeGrouping"
	NodeUnary    NodeKind = "NodeUnary"
	NodeBinary   NodeKind = "NodeBinary"
	NodeLogical  NodeKind = "NodeLogical"
	NodeVariable NodeKind = "NodeVariable"
	NodeAssign   NodeKind = "NodeAssign"
	NodeCall     NodeKind = "NodeCall"

	// Statements
	NodeExprStmt NodeKind = "NodeExprStmt"
	NodePrint    NodeKind = "NodePrint"
	NodeVar      NodeKind = "NodeVar"
	NodeBlock    NodeKind = "NodeBlock"
	NodeIf       NodeKind = "NodeIf"
	NodeWhile    NodeKind = "NodeWhile"
	NodeFunc     NodeKind = "NodeFunc"
	NodeReturn   NodeKind = "NodeReturn"
)

// ASTNode represents a node in the Abstract Syntax Tree.
//
// Children layout by kind:
//
//	NodeGrouping, NodeUnary, NodeAssign,
//	NodeExprStmt, NodePrint:          [operand]
//	NodeBinary, NodeLogical:          [left, right]
//	NodeCall:                         [callee, args...]
//	NodeVar, NodeReturn:              [] or [value]
//	NodeBlock, NodeFunc:              statements
//	NodeIf:                           [test, then] or [test, then, else]
//	NodeWhile:                        [test, body]
type ASTNode struct {
	Kind NodeKind
	// Operator for NodeUnary, NodeBinary, NodeLogical; name for
	// NodeVariable, NodeAssign, NodeVar, NodeFunc; closing paren for
	// NodeCall; keyword otherwise.
	Token Token
	// NodeLiteral:
	Literal Value
	// NodeFunc:
	Params   []Token
	Children []*ASTNode
}

// Name is the identifier a NodeVariable, NodeAssign, NodeVar or NodeFunc
// refers to.
func (n *ASTNode) Name() string {
	return n.Token.Lexeme
}

// ToSExpr converts an AST node to s-expression string representation
func ToSExpr(node *ASTNode) string {
	if node == nil {
		return "<nil>"
	}

	switch node.Kind {
	case NodeLiteral:
		switch v := node.Literal.(type) {
		case nil:
			return "nil"
		case bool:
			if v {
				return "true"
			}
			return "false"
		case float64:
			return "(number " + formatNumber(v) + ")"
		case string:
			return "(string " + quote(v) + ")"
		}
		panic("unexpected literal value: " + Stringify(node.Literal))
	case NodeGrouping:
		return "(group " + ToSExpr(node.Children[0]) + ")"
	case NodeUnary:
		return "(unary " + quote(node.Token.Lexeme) + " " + ToSExpr(node.Children[0]) + ")"
	case NodeBinary, NodeLogical:
		head := "binary"
		if node.Kind == NodeLogical {
			head = "logical"
		}
		left := ToSExpr(node.Children[0])
		right := ToSExpr(node.Children[1])
		return "(" + head + " " + quote(node.Token.Lexeme) + " " + left + " " + right + ")"
	case NodeVariable:
		return "(ident " + quote(node.Name()) + ")"
	case NodeAssign:
		return "(assign " + quote(node.Name()) + " " + ToSExpr(node.Children[0]) + ")"
	case NodeCall:
		return listSExpr("call", node.Children)
	case NodeExprStmt:
		return "(expr " + ToSExpr(node.Children[0]) + ")"
	case NodePrint:
		return "(print " + ToSExpr(node.Children[0]) + ")"
	case NodeVar:
		return listSExpr("var "+quote(node.Name()), node.Children)
	case NodeBlock:
		return listSExpr("block", node.Children)
	case NodeIf:
		return listSExpr("if", node.Children)
	case NodeWhile:
		return listSExpr("while", node.Children)
	case NodeFunc:
		params := make([]string, len(node.Params))
		for i, param := range node.Params {
			params[i] = quote(param.Lexeme)
		}
		head := "fun " + quote(node.Name()) + " (" + strings.Join(params, " ") + ")"
		return listSExpr(head, node.Children)
	case NodeReturn:
		return listSExpr("return", node.Children)
	default:
		return ""
	}
}

// ProgramToSExpr renders each top-level statement on its own line.
func ProgramToSExpr(statements []*ASTNode) string {
	lines := make([]string, len(statements))
	for i, stmt := range statements {
		lines[i] = ToSExpr(stmt)
	}
	return strings.Join(lines, "\n")
}

func listSExpr(head string, children []*ASTNode) string {
	var b strings.Builder
	b.WriteString("(")
	b.WriteString(head)
	for _, child := range children {
		b.WriteString(" ")
		b.WriteString(ToSExpr(child))
	}
	b.WriteString(")")
	return b.String()
}

func quote(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return "\"" + s + "\""
}
