package lang

import (
	"fmt"

	"github.com/xlab/treeprint"
)

// NodeType tags the two AST node shapes.
type NodeType int

const (
	NODE_NUMBER = NodeType(iota)
	NODE_BINARY_OP
)

// BinaryOp is the operator tag stored in binary nodes.
type BinaryOp int

//go:generate go tool stringer -linecomment -type=BinaryOp
const (
	OP_ADD = BinaryOp(iota) // ADD
	OP_SUB                  // SUB
	OP_MUL                  // MUL
	OP_DIV                  // DIV
)

// Node is one AST node. A binary node exclusively owns its two children;
// the tree has no sharing and no cycles.
type Node struct {
	Type  NodeType
	Value int64    // NODE_NUMBER
	Op    BinaryOp // NODE_BINARY_OP
	Left  *Node
	Right *Node
}

// NewNumber creates a number leaf.
func NewNumber(value int64) (n *Node) {
	n = &Node{
		Type:  NODE_NUMBER,
		Value: value,
	}

	return
}

// NewBinary creates a binary-operator node owning both children.
// A nil child is always a caller bug.
func NewBinary(op BinaryOp, left, right *Node) (n *Node) {
	if left == nil || right == nil {
		panic("binary node with nil child")
	}

	n = &Node{
		Type:  NODE_BINARY_OP,
		Op:    op,
		Left:  left,
		Right: right,
	}

	return
}

func (n *Node) label() string {
	if n.Type == NODE_NUMBER {
		return fmt.Sprintf("NUMBER(%d)", n.Value)
	}

	return n.Op.String()
}

func (n *Node) graft(parent treeprint.Tree) {
	if n.Type == NODE_NUMBER {
		parent.AddNode(n.label())
		return
	}

	branch := parent.AddBranch(n.label())
	n.Left.graft(branch)
	n.Right.graft(branch)
}

// Tree renders the subtree for diagnostics.
func (n *Node) Tree() treeprint.Tree {
	tree := treeprint.New()
	tree.SetValue(n.label())

	if n.Type == NODE_BINARY_OP {
		n.Left.graft(tree)
		n.Right.graft(tree)
	}

	return tree
}

// Dump returns the rendered tree as a string.
func (n *Node) Dump() string {
	return n.Tree().String()
}
