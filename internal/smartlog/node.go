package smartlog

// TreeNode is a single commit in the rendered tree. Children are kept in
// discovery order: earlier Add calls first, then walk order within a branch
// with the oldest ancestor closest to the shared node.
type TreeNode struct {
	Commit   Commit
	Parent   *TreeNode // upward traversal only, ownership is parent -> children
	Children []*TreeNode
}

func newTreeNode(c Commit) *TreeNode {
	return &TreeNode{Commit: c}
}
