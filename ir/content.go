package ir

// IndexOf returns the content index of c among the children of y, or -1.
func (y *Node) IndexOf(c *Node) int {
	if c == nil || c.Parent != y {
		return -1
	}
	for i, yc := range y.Children {
		if yc == c {
			return i
		}
	}
	return -1
}

// AppendChild detaches c from any previous parent and adds it as the last
// child of y.
func (y *Node) AppendChild(c *Node) {
	c.Detach()
	c.Parent = y
	y.Children = append(y.Children, c)
}

// InsertChild detaches c and inserts it at content index i of y. An index
// at or beyond the end appends.
func (y *Node) InsertChild(i int, c *Node) {
	c.Detach()
	if i < 0 {
		i = 0
	}
	if i >= len(y.Children) {
		y.AppendChild(c)
		return
	}
	c.Parent = y
	y.Children = append(y.Children, nil)
	copy(y.Children[i+1:], y.Children[i:])
	y.Children[i] = c
}

// PrependChild inserts c as the first child of y.
func (y *Node) PrependChild(c *Node) {
	y.InsertChild(0, c)
}

// RemoveChild removes c from the children of y and reports whether it was
// found.
func (y *Node) RemoveChild(c *Node) bool {
	i := y.IndexOf(c)
	if i == -1 {
		return false
	}
	y.RemoveChildAt(i)
	return true
}

// RemoveChildAt removes and returns the child at content index i.
func (y *Node) RemoveChildAt(i int) *Node {
	c := y.Children[i]
	copy(y.Children[i:], y.Children[i+1:])
	y.Children[len(y.Children)-1] = nil
	y.Children = y.Children[:len(y.Children)-1]
	c.Parent = nil
	return c
}

// Detach removes y from its parent, if any.
func (y *Node) Detach() {
	if y.Parent == nil {
		return
	}
	y.Parent.RemoveChild(y)
	y.Parent = nil
}
