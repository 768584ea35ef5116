package ecs

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/antchfx/xmlquery"
)

// NodeKind tags the variant held by a Node
type NodeKind int

const (
	ScalarNode NodeKind = iota
	ListNode
	MapNode
)

// Node is one value of the decoded response tree. Scalars hold text and
// attributes, maps hold named children, lists hold repeated siblings.
type Node struct {
	Kind   NodeKind
	Name   string
	Text   string
	Attrs  map[string]string
	Fields map[string]*Node
	Items  []*Node
}

// ParseTree decodes an XML document into a tree rooted at its document element
func ParseTree(body []byte) (*Node, error) {
	doc, err := xmlquery.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	for n := doc.FirstChild; n != nil; n = n.NextSibling {
		if n.Type == xmlquery.ElementNode {
			return fromXML(n), nil
		}
	}
	return nil, fmt.Errorf("document has no root element")
}

func fromXML(n *xmlquery.Node) *Node {
	node := &Node{Name: n.Data, Attrs: make(map[string]string)}
	for _, attr := range n.Attr {
		node.Attrs[attr.Name.Local] = attr.Value
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != xmlquery.ElementNode {
			continue
		}
		if node.Fields == nil {
			node.Kind = MapNode
			node.Fields = make(map[string]*Node)
		}
		child := fromXML(c)
		existing, ok := node.Fields[c.Data]
		switch {
		case !ok:
			node.Fields[c.Data] = child
		case existing.Kind == ListNode:
			existing.Items = append(existing.Items, child)
		default:
			node.Fields[c.Data] = &Node{Kind: ListNode, Name: c.Data, Items: []*Node{existing, child}}
		}
	}

	if node.Kind == ScalarNode {
		node.Text = strings.TrimSpace(n.InnerText())
	}
	return node
}

// Get walks map fields along path. It returns nil when a step is missing
// or crosses a list.
func (n *Node) Get(path ...string) *Node {
	cur := n
	for _, name := range path {
		if cur == nil || cur.Kind != MapNode {
			return nil
		}
		cur = cur.Fields[name]
	}
	return cur
}

// All returns the elements of a list, or the node itself
func (n *Node) All() []*Node {
	switch {
	case n == nil:
		return nil
	case n.Kind == ListNode:
		return n.Items
	}
	return []*Node{n}
}

// First returns the first element of a list, or the node itself
func (n *Node) First() *Node {
	all := n.All()
	if len(all) == 0 {
		return nil
	}
	return all[0]
}

// Value is the text of a scalar, empty for anything else
func (n *Node) Value() string {
	if n == nil || n.Kind != ScalarNode {
		return ""
	}
	return n.Text
}

func (n *Node) Attr(name string) string {
	if n == nil {
		return ""
	}
	return n.Attrs[name]
}

func (n *Node) IsScalar() bool { return n != nil && n.Kind == ScalarNode }
func (n *Node) IsList() bool   { return n != nil && n.Kind == ListNode }
func (n *Node) IsMap() bool    { return n != nil && n.Kind == MapNode }
