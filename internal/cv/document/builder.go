package document

import "strings"

// Constructors drop empty text so a missing optional field suppresses just
// its own line. Containers skip nil children.

func Column(style string, children ...*Node) *Node {
	return container(KindColumn, style, children)
}

func Header(style string, children ...*Node) *Node {
	return container(KindHeader, style, children)
}

// Section returns nil when it has no body, so callers can append
// unconditionally and empty sections disappear.
func Section(style string, heading *Node, body ...*Node) *Node {
	n := container(KindSection, style, body)
	if len(n.Children) == 0 {
		return nil
	}
	n.Children = append([]*Node{heading}, n.Children...)
	return n
}

func Heading(style, text string) *Node {
	return &Node{Kind: KindHeading, Style: style, Text: text}
}

func Label(style, text string) *Node {
	return leaf(KindLabel, style, text)
}

func Text(style, text string) *Node {
	return leaf(KindText, style, text)
}

func Row(style string, children ...*Node) *Node {
	n := container(KindRow, style, children)
	if len(n.Children) == 0 {
		return nil
	}
	return n
}

func List(style string, items ...*Node) *Node {
	n := container(KindList, style, items)
	if len(n.Children) == 0 {
		return nil
	}
	return n
}

func Grid(style string, items ...*Node) *Node {
	n := container(KindGrid, style, items)
	if len(n.Children) == 0 {
		return nil
	}
	return n
}

func Item(style, text string) *Node {
	return leaf(KindItem, style, text)
}

// Group is an untitled block (an experience entry, a contact pair).
func Group(style string, children ...*Node) *Node {
	n := container(KindGroup, style, children)
	if len(n.Children) == 0 {
		return nil
	}
	return n
}

// Ruled inserts a rule line right below a section's heading.
func Ruled(section *Node, style string) *Node {
	if section == nil {
		return nil
	}
	children := make([]*Node, 0, len(section.Children)+1)
	children = append(children, section.Children[0], Rule(style))
	section.Children = append(children, section.Children[1:]...)
	return section
}

func Rule(style string) *Node {
	return &Node{Kind: KindRule, Style: style}
}

func leaf(kind Kind, style, text string) *Node {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	return &Node{Kind: kind, Style: style, Text: text}
}

func container(kind Kind, style string, children []*Node) *Node {
	n := &Node{Kind: kind, Style: style}
	for _, c := range children {
		if c != nil {
			n.Children = append(n.Children, c)
		}
	}
	return n
}
