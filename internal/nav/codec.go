package nav

import (
	"bytes"
	"fmt"
	"slices"
	"strconv"

	"gopkg.in/yaml.v3"
)

const (
	keyText      = "text"
	keyURL       = "url"
	keyInternal  = "internal"
	keyGenerated = "generated"
	keyRedirect  = "redirect"
	keyChildren  = "children"
)

// canonicalKeys is the order used for keys a node did not carry when read.
var canonicalKeys = []string{keyText, keyURL, keyInternal, keyGenerated, keyRedirect, keyChildren}

// source remembers how a node looked when decoded so that an unchanged
// node encodes to the same YAML. The yaml nodes are never mutated.
type source struct {
	mapping *yaml.Node
	keys    []*yaml.Node
	values  map[string]*yaml.Node
}

func (s *source) has(key string) bool {
	if s == nil {
		return false
	}
	_, ok := s.values[key]
	return ok
}

// UnmarshalYAML decodes a navigation entry mapping.
func (n *Node) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.AliasNode && value.Alias != nil {
		value = value.Alias
	}
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: navigation entry must be a mapping", value.Line)
	}

	*n = Node{}
	src := &source{mapping: value, values: make(map[string]*yaml.Node, len(value.Content)/2)}
	for i := 0; i+1 < len(value.Content); i += 2 {
		k, v := value.Content[i], value.Content[i+1]
		src.keys = append(src.keys, k)
		src.values[k.Value] = v

		var err error
		switch k.Value {
		case keyText:
			err = decodeScalar(v, &n.Text)
		case keyURL:
			err = decodeScalar(v, &n.URL)
		case keyInternal:
			err = v.Decode(&n.Internal)
		case keyGenerated, keyRedirect:
			var set bool
			if err = v.Decode(&set); err == nil && set {
				n.Kind = KindGenerated
				if k.Value == keyRedirect {
					n.Kind = KindRedirect
				}
			}
		case keyChildren:
			err = v.Decode(&n.Children)
		default:
			if n.Extra == nil {
				n.Extra = make(map[string]*yaml.Node)
			}
			n.Extra[k.Value] = v
		}
		if err != nil {
			return fmt.Errorf("navigation entry %q: key %q: %w", n.Text, k.Value, err)
		}
	}
	n.src = src
	return nil
}

// decodeScalar reads any scalar as its literal text so that labels such
// as `text: 2015` stay strings.
func decodeScalar(v *yaml.Node, dst *string) error {
	if v.Kind == yaml.AliasNode && v.Alias != nil {
		v = v.Alias
	}
	switch {
	case v.Kind != yaml.ScalarNode:
		return fmt.Errorf("line %d: expected a scalar", v.Line)
	case v.Tag == "!!null":
		*dst = ""
	default:
		*dst = v.Value
	}
	return nil
}

// MarshalYAML encodes the node as a mapping. Keys the node was decoded with
// keep their order, followed by new keys in canonical order.
func (n *Node) MarshalYAML() (any, error) {
	return n.yamlNode(), nil
}

func (n *Node) yamlNode() *yaml.Node {
	m := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	if n.src != nil && n.src.mapping != nil {
		m.Style = n.src.mapping.Style
	}

	emitted := make(map[string]bool)
	emit := func(key *yaml.Node) {
		if emitted[key.Value] {
			return
		}
		if v := n.valueNode(key.Value); v != nil {
			m.Content = append(m.Content, uncommented(key), v)
		}
		emitted[key.Value] = true
	}

	if n.src != nil {
		for _, k := range n.src.keys {
			emit(k)
		}
	}
	for _, k := range canonicalKeys {
		emit(strNode(k))
	}
	extra := make([]string, 0, len(n.Extra))
	for k := range n.Extra {
		extra = append(extra, k)
	}
	slices.Sort(extra)
	for _, k := range extra {
		emit(strNode(k))
	}
	return m
}

// valueNode returns the encoded value for key, or nil when the key should
// be omitted.
func (n *Node) valueNode(key string) *yaml.Node {
	switch key {
	case keyText:
		return n.scalar(keyText, n.Text)
	case keyURL:
		if n.URL == "" {
			return nil
		}
		return n.scalar(keyURL, n.URL)
	case keyInternal:
		if !n.Internal && !n.src.has(keyInternal) {
			return nil
		}
		return n.boolean(keyInternal, n.Internal)
	case keyGenerated:
		return n.kindFlag(keyGenerated, KindGenerated)
	case keyRedirect:
		return n.kindFlag(keyRedirect, KindRedirect)
	case keyChildren:
		if len(n.Children) == 0 {
			return nil
		}
		return Tree(n.Children).YAMLNode()
	default:
		if v := n.Extra[key]; v != nil {
			return uncommented(v)
		}
		return nil
	}
}

// scalar reuses the decoded node while its value is unchanged so quoting
// style and comments survive.
func (n *Node) scalar(key, value string) *yaml.Node {
	if n.src != nil {
		if orig := n.src.values[key]; orig != nil && orig.Kind == yaml.ScalarNode && orig.Value == value {
			return uncommented(orig)
		}
	}
	return strNode(value)
}

// kindFlag encodes the flag marking kind. A flag the node was read with
// is kept while its value still agrees with the node's kind, so an
// explicit false survives and a placeholder turned page loses its marker.
func (n *Node) kindFlag(key string, kind Kind) *yaml.Node {
	if n.Kind == kind {
		return n.boolean(key, true)
	}
	if !n.src.has(key) {
		return nil
	}
	orig := n.src.values[key]
	if orig.Kind == yaml.AliasNode && orig.Alias != nil {
		orig = orig.Alias
	}
	if orig.Kind == yaml.ScalarNode {
		var set bool
		if orig.Decode(&set) == nil && !set {
			return uncommented(orig)
		}
	}
	return nil
}

func (n *Node) boolean(key string, value bool) *yaml.Node {
	if n.src != nil {
		if orig := n.src.values[key]; orig != nil && orig.Kind == yaml.ScalarNode {
			var decoded bool
			if orig.Decode(&decoded) == nil && decoded == value {
				return uncommented(orig)
			}
		}
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(value)}
}

// uncommented returns a deep copy of v without comments, anchors or
// aliases. Comments around the navigation section belong to the
// surrounding file, which keeps them.
func uncommented(v *yaml.Node) *yaml.Node {
	if v.Kind == yaml.AliasNode && v.Alias != nil {
		return uncommented(v.Alias)
	}
	c := *v
	c.HeadComment, c.LineComment, c.FootComment = "", "", ""
	c.Anchor = ""
	if len(v.Content) > 0 {
		c.Content = make([]*yaml.Node, len(v.Content))
		for i, child := range v.Content {
			c.Content[i] = uncommented(child)
		}
	}
	return &c
}

func strNode(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

// YAMLNode returns the tree as a yaml sequence node.
func (t Tree) YAMLNode() *yaml.Node {
	seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for _, n := range t {
		seq.Content = append(seq.Content, n.yamlNode())
	}
	return seq
}

// MarshalYAML encodes the tree as a sequence of entries.
func (t Tree) MarshalYAML() (any, error) {
	return t.YAMLNode(), nil
}

// Encode renders the tree in the compact layout Jekyll writes: nested
// sequences start at their key's column. An empty tree renders as nothing.
func (t Tree) Encode() ([]byte, error) {
	return t.EncodeStyle(Style{})
}

// EncodeStyle renders the tree laid out as st describes.
func (t Tree) EncodeStyle(st Style) ([]byte, error) {
	if len(t) == 0 {
		return []byte{}, nil
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(t.YAMLNode()); err != nil {
		_ = enc.Close()
		return nil, fmt.Errorf("encode navigation: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode navigation: %w", err)
	}
	out := buf.String()
	if !st.IndentedChildren {
		out = compactSequences(out)
	}
	return []byte(indentLines(out, st.Indent)), nil
}

// Decode parses a YAML sequence of navigation entries.
func Decode(data []byte) (Tree, error) {
	var t Tree
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("decode navigation: %w", err)
	}
	return t, nil
}
