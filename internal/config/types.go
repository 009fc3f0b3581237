package config

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/alexisbeaulieu97/taxon/internal/taxonomy"
)

// Document is a taxonomy file as written on disk.
type Document struct {
	Version     string     `yaml:"version" validate:"required,semver"`
	Name        string     `yaml:"name" validate:"required,min=1,max=100"`
	Description string     `yaml:"description,omitempty" validate:"max=500"`
	Categories  Categories `yaml:"categories"`

	origin string
}

// Origin names where the document was read from.
func (d *Document) Origin() string {
	return d.origin
}

// Category is one entry of the categories mapping.
type Category struct {
	Name     string     `validate:"required,max=120"`
	Count    int        `validate:"gte=0"`
	Children Categories `validate:"-"`
	Line     int        `validate:"-"`
}

// Categories keeps the mapping order of the YAML document. A Go map would
// lose it, so decoding walks the mapping node directly.
type Categories []Category

// categoryBody is the long form of a category value.
type categoryBody struct {
	Count    int        `yaml:"count"`
	Children Categories `yaml:"children"`
}

// UnmarshalYAML decodes an ordered mapping of name to category. A value may
// be the long form ({count, children}), a bare integer count, or null.
func (c *Categories) UnmarshalYAML(value *yaml.Node) error {
	if isNull(value) {
		*c = nil
		return nil
	}
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: categories must be a mapping of name to category", value.Line)
	}

	out := make(Categories, 0, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		keyNode, valNode := value.Content[i], value.Content[i+1]
		if keyNode.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: category name must be a string", keyNode.Line)
		}

		cat := Category{Name: keyNode.Value, Line: keyNode.Line}
		switch {
		case isNull(valNode):
		case valNode.Kind == yaml.ScalarNode:
			if err := valNode.Decode(&cat.Count); err != nil {
				return err
			}
		default:
			var body categoryBody
			if err := valNode.Decode(&body); err != nil {
				return err
			}
			cat.Count = body.Count
			cat.Children = body.Children
		}
		out = append(out, cat)
	}

	*c = out
	return nil
}

func isNull(node *yaml.Node) bool {
	return node.Kind == yaml.ScalarNode && node.Tag == "!!null"
}

// Tree converts the document into the immutable category store.
func (d *Document) Tree() (*taxonomy.Tree, error) {
	return taxonomy.NewTree(toNodes(d.Categories))
}

func toNodes(cats Categories) []*taxonomy.Node {
	if len(cats) == 0 {
		return nil
	}
	nodes := make([]*taxonomy.Node, 0, len(cats))
	for _, cat := range cats {
		nodes = append(nodes, &taxonomy.Node{
			Name:     cat.Name,
			Count:    cat.Count,
			Children: toNodes(cat.Children),
		})
	}
	return nodes
}
