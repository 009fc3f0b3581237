package navigator

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/alexisbeaulieu97/taxon/internal/taxonomy"
)

// DefaultMarker separates breadcrumb segments.
const DefaultMarker = "→"

// Placeholder is shown by the detail panel while nothing is selected.
const Placeholder = "Select a category to see its details."

// DefaultDescriptionTemplate is the text shown for a selected category.
const DefaultDescriptionTemplate = `Explore everything filed under {{.Name}}. ` +
	`This category gathers the articles, guides and resources related to {{.Name}}` +
	`{{if .Parent}} within {{.Parent}}{{end}}.`

var defaultDescription = template.Must(template.New("description").Parse(DefaultDescriptionTemplate))

// DescriptionData is the value the description template is executed with.
type DescriptionData struct {
	Name   string
	Parent string
	Path   string
	Count  int
	Depth  int
}

// ParseDescription compiles a description template supplied by settings.
func ParseDescription(text string) (*template.Template, error) {
	if strings.TrimSpace(text) == "" {
		return defaultDescription, nil
	}
	tmpl, err := template.New("description").Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parse description template: %w", err)
	}
	return tmpl, nil
}

// DetailView is the content of the detail panel.
type DetailView struct {
	Empty       bool
	Breadcrumb  []string
	Marker      string
	Title       string
	Count       int
	HasChildren bool
	Description string
}

// Detail renders the detail panel for the current selection. It reads
// nothing but the selected path and the node it names.
func (n *Navigator) Detail() DetailView {
	return n.DetailFor(n.selection)
}

// DetailFor renders the detail panel for an arbitrary path.
func (n *Navigator) DetailFor(path taxonomy.Path) DetailView {
	if len(path) == 0 {
		return DetailView{Empty: true, Marker: n.marker, Description: Placeholder}
	}

	view := DetailView{
		Breadcrumb: path.Clone(),
		Marker:     n.marker,
		Title:      path.Leaf(),
	}
	if node, ok := n.tree.Lookup(path); ok {
		view.Count = node.Count
		view.HasChildren = node.HasChildren()
	}

	data := DescriptionData{
		Name:   path.Leaf(),
		Parent: path.Parent().Leaf(),
		Path:   strings.Join(path, " "+n.marker+" "),
		Count:  view.Count,
		Depth:  len(path) - 1,
	}

	var buf bytes.Buffer
	if err := n.description.Execute(&buf, data); err != nil {
		view.Description = fmt.Sprintf("Explore everything filed under %s.", data.Name)
		return view
	}
	view.Description = buf.String()
	return view
}

// BreadcrumbText joins the breadcrumb with the marker for plain output.
func (d DetailView) BreadcrumbText() string {
	return strings.Join(d.Breadcrumb, " "+d.Marker+" ")
}
