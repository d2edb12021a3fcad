package storage

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jacksmith/moviedb/internal/model"
	"gopkg.in/yaml.v3"
)

// A YAML movie file maps each title to its fields:
//
//	The Matrix:
//	  year: 1999
//	  rating: 8.7
//	  poster: https://...
type yamlCodec struct{}

func (yamlCodec) decode(r io.Reader) (*model.Collection, error) {
	dec := yaml.NewDecoder(r)
	var doc yaml.Node
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return model.NewCollection(), nil
		}
		return nil, err
	}
	var extra yaml.Node
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		if err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("unexpected data after the first document")
	}
	if len(doc.Content) == 0 {
		return model.NewCollection(), nil
	}

	root := doc.Content[0]
	if root.Kind == yaml.ScalarNode && root.ShortTag() == "!!null" {
		return model.NewCollection(), nil
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: expected a mapping of titles", root.Line)
	}

	c := model.NewCollection()
	for i := 0; i+1 < len(root.Content); i += 2 {
		keyNode, valNode := root.Content[i], root.Content[i+1]
		if keyNode.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: title must be a scalar", keyNode.Line)
		}
		m, err := decodeMovieNode(keyNode.Value, valNode)
		if err != nil {
			return nil, err
		}
		if err := checkRecord(m); err != nil {
			return nil, err
		}
		c.Put(m)
	}
	return c, nil
}

// decodeMovieNode reads the fields of one title. Unknown and missing
// fields are errors.
func decodeMovieNode(title string, node *yaml.Node) (model.Movie, error) {
	m := model.Movie{Title: title}
	if node.Kind != yaml.MappingNode {
		return m, fmt.Errorf("line %d: %q must map to year, rating and poster", node.Line, title)
	}

	var haveYear, haveRating bool
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i].Value, node.Content[i+1]
		switch key {
		case "year":
			if val.ShortTag() != "!!int" {
				return m, fmt.Errorf("line %d: %q year must be an integer", val.Line, title)
			}
			if err := val.Decode(&m.Year); err != nil {
				return m, fmt.Errorf("line %d: %q year: %w", val.Line, title, err)
			}
			haveYear = true
		case "rating":
			if tag := val.ShortTag(); tag != "!!float" && tag != "!!int" {
				return m, fmt.Errorf("line %d: %q rating must be a number", val.Line, title)
			}
			if err := val.Decode(&m.Rating); err != nil {
				return m, fmt.Errorf("line %d: %q rating: %w", val.Line, title, err)
			}
			haveRating = true
		case "poster":
			if val.Kind != yaml.ScalarNode || val.ShortTag() == "!!null" {
				return m, fmt.Errorf("line %d: %q poster must be text", val.Line, title)
			}
			m.Poster = val.Value
		default:
			return m, fmt.Errorf("line %d: %q has unknown field %q", node.Content[i].Line, title, key)
		}
	}

	if !haveYear {
		return m, fmt.Errorf("%q: missing year", title)
	}
	if !haveRating {
		return m, fmt.Errorf("%q: missing rating", title)
	}
	return m, nil
}

func (yamlCodec) encode(w io.Writer, c *model.Collection) error {
	root := &yaml.Node{Kind: yaml.MappingNode}
	if c.Len() == 0 {
		root.Style = yaml.FlowStyle
	}
	for _, m := range c.Movies() {
		node := &yaml.Node{Kind: yaml.MappingNode}
		addIntField(node, "year", m.Year)
		addFloatField(node, "rating", m.Rating)
		addStringField(node, "poster", m.Poster)
		root.Content = append(root.Content, stringNode(m.Title), node)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return err
	}
	return enc.Close()
}

// Helper functions for building yaml.Node

// stringNode tags the value as a string so the encoder quotes text that
// would otherwise read back as another type ("1917", "true", "").
func stringNode(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Value: value, Tag: "!!str"}
}

func addStringField(node *yaml.Node, key, value string) {
	node.Content = append(node.Content, stringNode(key), stringNode(value))
}

func addIntField(node *yaml.Node, key string, value int) {
	node.Content = append(node.Content,
		stringNode(key),
		&yaml.Node{Kind: yaml.ScalarNode, Value: strconv.Itoa(value), Tag: "!!int"},
	)
}

// addFloatField always writes a decimal point so the value resolves as
// !!float without an explicit tag.
func addFloatField(node *yaml.Node, key string, value float64) {
	s := model.FormatRating(value)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	node.Content = append(node.Content,
		stringNode(key),
		&yaml.Node{Kind: yaml.ScalarNode, Value: s, Tag: "!!float"},
	)
}
