// Package file reads the product feed from a YAML document.
package file

import (
	"bytes"
	"context"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"lightshop/pkg/catalog"
)

type document struct {
	Products []catalog.Product `yaml:"products"`
}

// Provider loads products from a YAML file of the form
//
//	products:
//	  - id: 1
//	    name: Garland
//	    price: 1290
//	    category: garland
type Provider struct {
	path string
}

// New returns a provider reading path.
func New(path string) *Provider {
	return &Provider{path: path}
}

// Load reads and decodes the file.
func (p *Provider) Load(ctx context.Context) ([]catalog.Product, error) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		return nil, errors.Wrap(err, "read catalog file")
	}
	return Decode(data)
}

// Decode parses a YAML catalog document. Unknown keys are rejected.
func Decode(data []byte) ([]catalog.Product, error) {
	var doc document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.Wrap(err, "decode catalog")
	}
	return doc.Products, nil
}
