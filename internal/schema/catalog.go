package schema

import (
	"strings"

	"ocsf-mapper/internal/docpath"
)

// Category is an OCSF event category.
type Category struct {
	Name        string
	Caption     string
	Description string
	UID         int
}

// Class is a flattened OCSF event class or object.
type Class struct {
	Name        string
	Caption     string
	Description string
	// Category is empty for objects.
	Category string
	UID      int
	Extends  string
	Profiles []string
	// Attributes includes everything inherited from Extends and Profiles.
	Attributes map[string]Attribute
}

// IsEvent returns true for event classes (objects carry no category).
func (c *Class) IsEvent() bool {
	return c.Category != ""
}

// Catalog is the merged, inheritance-free view of a schema.
type Catalog struct {
	Version    string
	Categories map[string]Category
	Classes    map[string]*Class
}

// NewCatalog returns an empty catalog ready for use.
func NewCatalog() *Catalog {
	return &Catalog{
		Categories: map[string]Category{},
		Classes:    map[string]*Class{},
	}
}

// Class returns the named class or object.
func (c *Catalog) Class(name string) (*Class, bool) {
	if c == nil {
		return nil, false
	}

	cls, ok := c.Classes[name]

	return cls, ok
}

// Lookup resolves an attribute path (array markers allowed) starting at the
// named class, following Reference attributes through the catalog.
func (c *Catalog) Lookup(className, path string) (Attribute, bool) {
	cls, ok := c.Class(className)
	if !ok || path == "" {
		return Attribute{}, false
	}

	parts := strings.Split(docpath.Strip(path), ".")

	for i, part := range parts {
		attr, ok := cls.Attributes[part]
		if !ok {
			return Attribute{}, false
		}

		if i == len(parts)-1 {
			return attr, true
		}

		ref, ok := attr.Reference()
		if !ok {
			return Attribute{}, false
		}

		if cls, ok = c.Class(ref); !ok {
			return Attribute{}, false
		}
	}

	return Attribute{}, false
}
