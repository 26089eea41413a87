package simulation

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

//go:embed catalog.json
var builtinCatalog []byte

// Well-known simulation IDs referenced by progress recommendations.
const (
	PhishingEmail     = "phishing-email"
	WiFiSecurity      = "wifi-security"
	SocialEngineering = "social-engineering"
	PasswordSecurity  = "password-security"
)

// Catalog is an ordered, ID-indexed set of simulation definitions.
type Catalog struct {
	defs  []Definition
	index map[string]int
}

type catalogDoc struct {
	Simulations []Definition `json:"simulations"`
}

// Builtin returns the catalog shipped with the binary.
func Builtin() *Catalog {
	c, err := ParseCatalog(builtinCatalog)
	if err != nil {
		// The embedded catalog is covered by tests.
		panic(fmt.Sprintf("builtin catalog: %v", err))
	}
	return c
}

// LoadCatalogFile reads and validates a catalog from path.
func LoadCatalogFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	return LoadCatalog(f)
}

// LoadCatalog reads and validates a catalog from r.
func LoadCatalog(r io.Reader) (*Catalog, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return ParseCatalog(raw)
}

// ParseCatalog validates raw JSON against the catalog schema, decodes it and
// checks the structural rules the schema cannot express.
func ParseCatalog(raw []byte) (*Catalog, error) {
	if err := validateCatalogJSON(raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}

	var doc catalogDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	c := &Catalog{
		defs:  doc.Simulations,
		index: make(map[string]int, len(doc.Simulations)),
	}
	for i := range c.defs {
		d := &c.defs[i]
		if err := ValidateDefinition(d); err != nil {
			return nil, err
		}
		if _, dup := c.index[d.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate simulation id %q", ErrInvalidArgument, d.ID)
		}
		c.index[d.ID] = i
	}
	return c, nil
}

// ValidateDefinition checks the invariants a runner relies on.
func ValidateDefinition(d *Definition) error {
	if d == nil {
		return fmt.Errorf("%w: nil definition", ErrInvalidArgument)
	}
	if d.ID == "" {
		return fmt.Errorf("%w: simulation id is empty", ErrInvalidArgument)
	}
	if len(d.Steps) == 0 {
		return fmt.Errorf("%w: simulation %q has no steps", ErrInvalidArgument, d.ID)
	}
	for i, s := range d.Steps {
		if len(s.Options) < 2 {
			return fmt.Errorf("%w: simulation %q step %d has %d options, need at least 2",
				ErrInvalidArgument, d.ID, i, len(s.Options))
		}
		if s.CorrectIndex < 0 || s.CorrectIndex >= len(s.Options) {
			return fmt.Errorf("%w: simulation %q step %d correct index %d out of range",
				ErrInvalidArgument, d.ID, i, s.CorrectIndex)
		}
	}
	return nil
}

// All returns the definitions in catalog order.
func (c *Catalog) All() []Definition {
	out := make([]Definition, len(c.defs))
	copy(out, c.defs)
	return out
}

// Get returns the definition with the given ID.
func (c *Catalog) Get(id string) (*Definition, bool) {
	i, ok := c.index[id]
	if !ok {
		return nil, false
	}
	return &c.defs[i], true
}

// Len returns the number of simulations.
func (c *Catalog) Len() int { return len(c.defs) }
