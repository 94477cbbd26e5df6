// Package config loads curve domain parameters from YAML or JSON files.
//
// A file maps a curve id to its parameters:
//
//	NIST_P256:
//	  a: -3
//	  b: 0x5ac635d8aa3a93e7b3ebbd55769886bc651d06b0cc53b0f63bce3c3e27d2604b
//	  p: 0xffffffff00000001000000000000000000000000ffffffffffffffffffffffff
//	  Gx: ...
//	  Gy: ...
//	  n: ...
//
// Integers may be bare numbers or strings in decimal or 0x-prefixed hex.
// JSON is accepted as it is a subset of YAML.
package config

import (
	"fmt"
	"maps"
	"math/big"
	"os"
	"slices"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/smallyu/go-weierstrass/internal/crypto/curves"
	"github.com/smallyu/go-weierstrass/pkg/ecc"
)

// Integer is an arbitrary-precision integer as written in a curve file.
type Integer struct {
	v *big.Int
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (i *Integer) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected an integer", node.Line)
	}
	v, ok := parseInteger(strings.TrimSpace(node.Value))
	if !ok {
		return fmt.Errorf("line %d: %q is not a decimal or 0x-prefixed integer", node.Line, node.Value)
	}
	i.v = v
	return nil
}

// parseInteger accepts decimal and 0x hex. Other base prefixes, and leading
// zeros that big.Int would read as octal, are refused.
func parseInteger(s string) (*big.Int, bool) {
	digits := strings.TrimPrefix(s, "-")
	if len(digits) > 1 && digits[0] == '0' && digits[1] != 'x' && digits[1] != 'X' {
		return nil, false
	}
	return new(big.Int).SetString(s, 0)
}

// Int returns the value, or nil when the field was absent.
func (i Integer) Int() *big.Int {
	if i.v == nil {
		return nil
	}
	return new(big.Int).Set(i.v)
}

// CurveSpec is one entry of a curve file.
type CurveSpec struct {
	A  Integer `yaml:"a"`
	B  Integer `yaml:"b"`
	P  Integer `yaml:"p"`
	Gx Integer `yaml:"Gx"`
	Gy Integer `yaml:"Gy"`
	N  Integer `yaml:"n"`
}

// Params converts the entry to curve parameters named id.
func (s CurveSpec) Params(id string) *curves.Params {
	return &curves.Params{
		Name: id,
		A:    s.A.Int(),
		B:    s.B.Int(),
		P:    s.P.Int(),
		Gx:   s.Gx.Int(),
		Gy:   s.Gy.Int(),
		N:    s.N.Int(),
	}
}

// File is a parsed curve file.
type File struct {
	curves map[string]CurveSpec
}

// Parse decodes a curve file. Entries are not validated until they are
// requested with Curve.
func Parse(data []byte) (*File, error) {
	var m map[string]CurveSpec
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, ecc.Errorf(ecc.ErrInvalidParams, "config: %v", err)
	}
	if m == nil {
		m = make(map[string]CurveSpec)
	}
	return &File{curves: m}, nil
}

// Load reads and parses the curve file at path.
func Load(path string, log *zap.Logger) (*File, error) {
	if log == nil {
		log = zap.NewNop()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading curve file: %w", err)
	}
	f, err := Parse(data)
	if err != nil {
		log.Error("failed to parse curve file", zap.String("path", path), zap.Error(err))
		return nil, err
	}
	log.Info("loaded curve file", zap.String("path", path), zap.Strings("curves", f.IDs()))
	return f, nil
}

// IDs returns the curve ids in the file, sorted.
func (f *File) IDs() []string {
	return slices.Sorted(maps.Keys(f.curves))
}

// Curve validates the entry id, including that n·G is the point at infinity,
// and builds the curve.
func (f *File) Curve(id string) (*curves.Curve, error) {
	spec, ok := f.curves[id]
	if !ok {
		return nil, ecc.Errorf(ecc.ErrUnknownCurve, "config: curve %q not found", id)
	}
	params := spec.Params(id)
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("config: curve %q: %w", id, err)
	}
	return curves.New(params)
}

// Resolve returns the curve id from f when f is not nil and has it, and
// otherwise the built-in curve of that name.
func Resolve(f *File, id string) (*curves.Curve, error) {
	if f != nil {
		if _, ok := f.curves[id]; ok {
			return f.Curve(id)
		}
	}
	if c, ok := curves.ByName(id); ok {
		return c, nil
	}
	return nil, ecc.Errorf(ecc.ErrUnknownCurve, "config: curve %q not found", id)
}
