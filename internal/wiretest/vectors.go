// Package wiretest hosts the golden-vector harness used by wire's test
// suite: a JSON-schema-validated fixture format (mirroring the
// teacher's cap/schema_validation.go use of gojsonschema to validate
// structured fixtures) plus randomized-input helpers for the fuzz-style
// "truncated at every byte offset" property in spec.md §8.
package wiretest

import (
	"embed"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed vectors.schema.json testdata/varint_vectors.json
var vectorsFS embed.FS

// VarintVector is one golden boundary value from spec.md §8: a
// canonical shortest encoding and the integer it must decode to.
type VarintVector struct {
	Name    string
	Encoded []byte
	Value   uint64
}

// LoadVarintVectors validates testdata/varint_vectors.json against
// vectors.schema.json and returns the parsed golden vectors.
func LoadVarintVectors() ([]VarintVector, error) {
	schemaBytes, err := vectorsFS.ReadFile("vectors.schema.json")
	if err != nil {
		return nil, fmt.Errorf("read schema: %w", err)
	}
	dataBytes, err := vectorsFS.ReadFile("testdata/varint_vectors.json")
	if err != nil {
		return nil, fmt.Errorf("read vectors: %w", err)
	}

	schemaLoader := gojsonschema.NewBytesLoader(schemaBytes)
	docLoader := gojsonschema.NewBytesLoader(dataBytes)

	result, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return nil, fmt.Errorf("validate vectors: %w", err)
	}
	if !result.Valid() {
		return nil, fmt.Errorf("varint_vectors.json failed schema validation: %v", result.Errors())
	}

	var raw []struct {
		Name       string `json:"name"`
		EncodedHex string `json:"encoded_hex"`
		ValueDec   string `json:"value_dec"`
	}
	if err := json.Unmarshal(dataBytes, &raw); err != nil {
		return nil, fmt.Errorf("unmarshal vectors: %w", err)
	}

	vectors := make([]VarintVector, 0, len(raw))
	for _, r := range raw {
		encoded, err := hex.DecodeString(r.EncodedHex)
		if err != nil {
			return nil, fmt.Errorf("vector %q: bad encoded_hex: %w", r.Name, err)
		}
		value, ok := new(big.Int).SetString(r.ValueDec, 10)
		if !ok || !value.IsUint64() {
			return nil, fmt.Errorf("vector %q: bad value_dec %q", r.Name, r.ValueDec)
		}
		vectors = append(vectors, VarintVector{Name: r.Name, Encoded: encoded, Value: value.Uint64()})
	}
	return vectors, nil
}
