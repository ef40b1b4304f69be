// Package compiler runs the schema pipeline: parse and classify the SDL,
// then compile every content type into backend inputs.
package compiler

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/mozaik-cms/mozaik/internal/compiler/contenttype"
	"github.com/mozaik-cms/mozaik/internal/compiler/extract"
	"github.com/mozaik-cms/mozaik/internal/compiler/ir"
)

// Output is a compiled schema
type Output struct {
	// Source is the SDL that was compiled
	Source string
	// Hash is the SHA-256 of Source, hex encoded
	Hash string
	// Extracted is the classified document
	Extracted *extract.Result
	// ContentTypes are the compiled inputs in declaration order
	ContentTypes []ir.ContentTypeInput
}

// Compile compiles sdl. Compiler errors are returned as an
// errors.ErrorList.
func Compile(sdl string) (*Output, error) {
	extracted, err := extract.Extract(sdl)
	if err != nil {
		return nil, err
	}

	inputs, err := contenttype.CompileSchema(extracted)
	if err != nil {
		return nil, err
	}

	return &Output{
		Source:       sdl,
		Hash:         HashContent([]byte(sdl)),
		Extracted:    extracted,
		ContentTypes: inputs,
	}, nil
}

// CompileFile reads and compiles the schema at path
func CompileFile(path string) (*Output, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading schema: %w", err)
	}
	return Compile(string(data))
}

// HashContent computes a SHA-256 hash of content
func HashContent(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}
