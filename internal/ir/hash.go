package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content-addressed identity. The version suffix
// enables future algorithm migration.
const (
	DomainSpec = "templet/spec/v1"
	DomainRun  = "templet/run/v1"
)

// hashWithDomain computes SHA-256 with domain separation.
// Format: SHA256(domain + 0x00 + data). The null byte separator
// prevents domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// SpecHash computes the content-addressed identity of a template spec.
// The hash is stable across runs given the same declaration: it covers
// package, name, output, and the ordered field set, but not source
// positions, so moving a declaration within a file does not change
// its identity.
func SpecHash(spec *TemplateSpec) (string, error) {
	fields := make([]any, len(spec.Fields))
	for i, f := range spec.Fields {
		fm := map[string]any{
			"name": f.Name,
			"type": f.Type,
		}
		if f.Tagged {
			fm["default"] = f.Default
		}
		fields[i] = fm
	}
	obj := map[string]any{
		"package": spec.Package,
		"name":    spec.Name,
		"output":  spec.Output,
		"fields":  fields,
		"hooks":   spec.Hooks,
	}
	if spec.OutputImport != "" {
		obj["output_import"] = spec.OutputImport
	}
	data, err := MarshalCanonical(obj)
	if err != nil {
		return "", fmt.Errorf("spec %s: %w", spec.Name, err)
	}
	return hashWithDomain(DomainSpec, data), nil
}
