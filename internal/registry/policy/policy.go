// Package policy maps (resource, HTTP method) pairs to the roles permitted
// to call them. The table is loaded once from a JSON file at startup; a
// resource or method with no entry is permissive, meaning any authenticated
// caller may use it.
package policy

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Table is the access policy: resource -> method -> role names.
type Table map[string]map[string][]string

// Load reads a policy table from a JSON file. Both the bare table form
// {"students": {"POST": ["admin"]}} and an envelope {"roles": {...}} are
// accepted, the latter matching older config files.
func Load(path string) (Table, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read policy file: %w", err)
	}
	return Parse(raw)
}

// Parse decodes a policy table from JSON bytes.
func Parse(raw []byte) (Table, error) {
	var envelope struct {
		Roles Table `json:"roles"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Roles != nil {
		return normalize(envelope.Roles), nil
	}

	var t Table
	if err := json.Unmarshal(raw, &t); err != nil {
		return nil, fmt.Errorf("parse policy file: %w", err)
	}
	return normalize(t), nil
}

// RolesFor returns the roles allowed for the resource and method. An empty
// result means no restriction beyond a valid token.
func (t Table) RolesFor(resource, method string) []string {
	if t == nil {
		return nil
	}
	methods, ok := t[strings.ToLower(resource)]
	if !ok {
		return nil
	}
	return methods[strings.ToUpper(method)]
}

func normalize(t Table) Table {
	out := make(Table, len(t))
	for resource, methods := range t {
		m := make(map[string][]string, len(methods))
		for method, roles := range methods {
			m[strings.ToUpper(method)] = roles
		}
		out[strings.ToLower(resource)] = m
	}
	return out
}
