package reflect

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const fixtureYAML = `
classes:
  - name: com.example.Base
    modifiers: [public]
    fields:
      - name: id
        type: long
        modifiers: [protected]
  - name: com.example.Bean
    super: com.example.Base
    modifiers: [public]
    typeParameters: [T]
    fields:
      - name: secret
        type: String
        modifiers: [private]
      - name: count
        type: int
        modifiers: [public]
      - name: items
        type: java.util.List<String>
        modifiers: [public]
        annotations:
          - type: com.example.Column
            values: {name: ITEMS, length: 20}
          - type: com.example.Column
            values: {name: SECOND}
          - type: com.example.Id
      - name: lookup
        type: java.util.Map<String, java.util.List<Integer>>
        modifiers: [public]
      - name: matrix
        type: java.util.List<int[]>
      - name: generics
        type: java.util.List<T[]>
      - name: wild
        type: java.util.List<? extends Number>
      - name: element
        type: T
        modifiers: [public]
      - name: label
        type: CharSequence
        modifiers: [public, volatile]
      - name: cache
        type: Object
        modifiers: [public, transient]
      - name: MAX
        type: int
        modifiers: [public, static, final]
        value: 42
      - name: counter
        type: long
        modifiers: [public, static]
      - name: limit
        type: int
        modifiers: [private, final]
      - name: names
        type: String[]
        modifiers: [public]
  - name: com.example.Other
    modifiers: [public]
  - name: com.example.Peer
  - name: com.example.sub.Child
    super: com.example.Bean
  - name: com.example.sub.Stranger
`

func newFixture(t *testing.T) *Registry {
	t.Helper()
	r := NewRegistry()
	_, err := r.DefineYAML(strings.NewReader(fixtureYAML))
	require.NoError(t, err)
	return r
}

func mustClass(t *testing.T, r *Registry, name string) *Class {
	t.Helper()
	c, ok := r.Class(name)
	require.True(t, ok, "class %s", name)
	return c
}

func mustField(t *testing.T, r *Registry, class, field string) Field {
	t.Helper()
	f, ok := r.LookupField(class, field)
	require.True(t, ok, "field %s.%s", class, field)
	return f
}

func mustNew(t *testing.T, r *Registry, class string) *Object {
	t.Helper()
	o, err := r.New(class)
	require.NoError(t, err)
	return o
}
