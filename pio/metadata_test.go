package pio_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pio-tools/pioglue/pio"
)

const envBody = `{
	"includes": {"build": ["/proj/include"], "compatlib": [], "toolchain": ["/toolchain/include"]},
	"defines": ["ARDUINO=10812"],
	"cxx_flags": ["-Wall"],
	"cxx_path": "/usr/bin/g++"
}`

func TestMetadataPreservesDocumentOrder(t *testing.T) {
	// Deliberately not alphabetical so map iteration could never pass by luck.
	doc := `{
		"zeta": ` + envBody + `,
		"alpha": ` + envBody + `,
		"mike": ` + envBody + `,
		"bravo": ` + envBody + `,
		"yankee": ` + envBody + `,
		"charlie": ` + envBody + `
	}`

	var meta pio.Metadata
	require.NoError(t, json.Unmarshal([]byte(doc), &meta))

	assert.Equal(t, []string{"zeta", "alpha", "mike", "bravo", "yankee", "charlie"}, meta.Names())
	assert.Equal(t, 6, meta.Len())

	env, ok := meta.Env("bravo")
	require.True(t, ok)
	assert.Equal(t, "/usr/bin/g++", env.CxxPath)
}

func TestEnvironmentDecodeStrict(t *testing.T) {
	tests := []struct {
		name       string
		doc        string
		wantErr    bool
		wantDetail string
	}{
		{
			name:    "all keys present",
			doc:     envBody,
			wantErr: false,
		},
		{
			name: "missing include category is tolerated",
			doc: `{
				"includes": {"build": ["/proj/include"]},
				"defines": [],
				"cxx_flags": [],
				"cxx_path": "/usr/bin/g++"
			}`,
			wantErr: false,
		},
		{
			name:       "missing includes",
			doc:        `{"defines": [], "cxx_flags": [], "cxx_path": "g++"}`,
			wantErr:    true,
			wantDetail: `metadata is missing the "includes" key`,
		},
		{
			name:       "missing defines",
			doc:        `{"includes": {}, "cxx_flags": [], "cxx_path": "g++"}`,
			wantErr:    true,
			wantDetail: `metadata is missing the "defines" key`,
		},
		{
			name:       "missing cxx_flags",
			doc:        `{"includes": {}, "defines": [], "cxx_path": "g++"}`,
			wantErr:    true,
			wantDetail: `metadata is missing the "cxx_flags" key`,
		},
		{
			name:       "missing cxx_path",
			doc:        `{"includes": {}, "defines": [], "cxx_flags": []}`,
			wantErr:    true,
			wantDetail: `metadata is missing the "cxx_path" key`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var env pio.Environment
			err := json.Unmarshal([]byte(tt.doc), &env)
			if !tt.wantErr {
				require.NoError(t, err)
				return
			}
			var pioErr pio.Error
			require.ErrorAs(t, err, &pioErr)
			assert.Equal(t, pio.KindValidation, pioErr.Kind)
			assert.Equal(t, tt.wantDetail, pioErr.Detail)
		})
	}
}

func TestMetadataRejectsNonObject(t *testing.T) {
	for _, doc := range []string{`[]`, `"esp32dev"`, `42`} {
		var meta pio.Metadata
		err := json.Unmarshal([]byte(doc), &meta)
		var pioErr pio.Error
		require.ErrorAs(t, err, &pioErr, "doc %s", doc)
		assert.Equal(t, pio.KindParse, pioErr.Kind)
	}
}

func TestMetadataWrapsEnvironmentErrors(t *testing.T) {
	doc := `{"esp32dev": {"includes": {}, "cxx_flags": [], "cxx_path": "g++"}}`

	var meta pio.Metadata
	err := json.Unmarshal([]byte(doc), &meta)

	var pioErr pio.Error
	require.ErrorAs(t, err, &pioErr)
	assert.Equal(t, pio.KindValidation, pioErr.Kind)
	assert.Equal(t, `environment "esp32dev": metadata is missing the "defines" key`, pioErr.Detail)
}

func TestResolve(t *testing.T) {
	doc := `{"native": ` + envBody + `, "esp32dev": ` + envBody + `, "esp32s3": ` + envBody + `}`
	var meta pio.Metadata
	require.NoError(t, json.Unmarshal([]byte(doc), &meta))

	tests := []struct {
		name       string
		request    string
		wantEnv    string
		wantDetail string
	}{
		{
			name:    "empty request picks first in document order",
			request: "",
			wantEnv: "native",
		},
		{
			name:    "explicit request",
			request: "esp32s3",
			wantEnv: "esp32s3",
		},
		{
			name:       "unknown request lists available names",
			request:    "teensy",
			wantDetail: `environment "teensy" not found. Available: native, esp32dev, esp32s3`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, _, err := meta.Resolve(tt.request)
			if tt.wantDetail != "" {
				var pioErr pio.Error
				require.ErrorAs(t, err, &pioErr)
				assert.Equal(t, pio.KindValidation, pioErr.Kind)
				assert.Equal(t, tt.wantDetail, pioErr.Detail)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantEnv, name)
		})
	}
}

func TestResolveEmptyDocument(t *testing.T) {
	var meta pio.Metadata
	require.NoError(t, json.Unmarshal([]byte(`{}`), &meta))

	_, _, err := meta.Resolve("")
	var pioErr pio.Error
	require.True(t, errors.As(err, &pioErr))
	assert.Equal(t, pio.KindValidation, pioErr.Kind)
}
