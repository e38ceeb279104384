package pio_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	th "github.com/pio-tools/pioglue/internal/testing"
	"github.com/pio-tools/pioglue/pio"
)

func TestProjectMetadataInvokesPio(t *testing.T) {
	runner := &th.FakeRunner{Stdout: []byte(`{"esp32dev": ` + envBody + `}`)}
	client := pio.NewWithRunner(runner)

	meta, err := client.ProjectMetadata(context.Background(), "/proj")
	require.NoError(t, err)

	require.Len(t, runner.Calls, 1)
	assert.Equal(t, []string{"pio", "project", "metadata", "--json-output"}, runner.Calls[0])
	assert.Equal(t, []string{"/proj"}, runner.Dirs)
	assert.Equal(t, []string{"esp32dev"}, meta.Names())
}

func TestProjectMetadataCustomBinary(t *testing.T) {
	runner := &th.FakeRunner{Stdout: []byte(`{}`)}
	client := pio.NewWithBinary(runner, "platformio")

	_, err := client.ProjectMetadata(context.Background(), ".")
	require.NoError(t, err)
	require.Len(t, runner.Calls, 1)
	assert.Equal(t, "platformio", runner.Calls[0][0])
}

func TestProjectMetadataErrors(t *testing.T) {
	tests := []struct {
		name     string
		runner   *th.FakeRunner
		wantKind pio.Kind
	}{
		{
			name:     "process failure passes through",
			runner:   &th.FakeRunner{Err: pio.ErrProcess("pio exited with status 1", "Error: Not a PlatformIO project")},
			wantKind: pio.KindProcess,
		},
		{
			name:     "invalid JSON",
			runner:   &th.FakeRunner{Stdout: []byte("Processing esp32dev...\n")},
			wantKind: pio.KindParse,
		},
		{
			name:     "top-level array",
			runner:   &th.FakeRunner{Stdout: []byte(`["esp32dev"]`)},
			wantKind: pio.KindParse,
		},
		{
			name:     "contract violation passes through",
			runner:   &th.FakeRunner{Stdout: []byte(`{"esp32dev": {"includes": {}}}`)},
			wantKind: pio.KindValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := pio.NewWithRunner(tt.runner)
			_, err := client.ProjectMetadata(context.Background(), ".")

			var pioErr pio.Error
			require.ErrorAs(t, err, &pioErr)
			assert.Equal(t, tt.wantKind, pioErr.Kind)
		})
	}
}
