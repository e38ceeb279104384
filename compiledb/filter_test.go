package compiledb_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pio-tools/pioglue/compiledb"
)

func TestEssential(t *testing.T) {
	tests := []struct {
		arg  string
		want bool
	}{
		{"-DARDUINO=10812", true},
		{"-D", true},
		{"-I/proj/include", true},
		{"-I", true},
		{"-UDEBUG", true},
		{"-imacros", true},
		{"-include-pch", true},
		{"-iquote.", true},
		{"-isystem/tc/include", true},
		{"--sysroot=/tc", true},
		{"--target=xtensa-esp32-elf", true},
		{"-mabi=aapcs", true},
		{"-march=armv7e-m", true},
		{"-mcpu=cortex-m4", true},
		{"-mfloat-abi=hard", true},
		{"-mfpu=fpv4-sp-d16", true},
		{"-mthumb", true},
		{"-mthumb-interwork", true},
		{"-std=gnu++17", true},

		{"", false},
		{"-Wall", false},
		{"-O2", false},
		{"-MMD", false},
		{"-mmcu=atmega328p", false},
		{"-mlongcalls", false},
		{"-c", false},
		{"-o", false},
		{"main.cpp", false},
		{"/usr/bin/g++", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, compiledb.Essential(tt.arg), "arg %q", tt.arg)
	}
}

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "compiler token is dropped",
			args: []string{"g++", "-DX=1"},
			want: []string{"-DX=1"},
		},
		{
			name: "non-essential arguments are dropped",
			args: []string{"g++", "-Wall", "-O2", "-c", "main.cpp", "-o", "main.o"},
			want: []string{},
		},
		{
			name: "attached include value",
			args: []string{"g++", "-I/inc", "-Wall"},
			want: []string{"-I/inc"},
		},
		{
			name: "separate include value is kept",
			args: []string{"g++", "-I", "/inc", "-O2"},
			want: []string{"-I", "/inc"},
		},
		{
			name: "value starting with dash is not consumed",
			args: []string{"g++", "-I", "-DX"},
			want: []string{"-I", "-DX"},
		},
		{
			name: "forced include keeps its file",
			args: []string{"g++", "-include", "Arduino.h", "-fno-rtti"},
			want: []string{"-include", "Arduino.h"},
		},
		{
			name: "trailing value flag without value",
			args: []string{"g++", "-isystem"},
			want: []string{"-isystem"},
		},
		{
			name: "only the compiler",
			args: []string{"g++"},
			want: []string{},
		},
		{
			name: "empty invocation",
			args: nil,
			want: []string{},
		},
		{
			name: "realistic xtensa invocation",
			args: []string{
				"/tc/bin/xtensa-esp32-elf-g++",
				"-o", ".pio/build/esp32dev/src/main.cpp.o",
				"-c", "-std=gnu++17", "-fno-rtti", "-fno-exceptions",
				"-Os", "-mlongcalls", "-DARDUINO=10812", "-DF_CPU=240000000L",
				"-I", "/proj/include", "-isystem", "/tc/xtensa-esp32-elf/include",
				"src/main.cpp",
			},
			want: []string{
				"-std=gnu++17",
				"-DARDUINO=10812", "-DF_CPU=240000000L",
				"-I", "/proj/include", "-isystem", "/tc/xtensa-esp32-elf/include",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, compiledb.FilterArgs(tt.args))
		})
	}
}

func TestFilterCommand(t *testing.T) {
	got := compiledb.FilterCommand("g++  -DX=1   -I /inc  -Wall main.cpp")
	assert.Equal(t, []string{"-DX=1", "-I", "/inc"}, got)
}
