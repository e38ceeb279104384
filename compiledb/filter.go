package compiledb

import (
	"slices"
	"strings"
)

// stems are the argument prefixes clangd needs for semantic analysis; every
// argument not starting with one of them is dropped. Sorted for binary search.
var stems = []string{
	"--sysroot",
	"--target",
	"-D",
	"-I",
	"-U",
	"-imacros",
	"-include",
	"-iquote",
	"-isystem",
	"-mabi=",
	"-march=",
	"-mcpu=",
	"-mfloat-abi=",
	"-mfpu=",
	"-mthumb",
	"-std=",
}

// valueStems are the stems that may carry their value as a separate argument,
// as in `-I /path`. Sorted for binary search.
var valueStems = []string{"--sysroot", "-I", "-include", "-isystem"}

// Essential reports whether an argument starts with one of the stems.
func Essential(arg string) bool {
	if arg == "" {
		return false
	}
	i, ok := slices.BinarySearch(stems, arg)
	if ok {
		return true
	}
	return i > 0 && strings.HasPrefix(arg, stems[i-1])
}

// takesValue reports whether the argument is exactly a stem whose value comes
// as the next token.
func takesValue(arg string) bool {
	_, ok := slices.BinarySearch(valueStems, arg)
	return ok
}

// FilterArgs reduces a compiler invocation to its essential arguments. The
// first token is the compiler itself and is always dropped. A value-taking
// stem also keeps its following token, unless that token looks like another
// flag.
func FilterArgs(args []string) []string {
	filtered := make([]string, 0, len(args))
	for i := 1; i < len(args); i++ {
		arg := args[i]
		if !Essential(arg) {
			continue
		}
		filtered = append(filtered, arg)
		if takesValue(arg) && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			i++
			filtered = append(filtered, args[i])
		}
	}
	return filtered
}

// FilterCommand reduces a whitespace-joined compiler invocation, used for
// entries that carry a command string instead of an argument vector.
func FilterCommand(command string) []string {
	return FilterArgs(strings.Fields(command))
}
