package clangd

import "slices"

// defaultSkipFlags are GCC and Xtensa specific flags that clangd either does
// not recognize or misbehaves on.
var defaultSkipFlags = []string{
	"-MMD",
	"-fno-rtti",
	"-fno-tree-switch-conversion",
	"-fno-jump-tables",
	"-freorder-blocks",
	"-fstrict-volatile-bitfields",
	"-Wno-old-style-declaration",
	"-Wno-error=unused-but-set-variable",
	"-mlongcalls",
}

// Policy decides which raw compiler flags survive into the generated
// configuration and how surviving flags are rewritten. Skips win over
// transforms: a skipped flag is never also transformed.
type Policy struct {
	skip      map[string]struct{}
	transform map[string]string
}

// NewPolicy builds a policy from the built-in defaults plus the caller's
// extra skips and transforms. Extensions union with the defaults; nothing the
// caller passes can remove a default entry. The inputs are copied, so the
// returned policy shares no state with the caller or with other policies.
func NewPolicy(skip []string, transforms map[string]string) Policy {
	p := Policy{
		skip:      make(map[string]struct{}, len(defaultSkipFlags)+len(skip)),
		transform: make(map[string]string, len(transforms)),
	}
	for _, f := range defaultSkipFlags {
		p.skip[f] = struct{}{}
	}
	for _, f := range skip {
		p.skip[f] = struct{}{}
	}
	for from, to := range transforms {
		p.transform[from] = to
	}
	return p
}

// DefaultPolicy is NewPolicy with no extensions.
func DefaultPolicy() Policy {
	return NewPolicy(nil, nil)
}

// Skipped reports whether the policy excludes flag.
func (p Policy) Skipped(flag string) bool {
	_, ok := p.skip[flag]
	return ok
}

// Rewrite returns the output form of a surviving flag, the flag itself when
// no transform is registered for it.
func (p Policy) Rewrite(flag string) string {
	if to, ok := p.transform[flag]; ok {
		return to
	}
	return flag
}

// DefaultSkipFlags returns a copy of the built-in exclusion set.
func DefaultSkipFlags() []string {
	return slices.Clone(defaultSkipFlags)
}
