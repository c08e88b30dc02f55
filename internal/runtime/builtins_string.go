package runtime

import (
	"strings"

	"github.com/lambda-lang/lambda/internal/item"
)

// String built-ins operate on the VM's runtime string table, so this
// package takes plain Go strings in and out rather than Items directly
// — the jit.VM is responsible for the intern/lookup step around these
// calls, matching the layering already used for OpConcat.

// FnStrcat implements fn_strcat (config.StrcatFuncName): string
// concatenation, grounded on the teacher's builtins_string.go.
func (c *Context) FnStrcat(parts ...string) string {
	var b strings.Builder
	for _, p := range parts {
		b.WriteString(p)
	}
	return b.String()
}

func (c *Context) FnSubstring(s string, start, end int) (string, bool) {
	if start < 0 || end > len(s) || start > end {
		return "", false
	}
	return s[start:end], true
}

func (c *Context) FnContains(s, needle string) item.Item {
	return item.MakeBool(strings.Contains(s, needle))
}

func (c *Context) FnNormalize(s string) string {
	return strings.TrimSpace(s)
}

func (c *Context) FnStrLen(s string) item.Item {
	return item.MakeInt(int32(len([]rune(s))))
}
