package dispatch

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	lua "github.com/yuin/gopher-lua"
	"github.com/yuin/gopher-lua/parse"

	"github.com/malteki/cargo-cleaner/internal/walk"
)

const defaultFilterTimeout = 200 * time.Millisecond

// Filter is a compiled Lua predicate over manifests. The globals path, dir
// and depth describe the manifest being tested.
type Filter struct {
	proto   *lua.FunctionProto
	timeout time.Duration
}

// CompileFilter compiles a Lua predicate. Expressions without a return
// statement are wrapped as `return (<expr>)`.
func CompileFilter(src string) (*Filter, error) {
	code := src
	if !containsReturn(code) {
		code = "return (" + code + ")"
	}
	chunk, err := parse.Parse(strings.NewReader(code), "filter")
	if err != nil {
		return nil, fmt.Errorf("lua filter: %w", err)
	}
	proto, err := lua.Compile(chunk, "filter")
	if err != nil {
		return nil, fmt.Errorf("lua filter: %w", err)
	}
	return &Filter{proto: proto, timeout: defaultFilterTimeout}, nil
}

// Keep evaluates the predicate for e. Only a boolean true keeps the
// manifest.
func (f *Filter) Keep(e walk.Entry) (bool, error) {
	L := newSandboxState()
	defer L.Close()

	ctx, cancel := context.WithTimeout(context.Background(), f.timeout)
	defer cancel()
	L.SetContext(ctx)

	L.SetGlobal("path", lua.LString(e.Path))
	L.SetGlobal("dir", lua.LString(filepath.Dir(e.Path)))
	L.SetGlobal("depth", lua.LNumber(e.Depth))

	L.Push(L.NewFunctionFromProto(f.proto))
	if err := L.PCall(0, 1, nil); err != nil {
		return false, err
	}
	ret := L.Get(-1)
	L.Pop(1)
	return ret == lua.LTrue, nil
}

// newSandboxState opens only the base, string, table and math libraries.
func newSandboxState() *lua.LState {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	for _, lib := range []struct {
		name string
		fn   lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.StringLibName, lua.OpenString},
		{lua.TabLibName, lua.OpenTable},
		{lua.MathLibName, lua.OpenMath},
	} {
		L.Push(L.NewFunction(lib.fn))
		L.Push(lua.LString(lib.name))
		L.Call(1, 0)
	}
	// base exposes file loaders.
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require"} {
		L.SetGlobal(name, lua.LNil)
	}
	return L
}

func containsReturn(s string) bool {
	for i := 0; i+6 <= len(s); i++ {
		if s[i:i+6] != "return" {
			continue
		}
		before := i == 0 || !isIdent(s[i-1])
		after := i+6 == len(s) || !isIdent(s[i+6])
		if before && after {
			return true
		}
	}
	return false
}

func isIdent(b byte) bool {
	return b == '_' || ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z') || ('0' <= b && b <= '9')
}
