package runner

import (
	"context"
	"strings"

	lua "github.com/yuin/gopher-lua"
)

// runLua executes code in an embedded, sandboxed Lua interpreter instead of
// a subprocess. Only the base, table, string, and math libraries are opened;
// io, os, debug, and package stay closed. print output is captured.
func (r *Runner) runLua(ctx context.Context, code string) (Result, error) {
	runCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()
	L.SetContext(runCtx)

	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	// dofile/loadfile could reach the filesystem through the base library.
	L.SetGlobal("dofile", lua.LNil)
	L.SetGlobal("loadfile", lua.LNil)

	var out strings.Builder
	L.SetGlobal("print", L.NewFunction(func(L *lua.LState) int {
		top := L.GetTop()
		for i := 1; i <= top; i++ {
			if i > 1 {
				out.WriteByte('\t')
			}
			out.WriteString(L.ToStringMeta(L.Get(i)).String())
		}
		out.WriteByte('\n')
		return 0
	}))

	if err := L.DoString(code); err != nil {
		return Result{Output: out.String(), Error: err.Error()}, nil
	}

	return Result{Output: out.String()}, nil
}
