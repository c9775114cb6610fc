package runner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// runInterpreted writes code to a temp file and feeds it to an interpreter.
func (r *Runner) runInterpreted(ctx context.Context, runID, code, suffix, interpreter string) (Result, error) {
	src, err := r.writeTemp(runID, code, suffix)
	if err != nil {
		return Result{}, err
	}
	defer os.Remove(src)

	return r.execute(ctx, interpreter, src), nil
}

// runCompiled compiles a temp source file with the given compiler and runs
// the produced binary. Compile errors are reported without running.
func (r *Runner) runCompiled(ctx context.Context, runID, code, suffix, compiler string) (Result, error) {
	src, err := r.writeTemp(runID, code, suffix)
	if err != nil {
		return Result{}, err
	}
	defer os.Remove(src)

	bin := strings.TrimSuffix(src, suffix)
	defer os.Remove(bin)

	if compile := r.execute(ctx, compiler, src, "-o", bin); compile.Error != "" {
		return Result{Error: compile.Error}, nil
	}

	return r.execute(ctx, bin), nil
}

// runGo builds a temp source file with the go tool and runs the binary.
func (r *Runner) runGo(ctx context.Context, runID, code string) (Result, error) {
	src, err := r.writeTemp(runID, code, ".go")
	if err != nil {
		return Result{}, err
	}
	defer os.Remove(src)

	bin := strings.TrimSuffix(src, ".go")
	defer os.Remove(bin)

	if compile := r.execute(ctx, "go", "build", "-o", bin, src); compile.Error != "" {
		return Result{Error: compile.Error}, nil
	}

	return r.execute(ctx, bin), nil
}

// runJava extracts the public class name, compiles the source into a temp
// directory under that name, and runs the class.
func (r *Runner) runJava(ctx context.Context, runID, code string) (Result, error) {
	className := javaClassName(code)
	if className == "" {
		return Result{Error: "Could not find a public class in the Java code."}, nil
	}

	dir, err := os.MkdirTemp("", "run-"+runID+"-*")
	if err != nil {
		return Result{}, fmt.Errorf("creating temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	src := filepath.Join(dir, className+".java")
	if err := os.WriteFile(src, []byte(code), 0o600); err != nil {
		return Result{}, fmt.Errorf("writing temp source: %w", err)
	}

	if compile := r.execute(ctx, "javac", src); compile.Error != "" {
		return Result{Error: compile.Error}, nil
	}

	return r.execute(ctx, "java", "-cp", dir, className), nil
}

// javaClassName scans for the first `public class` declaration and returns
// its name, or "" when none is found.
func javaClassName(code string) string {
	for _, line := range strings.Split(code, "\n") {
		idx := strings.Index(line, "public class")
		if idx < 0 {
			continue
		}
		rest := line[idx+len("public class"):]
		if brace := strings.Index(rest, "{"); brace >= 0 {
			rest = rest[:brace]
		}
		return strings.TrimSpace(rest)
	}
	return ""
}
