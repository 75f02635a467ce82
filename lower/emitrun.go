package lower

import (
	"github.com/pkg/errors"

	"github.com/dafny-lang/dafny-codegen/backend"
	"github.com/dafny-lang/dafny-codegen/diag"
	"github.com/dafny-lang/dafny-codegen/emit"
	"github.com/dafny-lang/dafny-codegen/rir"
	"github.com/dafny-lang/dafny-codegen/runtime"
)

// Run ties together the pieces §6 describes as one external-facing
// operation: lower prog through b, merge in the target's embedded runtime
// support files (§6 "Embedded runtime"), write the artifact set to
// opts.OutputPath with emit.WriteFiles (each file atomically; if one write
// fails, the files already written stay in place), and — for a compile
// level that warrants it — invoke the target's native toolchain. Compile
// itself stays testable in isolation (it never touches a filesystem path);
// Run is the thin seam an external CLI layer calls into.
func Run(prog *rir.Program, opts Options, b backend.Backend) (diags diag.Diagnostics, err error) {
	files, diags, err := Compile(prog, opts, b)
	if err != nil {
		return diags, err
	}

	runtimeFiles, rerr := runtime.FilesFor(b.Tag())
	if rerr != nil {
		return diags, errors.Wrapf(rerr, "loading runtime resources for %s", b.Tag())
	}
	for name, content := range runtimeFiles {
		files[name] = content
	}

	if err := emit.WriteFiles(opts.OutputPath, files); err != nil {
		return diags, errors.Wrap(err, "writing output files")
	}

	if opts.CompileLevel < LevelCompile {
		return diags, nil
	}
	stderr, perr := b.PostEmit(opts.OutputPath, int(opts.CompileLevel))
	if perr != nil {
		diags = diags.NativeToolFailure(b.Tag(), stderr)
		return diags, errors.Wrap(perr, "native toolchain failed")
	}
	return diags, nil
}
