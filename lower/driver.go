package lower

import (
	"sort"

	"github.com/golang/glog"

	"github.com/dafny-lang/dafny-codegen/backend"
	"github.com/dafny-lang/dafny-codegen/diag"
	"github.com/dafny-lang/dafny-codegen/emit"
	"github.com/dafny-lang/dafny-codegen/internal/contract"
	"github.com/dafny-lang/dafny-codegen/rir"
)

// Compile is the lowering core's single entry point (§2, §4.1): it walks
// prog in dependency order, applies the compilability filter and the §4.4
// ghost-erasure rules to every declaration, and renders what survives
// through b. The returned diagnostics accumulate every non-fatal problem
// (§7 kind 1). err is set for the fatal cases (§7 kinds 2-4): an
// internal invariant violation, ambiguous/missing main-method resolution,
// or a failure rendering the final file set. err is also set when the
// accumulated diagnostics contain an error: err is then diags itself, and
// files still holds what was lowered.
func Compile(prog *rir.Program, opts Options, b backend.Backend) (files map[string][]byte, diags diag.Diagnostics, err error) {
	defer func() {
		if r := recover(); r == nil {
			return
		} else if ie, ok := r.(*InternalError); ok {
			err = ie
		} else if f, ok := r.(*contract.Failure); ok {
			err = f
		} else {
			panic(r)
		}
	}()

	main, mdiags, merr := FindMain(prog, opts.MainOverride)
	diags = append(diags, mdiags...)
	if merr != nil {
		return nil, diags, merr
	}

	d := &driver{
		prog:       prog,
		opts:       opts,
		b:          b,
		hasWitness: buildWitnessChecker(prog),
		mainMethod: main,
	}

	for _, m := range prog.DependencyOrder() {
		diags = append(diags, d.lowerModule(m)...)
	}

	files, ferr := b.Files()
	if ferr != nil {
		return nil, diags, ferr
	}
	if diags.HasErrors() {
		// §7 kind 1: an unsupported-construct diagnostic is non-fatal per
		// declaration, but the compilation as a whole still fails — the
		// files already lowered are still returned for inspection.
		return files, diags, diags
	}
	return files, diags, nil
}

// driver carries the state one Compile call threads through every
// declaration it lowers: the program being compiled (for default-value and
// witness lookups), the active backend, and which method (if any) is the
// discovered program entry point.
type driver struct {
	prog       *rir.Program
	opts       Options
	b          backend.Backend
	hasWitness WitnessChecker
	mainMethod *MainCandidate
}

// buildWitnessChecker answers the compilability filter's "does this
// trait/abstract declaration have at least one non-ghost instantiable
// implementor" question (§4.1) by precomputing, once, every trait a
// non-ghost class implements.
func buildWitnessChecker(prog *rir.Program) WitnessChecker {
	implemented := make(map[int]bool)
	for _, decl := range prog.Decls {
		c, ok := decl.(*rir.Class)
		if !ok || c.Ghost {
			continue
		}
		for _, ref := range c.Implements {
			implemented[ref.Index] = true
		}
	}
	return func(ref rir.DeclRef) bool {
		if ref.Index < 0 || ref.Index >= len(prog.Decls) {
			return false
		}
		switch d := prog.Decls[ref.Index].(type) {
		case *rir.Trait:
			return implemented[ref.Index]
		case *rir.Class:
			return !d.Ghost
		default:
			return true
		}
	}
}

func modulePath(m *rir.Module) string {
	if m.Enclosing == nil {
		return m.Name
	}
	return modulePath(m.Enclosing) + "/" + m.Name
}

// declIsGhost reads the Ghost flag every TopLevelDecl variant carries
// through its embedded DeclBase; TopLevelDecl itself exposes no such
// accessor, since the sealed-interface redesign (§9) deliberately keeps it
// off the shared interface and lets callers that need it type-switch
// instead.
func declIsGhost(decl rir.TopLevelDecl) bool {
	switch d := decl.(type) {
	case *rir.Class:
		return d.Ghost
	case *rir.Trait:
		return d.Ghost
	case *rir.Datatype:
		return d.Ghost
	case *rir.Newtype:
		return d.Ghost
	case *rir.SubsetType:
		return d.Ghost
	case *rir.Iterator:
		return d.Ghost
	default:
		return false
	}
}

func (d *driver) writeDoc(w emit.Writer, doc string) {
	rendered := RenderDoc(doc, d.b, d.opts.Target)
	if rendered != "" {
		w.Write(rendered)
		w.Write("\n")
	}
}

// lowerModule implements §4.1's per-module traversal order: a file
// preamble (the module scope itself), then the default class's
// fields/constants/members emitted directly into that scope, then every
// other declaration the module holds.
func (d *driver) lowerModule(m *rir.Module) diag.Diagnostics {
	fw := d.b.CreateFile(modulePath(m))
	modw := d.b.OpenModule(fw, m.Name)

	var diags diag.Diagnostics
	var defaultClass *rir.Class
	var others []rir.TopLevelDecl
	for _, decl := range m.Decls {
		if c, ok := decl.(*rir.Class); ok && c.IsDefaultClass {
			defaultClass = c
			continue
		}
		others = append(others, decl)
	}

	if defaultClass != nil {
		diags = append(diags, d.lowerDecl(modw, defaultClass)...)
	}
	for _, decl := range others {
		diags = append(diags, d.lowerDecl(modw, decl)...)
	}

	d.b.Close(modw)
	d.b.Close(fw)
	return diags
}

func (d *driver) lowerDecl(w emit.Writer, decl rir.TopLevelDecl) diag.Diagnostics {
	if declIsGhost(decl) {
		// A ghost declaration exists only for verification; it has no
		// runtime representation at all, not even an empty stub (§4.1
		// bullet 1 generalized from members to whole declarations).
		return nil
	}
	switch decl := decl.(type) {
	case *rir.Class:
		return d.lowerClass(w, decl)
	case *rir.Trait:
		return d.lowerTrait(w, decl)
	case *rir.Datatype:
		return d.lowerDatatypeDecl(w, decl)
	case *rir.Newtype:
		d.writeDoc(w, decl.Doc)
		d.b.DeclareNewtype(w, decl)
		return nil
	case *rir.SubsetType:
		if !decl.HasCompiledWitness() {
			// §2 step 2: a subset type with no witness cannot be
			// constructed at runtime at all; the filter drops it silently
			// rather than reporting it, since its only use was ghost-side.
			return nil
		}
		d.writeDoc(w, decl.Doc)
		d.b.DeclareSubsetType(w, decl)
		return nil
	case *rir.Iterator:
		return d.lowerIterator(w, decl)
	}
	internalf("lowerDecl", decl.DeclName(), "unhandled top-level decl kind %T", decl)
	return nil
}

func (d *driver) lowerClass(w emit.Writer, c *rir.Class) diag.Diagnostics {
	implements := make([]string, len(c.Implements))
	for i, ref := range c.Implements {
		implements[i] = ref.Name
	}
	d.writeDoc(w, c.Doc)
	cw := d.b.OpenClass(w, c.Name, implements, c.IsDefaultClass)
	diags := d.lowerMembers(cw, c.Members, c.Ghost, c.Ref())
	d.b.Close(cw)
	return diags
}

func (d *driver) lowerTrait(w emit.Writer, t *rir.Trait) diag.Diagnostics {
	d.writeDoc(w, t.Doc)
	tw := d.b.OpenClass(w, t.Name, nil, false)
	diags := d.lowerMembers(tw, t.Members, t.Ghost, t.Ref())
	d.b.Close(tw)
	return diags
}

func (d *driver) lowerDatatypeDecl(w emit.Writer, dt *rir.Datatype) diag.Diagnostics {
	d.writeDoc(w, dt.Doc)
	LowerDatatype(d.b, w, dt)
	return d.lowerMembers(w, dt.Members, dt.Ghost, dt.Ref())
}

// lowerIterator treats the iterator's body as a single coroutine method;
// every backend's own iterator-protocol plumbing (state machine, native
// generator, whatever its runtime idiom is) lives behind OpenMember and
// EmitStatement exactly as it would for any other method.
func (d *driver) lowerIterator(w emit.Writer, it *rir.Iterator) diag.Diagnostics {
	d.writeDoc(w, it.Doc)
	classw := d.b.OpenClass(w, it.Name, nil, false)
	sig := backend.MemberSignature{
		Name:       "MoveNext",
		Formals:    EraseFormals(it.InFormals),
		OutFormals: EraseFormals(it.OutFormals),
	}
	bodyw := d.b.OpenMember(classw, sig)
	for _, s := range PrepareBody(d.prog, d.b, it.Body) {
		d.b.EmitStatement(bodyw, s)
	}
	d.b.Close(bodyw)
	d.b.Close(classw)
	return nil
}

// lowerMembers applies §4.1's within-a-type ordering: fields and constants
// first in their declared relative order, then every other member kind
// with static members before instance members (a stable sort so members of
// equal static-ness keep their declared order).
func (d *driver) lowerMembers(w emit.Writer, members []rir.Member, enclosingGhost bool, enclosing rir.DeclRef) diag.Diagnostics {
	var fields, rest []rir.Member
	for _, m := range members {
		switch m.MemberKind() {
		case rir.FieldMember, rir.ConstantMember:
			fields = append(fields, m)
		default:
			rest = append(rest, m)
		}
	}
	sort.SliceStable(rest, func(i, j int) bool {
		return rest[i].IsStatic() && !rest[j].IsStatic()
	})

	var diags diag.Diagnostics
	for _, m := range append(fields, rest...) {
		keep, reason, rejectDiags := keepMember(d.prog, enclosingGhost, m, d.b, d.opts.Target, d.hasWitness)
		if !keep {
			glog.V(2).Infof("dropping member %s.%s: %s", enclosing.Name, m.MemberName(), reason)
			diags = append(diags, rejectDiags...)
			continue
		}
		diags = append(diags, d.lowerMember(w, m, enclosing)...)
	}
	return diags
}

func (d *driver) lowerMember(w emit.Writer, m rir.Member, enclosing rir.DeclRef) diag.Diagnostics {
	switch m := m.(type) {
	case *rir.Field:
		return d.lowerField(w, m)
	case *rir.Constant:
		return d.lowerConstant(w, m)
	case *rir.Method:
		return d.lowerMethod(w, m, enclosing)
	case *rir.Function:
		return d.lowerFunction(w, m)
	case *rir.Predicate:
		return d.lowerPredicate(w, m)
	case *rir.ConstructorMethod:
		return d.lowerConstructorMethod(w, m)
	case *rir.Lemma:
		// keepMember always drops lemmas (they are always ghost); this
		// branch only guards against a future filter bug silently
		// reaching EmitStatement with a lemma body.
		return nil
	}
	internalf("lowerMember", m.MemberName(), "unhandled member kind %T", m)
	return nil
}

func (d *driver) lowerField(w emit.Writer, f *rir.Field) diag.Diagnostics {
	d.writeDoc(w, f.Doc)
	hasInit := f.Default != nil
	iw := d.b.DeclareField(w, f.Name, f.Type, f.Static, f.Mutable, hasInit)
	if hasInit {
		d.b.EmitExpression(iw, prepareExpr(d.prog, d.b, f.Default))
		d.b.Close(iw)
	}
	return nil
}

func (d *driver) lowerConstant(w emit.Writer, c *rir.Constant) diag.Diagnostics {
	d.writeDoc(w, c.Doc)
	value := prepareExpr(d.prog, d.b, ErasedConstantValue(d.prog, c))
	iw := d.b.DeclareField(w, c.Name, c.Type, c.Static, false, true)
	d.b.EmitExpression(iw, value)
	d.b.Close(iw)
	return nil
}

func (d *driver) lowerMethod(w emit.Writer, m *rir.Method, enclosing rir.DeclRef) diag.Diagnostics {
	d.writeDoc(w, m.Doc)
	isMain := d.mainMethod != nil && d.mainMethod.Method == m
	sig := backend.MemberSignature{
		Name:       m.Name,
		Static:     m.Static,
		Formals:    EraseFormals(m.Formals),
		OutFormals: EraseFormals(m.OutFormals),
		IsMain:     isMain,
	}
	bw := d.b.OpenMember(w, sig)

	body := m.Body
	if m.Tail.IsTailRecursive {
		label := m.Tail.Label
		if label == "" {
			label = "tail_" + m.Name
		}
		body = TransformTailCalls(enclosing, m.Name, m.Formals, body, label)
	}
	for _, s := range PrepareBody(d.prog, d.b, body) {
		d.b.EmitStatement(bw, s)
	}
	d.b.Close(bw)
	return nil
}

// lowerFunction does not apply TransformTailCalls: a Function's body is a
// single expression tree, not a statement sequence, so there is nothing
// for the loop-rewriting transform to rewrite. A tail-recursive function
// keeps its natural recursive call; the target runtime's own stack
// behavior governs it, same as it would for any other expression-bodied
// self-call.
//
// Unlike a method or constructor, a function's ghost formals are NOT
// erased from its signature (§4.4 bullet 3): the driver keeps them and
// instead rewrites call-site arguments in that position to the formal's
// default value (prepareExpr's ApplyExpr case via RewriteGhostArgs), so
// the signature declared here must match what those call sites pass.
func (d *driver) lowerFunction(w emit.Writer, f *rir.Function) diag.Diagnostics {
	d.writeDoc(w, f.Doc)
	sig := backend.MemberSignature{
		Name:    f.Name,
		Static:  f.Static,
		Formals: f.Formals,
		Result:  f.Result,
	}
	bw := d.b.OpenMember(w, sig)
	if f.Body != nil {
		d.b.EmitExpression(bw, prepareExpr(d.prog, d.b, f.Body))
	}
	d.b.Close(bw)
	return nil
}

func (d *driver) lowerPredicate(w emit.Writer, p *rir.Predicate) diag.Diagnostics {
	d.writeDoc(w, p.Doc)
	sig := backend.MemberSignature{
		Name:    p.Name,
		Static:  p.Static,
		Formals: EraseFormals(p.Formals),
		Result:  rir.BoolType{},
	}
	bw := d.b.OpenMember(w, sig)
	if p.Body != nil {
		d.b.EmitExpression(bw, prepareExpr(d.prog, d.b, p.Body))
	}
	d.b.Close(bw)
	return nil
}

func (d *driver) lowerConstructorMethod(w emit.Writer, cm *rir.ConstructorMethod) diag.Diagnostics {
	d.writeDoc(w, cm.Doc)
	sig := backend.MemberSignature{
		Name:          cm.Name,
		IsConstructor: true,
		Formals:       EraseFormals(cm.Formals),
	}
	bw := d.b.OpenMember(w, sig)
	for _, s := range PrepareBody(d.prog, d.b, cm.Body) {
		d.b.EmitStatement(bw, s)
	}
	d.b.Close(bw)
	return nil
}
