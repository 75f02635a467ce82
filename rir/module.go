package rir

import "github.com/dafny-lang/dafny-codegen/diag"

// DeclRef is a stable, serializable reference to a TopLevelDecl: an arena
// index into the owning Program plus the name, kept alongside the index so
// diagnostics never need to walk back through the arena just to print a
// name (§9 "back-references by id" redesign).
type DeclRef struct {
	Index int
	Name  string
}

// Program is the root of the RIR: every module the resolver produced, in
// the order the resolver discovered them. DependencyOrder, not this slice,
// is what the driver actually walks.
type Program struct {
	Modules []*Module
	Decls   []TopLevelDecl // arena; DeclRef.Index indexes here
}

// DependencyOrder returns the modules in an order where a module always
// precedes any module that imports it (§4.1). The resolver has already
// rejected import cycles, so a straightforward DFS postorder suffices.
func (p *Program) DependencyOrder() []*Module {
	order := make([]*Module, 0, len(p.Modules))
	visited := make(map[*Module]bool, len(p.Modules))

	var visit func(m *Module)
	visit = func(m *Module) {
		if visited[m] {
			return
		}
		visited[m] = true
		if m.Enclosing != nil {
			visit(m.Enclosing)
		}
		for _, dep := range m.Imports {
			visit(dep)
		}
		order = append(order, m)
	}
	for _, m := range p.Modules {
		visit(m)
	}
	return order
}

// Module corresponds to spec §3's Module entity.
type Module struct {
	Name      string
	IsDefault bool
	Enclosing *Module // nil for the root module
	Imports   []*Module
	Decls     []TopLevelDecl
	Token     diag.SourceToken
}

// DeclKind distinguishes the TopLevelDecl variants.
type DeclKind int

const (
	ClassDecl DeclKind = iota
	TraitDecl
	DatatypeDecl
	NewtypeDecl
	SubsetTypeDecl
	IteratorDecl
)

// TopLevelDecl is the closed variant enumeration of spec §3's
// TopLevelDecl. A sealed interface replaces the inheritance hierarchy a
// naive port would use (§9).
type TopLevelDecl interface {
	isTopLevelDecl()
	DeclName() string
	DeclKind() DeclKind
}

// DeclBase carries the attributes every TopLevelDecl variant shares.
type DeclBase struct {
	Name           string
	// Self is this declaration's own stable arena index (§9 "back-references
	// by id"), set by the resolver when it builds Program.Decls. It lets a
	// TopLevelDecl refer to itself by DeclRef without a pointer cycle.
	Self           DeclRef
	TypeParams     []string
	Module         *Module
	Doc            string // Markdown, normalized by the resolver
	Attributes     map[string]string
	// Ghost marks the whole declaration as verification-only (§4.1 "Drop
	// non-ghost members whose enclosing type is itself ghost").
	Ghost bool
	Token          diag.SourceToken
}

func (d DeclBase) DeclName() string { return d.Name }

// Ref returns this declaration's own DeclRef.
func (d DeclBase) Ref() DeclRef { return d.Self }

// Class is §3's Class/Trait entity for the class variant.
type Class struct {
	DeclBase
	Members         []Member
	Implements      []DeclRef // traits this class implements
	IsDefaultClass  bool
}

func (*Class) isTopLevelDecl()    {}
func (*Class) DeclKind() DeclKind { return ClassDecl }

// Trait is the interface-like variant; Companion is the synthesized static
// receiver a backend without interface-default-methods lowers static trait
// members onto (§ GLOSSARY "Companion").
type Trait struct {
	DeclBase
	Members []Member
}

func (*Trait) isTopLevelDecl()    {}
func (*Trait) DeclKind() DeclKind { return TraitDecl }

// DatatypeShape distinguishes inductive from co-inductive datatypes.
type DatatypeShape int

const (
	Inductive DatatypeShape = iota
	CoInductive
)

// Datatype is §3's Datatype entity.
type Datatype struct {
	DeclBase
	Shape               DatatypeShape
	Constructors        []*Constructor
	DefaultConstructor   int // index into Constructors; meaningless for CoInductive
	Members              []Member
}

func (*Datatype) isTopLevelDecl()    {}
func (*Datatype) DeclKind() DeclKind { return DatatypeDecl }

// IsRecord reports whether this datatype has exactly one constructor, the
// case that collapses to a single product type under lowering (§4.1).
func (d *Datatype) IsRecord() bool { return len(d.Constructors) == 1 }

// Formal is a constructor or member parameter.
type Formal struct {
	Name    string
	Type    Type
	Ghost   bool
	Default Expr // optional default-value expression, nil if absent
}

// Constructor is §3's Constructor entity.
type Constructor struct {
	Name    string
	Formals []Formal
	Token   diag.SourceToken
}

// NonGhostFormals returns the formals a backend's generated destructors
// must expose (§3 invariant: non-ghost formals are addressable).
func (c *Constructor) NonGhostFormals() []Formal {
	out := make([]Formal, 0, len(c.Formals))
	for _, f := range c.Formals {
		if !f.Ghost {
			out = append(out, f)
		}
	}
	return out
}

// Newtype is a renamed base type with an optional constraint, §3.
type Newtype struct {
	DeclBase
	Base       Type
	Constraint Expr // nil if unconstrained
	Witness    Expr // nil if none needed or inferred
}

func (*Newtype) isTopLevelDecl()    {}
func (*Newtype) DeclKind() DeclKind { return NewtypeDecl }

// SubsetType is `type Name = x: Base | Constraint`, §3 and §8 scenario 6.
type SubsetType struct {
	DeclBase
	Base       Type
	BoundVar   string
	Constraint Expr
	Witness    Expr // non-nil iff the resolver proved or was given a witness
}

func (*SubsetType) isTopLevelDecl()    {}
func (*SubsetType) DeclKind() DeclKind { return SubsetTypeDecl }

// HasCompiledWitness reports whether this subset type can be compiled at
// all: the compilability filter drops subset types with no witness (§2
// step 2, §9 glossary "non-compiled witness").
func (s *SubsetType) HasCompiledWitness() bool { return s.Witness != nil }

// Iterator is the iterator-class variant: a class-like declaration whose
// body is a coroutine producing a sequence of yielded values.
type Iterator struct {
	DeclBase
	InFormals  []Formal
	OutFormals []Formal
	Body       []Stmt
}

func (*Iterator) isTopLevelDecl()    {}
func (*Iterator) DeclKind() DeclKind { return IteratorDecl }
