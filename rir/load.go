package rir

import (
	_ "embed"
	"fmt"
	"io"
	"math/big"
	"os"
	"strings"

	"github.com/edsrzf/mmap-go"
	"github.com/pkg/errors"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/segmentio/encoding/json"

	"github.com/dafny-lang/dafny-codegen/diag"
)

//go:embed rir.schema.json
var schemaSource string

var schema = func() *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	compiler.LoadURL = func(u string) (io.ReadCloser, error) {
		if u == "blob://rir.json" {
			return io.NopCloser(strings.NewReader(schemaSource)), nil
		}
		return jsonschema.LoadURL(u)
	}
	return compiler.MustCompile("blob://rir.json")
}()

// LoadFile memory-maps path, validates its contents against the wire
// schema, and decodes it into a *Program (SPEC_FULL §3 NEW). A resolver
// running out-of-process, or a test fixture, is the only producer of this
// format; the core never writes it.
//
// Large fixtures are mapped rather than copied into the process's heap, the
// way the teacher's schema loader maps pulumi.json once per process instead
// of parsing it on every load (pkg/codegen/schema/loader_mmap.go).
func LoadFile(path string) (*Program, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	defer f.Close()

	if fi, serr := f.Stat(); serr == nil && fi.Size() == 0 {
		return &Program{}, nil
	}

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, errors.Wrapf(err, "mapping %s", path)
	}
	defer m.Unmap()

	var raw interface{}
	if err := json.Unmarshal(m, &raw); err != nil {
		return nil, errors.Wrapf(err, "parsing %s as JSON", path)
	}

	if err := schema.Validate(raw); err != nil {
		return nil, errors.Wrapf(err, "%s does not match the RIR wire schema", path)
	}

	top, ok := raw.(map[string]interface{})
	if !ok {
		return nil, errors.Errorf("%s: top-level JSON value must be an object", path)
	}
	return decodeProgram(top)
}

// decoder carries the two-pass state a wire program needs: Module structs
// are pointers referenced from both other modules (Enclosing, Imports) and
// from every decl, so they must all exist before any decl is decoded.
type decoder struct {
	modules []*Module
	decls   []TopLevelDecl
}

func decodeProgram(top map[string]interface{}) (*Program, error) {
	d := &decoder{}

	rawModules, _ := top["modules"].([]interface{})
	d.modules = make([]*Module, len(rawModules))
	for i, rm := range rawModules {
		mm, ok := rm.(map[string]interface{})
		if !ok {
			return nil, errors.Errorf("modules[%d]: expected object", i)
		}
		d.modules[i] = &Module{
			Name:      str(mm["name"]),
			IsDefault: boolv(mm["isDefault"]),
			Token:     decodeToken(mm["token"]),
		}
	}
	for i, rm := range rawModules {
		mm := rm.(map[string]interface{})
		if enc, ok := mm["enclosing"]; ok && enc != nil {
			idx, err := intFrom(enc)
			if err != nil {
				return nil, errors.Wrapf(err, "modules[%d].enclosing", i)
			}
			if idx < 0 || idx >= len(d.modules) {
				return nil, errors.Errorf("modules[%d].enclosing: index %d out of range", i, idx)
			}
			d.modules[i].Enclosing = d.modules[idx]
		}
		for _, ri := range sliceOf(mm["imports"]) {
			idx, err := intFrom(ri)
			if err != nil {
				return nil, errors.Wrapf(err, "modules[%d].imports", i)
			}
			if idx < 0 || idx >= len(d.modules) {
				return nil, errors.Errorf("modules[%d].imports: index %d out of range", i, idx)
			}
			d.modules[i].Imports = append(d.modules[i].Imports, d.modules[idx])
		}
	}

	rawDecls, _ := top["decls"].([]interface{})
	d.decls = make([]TopLevelDecl, len(rawDecls))
	for i, rd := range rawDecls {
		dm, ok := rd.(map[string]interface{})
		if !ok {
			return nil, errors.Errorf("decls[%d]: expected object", i)
		}
		decl, err := d.decodeDecl(i, dm)
		if err != nil {
			return nil, errors.Wrapf(err, "decls[%d]", i)
		}
		d.decls[i] = decl
	}

	for i, m := range d.modules {
		for _, idx := range sliceOf(rawModules[i].(map[string]interface{})["decls"]) {
			di, err := intFrom(idx)
			if err != nil {
				return nil, err
			}
			if di < 0 || di >= len(d.decls) {
				return nil, errors.Errorf("modules[%d].decls: index %d out of range", i, di)
			}
			m.Decls = append(m.Decls, d.decls[di])
		}
	}

	return &Program{Modules: d.modules, Decls: d.decls}, nil
}

func (d *decoder) declBase(self int, m map[string]interface{}) (DeclBase, error) {
	base := DeclBase{
		Name:       str(m["name"]),
		Self:       DeclRef{Index: self, Name: str(m["name"])},
		TypeParams: strSlice(m["typeParams"]),
		Doc:        str(m["doc"]),
		Attributes: strMap(m["attributes"]),
		Ghost:      boolv(m["ghost"]),
		Token:      decodeToken(m["token"]),
	}
	if mi, ok := m["module"]; ok && mi != nil {
		idx, err := intFrom(mi)
		if err != nil {
			return base, err
		}
		if idx < 0 || idx >= len(d.modules) {
			return base, errors.Errorf("module index %d out of range", idx)
		}
		base.Module = d.modules[idx]
	}
	return base, nil
}

func (d *decoder) decodeDecl(self int, m map[string]interface{}) (TopLevelDecl, error) {
	base, err := d.declBase(self, m)
	if err != nil {
		return nil, err
	}
	switch str(m["kind"]) {
	case "class":
		members, err := decodeMembers(sliceOf(m["members"]))
		if err != nil {
			return nil, err
		}
		return &Class{
			DeclBase:       base,
			Members:        members,
			Implements:     decodeDeclRefs(sliceOf(m["implements"])),
			IsDefaultClass: boolv(m["isDefaultClass"]),
		}, nil
	case "trait":
		members, err := decodeMembers(sliceOf(m["members"]))
		if err != nil {
			return nil, err
		}
		return &Trait{DeclBase: base, Members: members}, nil
	case "datatype":
		ctors, err := decodeConstructors(sliceOf(m["constructors"]))
		if err != nil {
			return nil, err
		}
		members, err := decodeMembers(sliceOf(m["members"]))
		if err != nil {
			return nil, err
		}
		shape := Inductive
		if str(m["shape"]) == "coInductive" {
			shape = CoInductive
		}
		return &Datatype{
			DeclBase:           base,
			Shape:              shape,
			Constructors:       ctors,
			DefaultConstructor: intOr(m["defaultConstructor"], 0),
			Members:            members,
		}, nil
	case "newtype":
		base_, err := decodeType(m["base"])
		if err != nil {
			return nil, err
		}
		constraint, err := decodeExprMaybe(m["constraint"])
		if err != nil {
			return nil, err
		}
		witness, err := decodeExprMaybe(m["witness"])
		if err != nil {
			return nil, err
		}
		return &Newtype{DeclBase: base, Base: base_, Constraint: constraint, Witness: witness}, nil
	case "subsetType":
		base_, err := decodeType(m["base"])
		if err != nil {
			return nil, err
		}
		constraint, err := decodeExprMaybe(m["constraint"])
		if err != nil {
			return nil, err
		}
		witness, err := decodeExprMaybe(m["witness"])
		if err != nil {
			return nil, err
		}
		return &SubsetType{
			DeclBase:   base,
			Base:       base_,
			BoundVar:   str(m["boundVar"]),
			Constraint: constraint,
			Witness:    witness,
		}, nil
	case "iterator":
		in, err := decodeFormals(sliceOf(m["inFormals"]))
		if err != nil {
			return nil, err
		}
		out, err := decodeFormals(sliceOf(m["outFormals"]))
		if err != nil {
			return nil, err
		}
		body, err := decodeStmts(sliceOf(m["body"]))
		if err != nil {
			return nil, err
		}
		return &Iterator{DeclBase: base, InFormals: in, OutFormals: out, Body: body}, nil
	default:
		return nil, errors.Errorf("unknown decl kind %q", str(m["kind"]))
	}
}

func decodeConstructors(raw []interface{}) ([]*Constructor, error) {
	out := make([]*Constructor, 0, len(raw))
	for i, rc := range raw {
		cm, ok := rc.(map[string]interface{})
		if !ok {
			return nil, errors.Errorf("constructors[%d]: expected object", i)
		}
		formals, err := decodeFormals(sliceOf(cm["formals"]))
		if err != nil {
			return nil, errors.Wrapf(err, "constructors[%d]", i)
		}
		out = append(out, &Constructor{
			Name:    str(cm["name"]),
			Formals: formals,
			Token:   decodeToken(cm["token"]),
		})
	}
	return out, nil
}

func decodeFormals(raw []interface{}) ([]Formal, error) {
	out := make([]Formal, 0, len(raw))
	for i, rf := range raw {
		fm, ok := rf.(map[string]interface{})
		if !ok {
			return nil, errors.Errorf("formals[%d]: expected object", i)
		}
		t, err := decodeType(fm["type"])
		if err != nil {
			return nil, errors.Wrapf(err, "formals[%d].type", i)
		}
		def, err := decodeExprMaybe(fm["default"])
		if err != nil {
			return nil, errors.Wrapf(err, "formals[%d].default", i)
		}
		out = append(out, Formal{
			Name:    str(fm["name"]),
			Type:    t,
			Ghost:   boolv(fm["ghost"]),
			Default: def,
		})
	}
	return out, nil
}

func decodeMembers(raw []interface{}) ([]Member, error) {
	out := make([]Member, 0, len(raw))
	for i, rm := range raw {
		mm, ok := rm.(map[string]interface{})
		if !ok {
			return nil, errors.Errorf("members[%d]: expected object", i)
		}
		mem, err := decodeMember(mm)
		if err != nil {
			return nil, errors.Wrapf(err, "members[%d]", i)
		}
		out = append(out, mem)
	}
	return out, nil
}

func memberBase(m map[string]interface{}) MemberBase {
	return MemberBase{
		Name:       str(m["name"]),
		Ghost:      boolv(m["ghost"]),
		Static:     boolv(m["static"]),
		TypeParams: strSlice(m["typeParams"]),
		Doc:        str(m["doc"]),
		Token:      decodeToken(m["token"]),
	}
}

func decodeSpec(m map[string]interface{}) (Specification, error) {
	reqs, err := decodeExprs(sliceOf(m["requires"]))
	if err != nil {
		return Specification{}, err
	}
	ens, err := decodeExprs(sliceOf(m["ensures"]))
	if err != nil {
		return Specification{}, err
	}
	dec, err := decodeExprs(sliceOf(m["decreases"]))
	if err != nil {
		return Specification{}, err
	}
	return Specification{Requires: reqs, Ensures: ens, Decreases: dec}, nil
}

func decodeTail(m map[string]interface{}) TailRecursion {
	if m == nil {
		return TailRecursion{}
	}
	return TailRecursion{IsTailRecursive: boolv(m["isTailRecursive"]), Label: str(m["label"])}
}

func decodeMember(m map[string]interface{}) (Member, error) {
	base := memberBase(m)
	switch str(m["kind"]) {
	case "field":
		t, err := decodeType(m["type"])
		if err != nil {
			return nil, err
		}
		def, err := decodeExprMaybe(m["default"])
		if err != nil {
			return nil, err
		}
		return &Field{MemberBase: base, Type: t, Mutable: boolv(m["mutable"]), Default: def}, nil
	case "constant":
		t, err := decodeType(m["type"])
		if err != nil {
			return nil, err
		}
		v, err := decodeExpr(m["value"])
		if err != nil {
			return nil, err
		}
		return &Constant{MemberBase: base, Type: t, Value: v, RHSMentionsGhost: boolv(m["rhsMentionsGhost"])}, nil
	case "method":
		formals, err := decodeFormals(sliceOf(m["formals"]))
		if err != nil {
			return nil, err
		}
		outFormals, err := decodeFormals(sliceOf(m["outFormals"]))
		if err != nil {
			return nil, err
		}
		spec, err := decodeSpec(mapOf(m["spec"]))
		if err != nil {
			return nil, err
		}
		body, err := decodeStmts(sliceOf(m["body"]))
		if err != nil {
			return nil, err
		}
		return &Method{
			MemberBase:      base,
			Formals:         formals,
			OutFormals:      outFormals,
			Spec:            spec,
			Body:            body,
			Tail:            decodeTail(mapOf(m["tail"])),
			IsMainCandidate: boolv(m["isMainCandidate"]),
		}, nil
	case "function":
		formals, err := decodeFormals(sliceOf(m["formals"]))
		if err != nil {
			return nil, err
		}
		result, err := decodeType(m["result"])
		if err != nil {
			return nil, err
		}
		spec, err := decodeSpec(mapOf(m["spec"]))
		if err != nil {
			return nil, err
		}
		body, err := decodeExprMaybe(m["body"])
		if err != nil {
			return nil, err
		}
		return &Function{
			MemberBase: base,
			Formals:    formals,
			Result:     result,
			Spec:       spec,
			Body:       body,
			Tail:       decodeTail(mapOf(m["tail"])),
		}, nil
	case "constructor":
		formals, err := decodeFormals(sliceOf(m["formals"]))
		if err != nil {
			return nil, err
		}
		spec, err := decodeSpec(mapOf(m["spec"]))
		if err != nil {
			return nil, err
		}
		body, err := decodeStmts(sliceOf(m["body"]))
		if err != nil {
			return nil, err
		}
		return &ConstructorMethod{MemberBase: base, Formals: formals, Spec: spec, Body: body}, nil
	case "lemma":
		formals, err := decodeFormals(sliceOf(m["formals"]))
		if err != nil {
			return nil, err
		}
		spec, err := decodeSpec(mapOf(m["spec"]))
		if err != nil {
			return nil, err
		}
		body, err := decodeStmts(sliceOf(m["body"]))
		if err != nil {
			return nil, err
		}
		return &Lemma{MemberBase: base, Formals: formals, Spec: spec, Body: body}, nil
	case "predicate":
		formals, err := decodeFormals(sliceOf(m["formals"]))
		if err != nil {
			return nil, err
		}
		spec, err := decodeSpec(mapOf(m["spec"]))
		if err != nil {
			return nil, err
		}
		body, err := decodeExpr(m["body"])
		if err != nil {
			return nil, err
		}
		return &Predicate{MemberBase: base, Formals: formals, Spec: spec, Body: body}, nil
	default:
		return nil, errors.Errorf("unknown member kind %q", str(m["kind"]))
	}
}

func decodeType(raw interface{}) (Type, error) {
	if raw == nil {
		return nil, nil
	}
	m, ok := raw.(map[string]interface{})
	if !ok {
		return nil, errors.Errorf("expected a type object, got %T", raw)
	}
	switch str(m["kind"]) {
	case "bool":
		return BoolType{}, nil
	case "char":
		return CharType{}, nil
	case "int":
		return IntType{}, nil
	case "real":
		return RealType{}, nil
	case "bitvector":
		return BitvectorType{Width: intOr(m["width"], 0), NativeBits: intOr(m["nativeBits"], 0)}, nil
	case "collection":
		var kind CollectionKind
		switch str(m["collectionKind"]) {
		case "set":
			kind = SetKind
		case "multiset":
			kind = MultisetKind
		case "map":
			kind = MapKind
		default:
			kind = SeqKind
		}
		elem, err := decodeType(m["element"])
		if err != nil {
			return nil, err
		}
		var key Type
		if kind == MapKind {
			key, err = decodeType(m["key"])
			if err != nil {
				return nil, err
			}
		}
		return CollectionType{Kind: kind, Key: key, Element: elem}, nil
	case "array":
		elem, err := decodeType(m["element"])
		if err != nil {
			return nil, err
		}
		return ArrayType{Rank: intOr(m["rank"], 1), Element: elem}, nil
	case "userDefined":
		args, err := decodeTypes(sliceOf(m["typeArgs"]))
		if err != nil {
			return nil, err
		}
		return UserDefinedType{Decl: decodeDeclRef(m["decl"]), TypeArgs: args}, nil
	case "arrow":
		inputs, err := decodeTypes(sliceOf(m["inputs"]))
		if err != nil {
			return nil, err
		}
		output, err := decodeType(m["output"])
		if err != nil {
			return nil, err
		}
		return ArrowType{Inputs: inputs, Output: output}, nil
	case "typeParameter":
		return TypeParameterType{Name: str(m["name"])}, nil
	case "proxy", "":
		return TypeProxy{}, nil
	default:
		return nil, errors.Errorf("unknown type kind %q", str(m["kind"]))
	}
}

func decodeTypes(raw []interface{}) ([]Type, error) {
	out := make([]Type, 0, len(raw))
	for i, rt := range raw {
		t, err := decodeType(rt)
		if err != nil {
			return nil, errors.Wrapf(err, "[%d]", i)
		}
		out = append(out, t)
	}
	return out, nil
}

func decodeDeclRef(raw interface{}) DeclRef {
	m, ok := raw.(map[string]interface{})
	if !ok {
		return DeclRef{}
	}
	return DeclRef{Index: intOr(m["index"], 0), Name: str(m["name"])}
}

func decodeDeclRefs(raw []interface{}) []DeclRef {
	out := make([]DeclRef, 0, len(raw))
	for _, r := range raw {
		out = append(out, decodeDeclRef(r))
	}
	return out
}

func exprBase(m map[string]interface{}) (ExprBase, error) {
	t, err := decodeType(m["type"])
	if err != nil {
		return ExprBase{}, err
	}
	return ExprBase{Type: t, Token: decodeToken(m["token"])}, nil
}

func decodeExprMaybe(raw interface{}) (Expr, error) {
	if raw == nil {
		return nil, nil
	}
	return decodeExpr(raw)
}

func decodeExprs(raw []interface{}) ([]Expr, error) {
	out := make([]Expr, 0, len(raw))
	for i, re := range raw {
		e, err := decodeExpr(re)
		if err != nil {
			return nil, errors.Wrapf(err, "[%d]", i)
		}
		out = append(out, e)
	}
	return out, nil
}

var binOpNames = map[string]BinaryOpKind{
	"add": OpAdd, "sub": OpSub, "mul": OpMul, "div": OpDiv, "mod": OpMod,
	"eq": OpEq, "neq": OpNeq, "lt": OpLt, "le": OpLe, "gt": OpGt, "ge": OpGe,
	"and": OpAnd, "or": OpOr, "implies": OpImplies,
	"bitAnd": OpBitAnd, "bitOr": OpBitOr, "bitXor": OpBitXor,
	"shl": OpShl, "shr": OpShr, "rotl": OpRotl, "rotr": OpRotr,
	"concat": OpConcat, "in": OpIn,
}

var unOpNames = map[string]UnaryOpKind{
	"neg": OpNeg, "not": OpNot, "bitNot": OpBitNot, "cardinality": OpCardinality,
}

func decodeExpr(raw interface{}) (Expr, error) {
	m, ok := raw.(map[string]interface{})
	if !ok {
		return nil, errors.Errorf("expected an expression object, got %T", raw)
	}
	base, err := exprBase(m)
	if err != nil {
		return nil, err
	}
	switch str(m["kind"]) {
	case "literal":
		v, err := decodeLiteralValue(str(m["literalKind"]), m["value"])
		if err != nil {
			return nil, err
		}
		return &Literal{ExprBase: base, Kind: decodeLiteralKind(str(m["literalKind"])), Value: v}, nil
	case "binary":
		l, err := decodeExpr(m["left"])
		if err != nil {
			return nil, err
		}
		r, err := decodeExpr(m["right"])
		if err != nil {
			return nil, err
		}
		op, ok := binOpNames[str(m["op"])]
		if !ok {
			return nil, errors.Errorf("unknown binary op %q", str(m["op"]))
		}
		return &BinaryExpr{ExprBase: base, Op: op, Left: l, Right: r}, nil
	case "unary":
		operand, err := decodeExpr(m["operand"])
		if err != nil {
			return nil, err
		}
		op, ok := unOpNames[str(m["op"])]
		if !ok {
			return nil, errors.Errorf("unknown unary op %q", str(m["op"]))
		}
		return &UnaryExpr{ExprBase: base, Op: op, Operand: operand}, nil
	case "conversion":
		operand, err := decodeExpr(m["operand"])
		if err != nil {
			return nil, err
		}
		target, err := decodeType(m["target"])
		if err != nil {
			return nil, err
		}
		return &ConversionExpr{ExprBase: base, Operand: operand, Target: target}, nil
	case "collectionDisplay":
		elems, err := decodeExprs(sliceOf(m["elements"]))
		if err != nil {
			return nil, err
		}
		return &CollectionDisplay{ExprBase: base, Kind: decodeCollectionKind(str(m["collectionKind"])), Elements: elems}, nil
	case "mapDisplay":
		keys, err := decodeExprs(sliceOf(m["keys"]))
		if err != nil {
			return nil, err
		}
		vals, err := decodeExprs(sliceOf(m["values"]))
		if err != nil {
			return nil, err
		}
		return &MapDisplay{ExprBase: base, Keys: keys, Values: vals}, nil
	case "indexSelect":
		coll, err := decodeExpr(m["collection"])
		if err != nil {
			return nil, err
		}
		idx, err := decodeExpr(m["index"])
		if err != nil {
			return nil, err
		}
		return &IndexSelect{ExprBase: base, Collection: coll, Index: idx}, nil
	case "indexUpdate":
		coll, err := decodeExpr(m["collection"])
		if err != nil {
			return nil, err
		}
		idx, err := decodeExpr(m["index"])
		if err != nil {
			return nil, err
		}
		val, err := decodeExpr(m["value"])
		if err != nil {
			return nil, err
		}
		return &IndexUpdate{ExprBase: base, Collection: coll, Index: idx, Value: val}, nil
	case "seqSlice":
		seq, err := decodeExpr(m["seq"])
		if err != nil {
			return nil, err
		}
		lo, err := decodeExprMaybe(m["lo"])
		if err != nil {
			return nil, err
		}
		hi, err := decodeExprMaybe(m["hi"])
		if err != nil {
			return nil, err
		}
		return &SeqSlice{ExprBase: base, Seq: seq, Lo: lo, Hi: hi, DropForm: boolv(m["dropForm"])}, nil
	case "arraySelect":
		arr, err := decodeExpr(m["array"])
		if err != nil {
			return nil, err
		}
		idxs, err := decodeExprs(sliceOf(m["indices"]))
		if err != nil {
			return nil, err
		}
		return &ArraySelect{ExprBase: base, Array: arr, Indices: idxs}, nil
	case "quantifier":
		domain, err := decodeType(m["domain"])
		if err != nil {
			return nil, err
		}
		body, err := decodeExpr(m["body"])
		if err != nil {
			return nil, err
		}
		kind := Forall
		if str(m["quantifierKind"]) == "exists" {
			kind = Exists
		}
		return &QuantifierExpr{ExprBase: base, Kind: kind, BoundVar: str(m["boundVar"]), Domain: domain, Body: body}, nil
	case "comprehension":
		domain, err := decodeType(m["domain"])
		if err != nil {
			return nil, err
		}
		filter, err := decodeExprMaybe(m["filter"])
		if err != nil {
			return nil, err
		}
		elem, err := decodeExpr(m["element"])
		if err != nil {
			return nil, err
		}
		key, err := decodeExprMaybe(m["keyExpr"])
		if err != nil {
			return nil, err
		}
		return &ComprehensionExpr{
			ExprBase: base,
			Kind:     decodeCollectionKind(str(m["collectionKind"])),
			BoundVar: str(m["boundVar"]),
			Domain:   domain,
			Filter:   filter,
			Element:  elem,
			KeyExpr:  key,
		}, nil
	case "lambda":
		formals, err := decodeFormals(sliceOf(m["formals"]))
		if err != nil {
			return nil, err
		}
		body, err := decodeExpr(m["body"])
		if err != nil {
			return nil, err
		}
		return &LambdaExpr{ExprBase: base, Formals: formals, Body: body}, nil
	case "let":
		val, err := decodeExpr(m["value"])
		if err != nil {
			return nil, err
		}
		body, err := decodeExpr(m["body"])
		if err != nil {
			return nil, err
		}
		return &LetExpr{ExprBase: base, Name: str(m["name"]), Value: val, Body: body}, nil
	case "match":
		scrutinee, err := decodeExpr(m["scrutinee"])
		if err != nil {
			return nil, err
		}
		arms, err := decodeMatchArms(sliceOf(m["arms"]))
		if err != nil {
			return nil, err
		}
		bodies, err := decodeExprs(sliceOf(m["armBodies"]))
		if err != nil {
			return nil, err
		}
		return &MatchExpr{
			ExprBase:         base,
			Scrutinee:        scrutinee,
			ScrutineeIsGhost: boolv(m["scrutineeIsGhost"]),
			Arms:             arms,
			ArmBodies:        bodies,
		}, nil
	case "apply":
		args, err := decodeExprs(sliceOf(m["args"]))
		if err != nil {
			return nil, err
		}
		return &ApplyExpr{ExprBase: base, Callee: decodeDeclRef(m["callee"]), Member: str(m["member"]), Args: args}, nil
	case "fieldAccess":
		receiver, err := decodeExprMaybe(m["receiver"])
		if err != nil {
			return nil, err
		}
		return &FieldAccessExpr{
			ExprBase:   base,
			Kind:       decodeFieldAccessKind(str(m["fieldAccessKind"])),
			Receiver:   receiver,
			Owner:      decodeDeclRef(m["owner"]),
			FieldName:  str(m["fieldName"]),
			SymbolicID: str(m["symbolicId"]),
		}, nil
	case "ident":
		return &IdentExpr{ExprBase: base, Name: str(m["name"])}, nil
	case "thunk":
		inner, err := decodeExpr(m["inner"])
		if err != nil {
			return nil, err
		}
		return &ThunkExpr{ExprBase: base, Inner: inner}, nil
	case "force":
		thunk, err := decodeExpr(m["thunk"])
		if err != nil {
			return nil, err
		}
		return &ForceExpr{ExprBase: base, Thunk: thunk}, nil
	default:
		return nil, errors.Errorf("unknown expr kind %q", str(m["kind"]))
	}
}

func decodeMatchArms(raw []interface{}) ([]MatchArm, error) {
	out := make([]MatchArm, 0, len(raw))
	for i, ra := range raw {
		am, ok := ra.(map[string]interface{})
		if !ok {
			return nil, errors.Errorf("arms[%d]: expected object", i)
		}
		out = append(out, MatchArm{
			Constructor: decodeDeclRef(am["constructor"]),
			Bindings:    strSlice(am["bindings"]),
			IsGhostArm:  boolv(am["isGhostArm"]),
		})
	}
	return out, nil
}

func decodeLiteralKind(s string) LiteralKind {
	switch s {
	case "char":
		return CharLiteral
	case "int":
		return IntLiteral
	case "real":
		return RealLiteral
	case "bitvector":
		return BitvectorLiteral
	case "string":
		return StringLiteral
	default:
		return BoolLiteral
	}
}

// decodeLiteralValue mirrors lower/defaults.go's choice of Go representation
// per LiteralKind: bool/rune/string natively, and *big.Int / *big.Float for
// the arbitrary-precision kinds so the driver's constant folder and
// default-value code share one representation with hand-built literals.
func decodeLiteralValue(kind string, raw interface{}) (interface{}, error) {
	switch kind {
	case "bool":
		return boolv(raw), nil
	case "char":
		s := str(raw)
		if len(s) == 0 {
			return rune(0), nil
		}
		return []rune(s)[0], nil
	case "string":
		return str(raw), nil
	case "int", "bitvector":
		n := new(big.Int)
		if _, ok := n.SetString(str(raw), 10); !ok {
			return nil, errors.Errorf("invalid %s literal %q", kind, raw)
		}
		return n, nil
	case "real":
		f, _, err := big.ParseFloat(str(raw), 10, 256, big.ToNearestEven)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid real literal %q", raw)
		}
		return f, nil
	default:
		return nil, errors.Errorf("unknown literal kind %q", kind)
	}
}

func decodeCollectionKind(s string) CollectionKind {
	switch s {
	case "set":
		return SetKind
	case "multiset":
		return MultisetKind
	case "map":
		return MapKind
	default:
		return SeqKind
	}
}

func decodeFieldAccessKind(s string) FieldAccessKind {
	switch s {
	case "static":
		return StaticField
	case "symbolic":
		return SpecialField
	default:
		return InstanceField
	}
}

func decodeStmts(raw []interface{}) ([]Stmt, error) {
	out := make([]Stmt, 0, len(raw))
	for i, rs := range raw {
		s, err := decodeStmt(rs)
		if err != nil {
			return nil, errors.Wrapf(err, "[%d]", i)
		}
		out = append(out, s)
	}
	return out, nil
}

func decodeStmt(raw interface{}) (Stmt, error) {
	m, ok := raw.(map[string]interface{})
	if !ok {
		return nil, errors.Errorf("expected a statement object, got %T", raw)
	}
	base := StmtBase{Token: decodeToken(m["token"])}
	switch str(m["kind"]) {
	case "assign":
		target, err := decodeExpr(m["target"])
		if err != nil {
			return nil, err
		}
		val, err := decodeExpr(m["value"])
		if err != nil {
			return nil, err
		}
		return &AssignStmt{StmtBase: base, Target: target, Value: val}, nil
	case "multiAssign":
		targets, err := decodeExprs(sliceOf(m["targets"]))
		if err != nil {
			return nil, err
		}
		call, err := decodeExpr(m["call"])
		if err != nil {
			return nil, err
		}
		apply, ok := call.(*ApplyExpr)
		if !ok {
			return nil, errors.New("multiAssign.call must decode to an apply expression")
		}
		return &MultiAssignStmt{StmtBase: base, Targets: targets, Call: apply}, nil
	case "varDecl":
		t, err := decodeType(m["type"])
		if err != nil {
			return nil, err
		}
		init, err := decodeExprMaybe(m["initial"])
		if err != nil {
			return nil, err
		}
		return &VarDeclStmt{StmtBase: base, Name: str(m["name"]), Type: t, Ghost: boolv(m["ghost"]), Initial: init}, nil
	case "if":
		cond, err := decodeExpr(m["cond"])
		if err != nil {
			return nil, err
		}
		then, err := decodeStmts(sliceOf(m["then"]))
		if err != nil {
			return nil, err
		}
		els, err := decodeStmts(sliceOf(m["else"]))
		if err != nil {
			return nil, err
		}
		return &IfStmt{StmtBase: base, Cond: cond, Then: then, Else: els}, nil
	case "loop":
		cond, err := decodeExprMaybe(m["cond"])
		if err != nil {
			return nil, err
		}
		lo, err := decodeExprMaybe(m["lo"])
		if err != nil {
			return nil, err
		}
		hi, err := decodeExprMaybe(m["hi"])
		if err != nil {
			return nil, err
		}
		coll, err := decodeExprMaybe(m["collection"])
		if err != nil {
			return nil, err
		}
		body, err := decodeStmts(sliceOf(m["body"]))
		if err != nil {
			return nil, err
		}
		return &LoopStmt{
			StmtBase:   base,
			Kind:       decodeLoopKind(str(m["loopKind"])),
			Label:      str(m["label"]),
			Cond:       cond,
			Var:        str(m["var"]),
			Lo:         lo,
			Hi:         hi,
			Collection: coll,
			Body:       body,
		}, nil
	case "break":
		return &BreakStmt{StmtBase: base, Label: str(m["label"])}, nil
	case "continue":
		return &ContinueStmt{StmtBase: base, Label: str(m["label"])}, nil
	case "return":
		values, err := decodeExprs(sliceOf(m["values"]))
		if err != nil {
			return nil, err
		}
		return &ReturnStmt{StmtBase: base, Values: values}, nil
	case "yield":
		values, err := decodeExprs(sliceOf(m["values"]))
		if err != nil {
			return nil, err
		}
		return &YieldStmt{StmtBase: base, Values: values}, nil
	case "print":
		args, err := decodeExprs(sliceOf(m["args"]))
		if err != nil {
			return nil, err
		}
		return &PrintStmt{StmtBase: base, Args: args}, nil
	case "call":
		call, err := decodeExpr(m["call"])
		if err != nil {
			return nil, err
		}
		apply, ok := call.(*ApplyExpr)
		if !ok {
			return nil, errors.New("call.call must decode to an apply expression")
		}
		return &CallStmt{StmtBase: base, Call: apply}, nil
	case "absurd":
		return &AbsurdStmt{StmtBase: base, Reason: str(m["reason"])}, nil
	case "assert":
		cond, err := decodeExpr(m["cond"])
		if err != nil {
			return nil, err
		}
		return &AssertStmt{StmtBase: base, Cond: cond}, nil
	case "lemmaCall":
		call, err := decodeExpr(m["call"])
		if err != nil {
			return nil, err
		}
		apply, ok := call.(*ApplyExpr)
		if !ok {
			return nil, errors.New("lemmaCall.call must decode to an apply expression")
		}
		return &LemmaCallStmt{StmtBase: base, Call: apply}, nil
	case "match":
		scrutinee, err := decodeExpr(m["scrutinee"])
		if err != nil {
			return nil, err
		}
		arms, err := decodeMatchArms(sliceOf(m["arms"]))
		if err != nil {
			return nil, err
		}
		rawBodies := sliceOf(m["armBodies"])
		bodies := make([][]Stmt, 0, len(rawBodies))
		for i, rb := range rawBodies {
			b, err := decodeStmts(sliceOf(rb))
			if err != nil {
				return nil, errors.Wrapf(err, "armBodies[%d]", i)
			}
			bodies = append(bodies, b)
		}
		return &MatchStmt{
			StmtBase:         base,
			Scrutinee:        scrutinee,
			ScrutineeIsGhost: boolv(m["scrutineeIsGhost"]),
			Arms:             arms,
			ArmBodies:        bodies,
		}, nil
	default:
		return nil, errors.Errorf("unknown statement kind %q", str(m["kind"]))
	}
}

func decodeLoopKind(s string) LoopKind {
	switch s {
	case "forRange":
		return ForRangeLoop
	case "forCollection":
		return ForCollectionLoop
	case "infinite":
		return InfiniteLoop
	default:
		return WhileLoop
	}
}

func decodeToken(raw interface{}) diag.SourceToken {
	m, ok := raw.(map[string]interface{})
	if !ok {
		return diag.SourceToken{}
	}
	return diag.SourceToken{
		File:      str(m["file"]),
		Line:      intOr(m["line"], 0),
		Column:    intOr(m["column"], 0),
		EndLine:   intOr(m["endLine"], 0),
		EndColumn: intOr(m["endColumn"], 0),
	}
}

// --- small wire-value helpers; the decoder works over plain
// map[string]interface{} rather than one Go struct per wire variant, since
// the dispatch key (`"kind"`) determines the shape, not the position. ---

func str(v interface{}) string {
	s, _ := v.(string)
	return s
}

func boolv(v interface{}) bool {
	b, _ := v.(bool)
	return b
}

func sliceOf(v interface{}) []interface{} {
	s, _ := v.([]interface{})
	return s
}

func mapOf(v interface{}) map[string]interface{} {
	m, _ := v.(map[string]interface{})
	return m
}

func strSlice(v interface{}) []string {
	raw := sliceOf(v)
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		out = append(out, str(r))
	}
	return out
}

func strMap(v interface{}) map[string]string {
	m := mapOf(v)
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, val := range m {
		out[k] = str(val)
	}
	return out
}

func intFrom(v interface{}) (int, error) {
	switch n := v.(type) {
	case float64:
		return int(n), nil
	case int:
		return n, nil
	case json.Number:
		i, err := n.Int64()
		return int(i), err
	default:
		return 0, fmt.Errorf("expected a number, got %T", v)
	}
}

func intOr(v interface{}, def int) int {
	n, err := intFrom(v)
	if err != nil {
		return def
	}
	return n
}
