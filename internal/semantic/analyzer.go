// Package semantic implements the scoped symbol table and the
// visitor-based analyzer that annotates the parser's AST with resolved
// types. Dispatch is a type switch on the concrete node type, with a nesting-counter
// context record tracking loop/function depth the way inLoop/inLambda
// flags do, generalized to Orbit's if/while/repeat/switch/func
// catalogue. Lookups are case-sensitive; Orbit's grammar has no
// case-insensitive identifier convention to preserve.
package semantic

import (
	"fmt"

	"github.com/orbitlang/orbitc/internal/ast"
	"github.com/orbitlang/orbitc/internal/types"
)

// context tracks nesting counters for function-body, if, while, for,
// repeat, and switch depth, plus the enclosing function's return type.
type context struct {
	funcDepth    int
	ifDepth      int
	whileDepth   int
	forDepth     int
	repeatDepth  int
	switchDepth  int
	returnType   *types.Type
	hasReturnType bool // distinguishes "void function" from "not in a function"
}

// inLoop reports whether break/continue are currently legal: repeat
// and while both count; for is reserved/unbound so it is tracked for
// completeness but can never be entered by the parser today.
func (c context) inLoop() bool {
	return c.whileDepth > 0 || c.forDepth > 0 || c.repeatDepth > 0
}

// Analyzer walks a parsed file, resolving every identifier to a symbol,
// annotating every expression with a computed type, and accumulating
// diagnostics locally so that one file yields a dense diagnostic list
// rather than stopping at the first problem.
type Analyzer struct {
	symbols *SymbolTable
	diags   []Diagnostic
	ctx     context

	hadError    bool
	hadWarning  bool
	hadCritical bool

	// genericParams is the set of type-parameter names visible while
	// resolving a generic function's signature and body, or a generic
	// aggregate's field types.
	genericParams map[string]bool
}

// NewAnalyzer returns an Analyzer ready to run over a single file. The
// global scope is pre-seeded with nothing; callers that want builtins
// available should declare them before calling Analyze.
func NewAnalyzer() *Analyzer {
	return &Analyzer{symbols: NewSymbolTable()}
}

func (a *Analyzer) Diagnostics() []Diagnostic { return a.diags }
func (a *Analyzer) HadError() bool            { return a.hadError }
func (a *Analyzer) HadWarning() bool          { return a.hadWarning }
func (a *Analyzer) HadCriticalError() bool    { return a.hadCritical }
func (a *Analyzer) Symbols() *SymbolTable     { return a.symbols }

func (a *Analyzer) diag(sev Severity, kind Kind, n ast.Node, format string, args ...any) {
	d := Diagnostic{Kind: kind, Severity: sev, Message: fmt.Sprintf(format, args...), Pos: n.Pos()}
	a.diags = append(a.diags, d)
	switch sev {
	case Warning:
		a.hadWarning = true
	case Critical:
		a.hadCritical = true
	default:
		a.hadError = true
	}
}

// Analyze runs declaration/type/control-flow checking over every
// top-level statement in file, in source order.
func (a *Analyzer) Analyze(file *ast.ParsedFile) {
	a.collectTypeDeclarations(file.Program.Statements)
	for _, stmt := range file.Program.Statements {
		a.analyzeStatement(stmt)
	}
}

// collectTypeDeclarations pre-declares every top-level aggregate, enum,
// and alias name (with a placeholder Unresolved type) before the main
// pass runs, so a field or parameter type may reference a type-like
// declaration that appears later in the same file. The main pass fills
// each placeholder's real type in when it reaches the declaration.
func (a *Analyzer) collectTypeDeclarations(stmts []ast.Statement) {
	for _, stmt := range stmts {
		switch s := stmt.(type) {
		case *ast.AggregateDeclaration:
			a.symbols.Declare(&Symbol{Name: s.Name, Kind: SymAggregate, Type: unresolved(), Pos: s.Pos(), Decl: s, Visibility: s.Visibility})
		case *ast.EnumDeclaration:
			members := make([]string, len(s.Values))
			for i, v := range s.Values {
				members[i] = v.Name
			}
			a.symbols.Declare(&Symbol{Name: s.Name, Kind: SymEnum, Type: unresolved(), Pos: s.Pos(), Decl: s, Visibility: s.Visibility, EnumMembers: members})
		case *ast.Alias:
			a.symbols.Declare(&Symbol{Name: s.Name, Kind: SymTypeAlias, Type: unresolved(), Pos: s.Pos(), Decl: s, Visibility: s.Visibility})
		}
	}
}

func (a *Analyzer) analyzeStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.VariableDeclaration:
		a.analyzeVariableDeclaration(s)
	case *ast.FunctionDeclaration:
		a.analyzeFunctionDeclaration(s)
	case *ast.AggregateDeclaration:
		a.analyzeAggregateDeclaration(s)
	case *ast.EnumDeclaration:
		a.analyzeEnumDeclaration(s)
	case *ast.Alias:
		a.analyzeAlias(s)
	case *ast.ExpressionStatement:
		a.analyzeExpression(s.Expr)
	case *ast.Block:
		a.analyzeBlockScoped(s)
	case *ast.If:
		a.analyzeIf(s)
	case *ast.WhileLoop:
		a.analyzeWhile(s)
	case *ast.RepeatLoop:
		a.analyzeRepeat(s)
	case *ast.Switch:
		a.analyzeSwitch(s)
	case *ast.Return:
		a.analyzeReturn(s)
	case *ast.Break:
		if !a.ctx.inLoop() {
			a.diag(Error, BreakOutsideLoop, s, "break outside loop")
		}
	case *ast.Continue:
		if !a.ctx.inLoop() {
			a.diag(Error, ContinueOutsideLoop, s, "continue outside loop")
		}
	case *ast.Empty:
		// no-op
	}
}

// analyzeBlockScoped enters a fresh scope for a bare block (used for
// if/elif/else and loop bodies too, via their own callers; switch
// manages its own scope).
func (a *Analyzer) analyzeBlockScoped(b *ast.Block) {
	a.symbols.EnterScope()
	defer a.symbols.ExitScope()
	if len(b.Statements) == 0 {
		a.diag(Warning, Kind("empty block"), b, "empty block")
	}
	for _, stmt := range b.Statements {
		a.analyzeStatement(stmt)
	}
}

func (a *Analyzer) analyzeVariableDeclaration(decl *ast.VariableDeclaration) {
	if decl.IsConst && decl.Value == nil {
		a.diag(Error, IncompleteInitializer, decl, "const declaration %q requires an initializer", decl.Name)
	}

	var declaredType *types.Type
	if decl.Type != nil {
		declaredType = a.resolveType(decl.Type)
	}

	var valueType *types.Type
	if decl.Value != nil {
		valueType = a.analyzeExpression(decl.Value)
	}

	var finalType *types.Type
	switch {
	case declaredType != nil && valueType != nil:
		if declaredType.Tag != types.Unresolved && valueType.Tag != types.Unresolved {
			if !compatible(declaredType, valueType) {
				a.diag(Error, TypeMismatch, decl, "cannot initialize %q of type %s with value of type %s", decl.Name, declaredType, valueType)
			} else {
				a.maybeWarnDemotion(decl, decl.Name, declaredType, valueType)
			}
		}
		finalType = declaredType
	case declaredType != nil:
		finalType = declaredType
	case valueType != nil:
		finalType = valueType
	default:
		a.diag(Error, IncompleteInitializer, decl, "variable declaration %q requires a type or an initializer", decl.Name)
		finalType = &types.Type{Tag: types.Unresolved}
	}

	if _, shadowed := a.symbols.Lookup(decl.Name); shadowed {
		if _, sameScope := a.symbols.LookupAtCurrentDepth(decl.Name); !sameScope {
			a.diag(Warning, Shadowing, decl, "declaration of %q shadows an outer-scope symbol", decl.Name)
		}
	}

	sym := &Symbol{
		Name:       decl.Name,
		Kind:       SymVariable,
		Type:       finalType,
		Pos:        decl.Pos(),
		Decl:       decl,
		Mutable:    !decl.IsConst,
		Visibility: decl.Visibility,
	}
	if decl.IsConst {
		sym.Kind = SymConstant
	}
	if !a.symbols.Declare(sym) {
		a.diag(Error, RedeclarationInScope, decl, "redeclaration of %q in this scope", decl.Name)
	}
}

func (a *Analyzer) analyzeFunctionDeclaration(decl *ast.FunctionDeclaration) {
	if a.ctx.funcDepth > 0 {
		a.diag(Error, Kind("nested function declaration"), decl, "nested function declarations are not allowed")
	}

	paramTypes := make([]types.Param, len(decl.Params))

	savedGenerics := a.genericParams
	if len(decl.GenericParams) > 0 {
		gp := map[string]bool{}
		for k := range savedGenerics {
			gp[k] = true
		}
		for _, g := range decl.GenericParams {
			gp[g] = true
		}
		a.genericParams = gp
	}

	for i, p := range decl.Params {
		pt := a.resolveType(p.Type)
		paramTypes[i] = types.Param{Type: pt, Mut: p.Mut}
	}
	var retType *types.Type
	if decl.ReturnType != nil {
		retType = a.resolveType(decl.ReturnType)
	}

	fnType := types.NewFunction(paramTypes, retType)
	sym := &Symbol{Name: decl.Name, Kind: SymFunction, Type: fnType, Pos: decl.Pos(), Decl: decl, Visibility: decl.Visibility, GenericParams: decl.GenericParams}
	if !a.symbols.Declare(sym) {
		a.diag(Error, RedeclarationInScope, decl, "redeclaration of %q in this scope", decl.Name)
	}

	a.symbols.EnterScope()
	for i, p := range decl.Params {
		pkind := SymFunctionParameter
		if !p.Mut {
			pkind = SymConstantFunctionParameter
		}
		psym := &Symbol{Name: p.Name, Kind: pkind, Type: paramTypes[i].Type, Pos: decl.Pos(), Decl: decl, Mutable: p.Mut}
		if !a.symbols.Declare(psym) {
			a.diag(Error, RedeclarationInScope, decl, "duplicate parameter %q", p.Name)
		}
	}

	savedCtx := a.ctx
	a.ctx.funcDepth++
	a.ctx.returnType = retType
	a.ctx.hasReturnType = true
	for _, stmt := range decl.Body.Statements {
		a.analyzeStatement(stmt)
	}
	a.ctx = savedCtx
	a.symbols.ExitScope()
	a.genericParams = savedGenerics
}

func (a *Analyzer) analyzeAggregateDeclaration(decl *ast.AggregateDeclaration) {
	if len(decl.GenericParams) > 0 {
		savedGenerics := a.genericParams
		gp := map[string]bool{}
		for k := range savedGenerics {
			gp[k] = true
		}
		for _, g := range decl.GenericParams {
			gp[g] = true
		}
		a.genericParams = gp
		defer func() { a.genericParams = savedGenerics }()
	}
	fields := make([]types.Field, len(decl.Fields))
	for i, f := range decl.Fields {
		fields[i] = types.Field{Name: f.Name, Type: a.resolveType(f.Type)}
	}
	aggType := types.NewAggregate(decl.Name, fields)
	if sym, ok := a.symbols.LookupAtCurrentDepth(decl.Name); ok && sym.Decl == decl {
		// Update the placeholder's pointee in place: a field type
		// elsewhere may already hold this same *types.Type pointer,
		// captured by a forward reference before this declaration ran.
		*sym.Type = *aggType
		return
	}
	sym := &Symbol{Name: decl.Name, Kind: SymAggregate, Type: aggType, Pos: decl.Pos(), Decl: decl, Visibility: decl.Visibility}
	if !a.symbols.Declare(sym) {
		a.diag(Error, RedeclarationInScope, decl, "redeclaration of %q in this scope", decl.Name)
	}
}

func (a *Analyzer) analyzeEnumDeclaration(decl *ast.EnumDeclaration) {
	base := types.TInt32
	if decl.BaseType != nil {
		base = a.resolveType(decl.BaseType)
	}
	enumType := types.NewEnum(decl.Name, base)
	members := make([]string, len(decl.Values))
	for i, v := range decl.Values {
		members[i] = v.Name
	}
	if sym, ok := a.symbols.LookupAtCurrentDepth(decl.Name); ok && sym.Decl == decl {
		*sym.Type = *enumType
		sym.EnumMembers = members
	} else {
		sym := &Symbol{Name: decl.Name, Kind: SymEnum, Type: enumType, Pos: decl.Pos(), Decl: decl, Visibility: decl.Visibility, EnumMembers: members}
		if !a.symbols.Declare(sym) {
			a.diag(Error, RedeclarationInScope, decl, "redeclaration of %q in this scope", decl.Name)
		}
	}

	// Missing initializers are assigned sequential integers, continuing
	// from the previous explicit initializer's value.
	var next int64
	for i := range decl.Values {
		v := &decl.Values[i]
		if v.Init != nil {
			vt := a.analyzeExpression(v.Init)
			if lit, ok := v.Init.(*ast.NumberLiteral); ok && !lit.IsFloat {
				next = lit.IValue
			} else if vt != nil && vt.Tag != types.Unresolved && !vt.Tag.IsInteger() {
				a.diag(Error, TypeMismatch, v.Init, "enum initializer must be an integer, got %s", vt)
			}
		}
		v.Resolved = next
		next++
	}
}

func (a *Analyzer) analyzeAlias(decl *ast.Alias) {
	if _, ok := decl.Base.(*ast.GenericType); ok {
		a.diag(Error, UnknownType, decl, "generic types cannot be aliased")
		return
	}
	base := a.resolveType(decl.Base)
	if sym, ok := a.symbols.LookupAtCurrentDepth(decl.Name); ok && sym.Decl == decl {
		*sym.Type = *base
		return
	}
	sym := &Symbol{Name: decl.Name, Kind: SymTypeAlias, Type: base, Pos: decl.Pos(), Decl: decl, Visibility: decl.Visibility}
	if !a.symbols.Declare(sym) {
		a.diag(Error, RedeclarationInScope, decl, "redeclaration of %q in this scope", decl.Name)
	}
}

func (a *Analyzer) analyzeIf(s *ast.If) {
	a.ctx.ifDepth++
	defer func() { a.ctx.ifDepth-- }()

	condType := a.analyzeExpression(s.Condition)
	a.requireBool(condType, s.Condition)
	a.analyzeBlockScoped(s.Then)
	for _, e := range s.Elifs {
		ct := a.analyzeExpression(e.Condition)
		a.requireBool(ct, e.Condition)
		a.analyzeBlockScoped(e.Body)
	}
	if s.Else != nil {
		a.analyzeBlockScoped(s.Else)
	}
}

func (a *Analyzer) analyzeWhile(s *ast.WhileLoop) {
	a.ctx.whileDepth++
	defer func() { a.ctx.whileDepth-- }()

	condType := a.analyzeExpression(s.Condition)
	a.requireBool(condType, s.Condition)
	a.analyzeBlockScoped(s.Body)
}

func (a *Analyzer) analyzeRepeat(s *ast.RepeatLoop) {
	a.ctx.repeatDepth++
	defer func() { a.ctx.repeatDepth-- }()

	countType := a.analyzeExpression(s.Count)
	if countType != nil && countType.Tag != types.Unresolved {
		if !countType.Tag.IsInteger() {
			a.diag(Error, TypeMismatch, s.Count, "repeat count must be an integer, got %s", countType)
		} else if countType.Tag.IsSigned() {
			a.diag(Warning, Kind("signed repeat count"), s.Count, "repeat count %s is signed; a negative count repeats zero times", countType)
		}
	}
	a.analyzeBlockScoped(s.Body)
}

func (a *Analyzer) analyzeSwitch(s *ast.Switch) {
	a.ctx.switchDepth++
	defer func() { a.ctx.switchDepth-- }()

	discType := a.analyzeExpression(s.Discriminant)
	a.symbols.EnterScope()
	for _, c := range s.Cases {
		caseType := a.analyzeExpression(c.Value)
		if discType != nil && caseType != nil && discType.Tag != types.Unresolved && caseType.Tag != types.Unresolved && !compatible(discType, caseType) {
			a.diag(Error, TypeMismatch, c.Value, "case type %s does not match switch discriminant type %s", caseType, discType)
		}
		for _, stmt := range c.Body {
			a.analyzeStatement(stmt)
		}
	}
	for _, stmt := range s.Default {
		a.analyzeStatement(stmt)
	}
	a.symbols.ExitScope()
}

func (a *Analyzer) analyzeReturn(s *ast.Return) {
	if a.ctx.funcDepth == 0 {
		a.diag(Error, ReturnOutsideFunc, s, "return outside function")
		if s.Value != nil {
			a.analyzeExpression(s.Value)
		}
		return
	}
	if s.Value == nil {
		if a.ctx.returnType != nil {
			a.diag(Error, TypeMismatch, s, "missing return value for function returning %s", a.ctx.returnType)
		}
		return
	}
	vt := a.analyzeExpression(s.Value)
	if a.ctx.returnType == nil {
		a.diag(Error, TypeMismatch, s, "function declared without a return type cannot return a value")
		return
	}
	if vt != nil && vt.Tag != types.Unresolved && !compatible(vt, a.ctx.returnType) {
		a.diag(Error, TypeMismatch, s, "cannot return %s from a function returning %s", vt, a.ctx.returnType)
	}
}

func (a *Analyzer) requireBool(t *types.Type, n ast.Node) {
	if t == nil || t.Tag == types.Unresolved {
		return
	}
	if t.Tag != types.BoolType {
		a.diag(Error, NonBoolCondition, n, "condition must be bool, got %s", t)
	}
}

// maybeWarnDemotion flags initializations that narrow a value to fit a
// declared numeric type.
func (a *Analyzer) maybeWarnDemotion(n ast.Node, name string, declared, value *types.Type) {
	if !declared.Tag.IsNumeric() || !value.Tag.IsNumeric() || types.Equal(declared, value) {
		return
	}
	promoted, _ := types.Promote(value.Tag, declared.Tag)
	if promoted != declared.Tag {
		a.diag(Warning, Demotion, n, "initializing %q of type %s from %s may lose precision", name, declared, value)
	}
}

// compatible reports whether a value of type b may be used where a is
// expected: structurally/name equal, or related by the numeric
// promotion lattice.
func compatible(a, b *types.Type) bool {
	if types.Equal(a, b) {
		return true
	}
	if a.Tag.IsNumeric() && b.Tag.IsNumeric() {
		_, _ = types.Promote(a.Tag, b.Tag)
		return true
	}
	return false
}
