package semantics

import (
	"fmt"

	"github.com/fabianreyesmn/pygframe/internal/ast"
	"github.com/fabianreyesmn/pygframe/internal/source"
	"github.com/fabianreyesmn/pygframe/internal/types"
)

// SymbolKind represents the kind of symbol. The language only has
// variables today; the enum leaves room for the contract's arrays.
type SymbolKind int

const (
	SymbolVar SymbolKind = iota
	SymbolArray
)

// String returns a string representation of the SymbolKind
func (k SymbolKind) String() string {
	switch k {
	case SymbolVar:
		return "variable"
	case SymbolArray:
		return "array"
	default:
		return "unknown"
	}
}

// Symbol represents a declared variable.
//
// This is the single source of truth for all semantic information
// about a declaration. Identifier nodes in the annotated tree refer
// back here through a (scope id, name) pair, never a second owner.
type Symbol struct {
	Name    string
	Kind    SymbolKind
	Type    *types.Type
	ScopeID string
	Line    int
	Column  int
	// Simulated flat data segment address, 4 units per variable
	Address int
	// Flips true the first time the variable is an assignment target
	Initialized bool
	// Back-reference to the declaring identifier node
	Decl *ast.Node
}

// Loc returns the symbol's declaration location.
func (s *Symbol) Loc() *source.Location {
	return source.NewLocation(s.Line, s.Column)
}

// Scope is one lexical region: a name→symbol map plus declaration
// order, retained after exit for export and checker re-entry.
type Scope struct {
	ID      string
	Parent  *Scope
	symbols map[string]*Symbol
	names   []string // declaration order
}

func newScope(id string, parent *Scope) *Scope {
	return &Scope{
		ID:      id,
		Parent:  parent,
		symbols: make(map[string]*Symbol),
	}
}

// Symbols returns the scope's symbols in declaration order.
func (s *Scope) Symbols() []*Symbol {
	out := make([]*Symbol, 0, len(s.names))
	for _, name := range s.names {
		out = append(out, s.symbols[name])
	}
	return out
}

// GlobalScopeID is the id of the root scope, created at table
// construction and never exited.
const GlobalScopeID = "global"

// Memory addresses simulate a flat data segment: first variable at
// addressBase, each declaration advancing by addressStep.
const (
	addressBase = 1000
	addressStep = 4
)

// SymbolTable is the scoped declaration store: a stack of scopes with
// innermost-first lookup. Exited scopes are retained (invisible to
// lookup) so the checking pass can re-enter them and exports can walk
// every declaration.
//
// One table is owned by exactly one analysis run; it is not
// thread-safe and must not be shared across runs.
type SymbolTable struct {
	stack       []*Scope
	all         map[string]*Scope
	order       []string // scope creation order
	nextOrdinal int
	nextAddress int
}

// NewSymbolTable creates a table containing only the global scope.
func NewSymbolTable() *SymbolTable {
	st := &SymbolTable{
		all:         make(map[string]*Scope),
		nextAddress: addressBase,
	}
	global := newScope(GlobalScopeID, nil)
	st.stack = append(st.stack, global)
	st.all[GlobalScopeID] = global
	st.order = append(st.order, GlobalScopeID)
	return st
}

// EnterScope pushes a fresh scope labeled label (e.g. "if_3") and
// returns its id ("if_3_1"). The appended ordinal keeps ids unique
// when the same construct kind appears on the same line twice.
func (st *SymbolTable) EnterScope(label string) string {
	st.nextOrdinal++
	id := fmt.Sprintf("%s_%d", label, st.nextOrdinal)
	scope := newScope(id, st.current())
	st.stack = append(st.stack, scope)
	st.all[id] = scope
	st.order = append(st.order, id)
	return id
}

// ExitScope pops the current scope. Guarded: the global scope is
// never popped.
func (st *SymbolTable) ExitScope() {
	if len(st.stack) > 1 {
		st.stack = st.stack[:len(st.stack)-1]
	}
}

// Reenter pushes an already-created scope back onto the stack, making
// its names visible again. Used by the checking pass to walk compound
// bodies with the same visibility the declaration pass had. Returns
// false for an unknown id.
func (st *SymbolTable) Reenter(id string) bool {
	scope, ok := st.all[id]
	if !ok {
		return false
	}
	st.stack = append(st.stack, scope)
	return true
}

// Leave pops the scope pushed by Reenter. Same guard as ExitScope.
func (st *SymbolTable) Leave() {
	st.ExitScope()
}

func (st *SymbolTable) current() *Scope {
	return st.stack[len(st.stack)-1]
}

// CurrentScopeID returns the id of the innermost scope.
func (st *SymbolTable) CurrentScopeID() string {
	return st.current().ID
}

// Depth returns the number of scopes on the stack. The declaration
// pass asserts balance with this.
func (st *SymbolTable) Depth() int {
	return len(st.stack)
}

// Declare inserts a symbol for name into the innermost scope and
// returns it. When name is already present in the *current* scope
// (the sole duplicate-declaration condition), the existing symbol is
// returned with ok=false and nothing is inserted.
func (st *SymbolTable) Declare(name string, typ *types.Type, decl *ast.Node) (*Symbol, bool) {
	scope := st.current()
	if existing, dup := scope.symbols[name]; dup {
		return existing, false
	}

	sym := &Symbol{
		Name:    name,
		Kind:    SymbolVar,
		Type:    typ,
		ScopeID: scope.ID,
		Decl:    decl,
		Address: st.nextAddress,
	}
	if decl != nil {
		sym.Line = decl.Line
		sym.Column = decl.Column
	}
	st.nextAddress += addressStep

	scope.symbols[name] = sym
	scope.names = append(scope.names, name)
	return sym, true
}

// Lookup searches the active scope stack from innermost to outermost.
func (st *SymbolTable) Lookup(name string) *Symbol {
	for i := len(st.stack) - 1; i >= 0; i-- {
		if sym, ok := st.stack[i].symbols[name]; ok {
			return sym
		}
	}
	return nil
}

// LookupCurrent searches only the innermost scope.
func (st *SymbolTable) LookupCurrent(name string) *Symbol {
	sym, ok := st.current().symbols[name]
	if !ok {
		return nil
	}
	return sym
}

// MarkInitialized flips the initialized flag on the nearest visible
// symbol for name. No-op when the name is not visible.
func (st *SymbolTable) MarkInitialized(name string) {
	if sym := st.Lookup(name); sym != nil {
		sym.Initialized = true
	}
}

// Resolve finds a symbol by its owning scope id and name, whether or
// not that scope is currently on the stack. This is how annotated
// identifier nodes are resolved lazily.
func (st *SymbolTable) Resolve(scopeID, name string) *Symbol {
	scope, ok := st.all[scopeID]
	if !ok {
		return nil
	}
	return scope.symbols[name]
}

// ScopeIDs returns every scope id in creation order.
func (st *SymbolTable) ScopeIDs() []string {
	out := make([]string, len(st.order))
	copy(out, st.order)
	return out
}

// Scope returns the scope with the given id, or nil.
func (st *SymbolTable) Scope(id string) *Scope {
	return st.all[id]
}
