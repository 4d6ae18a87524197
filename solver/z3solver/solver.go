// Package z3solver is the optional external solver spec.md §4.6/§6 allows
// components to plug in behind the solver.Solver capability interface in
// place of the bundled bounded linear solver. It is grounded directly on
// the teacher's fuzzing/concolictracer package, which wires
// github.com/mitchellh/go-z3's Config/Context/Solver/cleanup-closure
// pattern but never finishes using it; this package is that pattern
// completed and pointed at the expression algebra of this module instead
// of EVM storage slots.
package z3solver

import (
	"github.com/concolith/concolith/constraint"
	"github.com/concolith/concolith/errs"
	"github.com/concolith/concolith/solver"
	z3 "github.com/mitchellh/go-z3"
)

// Solver adapts a z3.Context/z3.Solver pair to the solver.Solver
// interface. Unlike BoundedLinearSolver it handles real-sorted atoms as
// well as integers, at the cost of needing the z3 shared library at
// runtime. String-sorted variables and constants yield
// errs.SolverUnsupported.
type Solver struct {
	config *z3.Config
	ctx    *z3.Context
	cleanup func()
}

// New constructs a z3-backed Solver, mirroring newConcolicTx's
// Config/Context/cleanup-closure construction.
func New() *Solver {
	config := z3.NewConfig()
	ctx := z3.NewContext(config)

	cleanup := func() {
		ctx.Close()
		config.Close()
	}

	return &Solver{config: config, ctx: ctx, cleanup: cleanup}
}

// Close releases the underlying z3 context and config.
func (s *Solver) Close() {
	s.cleanup()
}

// Solve translates expr into a z3 formula, asserts it against a fresh
// Solver instance, and extracts a concrete assignment from the model if
// satisfiable.
func (s *Solver) Solve(expr constraint.Expr) (solver.Solution, error) {
	zsolver := s.ctx.NewSolver()
	defer zsolver.Close()

	vars := make(map[string]*z3.AST)
	sorts := make(map[string]constraint.Sort)

	ast, err := s.translate(expr, vars, sorts)
	if err != nil {
		return nil, err
	}
	zsolver.Assert(ast)

	if sat := zsolver.Check(); !sat {
		return nil, errs.SolverUnsat
	}

	model := zsolver.Model()
	defer model.Close()

	sol := make(solver.Solution, len(vars))
	for name, v := range vars {
		valueAST := model.Eval(v)
		switch sorts[name] {
		case constraint.SortInt:
			iv, ok := valueAST.Int()
			if !ok {
				return nil, errs.SolverUnsupported
			}
			sol[name] = int64(iv)
		case constraint.SortReal:
			rv, ok := valueAST.Real()
			if !ok {
				return nil, errs.SolverUnsupported
			}
			sol[name] = rv
		default:
			return nil, errs.SolverUnsupported
		}
	}
	return sol, nil
}

// translate recursively lowers a constraint.Expr into a z3.AST, declaring
// a fresh z3 constant the first time each named Var is encountered.
func (s *Solver) translate(expr constraint.Expr, vars map[string]*z3.AST, sorts map[string]constraint.Sort) (*z3.AST, error) {
	switch e := expr.(type) {
	case constraint.Var:
		if ast, ok := vars[e.Name]; ok {
			return ast, nil
		}
		zsort, err := s.zsort(e.VSort)
		if err != nil {
			return nil, err
		}
		ast := s.ctx.Const(s.ctx.Symbol(e.Name), zsort)
		vars[e.Name] = ast
		sorts[e.Name] = e.VSort
		return ast, nil
	case constraint.IntConst:
		return s.ctx.Int(int(e), s.ctx.IntSort()), nil
	case constraint.RealConst:
		return s.ctx.Real(float64(e), s.ctx.RealSort()), nil
	case constraint.Binary:
		return s.translateBinary(e, vars, sorts)
	case constraint.Unary:
		operand, err := s.translate(e.Operand, vars, sorts)
		if err != nil {
			return nil, err
		}
		if e.Op == constraint.NOT {
			return operand.Not(), nil
		}
		return nil, errs.SolverUnsupported
	default:
		if expr.Equal(constraint.True) {
			return s.ctx.True(), nil
		}
		return nil, errs.SolverUnsupported
	}
}

func (s *Solver) translateBinary(b constraint.Binary, vars map[string]*z3.AST, sorts map[string]constraint.Sort) (*z3.AST, error) {
	left, err := s.translate(b.Left, vars, sorts)
	if err != nil {
		return nil, err
	}
	right, err := s.translate(b.Right, vars, sorts)
	if err != nil {
		return nil, err
	}

	switch b.Op {
	case constraint.EQ:
		return left.Eq(right), nil
	case constraint.NE:
		return left.Eq(right).Not(), nil
	case constraint.LT:
		return left.Lt(right), nil
	case constraint.LE:
		return left.Le(right), nil
	case constraint.GT:
		return left.Gt(right), nil
	case constraint.GE:
		return left.Ge(right), nil
	case constraint.AND:
		return s.ctx.And(left, right), nil
	case constraint.OR:
		return s.ctx.Or(left, right), nil
	case constraint.ADD:
		return left.Add(right), nil
	case constraint.SUB:
		return left.Sub(right), nil
	case constraint.MUL:
		return left.Mul(right), nil
	default:
		return nil, errs.SolverUnsupported
	}
}

func (s *Solver) zsort(sort constraint.Sort) (*z3.Sort, error) {
	switch sort {
	case constraint.SortInt:
		return s.ctx.IntSort(), nil
	case constraint.SortReal:
		return s.ctx.RealSort(), nil
	case constraint.SortBool:
		return s.ctx.BoolSort(), nil
	default:
		return nil, errs.SolverUnsupported
	}
}
