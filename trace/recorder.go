package trace

import (
	"sync"
	"sync/atomic"

	"github.com/concolith/concolith/constraint"
	"github.com/concolith/concolith/errs"
	"github.com/concolith/concolith/symbolic"
)

// ThreadKey identifies the host thread (goroutine, worker index, whatever
// unit of concurrency the host uses) whose PathCondition buffer and
// reentrancy depth a Recorder call should operate on. Go has no native
// thread-local storage, so where the JVM-flavored original design relies
// on implicit TLS, the Session (spec.md §9) requires the host to pass an
// explicit key at each recording call site; single-threaded hosts can use
// DefaultThreadKey throughout.
type ThreadKey string

// DefaultThreadKey is the key single-threaded hosts (including the common
// case of an Explorer driving one host goroutine at a time) should pass to
// every Recorder entry point.
const DefaultThreadKey ThreadKey = "main"

// DebugSink receives diagnostics when the `debug` option is enabled, per
// spec.md §6's Configuration table: one call per event recorded by
// IcmpJump, Branch, SwitchCase and the three-way compares, one call the
// first time the reentrancy bound is exceeded, and one call per recovered
// internal error. AcmpJump and skipped events produce no call.
type DebugSink func(event string, fields map[string]any)

// Recorder implements C4 (spec.md §4.4): it translates raw comparison and
// branch/switch events into Exprs and appends them to the calling
// thread's PathCondition, subject to a reentrancy guard, a shutdown gate,
// and a relevance filter consulting the label registry.
type Recorder struct {
	Labels    *symbolic.LabelRegistry
	Variables *symbolic.Registry

	buffers sync.Map // ThreadKey -> *PathCondition
	depths  sync.Map // ThreadKey -> *int32

	maxDepth int

	shuttingDown        atomic.Bool
	interceptionEnabled atomic.Bool
	reentrancyDiagnosed sync.Once
	reentrancyErr       atomic.Value // error

	clock atomic.Uint64

	Debug DebugSink
}

// NewRecorder constructs a Recorder bound to the given label and variable
// registries, with the given reentrancy bound (spec.md §6
// max_recursion_depth, default 10).
func NewRecorder(labels *symbolic.LabelRegistry, variables *symbolic.Registry, maxDepth int) *Recorder {
	r := &Recorder{
		Labels:    labels,
		Variables: variables,
		maxDepth:  maxDepth,
	}
	r.interceptionEnabled.Store(true)
	return r
}

// SetInterceptionEnabled implements the `interception_enabled` master gate
// of spec.md §6: when disabled, every entry point becomes a no-op.
func (r *Recorder) SetInterceptionEnabled(enabled bool) {
	r.interceptionEnabled.Store(enabled)
}

// Shutdown flips this Recorder's shutting_down flag; its subsequent
// calls degrade to the concrete computation with no recording (spec.md
// §4.4/§5).
func (r *Recorder) Shutdown() {
	r.shuttingDown.Store(true)
}

// Buffer returns (creating if necessary) the PathCondition buffer for key.
func (r *Recorder) Buffer(key ThreadKey) *PathCondition {
	if v, ok := r.buffers.Load(key); ok {
		return v.(*PathCondition)
	}
	pc := NewPathCondition()
	actual, _ := r.buffers.LoadOrStore(key, pc)
	return actual.(*PathCondition)
}

// ResetBuffer empties the named thread's PathCondition, used between
// Explorer iterations.
func (r *Recorder) ResetBuffer(key ThreadKey) {
	r.Buffer(key).Reset()
}

func (r *Recorder) depthCounter(key ThreadKey) *int32 {
	if v, ok := r.depths.Load(key); ok {
		return v.(*int32)
	}
	d := new(int32)
	actual, _ := r.depths.LoadOrStore(key, d)
	return actual.(*int32)
}

// enter acquires the reentrancy guard for key, returning whether recording
// should proceed and a release function guaranteed to run on every exit
// path (spec.md §5 "scoped acquisition... guaranteed decrement on every
// exit path"), mirroring the teacher's defer-guarded cleanup idiom in
// fuzzer_worker.go's testTxSequence.
func (r *Recorder) enter(key ThreadKey) (proceed bool, release func()) {
	d := r.depthCounter(key)
	depth := atomic.AddInt32(d, 1)
	release = func() { atomic.AddInt32(d, -1) }

	if int(depth) >= r.maxDepth {
		r.reentrancyDiagnosed.Do(func() {
			err := errs.NewRecorderReentrancy(int(depth), r.maxDepth)
			r.reentrancyErr.Store(err)
			if r.Debug != nil {
				r.Debug("recorder_reentrancy_bound", map[string]any{
					"thread": string(key),
					"depth":  depth,
					"bound":  r.maxDepth,
					"error":  err,
				})
			}
		})
		return false, release
	}
	return true, release
}

// ReentrancyError returns the errs.RecorderReentrancy raised the first
// time this Recorder's reentrancy bound was exceeded, or nil if it never
// has been. Recording itself always degrades to "return the concrete
// result unchanged" (spec.md §4.4/§5); this accessor lets a caller
// surface the condition afterward without disturbing that contract.
func (r *Recorder) ReentrancyError() error {
	err, _ := r.reentrancyErr.Load().(error)
	return err
}

// relevant reports whether at least one of the two tags is user-symbolic,
// per the relevance filter of spec.md §4.4 and the explicit rejection of
// the "collect everything" fallback in spec.md §9's Open Question.
func (r *Recorder) relevant(tag1, tag2 symbolic.Tag) bool {
	return r.Labels.IsUserSymbolic(tag1) || r.Labels.IsUserSymbolic(tag2)
}

func (r *Recorder) nextTimestamp() uint64 {
	return r.clock.Add(1)
}

// operandInt resolves the Expr for an int-sorted operand: a Var if the tag
// names a declared symbolic variable, otherwise an IntConst of the
// concrete value.
func (r *Recorder) operandInt(tag symbolic.Tag, concrete int64) constraint.Expr {
	if name, ok := r.symbolicName(tag, constraint.SortInt); ok {
		return constraint.NewVar(name, constraint.SortInt)
	}
	return constraint.IntConst(concrete)
}

func (r *Recorder) operandReal(tag symbolic.Tag, concrete float64) constraint.Expr {
	if name, ok := r.symbolicName(tag, constraint.SortReal); ok {
		return constraint.NewVar(name, constraint.SortReal)
	}
	return constraint.RealConst(concrete)
}

func (r *Recorder) symbolicName(tag symbolic.Tag, sort constraint.Sort) (string, bool) {
	for _, label := range tag.Labels() {
		if v, ok := r.Variables.Lookup(label); ok && v.Sort == sort {
			return label, true
		}
	}
	return "", false
}

func (r *Recorder) gated() bool {
	return r.shuttingDown.Load() || !r.interceptionEnabled.Load()
}

// guard wraps entry-point bodies with the shutdown gate and the
// reentrancy guard in one place. body is only invoked when recording
// should proceed and returns nothing — entry points always return the concrete result supplied by the caller regardless of
// whether recording happened, per spec.md §4.4 and §6's inbound contract.
func (r *Recorder) guard(key ThreadKey, body func()) {
	if r.gated() {
		return
	}
	proceed, release := r.enter(key)
	defer release()
	if !proceed {
		return
	}
	// Every entry point catches internal errors and degrades to recording
	// nothing, per spec.md §4.4's failure semantics.
	defer func() {
		if rec := recover(); rec != nil && r.Debug != nil {
			r.Debug("recorder_internal_error", map[string]any{"thread": string(key), "panic": rec})
		}
	}()
	body()
}

// IcmpJump records an integer comparison branch (spec.md §4.4). kind must
// be one of CmpEQ/CmpNE/CmpLT/CmpLE/CmpGT/CmpGE. Returns taken unchanged.
func (r *Recorder) IcmpJump(key ThreadKey, v1 int64, tag1 symbolic.Tag, v2 int64, tag2 symbolic.Tag, kind CompareKind, taken bool) bool {
	r.guard(key, func() {
		if !r.relevant(tag1, tag2) {
			return
		}
		left := r.operandInt(tag1, v1)
		right := r.operandInt(tag2, v2)

		op := kind.ToOp()
		if !taken {
			op = constraint.Complement(op)
		}
		expr := constraint.MustBinary(op, left, right)

		r.Buffer(key).Append(Constraint{
			Left: left, Right: right, Op: kind, Outcome: taken,
			Timestamp: r.nextTimestamp(), Expr: expr,
		})
		if r.Debug != nil {
			r.Debug("icmp_jump", map[string]any{"thread": string(key), "expr": expr.String()})
		}
	})
	return taken
}

// AcmpJump records a reference-identity branch. kind must be CmpACMP_EQ or
// CmpACMP_NE. The concrete identity surrogates id1/id2 are implementation
// defined (e.g. a pointer-derived integer); they are only used for
// printing when the operand is not itself symbolic. Returns taken
// unchanged.
func (r *Recorder) AcmpJump(key ThreadKey, id1 int64, tag1 symbolic.Tag, id2 int64, tag2 symbolic.Tag, kind CompareKind, taken bool) bool {
	r.guard(key, func() {
		if !r.relevant(tag1, tag2) {
			return
		}
		left := r.operandInt(tag1, id1)
		right := r.operandInt(tag2, id2)

		op := kind.ToOp()
		if !taken {
			op = constraint.Complement(op)
		}
		expr := constraint.MustBinary(op, left, right)

		r.Buffer(key).Append(Constraint{
			Left: left, Right: right, Op: kind, Outcome: taken,
			Timestamp: r.nextTimestamp(), Expr: expr,
		})
	})
	return taken
}

// threeWay is shared plumbing for Lcmp/Fcmpl/Fcmpg/Dcmpl/Dcmpg: it
// computes the translated comparison Expr matching the observed sign
// bucket and appends the Constraint, honoring the relevance filter.
func (r *Recorder) threeWay(key ThreadKey, kind CompareKind, left, right constraint.Expr, sign int, relevant bool) {
	r.guard(key, func() {
		if !relevant {
			return
		}
		expr := signBucketExpr(left, right, sign)
		r.Buffer(key).Append(Constraint{
			Left: left, Right: right, Op: kind, Outcome: sign,
			Timestamp: r.nextTimestamp(), Expr: expr,
		})
		if r.Debug != nil {
			r.Debug("three_way_compare", map[string]any{"thread": string(key), "expr": expr.String(), "sign": sign})
		}
	})
}

// signBucketExpr returns the comparison Expr corresponding to sign ∈
// {-1,0,1}: left<right, left==right, or left>right respectively.
func signBucketExpr(left, right constraint.Expr, sign int) constraint.Expr {
	switch sign {
	case -1:
		return constraint.MustBinary(constraint.LT, left, right)
	case 0:
		return constraint.MustBinary(constraint.EQ, left, right)
	default:
		return constraint.MustBinary(constraint.GT, left, right)
	}
}

// Lcmp records a long three-way compare (spec.md §4.4). Returns the sign
// of a-b (-1, 0, or 1) unchanged.
func (r *Recorder) Lcmp(key ThreadKey, a int64, tagA symbolic.Tag, b int64, tagB symbolic.Tag) int {
	sign := sign64(a - b)
	left := r.operandInt(tagA, a)
	right := r.operandInt(tagB, b)
	r.threeWay(key, CmpLCMP, left, right, sign, r.relevant(tagA, tagB))
	return sign
}

// Fcmpl records a float three-way compare where NaN yields -1. Returns the
// sign unchanged.
func (r *Recorder) Fcmpl(key ThreadKey, a float64, tagA symbolic.Tag, b float64, tagB symbolic.Tag) int {
	sign := floatSign(a, b, -1)
	left := r.operandReal(tagA, a)
	right := r.operandReal(tagB, b)
	r.threeWay(key, CmpFCMPL, left, right, sign, r.relevant(tagA, tagB))
	return sign
}

// Fcmpg records a float three-way compare where NaN yields +1.
func (r *Recorder) Fcmpg(key ThreadKey, a float64, tagA symbolic.Tag, b float64, tagB symbolic.Tag) int {
	sign := floatSign(a, b, 1)
	left := r.operandReal(tagA, a)
	right := r.operandReal(tagB, b)
	r.threeWay(key, CmpFCMPG, left, right, sign, r.relevant(tagA, tagB))
	return sign
}

// Dcmpl records a double three-way compare where NaN yields -1.
func (r *Recorder) Dcmpl(key ThreadKey, a float64, tagA symbolic.Tag, b float64, tagB symbolic.Tag) int {
	sign := floatSign(a, b, -1)
	left := r.operandReal(tagA, a)
	right := r.operandReal(tagB, b)
	r.threeWay(key, CmpDCMPL, left, right, sign, r.relevant(tagA, tagB))
	return sign
}

// Dcmpg records a double three-way compare where NaN yields +1.
func (r *Recorder) Dcmpg(key ThreadKey, a float64, tagA symbolic.Tag, b float64, tagB symbolic.Tag) int {
	sign := floatSign(a, b, 1)
	left := r.operandReal(tagA, a)
	right := r.operandReal(tagB, b)
	r.threeWay(key, CmpDCMPG, left, right, sign, r.relevant(tagA, tagB))
	return sign
}

func sign64(d int64) int {
	switch {
	case d < 0:
		return -1
	case d > 0:
		return 1
	default:
		return 0
	}
}

func floatSign(a, b float64, nanResult int) int {
	if a != a || b != b { // NaN check without importing math
		return nanResult
	}
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// BranchOp identifies the six unary-against-zero branch opcodes of spec.md
// §4.4's event table (IFEQ/IFNE/IFLT/IFGE/IFGT/IFLE), each translating
// directly to a comparison against zero.
type BranchOp int

const (
	IFEQ BranchOp = iota
	IFNE
	IFLT
	IFGE
	IFGT
	IFLE
)

func (b BranchOp) toOp() constraint.Op {
	switch b {
	case IFEQ:
		return constraint.EQ
	case IFNE:
		return constraint.NE
	case IFLT:
		return constraint.LT
	case IFGE:
		return constraint.GE
	case IFGT:
		return constraint.GT
	case IFLE:
		return constraint.LE
	default:
		panic("trace: invalid BranchOp")
	}
}

// Branch records a unary-against-zero branch test (spec.md §4.4). Returns
// taken unchanged.
func (r *Recorder) Branch(key ThreadKey, tag symbolic.Tag, concrete int64, op BranchOp, taken bool) bool {
	r.guard(key, func() {
		if !r.Labels.IsUserSymbolic(tag) {
			return
		}
		v := r.operandInt(tag, concrete)
		zero := constraint.IntConst(0)

		cmpOp := op.toOp()
		if !taken {
			cmpOp = constraint.Complement(cmpOp)
		}
		expr := constraint.MustBinary(cmpOp, v, zero)

		r.Buffer(key).Append(Constraint{
			Left: v, Right: zero, Op: branchOpToCompareKind(op), Outcome: taken,
			Timestamp: r.nextTimestamp(), Expr: expr,
		})
		if r.Debug != nil {
			r.Debug("branch", map[string]any{"thread": string(key), "expr": expr.String()})
		}
	})
	return taken
}

func branchOpToCompareKind(op BranchOp) CompareKind {
	switch op {
	case IFEQ:
		return CmpEQ
	case IFNE:
		return CmpNE
	case IFLT:
		return CmpLT
	case IFGE:
		return CmpGE
	case IFGT:
		return CmpGT
	case IFLE:
		return CmpLE
	default:
		panic("trace: invalid BranchOp")
	}
}

// SwitchCase records a multi-way select (spec.md §4.4). selectedCase == -1
// denotes the default arm, for which no expression is emitted (spec.md
// §9's Open Question: the default-arm conjunction, if ever needed, is
// reconstructed at negate time rather than materialized on the hot path).
// Returns selectedCase unchanged.
func (r *Recorder) SwitchCase(key ThreadKey, tag symbolic.Tag, selectedCase int64) int64 {
	r.guard(key, func() {
		if !r.Labels.IsUserSymbolic(tag) {
			return
		}
		if selectedCase == -1 {
			return
		}
		v := r.operandInt(tag, selectedCase)
		c := constraint.IntConst(selectedCase)
		expr := constraint.MustBinary(constraint.EQ, v, c)

		r.Buffer(key).Append(Constraint{
			Left: v, Right: c, Op: CmpEQ, Outcome: true,
			Timestamp: r.nextTimestamp(), Expr: expr,
		})
		if r.Debug != nil {
			r.Debug("switch_case", map[string]any{"thread": string(key), "expr": expr.String()})
		}
	})
	return selectedCase
}
