package enumerate_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/wmi/enumerate"
	"github.com/katalvlaran/wmi/ir"
	"github.com/katalvlaran/wmi/lra"
)

// buildOrFormula returns Δ = A∨B over two freshly interned Boolean
// atoms, the Scenario D (spec.md §8) Boolean skeleton with its real
// constraint dropped, since this package only tests Boolean/LRA
// bookkeeping, not integration.
func buildOrFormula(t *testing.T) (*ir.Pool, *ir.Formula, ir.AtomID, ir.AtomID) {
	t.Helper()
	p := ir.NewPool()
	a, err := p.InternBoolAtom("A")
	require.NoError(t, err)
	b, err := p.InternBoolAtom("B")
	require.NoError(t, err)
	delta := p.Or(p.Lit(a, false), p.Lit(b, false))
	return p, delta, a, b
}

func drain(t *testing.T, e enumerate.Enumerator, pool *ir.Pool, delta *ir.Formula) []enumerate.Assignment {
	t.Helper()
	require.NoError(t, e.Start(pool, delta))
	var out []enumerate.Assignment
	for {
		a, ok, err := e.Next(context.Background())
		require.NoError(t, err)
		if !ok {
			break
		}
		out = append(out, a)
	}
	require.Equal(t, enumerate.StateDone, e.State())
	return out
}

// expand turns a (possibly partial) cell into every full Boolean
// assignment it represents, given the full atom universe.
func expand(atoms []ir.AtomID, cell enumerate.Assignment) []map[ir.AtomID]bool {
	var free []ir.AtomID
	for _, a := range atoms {
		if _, ok := cell.Values[a]; !ok {
			free = append(free, a)
		}
	}
	out := []map[ir.AtomID]bool{{}}
	for k, v := range cell.Values {
		for _, m := range out {
			m[k] = v
		}
	}
	for _, a := range free {
		var next []map[ir.AtomID]bool
		for _, m := range out {
			mt := copyMap(m)
			mt[a] = true
			mf := copyMap(m)
			mf[a] = false
			next = append(next, mt, mf)
		}
		out = next
	}
	return out
}

func copyMap(m map[ir.AtomID]bool) map[ir.AtomID]bool {
	out := make(map[ir.AtomID]bool, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func keyOf(m map[ir.AtomID]bool, atoms []ir.AtomID) string {
	s := ""
	for _, a := range atoms {
		if m[a] {
			s += "1"
		} else {
			s += "0"
		}
	}
	return s
}

func TestTotalEnumerator_EmitsExactlyTheThreeModels(t *testing.T) {
	pool, delta, a, b := buildOrFormula(t)
	e := enumerate.NewTotalEnumerator(lra.FourierMotzkin{})
	got := drain(t, e, pool, delta)
	require.Len(t, got, 3)
	for _, c := range got {
		require.Equal(t, 0, c.K)
	}
	atoms := []ir.AtomID{a, b}
	seen := make(map[string]bool)
	for _, c := range got {
		seen[keyOf(c.Values, atoms)] = true
	}
	require.True(t, seen["11"])
	require.True(t, seen["10"])
	require.True(t, seen["01"])
	require.False(t, seen["00"])
}

func TestStructureAwareEnumerator_CoversSameModelSetAsTotal(t *testing.T) {
	pool, delta, a, b := buildOrFormula(t)
	atoms := []ir.AtomID{a, b}

	total := enumerate.NewTotalEnumerator(lra.FourierMotzkin{})
	totalCells := drain(t, total, pool, delta)

	sa := enumerate.NewStructureAwareEnumerator(lra.FourierMotzkin{})
	saCells := drain(t, sa, pool, delta)

	totalModels := make(map[string]bool)
	for _, c := range totalCells {
		for _, m := range expand(atoms, c) {
			totalModels[keyOf(m, atoms)] = true
		}
	}
	saModels := make(map[string]bool)
	saModelCount := 0
	for _, c := range saCells {
		for _, m := range expand(atoms, c) {
			saModels[keyOf(m, atoms)] = true
			saModelCount++
		}
	}

	require.Equal(t, totalModels, saModels, "structure-aware must cover exactly the same model set as total")
	require.Equal(t, 3, saModelCount, "every model counted exactly once: no double-counting across cells")
}

func TestStructureAwareEnumerator_DetectsIrrelevantAtom(t *testing.T) {
	// Δ = A∨B: once A is decided true, B no longer affects satisfaction,
	// so the search must leave it unassigned with k=1 on that branch.
	pool, delta, _, _ := buildOrFormula(t)
	sa := enumerate.NewStructureAwareEnumerator(lra.FourierMotzkin{})
	cells := drain(t, sa, pool, delta)

	foundK1 := false
	for _, c := range cells {
		if c.K == 1 {
			foundK1 = true
		}
	}
	require.True(t, foundK1, "the A=true branch should leave B unassigned (k=1)")
}

func TestEnumerator_NextBeforeStartErrors(t *testing.T) {
	pool, delta, _, _ := buildOrFormula(t)
	e := enumerate.NewTotalEnumerator(lra.FourierMotzkin{})
	_, _, err := e.Next(context.Background())
	require.ErrorIs(t, err, enumerate.ErrNotStarted)
	require.NoError(t, e.Start(pool, delta))
	require.ErrorIs(t, e.Start(pool, delta), enumerate.ErrAlreadyStarted)
}

func TestEnumerator_CancelStopsStreamingEarly(t *testing.T) {
	pool, delta, _, _ := buildOrFormula(t)
	e := enumerate.NewTotalEnumerator(lra.FourierMotzkin{})
	require.NoError(t, e.Start(pool, delta))
	_, ok, err := e.Next(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, enumerate.StateStreaming, e.State())
	e.Cancel()
	require.Equal(t, enumerate.StateDone, e.State())
}
