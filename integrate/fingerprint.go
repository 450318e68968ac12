package integrate

import (
	"sort"
	"strconv"
	"strings"

	"github.com/katalvlaran/wmi/ir"
	"github.com/katalvlaran/wmi/poly"
	"github.com/katalvlaran/wmi/polytope"
)

// fingerprint builds the cache key spec.md §4.5 describes: a
// canonical encoding of the half-space set and monomial set,
// variable-renamed to pt.Order's position indices so two cells that
// differ only in which opaque RealID happens to name "the first
// variable" still collide in the cache.
func fingerprint(pt *polytope.Polytope, p *poly.Polynomial) string {
	pos := make(map[ir.RealID]int, len(pt.Order))
	for i, id := range pt.Order {
		pos[id] = i
	}

	cKeys := make([]string, len(pt.Constraints))
	for i, c := range pt.Constraints {
		cKeys[i] = renamedConstraint(c, pos)
	}
	sort.Strings(cKeys)

	var b strings.Builder
	b.WriteString(strings.Join(cKeys, "|"))
	b.WriteString(";;")

	mKeys := make([]string, 0, len(p.Monomials()))
	for _, m := range p.Monomials() {
		mKeys = append(mKeys, renamedMonomial(m, pos))
	}
	sort.Strings(mKeys)
	b.WriteString(strings.Join(mKeys, ","))
	return b.String()
}

func position(id ir.RealID, pos map[ir.RealID]int) int {
	if i, ok := pos[id]; ok {
		return i
	}
	return len(pos) + int(id)
}

func renamedConstraint(c *ir.LRAAtom, pos map[ir.RealID]int) string {
	ids := make([]ir.RealID, 0, len(c.Coeffs))
	for id := range c.Coeffs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return position(ids[i], pos) < position(ids[j], pos) })

	var b strings.Builder
	for _, id := range ids {
		v := c.Coeffs[id]
		if v.Sign() == 0 {
			continue
		}
		b.WriteString(strconv.Itoa(position(id, pos)))
		b.WriteByte(':')
		b.WriteString(v.RatString())
		b.WriteByte(',')
	}
	b.WriteString(";b=")
	b.WriteString(c.Bound.RatString())
	b.WriteString(";strict=")
	b.WriteString(strconv.FormatBool(c.Strict))
	return b.String()
}

func renamedMonomial(m *poly.Monomial, pos map[ir.RealID]int) string {
	ids := make([]ir.RealID, 0, len(m.Exps))
	for id, e := range m.Exps {
		if e != 0 {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return position(ids[i], pos) < position(ids[j], pos) })

	var b strings.Builder
	b.WriteString(m.Coeff.RatString())
	for _, id := range ids {
		b.WriteByte('*')
		b.WriteString(strconv.Itoa(position(id, pos)))
		b.WriteByte('^')
		b.WriteString(strconv.Itoa(m.Exps[id]))
	}
	return b.String()
}
