package ir

import (
	"fmt"
	"math/big"
	"sync"
)

// Pool is the process-local, single-init interning arena for one WMI
// query's formulas, terms, atoms and real variables. Concurrency model
// mirrors lvlath/core.Graph: a single mutex guards the rare
// intern-new-node path, while node structs themselves are immutable
// once published, so concurrent readers never need to lock.
//
// A Pool is created once per query (see package env) and discarded
// when the query completes; it is never a hidden global.
type Pool struct {
	mu sync.RWMutex

	atomNames map[string]AtomID
	atomByID  []string
	lraByID   []*LRAAtom // nil entry => plain Boolean atom
	lraKey    map[string]AtomID

	realNames map[string]RealID
	realByID  []string

	formulaKey map[string]*Formula
	termKey    map[string]*Term

	nextFormulaID uint64
	nextTermID    uint64

	trueF  *Formula
	falseF *Formula
}

// NewPool constructs an empty interning arena.
func NewPool() *Pool {
	p := &Pool{
		atomNames:  make(map[string]AtomID),
		lraKey:     make(map[string]AtomID),
		realNames:  make(map[string]RealID),
		formulaKey: make(map[string]*Formula),
		termKey:    make(map[string]*Term),
	}
	p.trueF = &Formula{id: p.nextID(), kind: FKConstTrue}
	p.falseF = &Formula{id: p.nextID(), kind: FKConstFalse}
	return p
}

func (p *Pool) nextID() uint64 {
	p.nextFormulaID++
	return p.nextFormulaID
}

func (p *Pool) nextTID() uint64 {
	p.nextTermID++
	return p.nextTermID
}

// True and False return the shared ⊤/⊥ formula constants.
func (p *Pool) True() *Formula  { return p.trueF }
func (p *Pool) False() *Formula { return p.falseF }

// InternBoolAtom returns the AtomID for a named propositional atom,
// minting a fresh one on first use. Repeated calls with the same name
// return the same AtomID.
func (p *Pool) InternBoolAtom(name string) (AtomID, error) {
	if name == "" {
		return 0, ErrEmptyAtomName
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if id, ok := p.atomNames[name]; ok {
		return id, nil
	}
	id := AtomID(len(p.atomByID))
	p.atomByID = append(p.atomByID, name)
	p.lraByID = append(p.lraByID, nil)
	p.atomNames[name] = id
	return id, nil
}

// InternReal returns the RealID for a named real variable, minting a
// fresh one on first use.
func (p *Pool) InternReal(name string) (RealID, error) {
	if name == "" {
		return 0, ErrEmptyAtomName
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if id, ok := p.realNames[name]; ok {
		return id, nil
	}
	id := RealID(len(p.realByID))
	p.realByID = append(p.realByID, name)
	p.realNames[name] = id
	return id, nil
}

// AtomName and RealName recover the human-readable name given to
// InternBoolAtom/InternReal, for diagnostics and error messages.
func (p *Pool) AtomName(id AtomID) string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if int(id) < 0 || int(id) >= len(p.atomByID) {
		return fmt.Sprintf("<atom#%d>", id)
	}
	return p.atomByID[id]
}

func (p *Pool) RealName(id RealID) string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if int(id) < 0 || int(id) >= len(p.realByID) {
		return fmt.Sprintf("<real#%d>", id)
	}
	return p.realByID[id]
}

// IsLRA reports whether id was produced by InternLRA rather than
// InternBoolAtom, and returns its canonical inequality if so.
func (p *Pool) IsLRA(id AtomID) (*LRAAtom, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if int(id) < 0 || int(id) >= len(p.lraByID) {
		return nil, false
	}
	a := p.lraByID[id]
	return a, a != nil
}

// FreshBoolAtom interns a propositional atom under the given name and
// returns its AtomID. It is InternBoolAtom under another name: a name
// already interned returns the existing atom, so freshness rests on
// the caller choosing an unused name (the weight decomposer uses a
// random UUID per condition label).
func (p *Pool) FreshBoolAtom(name string) (AtomID, error) {
	return p.InternBoolAtom(name)
}

// InternLRA canonicalizes and interns a linear inequality
// Σ aᵢ xᵢ ⋈ b and returns its AtomID, reusing an existing atom if the
// same canonical inequality was interned before.
//
// relGE controls the input relation: false means the coeffs/bound are
// already in the ≤/< family; true means they describe a ≥/> relation
// and must be folded into ≤/< by negating both sides.
func (p *Pool) InternLRA(coeffs map[RealID]*big.Rat, bound *big.Rat, strict, relGE bool) (AtomID, error) {
	norm := make(map[RealID]*big.Rat, len(coeffs))
	b := new(big.Rat).Set(bound)
	for id, c := range coeffs {
		if c.Sign() == 0 {
			continue
		}
		norm[id] = new(big.Rat).Set(c)
	}
	if relGE {
		for id, c := range norm {
			norm[id] = new(big.Rat).Neg(c)
		}
		b.Neg(b)
	}
	atom := &LRAAtom{Coeffs: norm, Bound: b, Strict: strict}
	key := atom.canonicalKey()

	p.mu.Lock()
	defer p.mu.Unlock()
	if id, ok := p.lraKey[key]; ok {
		return id, nil
	}
	id := AtomID(len(p.atomByID))
	name := fmt.Sprintf("<lra#%d>", id)
	p.atomByID = append(p.atomByID, name)
	p.lraByID = append(p.lraByID, atom)
	p.atomNames[name] = id
	p.lraKey[key] = id
	return id, nil
}

// internFormula looks up or creates a Formula node for the given
// structural key, calling build() only on a miss. It takes p.mu for
// writing itself, so callers must not hold it; build() must not touch
// p.mu.
func (p *Pool) internFormula(key string, build func(id uint64) *Formula) *Formula {
	p.mu.Lock()
	defer p.mu.Unlock()
	if f, ok := p.formulaKey[key]; ok {
		return f
	}
	f := build(p.nextID())
	p.formulaKey[key] = f
	return f
}

func (p *Pool) internTerm(key string, build func(id uint64) *Term) *Term {
	p.mu.Lock()
	defer p.mu.Unlock()
	if t, ok := p.termKey[key]; ok {
		return t
	}
	t := build(p.nextTID())
	p.termKey[key] = t
	return t
}
