package cuckoo

import (
	"slices"

	"github.com/bsv-blockchain/teranode-consensus/errors"
	"github.com/bsv-blockchain/teranode-consensus/model"
)

const (
	// MaxSolverEdgeBits bounds the memory the solver allocates.
	MaxSolverEdgeBits = 24

	maxPathLen = 8192
)

type edge struct {
	u, v uint32
}

// Solve searches the graph keyed by header for a cycle of exactly ProofSize
// edges and returns it as a solution. found is false when the graph has no such
// cycle; the caller moves on to the next nonce.
//
// The search follows paths in a directed forest of the edges seen so far. An
// edge whose endpoints already share a root closes a cycle.
func (c *Cuckoo) Solve(header []byte) (solution model.Solution, found bool, err error) {
	if c.edgeBits > MaxSolverEdgeBits {
		return solution, false, errors.NewConfigurationError("cuckoo solver supports at most %d edge bits, got %d", MaxSolverEdgeBits, c.edgeBits)
	}

	keys := newSipKeys(header)

	// 0 is the nil link, so node 0 never enters the forest
	cuckoo := make([]uint32, 2*c.numEdges)
	us := make([]uint32, maxPathLen)
	vs := make([]uint32, maxPathLen)

	for e := uint64(0); e < c.numEdges; e++ {
		u0 := uint32(c.node(&keys, e, 0)) //nolint:gosec // node < 2^(MaxSolverEdgeBits+1)
		if u0 == 0 {
			continue
		}

		v0 := uint32(c.node(&keys, e, 1)) //nolint:gosec // node < 2^(MaxSolverEdgeBits+1)

		us[0], vs[0] = u0, v0

		nu, ok := path(cuckoo, cuckoo[u0], us)
		if !ok {
			continue
		}

		nv, ok := path(cuckoo, cuckoo[v0], vs)
		if !ok {
			continue
		}

		if us[nu] == vs[nv] {
			// same tree, trim both paths back to where they join
			m := min(nu, nv)
			nu, nv = nu-m, nv-m

			for us[nu] != vs[nv] {
				nu++
				nv++
			}

			if nu+nv+1 == model.ProofSize {
				return c.recover(&keys, us, nu, vs, nv), true, nil
			}

			continue
		}

		// reverse the shorter path and hang it off the new edge
		if nu < nv {
			for ; nu > 0; nu-- {
				cuckoo[us[nu]] = us[nu-1]
			}

			cuckoo[u0] = v0
		} else {
			for ; nv > 0; nv-- {
				cuckoo[vs[nv]] = vs[nv-1]
			}

			cuckoo[v0] = u0
		}
	}

	return solution, false, nil
}

// path follows links from u, storing the nodes from index 1 of us onwards, and
// returns the index of the root.
func path(cuckoo []uint32, u uint32, us []uint32) (int, bool) {
	nu := 0

	for ; u != 0; u = cuckoo[u] {
		nu++
		if nu >= len(us) {
			return 0, false
		}

		us[nu] = u
	}

	return nu, true
}

// recover turns the node paths of a cycle back into sorted edge indices.
func (c *Cuckoo) recover(keys *sipKeys, us []uint32, nu int, vs []uint32, nv int) model.Solution {
	cycle := make(map[edge]struct{}, model.ProofSize)
	cycle[edge{us[0], vs[0]}] = struct{}{}

	// u nodes sit at even positions of us and odd positions of vs
	for ; nu > 0; nu-- {
		cycle[edge{us[nu&^1], us[(nu-1)|1]}] = struct{}{}
	}

	for ; nv > 0; nv-- {
		cycle[edge{vs[(nv-1)|1], vs[nv&^1]}] = struct{}{}
	}

	edges := make([]uint64, 0, model.ProofSize)

	for e := uint64(0); e < c.numEdges && len(edges) < model.ProofSize; e++ {
		key := edge{
			uint32(c.node(keys, e, 0)), //nolint:gosec // bounded by MaxSolverEdgeBits
			uint32(c.node(keys, e, 1)), //nolint:gosec // bounded by MaxSolverEdgeBits
		}

		if _, ok := cycle[key]; ok {
			edges = append(edges, e)
			delete(cycle, key)
		}
	}

	slices.Sort(edges)

	return model.NewSolutionFromUint64s(edges)
}
