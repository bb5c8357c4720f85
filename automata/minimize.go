package automata

import "sort"

// Minimize collapses equivalent states by partition refinement. The initial
// partition separates states by accept status and rule tag, so two rules
// never merge into one accept state.
func Minimize(d *DFA) *DFA {
	if d == nil || d.Start == nil {
		return d
	}

	groups := map[[2]int]map[*DState]struct{}{}
	for _, s := range d.States {
		k := [2]int{0, -1}
		if s.Accept {
			k = [2]int{1, s.Rule}
		}
		if groups[k] == nil {
			groups[k] = map[*DState]struct{}{}
		}
		groups[k][s] = struct{}{}
	}

	partitions := make([]map[*DState]struct{}, 0, len(groups))
	for _, g := range groups {
		partitions = append(partitions, g)
	}

	work := make([]int, len(partitions))
	pending := make(map[int]bool, len(partitions))
	for i := range work {
		work[i] = i
		pending[i] = true
	}

	// symbols: the explicit alphabet plus one pseudo-symbol for the
	// wildcard transition
	symbols := make([]rune, len(d.Alpha), len(d.Alpha)+1)
	copy(symbols, d.Alpha)
	const wildSym = rune(-1)
	symbols = append(symbols, wildSym)

	step := func(s *DState, c rune) *DState {
		if c == wildSym {
			return s.Wild
		}
		return s.Trans[c]
	}

	for len(work) > 0 {
		idx := work[0]
		work = work[1:]
		pending[idx] = false
		target := partitions[idx]

		for _, c := range symbols {
			pre := map[*DState]struct{}{}
			for _, s := range d.States {
				if t := step(s, c); t != nil {
					if _, ok := target[t]; ok {
						pre[s] = struct{}{}
					}
				}
			}
			if len(pre) == 0 {
				continue
			}

			for pIdx := 0; pIdx < len(partitions); pIdx++ {
				part := partitions[pIdx]
				inter := map[*DState]struct{}{}
				diff := map[*DState]struct{}{}
				for s := range part {
					if _, ok := pre[s]; ok {
						inter[s] = struct{}{}
					} else {
						diff[s] = struct{}{}
					}
				}
				if len(inter) == 0 || len(diff) == 0 {
					continue
				}
				partitions[pIdx] = inter
				partitions = append(partitions, diff)
				nIdx := len(partitions) - 1
				// a split block that is already queued must leave both
				// halves queued; otherwise the smaller half suffices
				switch {
				case pending[pIdx]:
					work = append(work, nIdx)
					pending[nIdx] = true
				case len(inter) < len(diff):
					work = append(work, pIdx)
					pending[pIdx] = true
				default:
					work = append(work, nIdx)
					pending[nIdx] = true
				}
			}
		}
	}

	// one representative per block
	rep := map[*DState]*DState{}
	blocks := make([]*DState, 0, len(partitions))
	for _, part := range partitions {
		var sample *DState
		for s := range part {
			if sample == nil || s.ID < sample.ID {
				sample = s
			}
		}
		ns := &DState{ID: len(blocks), Accept: sample.Accept, Rule: sample.Rule, Trans: map[rune]*DState{}}
		blocks = append(blocks, ns)
		for s := range part {
			rep[s] = ns
		}
	}

	for old, ns := range rep {
		for c, to := range old.Trans {
			ns.Trans[c] = rep[to]
		}
		if old.Wild != nil {
			ns.Wild = rep[old.Wild]
		}
	}

	sort.Slice(blocks, func(i, j int) bool { return blocks[i].ID < blocks[j].ID })
	return &DFA{Start: rep[d.Start], States: blocks, Alpha: d.Alpha}
}
