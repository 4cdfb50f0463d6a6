package bytepack

import "fmt"

// suffixArray sorts the suffixes of s by prefix doubling. Each round orders
// by (rank[i], rank[i+k]) with two counting sorts.
func suffixArray(s []byte) []int {
	n := len(s)
	sa := make([]int, n)
	if n == 0 {
		return sa
	}
	rank := make([]int, n)
	tmp := make([]int, n)
	var start [257]int
	for _, c := range s {
		start[int(c)+1]++
	}
	for c := 1; c <= 256; c++ {
		start[c] += start[c-1]
	}
	for i, c := range s {
		sa[start[c]] = i
		start[c]++
	}
	classes := 1
	rank[sa[0]] = 0
	for q := 1; q < n; q++ {
		if s[sa[q]] != s[sa[q-1]] {
			classes++
		}
		rank[sa[q]] = classes - 1
	}
	sa2 := make([]int, n)
	bucket := make([]int, n+1)
	for k := 1; classes < n; k <<= 1 {
		// order by second key; suffixes without one come first
		p := 0
		from := n - k
		if from < 0 {
			from = 0
		}
		for i := from; i < n; i++ {
			sa2[p] = i
			p++
		}
		for _, j := range sa {
			if j >= k {
				sa2[p] = j - k
				p++
			}
		}
		// stable by first key
		for c := 0; c <= classes; c++ {
			bucket[c] = 0
		}
		for _, i := range sa2 {
			bucket[rank[i]+1]++
		}
		for c := 1; c <= classes; c++ {
			bucket[c] += bucket[c-1]
		}
		for _, i := range sa2 {
			sa[bucket[rank[i]]] = i
			bucket[rank[i]]++
		}
		second := func(i int) int {
			if i+k < n {
				return rank[i+k]
			}
			return -1
		}
		tmp[sa[0]] = 0
		classes = 1
		for q := 1; q < n; q++ {
			a, b := sa[q-1], sa[q]
			if rank[a] != rank[b] || second(a) != second(b) {
				classes++
			}
			tmp[b] = classes - 1
		}
		rank, tmp = tmp, rank
	}
	return sa
}

// bwtEncode appends eof to s and returns the last column of the sorted
// rotations. eof must not occur in s.
func bwtEncode(s []byte, eof byte) []byte {
	t := make([]byte, len(s)+1)
	copy(t, s)
	t[len(s)] = eof
	n := len(t)
	sa := suffixArray(t)
	last := make([]byte, n)
	for k, i := range sa {
		last[k] = t[(i+n-1)%n]
	}
	return last
}

// bwtDecode inverts bwtEncode. The row of the original text is the one
// ending in the unique eof.
func bwtDecode(last []byte, eof byte) ([]byte, error) {
	n := len(last)
	row := -1
	for k, c := range last {
		if c == eof {
			if row >= 0 {
				return nil, fmt.Errorf("%w: end marker at rows %d and %d", ErrCorruptBWT, row, k)
			}
			row = k
		}
	}
	if row < 0 {
		return nil, fmt.Errorf("%w: no end marker", ErrCorruptBWT)
	}
	var first [256]int
	for _, c := range last {
		first[c]++
	}
	sum := 0
	for c := 0; c < 256; c++ {
		sum, first[c] = sum+first[c], sum
	}
	var seen [256]int
	lf := make([]int, n)
	for k, c := range last {
		lf[k] = first[c] + seen[c]
		seen[c]++
	}
	out := make([]byte, n-1)
	for k := n - 2; k >= 0; k-- {
		row = lf[row]
		out[k] = last[row]
	}
	return out, nil
}
