package motionplan

import "math"

// poly is a scalar polynomial in t with coefficients in ascending order of degree.
type poly []float64

// eval evaluates the polynomial at t by Horner's rule.
func (p poly) eval(t float64) float64 {
	var v float64
	for i := len(p) - 1; i >= 0; i-- {
		v = v*t + p[i]
	}
	return v
}

// deriv returns the first derivative polynomial.
func (p poly) deriv() poly {
	if len(p) <= 1 {
		return poly{}
	}
	d := make(poly, len(p)-1)
	for i := 1; i < len(p); i++ {
		d[i-1] = float64(i) * p[i]
	}
	return d
}

// derivN returns the n-th derivative polynomial.
func (p poly) derivN(n int) poly {
	d := p
	for i := 0; i < n; i++ {
		d = d.deriv()
	}
	return d
}

// evalDeriv evaluates the d-th derivative of the polynomial at t without
// materializing the derivative's coefficients; the search loop calls this for
// every sampled state.
func (p poly) evalDeriv(d int, t float64) float64 {
	var v float64
	for k := len(p) - 1; k >= d; k-- {
		fall := 1.0
		for i := 0; i < d; i++ {
			fall *= float64(k - i)
		}
		v = v*t + p[k]*fall
	}
	return v
}

// rootEps is the bisection convergence width and the threshold below which a
// leading coefficient is treated as zero.
const rootEps = 1e-10

// trim drops near-zero leading coefficients so the effective degree is honest.
func (p poly) trim() poly {
	n := len(p)
	for n > 1 && math.Abs(p[n-1]) < rootEps {
		n--
	}
	return p[:n]
}

// rootsWithin returns the real roots of p inside [t0, t1] in increasing order.
// The critical points of p, found recursively from its derivative, split the
// interval into monotone pieces; each piece holds at most one root, located by
// bisection. A root landing exactly on a piece boundary may appear twice;
// callers tolerate duplicates.
func (p poly) rootsWithin(t0, t1 float64) []float64 {
	q := p.trim()
	if len(q) <= 1 {
		return nil
	}
	if len(q) == 2 {
		r := -q[0] / q[1]
		if r >= t0 && r <= t1 {
			return []float64{r}
		}
		return nil
	}
	crit := q.deriv().rootsWithin(t0, t1)
	bounds := make([]float64, 0, len(crit)+2)
	bounds = append(bounds, t0)
	bounds = append(bounds, crit...)
	bounds = append(bounds, t1)
	var roots []float64
	for i := 0; i+1 < len(bounds); i++ {
		if r, ok := q.bisect(bounds[i], bounds[i+1]); ok {
			roots = append(roots, r)
		}
	}
	return roots
}

// bisect locates the root of p in [lo, hi], on which p must be monotone. It
// reports false when the endpoint values share a sign.
func (p poly) bisect(lo, hi float64) (float64, bool) {
	flo, fhi := p.eval(lo), p.eval(hi)
	if flo == 0 {
		return lo, true
	}
	if fhi == 0 {
		return hi, true
	}
	if (flo > 0) == (fhi > 0) {
		return 0, false
	}
	for hi-lo > rootEps {
		mid := (lo + hi) / 2
		f := p.eval(mid)
		switch {
		case f == 0:
			return mid, true
		case (f > 0) == (flo > 0):
			lo, flo = mid, f
		default:
			hi = mid
		}
	}
	return (lo + hi) / 2, true
}

// extremaWithin returns the minimum and maximum of p over [t0, t1], attained
// either at an endpoint or at an interior critical point.
func (p poly) extremaWithin(t0, t1 float64) (float64, float64) {
	lo, hi := p.eval(t0), p.eval(t1)
	if lo > hi {
		lo, hi = hi, lo
	}
	for _, t := range p.deriv().rootsWithin(t0, t1) {
		v := p.eval(t)
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

// squaredIntegral returns the closed form of the integral of p(t)^2 over [0, dt].
func (p poly) squaredIntegral(dt float64) float64 {
	var total float64
	for k, ck := range p {
		for l, cl := range p {
			total += ck * cl * math.Pow(dt, float64(k+l+1)) / float64(k+l+1)
		}
	}
	return total
}

func factorial(n int) float64 {
	f := 1.0
	for i := 2; i <= n; i++ {
		f *= float64(i)
	}
	return f
}
