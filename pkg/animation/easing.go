package animation

// Easing functions in the classic (t, b, c, d) form:
//
//	t: elapsed time
//	b: value at t = 0
//	c: change in value reached at t = d
//	d: duration
//
// Any time unit works as long as t and d share it. Both functions are
// bounded polynomials in t/d, so a tick that lands slightly past d
// yields a value slightly past (EaseIn) or just short of (EaseOut) b+c
// rather than diverging.

// EaseIn is quadratic ease-in: slow start, accelerating toward b+c.
// A non-positive duration returns b+c.
func EaseIn(t, b, c, d float64) float64 {
	if d <= 0 {
		return b + c
	}
	p := t / d
	return b + c*p*p
}

// EaseOut is quadratic ease-out: fast start, decelerating onto b+c.
// A non-positive duration returns b+c.
func EaseOut(t, b, c, d float64) float64 {
	if d <= 0 {
		return b + c
	}
	p := t / d
	return b - c*p*(p-2)
}
