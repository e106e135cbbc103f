package system

// param ties a wrapper value type to its pointer, which carries the resolve method
type param[P any] interface {
	*P
	Param
}

// Func0 wraps a parameterless function
func Func0(fn func()) System {
	return newFuncSystem(fn, func(r *resolver) error {
		fn()
		return nil
	})
}

// Func1 wraps a function taking one system parameter
func Func1[P1 any, PP1 param[P1]](fn func(P1)) System {
	return newFuncSystem(fn, func(r *resolver) error {
		var (
			p1 P1
		)
		if err := r.resolveAll(PP1(&p1)); err != nil {
			return err
		}
		fn(p1)
		return nil
	})
}

// Func2 wraps a function taking two system parameters
func Func2[P1, P2 any, PP1 param[P1], PP2 param[P2]](fn func(P1, P2)) System {
	return newFuncSystem(fn, func(r *resolver) error {
		var (
			p1 P1
			p2 P2
		)
		if err := r.resolveAll(PP1(&p1), PP2(&p2)); err != nil {
			return err
		}
		fn(p1, p2)
		return nil
	})
}

// Func3 wraps a function taking three system parameters
func Func3[P1, P2, P3 any, PP1 param[P1], PP2 param[P2], PP3 param[P3]](fn func(P1, P2, P3)) System {
	return newFuncSystem(fn, func(r *resolver) error {
		var (
			p1 P1
			p2 P2
			p3 P3
		)
		if err := r.resolveAll(PP1(&p1), PP2(&p2), PP3(&p3)); err != nil {
			return err
		}
		fn(p1, p2, p3)
		return nil
	})
}

// Func4 wraps a function taking four system parameters
func Func4[P1, P2, P3, P4 any, PP1 param[P1], PP2 param[P2], PP3 param[P3], PP4 param[P4]](fn func(P1, P2, P3, P4)) System {
	return newFuncSystem(fn, func(r *resolver) error {
		var (
			p1 P1
			p2 P2
			p3 P3
			p4 P4
		)
		if err := r.resolveAll(PP1(&p1), PP2(&p2), PP3(&p3), PP4(&p4)); err != nil {
			return err
		}
		fn(p1, p2, p3, p4)
		return nil
	})
}

// Func5 wraps a function taking five system parameters
func Func5[P1, P2, P3, P4, P5 any, PP1 param[P1], PP2 param[P2], PP3 param[P3], PP4 param[P4], PP5 param[P5]](fn func(P1, P2, P3, P4, P5)) System {
	return newFuncSystem(fn, func(r *resolver) error {
		var (
			p1 P1
			p2 P2
			p3 P3
			p4 P4
			p5 P5
		)
		if err := r.resolveAll(PP1(&p1), PP2(&p2), PP3(&p3), PP4(&p4), PP5(&p5)); err != nil {
			return err
		}
		fn(p1, p2, p3, p4, p5)
		return nil
	})
}

// Func6 wraps a function taking six system parameters
func Func6[P1, P2, P3, P4, P5, P6 any, PP1 param[P1], PP2 param[P2], PP3 param[P3], PP4 param[P4], PP5 param[P5], PP6 param[P6]](fn func(P1, P2, P3, P4, P5, P6)) System {
	return newFuncSystem(fn, func(r *resolver) error {
		var (
			p1 P1
			p2 P2
			p3 P3
			p4 P4
			p5 P5
			p6 P6
		)
		if err := r.resolveAll(PP1(&p1), PP2(&p2), PP3(&p3), PP4(&p4), PP5(&p5), PP6(&p6)); err != nil {
			return err
		}
		fn(p1, p2, p3, p4, p5, p6)
		return nil
	})
}

// Func7 wraps a function taking seven system parameters
func Func7[P1, P2, P3, P4, P5, P6, P7 any, PP1 param[P1], PP2 param[P2], PP3 param[P3], PP4 param[P4], PP5 param[P5], PP6 param[P6], PP7 param[P7]](fn func(P1, P2, P3, P4, P5, P6, P7)) System {
	return newFuncSystem(fn, func(r *resolver) error {
		var (
			p1 P1
			p2 P2
			p3 P3
			p4 P4
			p5 P5
			p6 P6
			p7 P7
		)
		if err := r.resolveAll(PP1(&p1), PP2(&p2), PP3(&p3), PP4(&p4), PP5(&p5), PP6(&p6), PP7(&p7)); err != nil {
			return err
		}
		fn(p1, p2, p3, p4, p5, p6, p7)
		return nil
	})
}

// Func8 wraps a function taking eight system parameters
func Func8[P1, P2, P3, P4, P5, P6, P7, P8 any, PP1 param[P1], PP2 param[P2], PP3 param[P3], PP4 param[P4], PP5 param[P5], PP6 param[P6], PP7 param[P7], PP8 param[P8]](fn func(P1, P2, P3, P4, P5, P6, P7, P8)) System {
	return newFuncSystem(fn, func(r *resolver) error {
		var (
			p1 P1
			p2 P2
			p3 P3
			p4 P4
			p5 P5
			p6 P6
			p7 P7
			p8 P8
		)
		if err := r.resolveAll(PP1(&p1), PP2(&p2), PP3(&p3), PP4(&p4), PP5(&p5), PP6(&p6), PP7(&p7), PP8(&p8)); err != nil {
			return err
		}
		fn(p1, p2, p3, p4, p5, p6, p7, p8)
		return nil
	})
}
