package ode

import "math"

// rk45Stepper is the Dormand-Prince adaptive method, adapted from the
// teacher repo's internal/integrators/rk45.go RK45 integrator and
// generalized to an arbitrary RHS and an (atol, rtol) error norm.
type rk45Stepper struct{}

var (
	dpA2, dpA3, dpA4, dpA5 = 1.0 / 5.0, 3.0 / 10.0, 4.0 / 5.0, 8.0 / 9.0

	dpB21                                           = 1.0 / 5.0
	dpB31, dpB32                                    = 3.0 / 40.0, 9.0 / 40.0
	dpB41, dpB42, dpB43                              = 44.0 / 45.0, -56.0 / 15.0, 32.0 / 9.0
	dpB51, dpB52, dpB53, dpB54                       = 19372.0 / 6561.0, -25360.0 / 2187.0, 64448.0 / 6561.0, -212.0 / 729.0
	dpB61, dpB62, dpB63, dpB64, dpB65                = 9017.0 / 3168.0, -355.0 / 33.0, 46732.0 / 5247.0, 49.0 / 176.0, -5103.0 / 18656.0

	dpC1, dpC3, dpC4, dpC5, dpC6 = 35.0 / 384.0, 500.0 / 1113.0, 125.0 / 192.0, -2187.0 / 6784.0, 11.0 / 84.0

	dpDC1 = dpC1 - 5179.0/57600.0
	dpDC3 = dpC3 - 7571.0/16695.0
	dpDC4 = dpC4 - 393.0/640.0
	dpDC5 = dpC5 - -92097.0/339200.0
	dpDC6 = dpC6 - 187.0/2100.0
	dpDC7 = -1.0 / 40.0
)

func (rk45Stepper) step(f func(Vector) Vector, y Vector, dt, rtol, atol float64) (Vector, bool) {
	n := len(y)

	k1 := f(y)

	x2 := make(Vector, n)
	y.AddScaled(x2, dt*dpB21, k1)
	k2 := f(x2)

	x3 := make(Vector, n)
	for i := 0; i < n; i++ {
		x3[i] = y[i] + dt*(dpB31*k1[i]+dpB32*k2[i])
	}
	k3 := f(x3)

	x4 := make(Vector, n)
	for i := 0; i < n; i++ {
		x4[i] = y[i] + dt*(dpB41*k1[i]+dpB42*k2[i]+dpB43*k3[i])
	}
	k4 := f(x4)

	x5 := make(Vector, n)
	for i := 0; i < n; i++ {
		x5[i] = y[i] + dt*(dpB51*k1[i]+dpB52*k2[i]+dpB53*k3[i]+dpB54*k4[i])
	}
	k5 := f(x5)

	x6 := make(Vector, n)
	for i := 0; i < n; i++ {
		x6[i] = y[i] + dt*(dpB61*k1[i]+dpB62*k2[i]+dpB63*k3[i]+dpB64*k4[i]+dpB65*k5[i])
	}
	k6 := f(x6)

	yNew := make(Vector, n)
	for i := 0; i < n; i++ {
		yNew[i] = y[i] + dt*(dpC1*k1[i]+dpC3*k3[i]+dpC4*k4[i]+dpC5*k5[i]+dpC6*k6[i])
	}
	k7 := f(yNew)

	errMax := 0.0
	for i := 0; i < n; i++ {
		errEst := dt * (dpDC1*k1[i] + dpDC3*k3[i] + dpDC4*k4[i] + dpDC5*k5[i] + dpDC6*k6[i] + dpDC7*k7[i])
		scale := atol + rtol*math.Abs(y[i])
		if scale <= 0 {
			scale = atol
		}
		ratio := math.Abs(errEst) / scale
		if ratio > errMax {
			errMax = ratio
		}
	}

	return yNew, errMax <= 1
}

// rk23Stepper is the Bogacki-Shampine 3(2) pair: cheaper per step than
// RK45, used for non-stiff regimes (spec §4.4 "explicit RK for non-stiff
// regimes"), following the same explicit-stage structure as the teacher's
// RK4/RK45 integrators.
type rk23Stepper struct{}

func (rk23Stepper) step(f func(Vector) Vector, y Vector, dt, rtol, atol float64) (Vector, bool) {
	n := len(y)
	k1 := f(y)

	x2 := make(Vector, n)
	for i := 0; i < n; i++ {
		x2[i] = y[i] + dt*0.5*k1[i]
	}
	k2 := f(x2)

	x3 := make(Vector, n)
	for i := 0; i < n; i++ {
		x3[i] = y[i] + dt*0.75*k2[i]
	}
	k3 := f(x3)

	yNew := make(Vector, n)
	for i := 0; i < n; i++ {
		yNew[i] = y[i] + dt*(2.0/9.0*k1[i]+1.0/3.0*k2[i]+4.0/9.0*k3[i])
	}
	k4 := f(yNew)

	errMax := 0.0
	for i := 0; i < n; i++ {
		zNew := y[i] + dt*(7.0/24.0*k1[i]+1.0/4.0*k2[i]+1.0/3.0*k3[i]+1.0/8.0*k4[i])
		scale := atol + rtol*math.Abs(y[i])
		if scale <= 0 {
			scale = atol
		}
		ratio := math.Abs(yNew[i]-zNew) / scale
		if ratio > errMax {
			errMax = ratio
		}
	}

	return yNew, errMax <= 1
}
