package flight

// Physical constants shared by every simulation.
const (
	// Gravity is standard gravity in m/s².
	Gravity = 9.80665
	// AirDensity is sea-level air density in kg/m³.
	AirDensity = 1.225
	// MinAirspeed is the relative-airspeed floor below which the aerodynamic
	// model stalls instead of dividing by a near-zero magnitude.
	MinAirspeed = 1e-6
)

// dragCoefficient applies the quadratic airspeed correction to the base drag
// coefficient: Cd grows by 15% at 60 m/s.
func dragCoefficient(cd0, airspeed float64) float64 {
	s := airspeed / 60.0
	return cd0 * (1 + 0.15*s*s)
}

// Forces evaluates the aerodynamic drag and lift magnitudes at the given
// relative airspeed. It is a pure function; ok is false when the airspeed is
// below MinAirspeed and the caller must stop integrating instead of applying
// the forces.
func Forces(airspeed, cd0, cl0, area, rho float64) (drag, lift float64, ok bool) {
	if airspeed < MinAirspeed {
		return 0, 0, false
	}
	q := 0.5 * rho * area * airspeed * airspeed
	return q * dragCoefficient(cd0, airspeed), q * cl0, true
}
