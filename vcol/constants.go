package vcol

// Physical constants shared by the thermodynamic kernels. Values match the
// reference atmosphere model so results stay bit-reproducible against it.
const (
	// Rgas is the dry-air gas constant [J/kg/K].
	Rgas = 287.04
	// Rvapor is the water-vapor gas constant [J/kg/K].
	Rvapor = 461.5
	// Cp is the specific heat of dry air at constant pressure [J/kg/K].
	Cp = 1005.0
	// Gravity is the gravitational acceleration [m/s2].
	Gravity = 9.80616
	// P0 is the reference pressure [Pa].
	P0 = 100000.0
	// Kappa is Rgas/Cp.
	Kappa = Rgas / Cp
	// TRef is the reference temperature [K] for the reference
	// potential-temperature profile.
	TRef = 288.0
)
