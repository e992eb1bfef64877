// pkg/blocking/gate.go - the Safari install decision.

package blocking

// Decision is the outcome of the Safari safety check.
type Decision int

const (
	// DecisionInstall - Safari is not running, safe to install.
	DecisionInstall Decision = iota
	// DecisionForced - Safari is running but the force flag overrides.
	DecisionForced
	// DecisionWithheld - Safari is running and no override was given; the
	// whole Safari bucket is skipped.
	DecisionWithheld
)

func (d Decision) String() string {
	switch d {
	case DecisionInstall:
		return "install"
	case DecisionForced:
		return "forced"
	case DecisionWithheld:
		return "withheld"
	default:
		return "unknown"
	}
}

// Allowed reports whether Safari updates may proceed under this decision.
func (d Decision) Allowed() bool {
	return d != DecisionWithheld
}

// SafariGate applies the decision table: not running installs, running plus
// force installs, running without force withholds everything. The decision
// depends only on its inputs, so repeated evaluation is stable.
func SafariGate(running, force bool) Decision {
	switch {
	case !running:
		return DecisionInstall
	case force:
		return DecisionForced
	default:
		return DecisionWithheld
	}
}
