package domain

// Route is one vehicle's trip: an ordered sequence of customer IDs with the
// depot implicit at both ends. Demand and Distance are maintained by the
// solver as routes are merged.
type Route struct {
	Customers []int
	Demand    float64
	Distance  float64
}

// Head is the customer adjacent to the depot at the start of the route.
func (r Route) Head() int { return r.Customers[0] }

// Tail is the customer adjacent to the depot at the end of the route.
func (r Route) Tail() int { return r.Customers[len(r.Customers)-1] }

// Solution is a completed partition of all customers into routes, plus the
// summed travel cost. Valid reports whether every route respects vehicle
// capacity. It is the immutable output of one construction trial.
type Solution struct {
	Routes []Route
	Cost   float64
	Valid  bool
}
