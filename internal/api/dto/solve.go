package dto

type SolveRequest struct {
	// Either a stored instance name...
	Instance string `json:"instance,omitempty"`
	// ...or an inline problem: full cost matrix (depot row 0), per-node
	// demands and vehicle capacity.
	Matrix   [][]float64 `json:"matrix,omitempty"`
	Demands  []float64   `json:"demands,omitempty"`
	Capacity float64     `json:"capacity,omitempty"`

	Trials        int     `json:"trials"`
	Policy        string  `json:"policy"`
	Distribution  string  `json:"distribution"`
	BiasParameter float64 `json:"bias_parameter"`
	RandomSeed    *uint64 `json:"random_seed"`
	MaxRouteCost  float64 `json:"max_route_cost"`
	Workers       int     `json:"workers"`
}

type RouteResponse struct {
	Customers []int   `json:"customers"`
	Demand    float64 `json:"demand"`
	Distance  float64 `json:"distance"`
}

type SolveResponse struct {
	Instance   string          `json:"instance,omitempty"`
	Policy     string          `json:"policy"`
	BestCost   float64         `json:"best_cost"`
	BestTrial  int             `json:"best_trial"`
	Routes     []RouteResponse `json:"routes"`
	TrialCosts []float64       `json:"trial_costs"`
	Cached     bool            `json:"cached"`
}
