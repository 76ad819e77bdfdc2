package dto

type InstanceResponse struct {
	Name      string  `json:"name"`
	Customers int     `json:"customers"`
	Capacity  float64 `json:"capacity"`
}

type ListInstancesResponse struct {
	Instances []InstanceResponse `json:"instances"`
}
