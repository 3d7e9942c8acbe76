package storage

import "time"

type Stage struct {
	StageName    string  `json:"stage_name"`
	DurationDays float64 `json:"duration_days"`
}

type ProductionPlan struct {
	ProductID string  `json:"product_id"`
	Stages    []Stage `json:"stages"`
}

type Task struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
	Order       int    `json:"order"`
}

type TaskAssignment struct {
	ID               string    `json:"id"`
	OrderID          string    `json:"order_id"`
	TaskID           string    `json:"task_id"`
	Duration         float64   `json:"duration"`
	StartDate        time.Time `json:"start_date"`
	EndDate          time.Time `json:"end_date"`
	Progress         int       `json:"progress"`
	DependsOn        []string  `json:"depends_on"`
	ResponsibleEmail string    `json:"responsible_email"`
}

// Clone returns a copy that shares no slices with a.
func (a TaskAssignment) Clone() TaskAssignment {
	c := a
	if a.DependsOn != nil {
		c.DependsOn = append([]string(nil), a.DependsOn...)
	}
	return c
}

type CalculatorItem struct {
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Stages    []Stage `json:"stages"`
}

type SectorWorkload struct {
	StageName string  `json:"stage_name"`
	Workload  float64 `json:"workload"`
}
