package models

// Statistics aggregates a user's delivery counters.
//
// OnTimeDeliveryRate, AverageDeliveryTime and CustomerSatisfaction are
// documented placeholder values, not derived from real delivery
// timestamps: they switch to fixed demo constants once the user has at
// least one delivered package.
type Statistics struct {
	TotalDeliveries     int `json:"totalDeliveries"`
	PendingDeliveries   int `json:"pendingDeliveries"`
	InTransitDeliveries int `json:"inTransitDeliveries"`
	DeliveredDeliveries int `json:"deliveredDeliveries"`

	OnTimeDeliveryRate   int     `json:"onTimeDeliveryRate"`
	AverageDeliveryTime  string  `json:"averageDeliveryTime"`
	CustomerSatisfaction float64 `json:"customerSatisfaction"`
}
