package pricing

// VehicleClass is one row of the capacity table. The table is defined in
// ascending capacity order, which for this fleet also means ascending cost,
// so the first sufficient entry is the cheapest.
type VehicleClass struct {
	Type        string `json:"type"`
	Capacity    uint   `json:"capacity"`
	PricePerDay Money  `json:"price_per_day"`
}

// DefaultVehicleClasses is the fleet table used when a calculator is not
// configured with its own.
var DefaultVehicleClasses = []VehicleClass{
	{Type: "Avanza", Capacity: 6, PricePerDay: Money{Amount: 3500, Currency: DefaultCurrency}},
	{Type: "Innova", Capacity: 8, PricePerDay: Money{Amount: 4500, Currency: DefaultCurrency}},
	{Type: "ELF", Capacity: 15, PricePerDay: Money{Amount: 6500, Currency: DefaultCurrency}},
	{Type: "Bus", Capacity: 25, PricePerDay: Money{Amount: 8500, Currency: DefaultCurrency}},
}

// SelectVehicle returns the first class with sufficient capacity. A zero
// headcount gets the smallest vehicle. A headcount above every capacity is a
// CapacityExceededError rather than a silent upgrade to the largest class.
func SelectVehicle(classes []VehicleClass, headcount uint) (VehicleClass, error) {
	if len(classes) == 0 {
		classes = DefaultVehicleClasses
	}
	for _, vc := range classes {
		if headcount <= vc.Capacity {
			return vc, nil
		}
	}
	return VehicleClass{}, CapacityExceededError{
		Headcount:   headcount,
		MaxCapacity: classes[len(classes)-1].Capacity,
	}
}
