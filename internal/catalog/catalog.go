// Package catalog holds the fixed table of inspection categories. The table
// is compiled in and never mutated; every lookup the rest of the system
// needs goes through the ordered list, ByID, or Category.HasItem.
package catalog

// ID identifies an inspection category.
type ID string

// Category is one named group of inspectable items. Items are ordered;
// display and report order follow the slice.
type Category struct {
	ID    ID
	Name  string
	Items []string
}

// HasItem reports whether name is one of the category's declared items.
func (c Category) HasItem(name string) bool {
	for _, it := range c.Items {
		if it == name {
			return true
		}
	}
	return false
}

// Categories returns the full catalog in display order. Callers must not
// modify the returned slice.
func Categories() []Category {
	return categories
}

// ByID looks up a category by id.
func ByID(id ID) (Category, bool) {
	c, ok := byID[id]
	return c, ok
}

var byID = func() map[ID]Category {
	m := make(map[ID]Category, len(categories))
	for _, c := range categories {
		m[c.ID] = c
	}
	return m
}()

var categories = []Category{
	{
		ID:    "body-paint",
		Name:  "Body Paint",
		Items: []string{"Front Bumper", "Rear Bumper", "Hood", "Roof", "Left Fender", "Right Fender", "Left Door", "Right Door"},
	},
	{
		ID:    "poshish",
		Name:  "Poshish",
		Items: []string{"Seats", "Dashboard", "Roof Interior", "Door Panels", "Floor Mats"},
	},
	{
		ID:    "dash-roof-controls",
		Name:  "Dash/Roof Controls",
		Items: []string{"A/C Control", "Infotainment System", "Dashboard Lights", "Sunroof Control", "Interior Lights"},
	},
	{
		ID:    "exterior-lights",
		Name:  "Exterior Lights",
		Items: []string{"Headlights", "Tail Lights", "Brake Lights", "Turn Signals", "Fog Lights"},
	},
	{
		ID:    "tyres",
		Name:  "Tyres",
		Items: []string{"Front Left Tyre", "Front Right Tyre", "Rear Left Tyre", "Rear Right Tyre", "Spare Tyre"},
	},
	{
		ID:    "ac-heater",
		Name:  "AC/Heater",
		Items: []string{"Cooling", "Heating", "Fan Speed", "AC Compressor", "Air Vents"},
	},
	{
		ID:    "equipment",
		Name:  "Equipment",
		Items: []string{"Jack", "Tool Kit", "First Aid Kit", "Spare Parts", "Warning Triangle"},
	},
	{
		ID:    "body-frame-accident",
		Name:  "Body Frame Accident",
		Items: []string{"Front Impact Signs", "Rear Impact Signs", "Side Impact Signs", "Structural Damage", "Repairs"},
	},
	{
		ID:    "computer-checkup",
		Name:  "Computer Checkup",
		Items: []string{"ECU Scan", "Error Codes", "System Status", "Computer Reset", "Software Updates"},
	},
	{
		ID:    "fluids-filters",
		Name:  "Fluids/Filters",
		Items: []string{"Engine Oil", "Transmission Fluid", "Brake Fluid", "Coolant", "Air Filter", "Oil Filter"},
	},
	{
		ID:    "battery",
		Name:  "Battery",
		Items: []string{"Battery Condition", "Voltage Test", "Terminal Condition", "Battery Age", "Alternator Test"},
	},
	{
		ID:    "mechanical-check",
		Name:  "Mechanical Check",
		Items: []string{"Engine Performance", "Brakes", "Suspension", "Steering", "Exhaust"},
	},
	{
		ID:    "instrument-cluster",
		Name:  "Instrument Cluster",
		Items: []string{"Speedometer", "Fuel Gauge", "Temperature Gauge", "Warning Lights", "Odometer"},
	},
	{
		ID:    "car-frame",
		Name:  "Car Frame",
		Items: []string{"Chassis", "Undercarriage", "Rust Spots", "Frame Alignment", "Welding Points"},
	},
	{
		ID:    "car-pictures",
		Name:  "Car Pictures",
		Items: []string{"Front View", "Rear View", "Right Side", "Left Side", "Interior", "Engine Bay"},
	},
	{
		ID:    "exhaust-check",
		Name:  "Exhaust Check",
		Items: []string{"Muffler Condition", "Exhaust Pipe", "Catalytic Converter", "Exhaust Smoke", "Leaks"},
	},
	{
		ID:    "engine-cooling-system",
		Name:  "Engine Cooling System",
		Items: []string{"Radiator", "Water Pump", "Coolant Lines", "Thermostat", "Cooling Fan"},
	},
	{
		ID:    "transmission-check",
		Name:  "Transmission Check / Power Train",
		Items: []string{"Shifting", "Clutch", "Gears", "Transmission Noise", "Drive Shaft", "CV Joints"},
	},
	{
		ID:    "document-verification",
		Name:  "Document Verification",
		Items: []string{"Registration", "Insurance", "Service History", "Warranty", "Previous Inspection Reports"},
	},
	{
		ID:    "mirrors",
		Name:  "Mirrors",
		Items: []string{"Side Mirrors", "Rear View Mirror", "Mirror Controls", "Auto-dim Feature", "Mirror Heating"},
	},
	{
		ID:    "seats",
		Name:  "Seats",
		Items: []string{"Driver Seat", "Passenger Seat", "Rear Seats", "Seat Belts", "Seat Controls", "Seat Heating/Cooling"},
	},
	{
		ID:    "steering-controls",
		Name:  "Steering Controls",
		Items: []string{"Steering Wheel", "Steering Column", "Power Steering", "Steering Controls", "Horn"},
	},
	{
		ID:    "windows-locking",
		Name:  "Power/Manual Windows & Central Locking",
		Items: []string{"Power Windows", "Window Controls", "Central Locking", "Remote Key", "Door Locks"},
	},
}
