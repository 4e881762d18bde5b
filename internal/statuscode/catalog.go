// Package statuscode maps the turbine controller's numeric status codes to descriptions.
package statuscode

import "sort"

const (
	// Nominal is the "generating normally" code. It never forms a status interval.
	Nominal = 16

	// Unknown is returned for codes missing from the catalog.
	Unknown = "Unknown"
)

var descriptions = map[int]string{
	0:  "System in standby",
	1:  "Generator overcurrent",
	2:  "Three-phase voltage imbalance",
	3:  "DC voltage output to the inverter is too high",
	4:  "DC current output to the inverter is too high",
	5:  "Overcurrent during motor operation",
	6:  "Motor circuit anomaly",
	7:  "Disk brake anomaly",
	8:  "Generator stator overheating",
	9:  "Dynamic unbalance in the wind turbine",
	10: "Wind controller overheating",
	11: "Warning from the internal ECU module of the wind controller",
	12: "Brake command from the internal ECU module of the wind controller",
	13: "Generator speed too high",
	14: "Wind speed reaching turbine start-up speed",
	15: "Waiting for turbine speed to reach boost circuit start-up speed",
	16: "System generating power normally",
	17: "No-load short brake",
	18: "No-load long brake",
	19: "No-load brake",
	20: "No-load brake with generator output three-phase short circuit",
	21: "Loaded short brake",
	22: "Loaded long brake",
	23: "Loaded brake",
	24: "Loaded brake with generator output three-phase short circuit",
	25: "Timer switch off",
	26: "Oil system anomaly",
	27: "Internal communication anomaly",
	28: "Pneumatic brake failure",
	29: "High wind speed",
	30: "Generator over-speed (possible inverter issue)",
	31: "Waiting for manual reset",
	32: "Automatic reset",
	33: "Exceeded pushing limit within time",
	34: "Disk brake needs replacement",
	39: "Memory reset or battery failure",
	40: "Add gearbox lubrication oil",
	41: "No gearbox oil left",
	42: "Manual stop, local forced stop",
	43: "Remote stop",
	44: "Generator mechanical fault",
	45: "Brake caliper line pressure increase",
	46: "Cooling fan activated",
	47: "Oil pressure motor overload protection",
}

// Describe returns the description for code, or Unknown.
func Describe(code int) string {
	if d, ok := descriptions[code]; ok {
		return d
	}
	return Unknown
}

// Known reports whether code is in the catalog.
func Known(code int) bool {
	_, ok := descriptions[code]
	return ok
}

// Codes returns every catalogued code in ascending order.
func Codes() []int {
	codes := make([]int, 0, len(descriptions))
	for c := range descriptions {
		codes = append(codes, c)
	}
	sort.Ints(codes)
	return codes
}
