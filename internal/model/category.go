package model

// Categories is the fixed set of expense categories, in keyboard order.
var Categories = []string{
	"Grocery",
	"Car",
	"Transportation",
	"House",
	"Eating out",
	"Health",
	"Utilities",
	"Other",
}

// Periods is the fixed set of stats periods, in keyboard order.
var Periods = []string{
	"Today",
	"This week",
	"This month",
}

// IsCategory reports whether name is one of the fixed expense categories.
func IsCategory(name string) bool {
	for _, c := range Categories {
		if c == name {
			return true
		}
	}
	return false
}

// IsPeriod reports whether name is one of the recognized stats periods.
func IsPeriod(name string) bool {
	for _, p := range Periods {
		if p == name {
			return true
		}
	}
	return false
}
