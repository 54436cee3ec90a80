package services

// Pricing rules shared by the importer, the diamond inventory and DYO quotes.
//
// metal cost   = rate_per_gram * metal weight (grams)
// stone price  = price_per_carat * carat
// A multiplier of 0 means "not set" and is treated as 1.

// MetalCost returns the cost of a metal component, or 0 when either input is
// not positive.
func MetalCost(ratePerGram, weightGrams float64) float64 {
	if ratePerGram <= 0 || weightGrams <= 0 {
		return 0
	}
	return ratePerGram * weightGrams
}

// MetalCostWithMultiplier applies a metal's price multiplier on top of the
// raw gram cost.
func MetalCostWithMultiplier(ratePerGram, weightGrams, multiplier float64) float64 {
	cost := MetalCost(ratePerGram, weightGrams)
	if multiplier > 0 {
		cost *= multiplier
	}
	return cost
}

// StonePrice returns the price of a stone, or 0 when either input is not
// positive.
func StonePrice(pricePerCarat, carat float64) float64 {
	if pricePerCarat <= 0 || carat <= 0 {
		return 0
	}
	return pricePerCarat * carat
}

// TotalPrice sums the present price components of an expanded variant.
func TotalPrice(components ...float64) float64 {
	var total float64
	for _, c := range components {
		if c > 0 {
			total += c
		}
	}
	return total
}
