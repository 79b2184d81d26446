// Package inr formats rupee amounts in the Indian numbering system.
package inr

import (
	"fmt"
	"math"
	"strings"
)

// Lakhs formats an amount as lakhs with two decimals, e.g. ₹12.50 L.
func Lakhs(amount float64) string {
	return fmt.Sprintf("₹%.2f L", amount/100000)
}

// Thousands formats an amount in thousands, e.g. ₹45.20 K.
func Thousands(amount float64) string {
	return fmt.Sprintf("₹%.2f K", amount/1000)
}

// Compact picks the conventional unit for the magnitude: crores above 1 Cr,
// lakhs above 1 L, thousands above 1 K, plain rupees below that.
func Compact(amount float64) string {
	abs := math.Abs(amount)
	sign := ""
	if amount < 0 {
		sign = "-"
	}
	switch {
	case abs >= 10000000:
		return fmt.Sprintf("%s₹%.2f Cr", sign, abs/10000000)
	case abs >= 100000:
		return fmt.Sprintf("%s₹%.2f L", sign, abs/100000)
	case abs >= 1000:
		return fmt.Sprintf("%s₹%.2f K", sign, abs/1000)
	}
	return fmt.Sprintf("%s₹%.2f", sign, abs)
}

// Rupees renders a whole-rupee amount with Indian digit grouping
// (3 then 2s): 1234567 -> ₹12,34,567.
func Rupees(amount float64) string {
	neg := amount < 0
	whole := int64(math.Round(math.Abs(amount)))
	s := fmt.Sprintf("%d", whole)

	if len(s) > 3 {
		head := s[:len(s)-3]
		tail := s[len(s)-3:]
		var groups []string
		for len(head) > 2 {
			groups = append([]string{head[len(head)-2:]}, groups...)
			head = head[:len(head)-2]
		}
		if head != "" {
			groups = append([]string{head}, groups...)
		}
		s = strings.Join(groups, ",") + "," + tail
	}
	if neg {
		return "-₹" + s
	}
	return "₹" + s
}
