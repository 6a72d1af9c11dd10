package domain

import "strings"

// ClampDelivered caps v into [0, quantity]. Over-delivery cannot be recorded.
func ClampDelivered(v, quantity int) int {
	if quantity < 0 {
		quantity = 0
	}
	if v < 0 {
		return 0
	}
	if v > quantity {
		return quantity
	}
	return v
}

// ParseQuantity reads the leading integer of raw, like a number input field would.
// Anything that does not start with digits is 0.
func ParseQuantity(raw string) int {
	s := strings.TrimSpace(raw)
	neg := false
	if s != "" && (s[0] == '-' || s[0] == '+') {
		neg = s[0] == '-'
		s = s[1:]
	}
	n, digits := 0, 0
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		if n > (1<<31)/10 {
			break
		}
		n = n*10 + int(r-'0')
		digits++
	}
	if digits == 0 {
		return 0
	}
	if neg {
		return -n
	}
	return n
}
