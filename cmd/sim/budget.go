package main

import "time"

const defaultTPS = 60

// tickRate clamps a requested ticks-per-second to a usable rate.
func tickRate(tps int) int {
	if tps <= 0 {
		return defaultTPS
	}
	return tps
}

// tickBudget is how long ticks take on the wall clock at tps.
func tickBudget(ticks, tps int) time.Duration {
	return time.Duration(ticks) * time.Second / time.Duration(tickRate(tps))
}
