package processing

import "time"

type nopMetrics struct{}

func (nopMetrics) ObserveFile(string, string, time.Duration) {}
func (nopMetrics) ObserveLines(int, int)                     {}
func (nopMetrics) ObserveRetry()                             {}
func (nopMetrics) ObserveDeadLetter(string)                  {}
