package config

// DefaultOptions returns the default Options of spec.md §6: interception
// on, a depth bound of 10, an iteration bound of 100, and a search width
// of 1000.
func DefaultOptions() *Options {
	return &Options{
		Debug:               false,
		InterceptionEnabled: true,
		MaxRecursionDepth:   10,
		MaxIterations:       100,
		SearchWidth:         1000,
	}
}
