// Package loader registers features with the HTTP application.
//
// Each feature implements the Feature interface:
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// The Manager loads enabled features in registration order. A load error is
// wrapped with the feature name and stops the remaining features from loading.
// The server registers 'booleans' and 'integrity'.
package loader
