// Package loader provides the feature loading system.
//
// Each feature implements the Feature interface:
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// The Manager keeps features in registration order and LoadAll mounts the
// enabled ones. The relay, vault and provisioning endpoints are features.
package loader
