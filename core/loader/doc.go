// Package loader registers the HTTP features of the start command.
//
// A feature bundles a service, its handler and the routes it owns, such as the
// export trigger or the integrity checks. Features that are not enabled, for
// example because their backing service is missing, are skipped without error.
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// Register adds features to a Manager; LoadAll mounts the enabled ones in
// registration order and Loaded reports which were mounted.
package loader
