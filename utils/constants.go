// File: utils/constants.go
package utils

// SeedLockPrefix is the prefix used for Redis seed lock keys.
const SeedLockPrefix = "seed:lock:"
