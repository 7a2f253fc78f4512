// Package store defines the persistence interfaces and the sentinel errors
// their implementations translate driver faults into. Nothing outside the
// platform packages depends on a concrete database driver.
package store
