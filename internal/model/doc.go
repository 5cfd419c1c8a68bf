// Package model defines the record type shared by the store clients, the
// controllers and the UI.
package model
