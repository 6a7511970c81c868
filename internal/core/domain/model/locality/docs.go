// Package locality models distribution points with reservable water capacity.
package locality
