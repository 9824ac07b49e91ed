// Package utils converts the loosely typed values found in request bodies
// and query strings into the types the services expect.
package utils
