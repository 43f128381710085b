// Package match measures how close two identifiers are. The analyzer uses it
// to recognize misspelled generator directives.
package match
