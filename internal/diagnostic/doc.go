// Package diagnostic provides structured errors, warnings and notes for the
// duplicate generator.
//
// Every diagnostic names the original type, optionally the field it concerns,
// and the source position it should be reported at:
//   - Unsupported shapes (interfaces, aliases, opaque named types)
//   - Fields lacking the heap-size capability
//   - Generated names or methods colliding with existing declarations
package diagnostic
