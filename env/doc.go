// Package env constructs the single explicitly-owned object a WMI
// query runs against: the interning Pool, a structured logger and a
// stable query identifier. There is no package-level state here or in
// ir — every computation starts from an *env.Environment a caller
// builds once and threads through decompose, enumerate and integrate,
// mirroring how the teacher's core.Graph is always an explicit value,
// never a singleton.
package env
