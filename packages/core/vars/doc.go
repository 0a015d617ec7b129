// Package vars expands {{...}} placeholders in request files.
//
// Three forms are recognised:
//   - {{$NAME}} reads an environment variable
//   - {{name}} reads a variable supplied with WithVariables
//   - {{fn(args)}} calls a built-in function such as uuid() or base64("x")
//
// Placeholders that cannot be resolved are left in place and reported
// through the warn function.
package vars
