// Package dotenv resolves the single .env variant that applies to the active
// runtime mode, parses it into a flat key-value map, and looks up individual
// variables from the process environment with a default.
//
// Candidate files are probed in a fixed priority order per mode, most
// specific and most local first:
//
//	.env.<mode>.local > .env.local > .env.<mode> > .env
//
// Parsing accepts only flat KEY=VALUE lines split on the first '='. There is
// no trimming, quoting, comment or interpolation support.
package dotenv
