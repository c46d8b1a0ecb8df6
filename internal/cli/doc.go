// Package cli holds the cobra commands of the mailforge binary.
//
//	mailforge serve --addr :8080
//	mailforge new header hero footer > welcome.json
//	mailforge render --format text welcome.json
//	mailforge blocks
//
// Every command writes to the command's configured output, so tests drive
// them with SetArgs and SetOut.
package cli
