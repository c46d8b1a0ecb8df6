// Package api serves the template editor over HTTP: editor sessions and
// their mutations, rendering (HTML, React Email source, plain text and a
// Datastar-aware preview), image uploads, test sends and stored templates.
package api
