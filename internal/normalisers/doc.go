// Package normalisers contains the file-format adapters that turn
// proposal files into plain text. Each subpackage handles one family
// of extensions; the ingest service picks a normaliser by extension.
package normalisers
