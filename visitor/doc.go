// Package visitor provides concrete tree.Visitor implementations: an indented listing, a recursive size
// report, a glob search and a stats counter.
package visitor
