// Package kuhn models the extensive-form game of Kuhn poker: a three card
// deck, one private card per player, an ante of one chip each and a single
// betting round with a fixed bet size of one chip.
//
// The package is purely functional. Every transition returns a new GameState
// and never mutates the one it was derived from, so a recursive solver can
// hold a state on its stack while exploring sibling subtrees.
package kuhn
