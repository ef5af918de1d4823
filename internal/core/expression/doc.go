// Package expression recognizes and evaluates compute queries typed into the
// launcher: currency conversion, kinship terms and arithmetic.
//
// Recognizers run in a fixed order and the first one that accepts the input
// wins. When none accepts it, Evaluate reports false and the launcher shows no
// calculator result at all.
package expression
