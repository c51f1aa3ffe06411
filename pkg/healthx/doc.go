// Package healthx holds the health rules shared by the API and the client:
// the password policy, input ranges, the BMI/BMR/heart-rate formulas, the
// BMI band table and hydration arithmetic.
//
// Everything here is pure. Callers supply the clock where a rule depends on
// "today" so results are reproducible in tests.
package healthx
