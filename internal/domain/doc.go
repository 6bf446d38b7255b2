// Package domain contains the core entities of the food donation
// marketplace and their validation rules, independent of transport and
// persistence concerns.
package domain
