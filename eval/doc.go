// Package eval expands $[expr] placeholders in strings and XML trees and
// evaluates build conditions.
//
// Expressions use the expr language (github.com/expr-lang/expr) and are
// evaluated against an Env. Inside a placeholder a backslash escapes the
// next character, so \] does not close it. A placeholder that is never
// closed is left as literal text.
//
// Besides the env, expressions may call
//
//	getenv(name)  the value of an environment variable
//	whereami()    the breadcrumb path of the node being expanded
package eval
