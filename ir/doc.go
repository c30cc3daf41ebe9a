// Package ir provides the in-memory tree that xmod patches operate on.
//
// # Overview
//
// A document is a tree of *Node. Documents and elements own an ordered list
// of children; text runs, comments, processing instructions and directives
// are leaves. Elements carry a namespace token (Space), a name and ordered
// attributes.
//
// The tree carries no source positions and no namespace resolution: a
// namespace token is whatever prefix the source used, and two tokens are
// the same namespace exactly when they are equal strings.
//
// # Ownership
//
// Each node has at most one parent. Parent is a plain back-pointer kept in
// sync by AppendChild, InsertChild, RemoveChild and Detach. Clone returns a
// detached deep copy, which is how content moves between trees.
//
// # Paths
//
// Path renders a breadcrumb such as /root/event(NAME)/choice/text for error
// messages. It is not a query language.
package ir
