// Package store provides a DynamoDB document access layer for the cashbook
// collection hierarchy.
//
// The cashbook data model is a referential hierarchy of collections: a
// business owns many books, and each book owns many cash_in/cash_out
// entries. Each collection maps to one DynamoDB table; documents are
// schemaless attribute maps with a uuid string id.
//
// # Collection Registry
//
// [Registry] is the static description of the hierarchy. Each [Collection]
// records its physical table, its hierarchy role, its parent collection,
// and the attributes used for foreign keys and name lookups. The registry
// is built once at startup from [Config] and is immutable afterwards.
//
// # Client
//
// [Client] exposes the five store primitives (List, Get, Create, Update,
// Delete) plus FindByField, the secondary-key lookup used by relationship
// resolution. FindByField queries a per-table global secondary index keyed
// on the lookup attribute with created_at as the range key, so duplicate
// names resolve deterministically to the earliest-created document.
//
// # Errors
//
// The package defines domain-specific errors:
//
//   - [ErrNotFound] - document doesn't exist
//   - [ErrAlreadyExists] - document with the given id already exists
//   - [ErrUnknownCollection] - logical collection name is not registered
package store
