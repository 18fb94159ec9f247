// Package profile defines the career profile entities (education,
// experience, skills, projects) and the Store interface for
// owner-scoped CRUD against a relational store.
//
// Every operation is scoped by the owner identifier carried in the
// context; a store never returns rows belonging to another owner.
// Implementations live in the postgres and memory subpackages.
package profile
