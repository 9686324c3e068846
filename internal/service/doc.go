// Package service provides application-level services for managing users,
// categories, and tasks. Services orchestrate domain logic and persistence,
// including the transactional coupling of task transitions with their audit
// history.
package service
