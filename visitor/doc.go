// Package visitor offers callback based traversal over decoded JSON containers.
package visitor
