// Package domain contains the core catalog entities, value objects, and
// domain logic of the application: items, their validation rules, and the
// aggregate statistics computed over them. It is independent of any specific
// storage or delivery mechanism.
package domain
