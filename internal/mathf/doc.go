// Package mathf provides the float32 vector and quaternion math used by
// the engine. All types are small values with pure methods; nothing in
// this package holds state or allocates.
package mathf
