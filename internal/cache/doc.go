// Package cache provides the generic soft-limited cache used to keep parsed
// font files across conversion runs.
//
//	c := cache.New[string, *Entry](64)
//	e := c.GetOrCreate(path, func() *Entry { return load(path) })
//
// Cache is safe for concurrent use and must not be copied after creation.
package cache
