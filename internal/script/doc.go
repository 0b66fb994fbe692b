// Package script runs Lua workloads against a gap vector and a text buffer.
//
// Scripts execute in a sandbox with only the base, table, string and math
// libraries. Two global modules are installed:
//
//	vec   a gap vector of Lua values (1-based indices)
//	buf   a text buffer (0-based byte offsets, 1-based lines)
//
// Example:
//
//	for i = 1, 1000 do vec.push(i) end
//	vec.insert(500, "x", "y")
//	vec.erase(10, 5)
//	assert(vec.len() == 997)
//
//	buf.insert(0, "hello\nworld")
//	assert(buf.line(2) == "world")
//
// Every call into vec or buf counts as one operation. A run fails with
// ErrOpLimit once the configured budget is spent, and with the context
// error when its context is cancelled or its timeout expires.
package script
