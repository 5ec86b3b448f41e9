// Package osutils provides path algorithms and directory helpers.
//
// [Normpath] and [Join] are pure string algorithms: they never touch the
// filesystem. [Normpath] collapses ".", ".." and redundant separators
// lexically; [Join] concatenates segments without resolving "..":
//
//	osutils.Normpath("a/b/../c")          // "a/c"
//	osutils.Pjoin("/a", "b", "../c")      // "/a/b/../c"
//	osutils.Pjoin("usr", "/etc", "conf/") // "/etc/conf/"
//
// The listing helpers ([ListdirFiles], [ListdirDirs], [Readdir]) and the
// symlink resolvers ([Abssymlink], [Abspath]) return the OS error untouched,
// so callers test for it with [errors.Is] and [io/fs.ErrNotExist].
package osutils
