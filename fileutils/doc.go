// Package fileutils reads and writes whole files.
//
// [Readlines] returns a forward-only sequence of lines. Files of 16 KiB or
// more are memory-mapped; smaller files are read into a buffer, and files
// whose reported size is zero are probed, because procfs and sysfs report
// zero for files that do have content.
//
//	lines, err := fileutils.Readlines("/etc/hosts")
//	if err != nil {
//		return err
//	}
//	defer lines.Close()
//	for line := range lines.All() {
//		fmt.Println(line)
//	}
//
// [Readfile] returns a file's whole content as a string. [MapFile] hands out
// a read-only view for callers that hash or scan a file in place.
// [AtomicFile] writes to a temporary sibling and renames it over the target
// on Close.
package fileutils
