package aggregate

import "sort"

// Order sorts files in place by relative path, byte-wise ascending.
func Order(files []File) {
	sort.Slice(files, func(i, j int) bool {
		return files[i].RelPath < files[j].RelPath
	})
}
