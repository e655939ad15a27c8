package vfs

import "strings"

// NormalisePath lexically normalises a guest path the way spec §3 requires: empty components and
// "." are dropped, ".." pops one component, and a leading "/" is preserved. Normalisation never
// touches the filesystem.
func NormalisePath(path string) string {
	absolute := strings.HasPrefix(path, "/")

	var components []string

	for _, comp := range strings.Split(path, "/") {
		switch comp {
		case "", ".":
			// Drop.
		case "..":
			if len(components) > 0 {
				components = components[:len(components)-1]
			}
		default:
			components = append(components, comp)
		}
	}

	joined := strings.Join(components, "/")

	if absolute {
		return "/" + joined
	}

	return joined
}
