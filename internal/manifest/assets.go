package manifest

import "strings"

// ResolveAsset maps a manifest asset reference to a fetchable location.
// Absolute http(s) URLs pass through verbatim; a leading slash is rebased
// under the asset root; anything else is treated as relative to the root.
// The same rule applies to thumbnails, page images, and probed page paths.
func ResolveAsset(assetRoot, ref string) string {
	if ref == "" {
		return ""
	}
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}
	root := strings.TrimRight(assetRoot, "/")
	if strings.HasPrefix(ref, "/") {
		return root + ref
	}
	return root + "/" + ref
}
