package manifest

import "testing"

func TestResolveAsset(t *testing.T) {
	cases := []struct {
		name string
		root string
		ref  string
		want string
	}{
		{"absolute http", "assets", "http://example.com/a.jpg", "http://example.com/a.jpg"},
		{"absolute https", "assets", "https://example.com/a.jpg", "https://example.com/a.jpg"},
		{"rooted path rebased", "assets", "/paper-x/a.jpg", "assets/paper-x/a.jpg"},
		{"relative path", "assets", "paper-x/a.jpg", "assets/paper-x/a.jpg"},
		{"root with trailing slash", "assets/", "paper-x/a.jpg", "assets/paper-x/a.jpg"},
		{"url root", "https://cdn.example.com/scans", "/a.jpg", "https://cdn.example.com/scans/a.jpg"},
		{"empty ref", "assets", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ResolveAsset(tc.root, tc.ref); got != tc.want {
				t.Fatalf("ResolveAsset(%q, %q) = %q, want %q", tc.root, tc.ref, got, tc.want)
			}
		})
	}
}
