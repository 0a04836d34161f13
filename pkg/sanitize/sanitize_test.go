package sanitize

import "testing"

func Test_Filename(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"report.pdf", "report.pdf"},
		{"crime scene.png", "crime_scene.png"},
		{"../../etc/passwd", "passwd"},
		{`..\..\windows\system32`, "system32"},
		{".hidden", "hidden"},
		{"---x.txt", "x.txt"},
		{"..", "file"},
		{"", "file"},
		{"résumé.pdf", "r_sum_.pdf"},
		{"a/b/c.txt", "c.txt"},
	}
	for _, tc := range cases {
		if got := Filename(tc.in); got != tc.want {
			t.Errorf("Filename(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func Test_Ext(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"photo.JPG", "jpg"},
		{"archive.tar.gz", "gz"},
		{"noext", ""},
		{"trailing.", ""},
		{"UPPER.PDF", "pdf"},
	}
	for _, tc := range cases {
		if got := Ext(tc.in); got != tc.want {
			t.Errorf("Ext(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
