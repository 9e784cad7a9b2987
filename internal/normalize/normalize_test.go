package normalize

import "testing"

func TestEmail(t *testing.T) {
	in := "  Alice.SMITH@Example.COM  "
	want := "alice.smith@example.com"
	if got := Email(in); got != want {
		t.Fatalf("Email(%q) = %q, want %q", in, got, want)
	}
}
