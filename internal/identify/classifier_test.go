package identify

import "testing"

func TestIsInDomain(t *testing.T) {
	cases := []struct {
		query string
		want  bool
	}{
		{"How do I treat aphids on my tomato plants?", true},
		{"What's the capital of France?", false},
		{"tell me a joke", false},
		{"", false},
		{"   \n ", false},
		{"My maize has armyworm", true},
		// substring matching is intentionally permissive
		{"I planted last week", true},
		{"PESTICIDE dosage for cabbage", true},
		{"when does the growing season start", true},
		{"best dairy feed mix", true},
	}

	for _, tc := range cases {
		if got := IsInDomain(tc.query); got != tc.want {
			t.Errorf("IsInDomain(%q) = %v, want %v", tc.query, got, tc.want)
		}
	}
}
