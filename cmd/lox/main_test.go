package main

import "testing"

func TestComplete(t *testing.T) {
	tests := []struct {
		src  string
		want bool
	}{
		{"print 1;", true},
		{"fun f() {", false},
		{"fun f() {\n  return 1;\n}", true},
		{"print (1 +", false},
		{`print "open`, false},
		{`print "a { b";`, true},
		{"// { comment", true},
		{"}", true},
	}
	for _, tt := range tests {
		if got := complete(tt.src); got != tt.want {
			t.Errorf("complete(%q) = %v, want %v", tt.src, got, tt.want)
		}
	}
}
