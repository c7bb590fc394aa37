package shell

import "testing"

func TestSplitPipeline(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    []string
		wantErr bool
	}{
		{name: "no pipe", line: "ls /tags", want: []string{"ls /tags"}},
		{name: "two stages", line: "cat /books/1 | wc -l", want: []string{"cat /books/1 ", " wc -l"}},
		{name: "three stages", line: "a|b|c", want: []string{"a", "b", "c"}},
		{name: "pipe in double quotes", line: `grep "a|b" | sort`, want: []string{`grep "a|b" `, " sort"}},
		{name: "pipe in single quotes", line: "echo 'x|y'", want: []string{"echo 'x|y'"}},
		{name: "escaped pipe", line: `echo a\|b`, want: []string{`echo a\|b`}},
		{name: "unclosed double quote", line: `echo "oops`, wantErr: true},
		{name: "unclosed single quote", line: "echo 'oops", wantErr: true},
		{name: "trailing backslash", line: `echo oops\`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SplitPipeline(tt.line)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("SplitPipeline(%q) = %v, want error", tt.line, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("SplitPipeline(%q): %v", tt.line, err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("SplitPipeline(%q) = %q, want %q", tt.line, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("stage %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestParse(t *testing.T) {
	stages, err := Parse(`grep -i "science fiction" | head -n 5`)
	if err != nil {
		t.Fatal(err)
	}
	if len(stages) != 2 {
		t.Fatalf("got %d stages, want 2", len(stages))
	}
	first := stages[0]
	if first.Name != "grep" || len(first.Args) != 2 || first.Args[0] != "-i" || first.Args[1] != "science fiction" {
		t.Errorf("first stage = %+v, want grep [-i, science fiction]", first)
	}
	second := stages[1]
	if second.Name != "head" || len(second.Args) != 2 || second.Args[1] != "5" {
		t.Errorf("second stage = %+v", second)
	}
}

func TestParseEmptyLine(t *testing.T) {
	for _, line := range []string{"", "   "} {
		stages, err := Parse(line)
		if err != nil {
			t.Errorf("Parse(%q): %v", line, err)
		}
		if stages != nil {
			t.Errorf("Parse(%q) = %+v, want nil", line, stages)
		}
	}
}

func TestParseEmptyStage(t *testing.T) {
	for _, line := range []string{"ls |", "| ls", "ls | | wc"} {
		if _, err := Parse(line); err == nil {
			t.Errorf("Parse(%q) should fail on an empty stage", line)
		}
	}
}
