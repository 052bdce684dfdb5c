package progressbar

import (
	"bytes"
	"strings"
	"testing"
)

func TestProgress(t *testing.T) {
	var out bytes.Buffer
	p := New(&out, 10, 4)

	for i := 0; i < 6; i++ {
		p.Increment()
	}
	if p.Progress() != 1.0 {
		t.Errorf("progress should saturate at 1, have(%v)", p.Progress())
	}

	p.Display()
	if !strings.Contains(out.String(), "100.00%") {
		t.Errorf("display should print the percentage, have(%q)", out.String())
	}
	if strings.Count(p.String(), "█") != 10 {
		t.Errorf("full bar should be 10 characters wide, have(%q)", p.String())
	}
}
