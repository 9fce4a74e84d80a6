package domain

import "testing"

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		seconds int
		want    string
	}{
		{0, "0 min"},
		{45, "1 min"},
		{60, "1 min"},
		{61, "2 min"},
		{600, "10 min"},
		{3540, "59 min"},
		{3599, "1 hour"},
		{3600, "1 hour"},
		{3661, "1 hour 1 min"},
		{5400, "1 hour 30 min"},
		{7200, "2 hours"},
		{9000, "2 hours 30 min"},
		{-5, "0 min"},
	}

	for _, c := range cases {
		if got := FormatDuration(c.seconds); got != c.want {
			t.Errorf("FormatDuration(%d) = %q, want %q", c.seconds, got, c.want)
		}
	}
}

func TestTransferSummary(t *testing.T) {
	if got := TransferSummary(0); got != "direct" {
		t.Errorf("TransferSummary(0) = %q", got)
	}
	if got := TransferSummary(-1); got != "direct" {
		t.Errorf("TransferSummary(-1) = %q", got)
	}
	if got := TransferSummary(1); got != "1 transfer" {
		t.Errorf("TransferSummary(1) = %q", got)
	}
	if got := TransferSummary(3); got != "3 transfers" {
		t.Errorf("TransferSummary(3) = %q", got)
	}
}
