package selector

import (
	"context"
	"errors"
	"testing"

	"record-region/src/process"
	"record-region/src/process/processtest"
	"record-region/src/region"
)

func TestSelect(t *testing.T) {
	tests := []struct {
		name          string
		stdout        string
		err           error
		want          region.Rect
		wantCancelled bool
		wantErr       error
	}{
		{name: "selection", stdout: "10,20,300,400\n", want: region.Rect{X: 10, Y: 20, W: 300, H: 400}},
		{name: "escape pressed", err: &process.ExitError{Name: "slop", Code: 1}, wantCancelled: true},
		{name: "empty output", stdout: "  \n", wantCancelled: true},
		{name: "garbage", stdout: "10,20,abc,400", wantErr: region.ErrParse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := processtest.New()
			fake.Script(Tool, tt.stdout, tt.err)

			r, cancelled, err := New(fake).Select(context.Background())
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Select failed: %v", err)
			}
			if cancelled != tt.wantCancelled {
				t.Fatalf("Expected cancelled=%v, got %v", tt.wantCancelled, cancelled)
			}
			if r != tt.want {
				t.Fatalf("Expected %+v, got %+v", tt.want, r)
			}
			if !fake.CalledWith(Tool, "-f", "%x,%y,%w,%h") {
				t.Fatal("Expected slop to be asked for x,y,w,h output")
			}
		})
	}
}

func TestSelectToolMissing(t *testing.T) {
	fake := processtest.New()
	fake.Script(Tool, "", errors.New("executable file not found"))

	_, cancelled, err := New(fake).Select(context.Background())
	if err == nil {
		t.Fatal("Expected error when slop cannot run")
	}
	if cancelled {
		t.Fatal("A missing tool is an error, not a cancel")
	}
}
